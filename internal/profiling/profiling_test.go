package profiling

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"none", Config{}, false},
		{"cpu", Config{CPUProfilePath: "cpu.prof"}, true},
		{"mem", Config{MemProfilePath: "mem.prof"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPUProfilePath: filepath.Join(dir, "cpu.prof"),
		MemProfilePath: filepath.Join(dir, "mem.prof"),
	}

	s, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	for _, p := range []string{cfg.CPUProfilePath, cfg.MemProfilePath} {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("profile %s not written: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("profile %s is empty", p)
		}
	}

	if err := s.Stop(); err == nil {
		t.Error("second Stop() should fail")
	}
}

func TestSessionNoCPUProfile(t *testing.T) {
	s, err := Start(Config{})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestStartBadPath(t *testing.T) {
	_, err := Start(Config{CPUProfilePath: filepath.Join(t.TempDir(), "missing", "cpu.prof")})
	if err == nil {
		t.Error("Start() should fail for an unwritable path")
	}
}

func TestWriteHeapProfileBadPath(t *testing.T) {
	if err := WriteHeapProfile(filepath.Join(t.TempDir(), "missing", "mem.prof")); err == nil {
		t.Error("WriteHeapProfile() should fail for an unwritable path")
	}
}
