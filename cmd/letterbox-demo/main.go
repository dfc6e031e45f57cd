// Package main provides letterbox-demo, a window that shows a fixed virtual
// canvas scaled and centered with letterbox bars.
package main

import (
	"embed"
	"encoding/json"
	"expvar"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/opd-ai/go-letterbox/internal/profiling"
	"github.com/opd-ai/go-letterbox/pkg/aspect"
	"github.com/opd-ai/go-letterbox/pkg/letterbox"
)

// Version is the current version of letterbox-demo.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

//go:embed configs/default.lua
var configFS embed.FS

const defaultConfigPath = "configs/default.lua"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("letterbox-demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("c", "", "Path to configuration file (Lua or key-value); the embedded demo config is used if empty")
	version := fs.Bool("v", false, "Print version and exit")
	debug := fs.Bool("debug", false, "Enable debug logging")
	watch := fs.Bool("watch", false, "Reload the configuration file when it changes")
	compute := fs.String("compute", "", "Print the letterbox geometry for a WIDTHxHEIGHT surface and exit")
	expvarAddr := fs.String("expvar", "", "Serve metrics at http://ADDR/debug/vars")
	cpuProfile := fs.String("cpuprofile", "", "Write CPU profile to file")
	memProfile := fs.String("memprofile", "", "Write memory profile to file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "letterbox-demo version %s\n", Version)
		return 0
	}

	prof := profiling.Config{CPUProfilePath: *cpuProfile, MemProfilePath: *memProfile}
	if prof.Enabled() {
		session, err := profiling.Start(prof)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to start profiling: %v\n", err)
			return 1
		}
		defer func() {
			if err := session.Stop(); err != nil {
				fmt.Fprintf(stderr, "Warning: failed to stop profiling: %v\n", err)
			}
		}()
	}

	opts := letterbox.DefaultOptions()
	opts.Logger = letterbox.DefaultLogger()
	if *debug {
		opts.Logger = letterbox.DebugLogger()
	}
	opts.WatchConfig = *watch
	opts.Headless = *compute != ""

	lb, err := open(*configPath, &opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating letterbox instance: %v\n", err)
		return 1
	}

	if *compute != "" {
		return runCompute(lb, *compute, stdout, stderr)
	}

	if *expvarAddr != "" {
		lb.Metrics().RegisterExpvar()
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/debug/vars", expvar.Handler())
			if err := http.ListenAndServe(*expvarAddr, mux); err != nil {
				fmt.Fprintf(stderr, "Warning: metrics server: %v\n", err)
			}
		}()
	}

	lb.ContentRoot().Attach(newDemoCanvas())

	lb.SetErrorHandler(func(err error) {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	})

	if err := lb.Start(); err != nil {
		fmt.Fprintf(stderr, "Failed to start: %v\n", err)
		return 1
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	stopped := make(chan struct{})
	lb.SetEventHandler(func(e letterbox.Event) {
		if e.Type == letterbox.EventStopped {
			close(stopped)
		}
	})

	for {
		select {
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				if err := lb.ReloadConfig(); err != nil {
					fmt.Fprintf(stderr, "Reload failed: %v\n", err)
				}
				continue
			}
			if err := lb.Stop(); err != nil {
				fmt.Fprintf(stderr, "Stop error: %v\n", err)
				return 1
			}
			return 0
		case <-stopped:
			// Window closed.
			return 0
		}
	}
}

// open loads the configuration from path, or the embedded demo config.
func open(path string, opts *letterbox.Options) (letterbox.Letterbox, error) {
	if path == "" {
		return letterbox.NewFromFS(configFS, defaultConfigPath, opts)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return letterbox.New(path, opts)
}

// computeOutput is the JSON document printed by -compute.
type computeOutput struct {
	Virtual          string            `json:"virtual"`
	Surface          string            `json:"surface"`
	Scale            float64           `json:"scale"`
	NormalizedWidth  float64           `json:"normalized_width"`
	NormalizedHeight float64           `json:"normalized_height"`
	MarginLeft       float64           `json:"margin_left"`
	MarginTop        float64           `json:"margin_top"`
	Masks            []computeMaskJSON `json:"masks"`
}

type computeMaskJSON struct {
	Side    string  `json:"side"`
	Offset  float64 `json:"offset"`
	Length  float64 `json:"length"`
	Visible bool    `json:"visible"`
}

func runCompute(lb letterbox.Letterbox, arg string, stdout, stderr io.Writer) int {
	w, h, err := parseSize(arg)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid -compute value: %v\n", err)
		return 2
	}

	lb.SurfaceResized(w, h)
	r, ok := lb.Result()
	if !ok {
		fmt.Fprintf(stderr, "Surface %s is degenerate\n", arg)
		return 1
	}

	out := computeOutput{
		Virtual:          r.Resolution.String(),
		Surface:          r.Surface.String(),
		Scale:            r.Scale,
		NormalizedWidth:  r.NormalizedWidth,
		NormalizedHeight: r.NormalizedHeight,
		MarginLeft:       r.Margin.Left,
		MarginTop:        r.Margin.Top,
	}
	for _, side := range aspect.Sides {
		m := r.Mask(side)
		out.Masks = append(out.Masks, computeMaskJSON{
			Side:    side.String(),
			Offset:  m.Offset,
			Length:  m.Length,
			Visible: m.Visible(),
		})
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}
	return 0
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (float64, float64, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%q is not WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(ws), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("width: %w", err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("height: %w", err)
	}
	return w, h, nil
}
