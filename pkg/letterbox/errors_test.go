package letterbox

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCategoryString(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		want     string
	}{
		{CategoryUnknown, "unknown"},
		{CategoryConfig, "config"},
		{CategoryResize, "resize"},
		{CategoryRender, "render"},
		{CategoryWatcher, "watcher"},
		{CategoryLifecycle, "lifecycle"},
		{ErrorCategory(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.category.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestCategorize(t *testing.T) {
	if categorize(CategoryConfig, nil) != nil {
		t.Error("categorize(nil) should be nil")
	}

	base := errors.New("boom")
	err := categorize(CategoryResize, fmt.Errorf("wrap: %w", base))

	if !errors.Is(err, base) {
		t.Error("categorized error does not unwrap to the cause")
	}
	if CategoryOf(err) != CategoryResize {
		t.Errorf("CategoryOf() = %v, want resize", CategoryOf(err))
	}
	if CategoryOf(fmt.Errorf("outer: %w", err)) != CategoryResize {
		t.Error("CategoryOf() should see through wrapping")
	}
	if CategoryOf(base) != CategoryUnknown {
		t.Error("uncategorized error should be unknown")
	}
	if got := err.Error(); got != "[resize] wrap: boom" {
		t.Errorf("Error() = %q", got)
	}
}
