// Package config provides configuration parsing and validation for go-letterbox.
// This file implements validation for configuration values.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/opd-ai/go-letterbox/pkg/aspect"
)

// maxResolution is the largest virtual dimension accepted without a warning.
const maxResolution = 16384

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
	// Err is an optional sentinel the error wraps, such as
	// aspect.ErrInvalidResolution.
	Err error
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// Unwrap returns the wrapped sentinel, if any.
func (ve ValidationError) Unwrap() error {
	return ve.Err
}

// ValidationErrors is a list of validation errors that supports errors.Is
// against any of its members.
type ValidationErrors []ValidationError

// Error joins the member messages with "; ".
func (ve ValidationErrors) Error() string {
	messages := make([]string, 0, len(ve))
	for _, e := range ve {
		messages = append(messages, e.Error())
	}
	return strings.Join(messages, "; ")
}

// Unwrap exposes the members to errors.Is and errors.As.
func (ve ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(ve))
	for _, e := range ve {
		errs = append(errs, e)
	}
	return errs
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors make the configuration unusable.
	Errors []ValidationError
	// Warnings are non-fatal issues worth reporting.
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed: %w", ValidationErrors(vr.Errors))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Validator checks a Config for unusable or suspicious values.
type Validator struct {
	// strictMode turns warnings into errors.
	strictMode bool
}

// NewValidator creates a new Validator with default settings.
func NewValidator() *Validator {
	return &Validator{}
}

// WithStrictMode enables strict validation where warnings are errors.
func (v *Validator) WithStrictMode(strict bool) *Validator {
	v.strictMode = strict
	return v
}

// Validate performs validation of a Config.
func (v *Validator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		result.AddError("config", "is nil")
		return result
	}

	v.validateResolution(&cfg.Resolution, result)
	v.validateMask(&cfg.Mask, result)
	v.validateWindow(&cfg.Window, result)
	v.validateDisplay(&cfg.Display, result)
	v.validateText(cfg, result)

	if v.strictMode && len(result.Warnings) > 0 {
		result.Errors = append(result.Errors, result.Warnings...)
		result.Warnings = nil
	}
	return result
}

func (v *Validator) validateResolution(rc *ResolutionConfig, result *ValidationResult) {
	if err := rc.Aspect().Validate(); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "resolution",
			Message: fmt.Sprintf("width and height must be positive, got %gx%g", rc.Width, rc.Height),
			Err:     aspect.ErrInvalidResolution,
		})
		return
	}

	if rc.Width > maxResolution || rc.Height > maxResolution {
		result.AddWarning("resolution", fmt.Sprintf("unusually large value %gx%g", rc.Width, rc.Height))
	}
}

func (v *Validator) validateMask(mc *MaskConfig, result *ValidationResult) {
	if mc.Enabled && mc.Color.A == 0 {
		result.AddWarning("mask.color", "fully transparent; bars will not hide overflow")
	}
}

func (v *Validator) validateWindow(wc *WindowConfig, result *ValidationResult) {
	if wc.Width < 0 {
		result.AddError("window.width", fmt.Sprintf("must be non-negative, got %d", wc.Width))
	}
	if wc.Height < 0 {
		result.AddError("window.height", fmt.Sprintf("must be non-negative, got %d", wc.Height))
	}
	if (wc.Width == 0) != (wc.Height == 0) {
		result.AddWarning("window", "width and height must both be set; using automatic size")
	}
	if strings.TrimSpace(wc.Title) == "" {
		result.AddWarning("window.title", "empty title")
	}
}

func (v *Validator) validateDisplay(dc *DisplayConfig, result *ValidationResult) {
	if dc.UpdateInterval < 0 {
		result.AddError("display.update_interval", fmt.Sprintf("must be non-negative, got %v", dc.UpdateInterval))
	}
	if dc.FontSize <= 0 || math.IsNaN(dc.FontSize) || math.IsInf(dc.FontSize, 0) {
		result.AddError("display.font_size", fmt.Sprintf("must be positive, got %v", dc.FontSize))
	}
}

// validateText warns when the HUD lines cannot fit in the virtual height.
func (v *Validator) validateText(cfg *Config, result *ValidationResult) {
	if len(cfg.Text.Template) == 0 || cfg.Display.FontSize <= 0 {
		return
	}
	needed := float64(len(cfg.Text.Template)) * cfg.Display.FontSize * LineHeightFactor
	if needed > cfg.Resolution.Height {
		result.AddWarning("text", fmt.Sprintf("%d lines need %.0f units, virtual height is %g",
			len(cfg.Text.Template), needed, cfg.Resolution.Height))
	}
}

// LineHeightFactor is the line height as a multiple of the font size.
const LineHeightFactor = 1.2

// IsInvalidResolution reports whether err was caused by an unusable
// virtual resolution.
func IsInvalidResolution(err error) bool {
	return errors.Is(err, aspect.ErrInvalidResolution)
}
