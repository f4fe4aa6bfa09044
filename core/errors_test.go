package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsConfigError_WithExactError(t *testing.T) {
	if !IsConfigError(ErrInvalidConfig) {
		t.Error("expected true for ErrInvalidConfig")
	}
}

func TestIsConfigError_WithWrappedError(t *testing.T) {
	err := fmt.Errorf("%w: port 0 out of range", ErrInvalidConfig)
	if !IsConfigError(err) {
		t.Error("expected true for wrapped ErrInvalidConfig")
	}
}

func TestIsConfigError_WithDifferentError(t *testing.T) {
	if IsConfigError(errors.New("dynsite: invalid config")) {
		t.Error("expected false for an unrelated error with the same message")
	}
}

func TestIsConfigError_WithNil(t *testing.T) {
	if IsConfigError(nil) {
		t.Error("expected false for nil error")
	}
}

func TestIsTemplateError_WithWrappedError(t *testing.T) {
	err := fmt.Errorf("%w: parse index.html", ErrTemplate)
	if !IsTemplateError(err) {
		t.Error("expected true for wrapped ErrTemplate")
	}
	if IsTemplateError(ErrInvalidConfig) {
		t.Error("expected false for ErrInvalidConfig")
	}
}
