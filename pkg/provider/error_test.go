package provider

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := NewError(ErrorConfig, "google", "GEMINI_API_KEY not set")

	if KindOf(err) != ErrorConfig {
		t.Errorf("expected config kind, got %s", KindOf(err))
	}

	if KindOf(fmt.Errorf("wrapped: %w", err)) != ErrorConfig {
		t.Error("expected kind to survive wrapping")
	}

	if KindOf(errors.New("plain")) != ErrorProvider {
		t.Error("expected unknown errors to classify as provider failures")
	}
}

func TestWrapErrorKeepsExisting(t *testing.T) {
	inner := NewError(ErrorUnsupported, "zhipuai", "image editing is not supported")

	if WrapError(ErrorProvider, "zhipuai", inner) != inner {
		t.Error("expected an already-typed error to pass through unchanged")
	}
}

func TestCapabilityHas(t *testing.T) {
	caps := CapabilityRender | CapabilityEdit

	if !caps.Has(CapabilityRender) || !caps.Has(CapabilityEdit) {
		t.Error("expected both capabilities")
	}

	if CapabilityRender.Has(CapabilityEdit) {
		t.Error("render-only set must not report edit")
	}
}
