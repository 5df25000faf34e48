package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"langtagger/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "ffmpeg", "inspect", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"ffmpeg", "inspect", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrLibrary) {
		t.Fatalf("expected library marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestAbortsPass(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"configuration", services.Wrap(services.ErrConfiguration, "scan", "preflight", "ffmpeg missing", nil), true},
		{"lock", fmt.Errorf("acquire: %w", services.ErrScanInProgress), true},
		{"cancelled", fmt.Errorf("walk: %w", context.Canceled), true},
		{"extraction", services.Wrap(services.ErrExtraction, "extract", "inspect", "missing file", nil), false},
		{"library", services.Wrap(services.ErrLibrary, "jellyfin", "update", "500", nil), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.AbortsPass(tc.err); got != tc.want {
				t.Fatalf("AbortsPass(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
