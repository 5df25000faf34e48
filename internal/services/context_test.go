package services_test

import (
	"context"
	"testing"

	"langtagger/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithScanID(ctx, "run-1")
	ctx = services.WithItemID(ctx, "movies/Heat (1995)")
	ctx = services.WithScope(ctx, "movies")
	ctx = services.WithRequestID(ctx, "req-123")
	ctx = services.WithTrigger(ctx, "schedule")

	if id, ok := services.ScanIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("unexpected scan id: %v %v", id, ok)
	}
	if id, ok := services.ItemIDFromContext(ctx); !ok || id != "movies/Heat (1995)" {
		t.Fatalf("unexpected item id: %v %v", id, ok)
	}
	if scope, ok := services.ScopeFromContext(ctx); !ok || scope != "movies" {
		t.Fatalf("unexpected scope: %v %v", scope, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
	if trigger, ok := services.TriggerFromContext(ctx); !ok || trigger != "schedule" {
		t.Fatalf("unexpected trigger: %v %v", trigger, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithScope(ctx, "")
	ctx = services.WithItemID(ctx, "")
	if _, ok := services.ScopeFromContext(ctx); ok {
		t.Fatal("expected no scope value")
	}
	if _, ok := services.ItemIDFromContext(ctx); ok {
		t.Fatal("expected no item id value")
	}
}
