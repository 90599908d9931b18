package db

import (
	"context"
	"errors"
	"testing"
)

func TestComponentStatuses(t *testing.T) {
	checks := []Check{
		{Name: "ai_provider", Ping: func(ctx context.Context) error { return nil }},
		{Name: "cache", Ping: func(ctx context.Context) error { return errors.New("not configured") }},
	}

	got := componentStatuses(context.Background(), checks)
	if got["ai_provider"] != "ok" {
		t.Errorf("ai_provider = %q", got["ai_provider"])
	}
	if got["cache"] != "unavailable: not configured" {
		t.Errorf("cache = %q", got["cache"])
	}
}

func TestComponentStatusesEmpty(t *testing.T) {
	if got := componentStatuses(context.Background(), nil); got != nil {
		t.Errorf("expected nil for no checks, got %v", got)
	}
}
