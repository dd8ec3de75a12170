package ai

import (
	"context"
	"testing"
)

func TestDisabledNeverProduces(t *testing.T) {
	got := Disabled{}.Extract(context.Background(), "nurse in Utrecht")
	if got.Produced {
		t.Fatalf("expected no filters from disabled extractor")
	}
	if got.Reason == "" {
		t.Fatalf("expected default reason")
	}

	got = Disabled{Reason: "gemini api key is not configured"}.Extract(context.Background(), "")
	if got.Reason != "gemini api key is not configured" {
		t.Fatalf("unexpected reason %q", got.Reason)
	}
}
