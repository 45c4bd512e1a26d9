package instance

import "testing"

func TestGetIDPrefersOverride(t *testing.T) {
	t.Setenv(EnvInstanceID, " desk-7 ")
	if got := GetID(); got != "desk-7" {
		t.Fatalf("expected override, got %q", got)
	}
}

func TestGetIDFallsBack(t *testing.T) {
	t.Setenv(EnvInstanceID, "")
	if got := GetID(); got == "" {
		t.Fatal("expected a non-empty fallback id")
	}
}
