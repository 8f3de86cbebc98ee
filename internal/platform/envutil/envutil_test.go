package envutil

import (
	"testing"
	"time"
)

func TestString(t *testing.T) {
	t.Setenv("X_STR", "  value  ")
	if got := String("X_STR", "def"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := String("X_STR_ABSENT", "def"); got != "def" {
		t.Fatalf("expected default, got %q", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("X_INT", "42")
	if got := Int("X_INT", 1); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	t.Setenv("X_INT_BAD", "forty")
	if got := Int("X_INT_BAD", 7); got != 7 {
		t.Fatalf("expected default for unparseable, got %d", got)
	}
}

func TestSeconds(t *testing.T) {
	t.Setenv("X_SECS", "90")
	if got := Seconds("X_SECS", time.Second); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
	t.Setenv("X_SECS_NEG", "-1")
	if got := Seconds("X_SECS_NEG", 5*time.Second); got != 5*time.Second {
		t.Fatalf("expected default for non-positive, got %v", got)
	}
}

func TestBool(t *testing.T) {
	cases := map[string]bool{
		"1": true, "true": true, "YES": true, "on": true,
		"0": false, "false": false, "No": false, "off": false,
	}
	for raw, want := range cases {
		t.Setenv("X_BOOL", raw)
		if got := Bool("X_BOOL", !want); got != want {
			t.Fatalf("Bool(%q) = %v, want %v", raw, got, want)
		}
	}
	t.Setenv("X_BOOL", "maybe")
	if got := Bool("X_BOOL", true); !got {
		t.Fatalf("expected default for unrecognized value")
	}
}
