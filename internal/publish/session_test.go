package publish

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestSession_Valid(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	s := Session{UserID: "u", AccessToken: "tok", ExpiresAt: now.Add(time.Hour)}
	if !s.Valid(now) {
		t.Fatalf("expected valid session")
	}

	// Inside the safety margin counts as expired.
	s.ExpiresAt = now.Add(5 * time.Minute)
	if s.Valid(now) {
		t.Fatalf("expected session inside margin to be invalid")
	}

	s.ExpiresAt = now.Add(time.Hour)
	s.AccessToken = ""
	if s.Valid(now) {
		t.Fatalf("expected tokenless session to be invalid")
	}
}

func TestSession_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	in := Session{
		UserID:      "17841400000000000",
		AccessToken: "EAAG...",
		ExpiresAt:   time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := SaveSession(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := LoadSession(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.UserID != in.UserID || out.AccessToken != in.AccessToken {
		t.Fatalf("round trip mismatch: %#v", out)
	}
	if !out.ExpiresAt.Equal(in.ExpiresAt) {
		t.Fatalf("expiry mismatch: %v", out.ExpiresAt)
	}
	if out.SavedAt.IsZero() {
		t.Fatalf("expected saved_at stamped")
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Fatalf("expected private file mode, got %v", info.Mode().Perm())
		}
	}
}

func TestLoadSession_MissingFile(t *testing.T) {
	if _, err := LoadSession(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
