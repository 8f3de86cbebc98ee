package publish

import (
	"sort"
	"strings"
	"testing"

	"github.com/yungbote/quizreel-backend/internal/content"
)

func TestCaptionFor_KnownSubjects(t *testing.T) {
	caption, err := CaptionFor("python")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(caption, "#Python") {
		t.Fatalf("expected subject hashtags in caption: %q", caption)
	}

	hooked := false
	for _, hook := range captionHooks {
		if strings.HasPrefix(caption, hook) {
			hooked = true
			break
		}
	}
	if !hooked {
		t.Fatalf("caption does not start with a known hook: %q", caption)
	}
}

func TestCaptionFor_UnknownSubject(t *testing.T) {
	if _, err := CaptionFor("cobol"); err == nil {
		t.Fatalf("expected error for unknown subject")
	}
}

func TestCaptionSubjects_MatchesContentRegistry(t *testing.T) {
	got := CaptionSubjects()
	sort.Strings(got)
	want := content.Subjects()

	if len(got) != len(want) {
		t.Fatalf("caption subjects out of sync with registry: %d vs %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("caption subjects out of sync at %d: %q vs %q", i, got[i], want[i])
		}
	}
}
