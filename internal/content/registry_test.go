package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_KnownSubject(t *testing.T) {
	spec, err := Resolve("sql")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if spec.Subject != "sql" {
		t.Fatalf("unexpected subject: %q", spec.Subject)
	}
	if spec.ContentType != TypeQueryOutput {
		t.Fatalf("unexpected content type: %q", spec.ContentType)
	}
	if len(spec.Topics) == 0 {
		t.Fatalf("expected topics for sql")
	}
}

func TestResolve_UnknownSubject(t *testing.T) {
	_, err := Resolve("cobol")
	if err == nil {
		t.Fatalf("expected error for unknown subject")
	}
	var unknown *UnknownSubjectError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSubjectError, got %T", err)
	}
	if unknown.Subject != "cobol" {
		t.Fatalf("unexpected subject in error: %q", unknown.Subject)
	}
}

func TestSubjects_SortedAndComplete(t *testing.T) {
	subjects := Subjects()
	if len(subjects) != len(registry) {
		t.Fatalf("expected %d subjects, got %d", len(registry), len(subjects))
	}
	for i := 1; i < len(subjects); i++ {
		if subjects[i-1] >= subjects[i] {
			t.Fatalf("subjects not sorted: %q before %q", subjects[i-1], subjects[i])
		}
	}
	for _, s := range subjects {
		if _, err := Resolve(s); err != nil {
			t.Fatalf("listed subject %q does not resolve: %v", s, err)
		}
	}
}

func TestPickTopic_ExcludesUsedTopics(t *testing.T) {
	pool := []string{"a", "b", "c"}
	exclude := map[string]bool{"a": true, "c": true}
	for i := 0; i < 50; i++ {
		if got := PickTopic(pool, exclude); got != "b" {
			t.Fatalf("expected only unused topic %q, got %q", "b", got)
		}
	}
}

func TestPickTopic_ExhaustedPoolAllowsRepeats(t *testing.T) {
	pool := []string{"a", "b"}
	exclude := map[string]bool{"a": true, "b": true}
	got := PickTopic(pool, exclude)
	if got != "a" && got != "b" {
		t.Fatalf("expected a pool member, got %q", got)
	}
}

func TestPickTopic_EmptyPool(t *testing.T) {
	if got := PickTopic(nil, nil); got != "" {
		t.Fatalf("expected empty topic, got %q", got)
	}
}

func TestApplyTopicOverrides_ReplacesPool(t *testing.T) {
	orig := registry["regex"]
	defer func() { registry["regex"] = orig }()

	path := filepath.Join(t.TempDir(), "topics.yaml")
	data := []byte("topics:\n  regex:\n    - \"Backreferences\"\n    - \"Unicode classes\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write topics file: %v", err)
	}

	if err := ApplyTopicOverrides(path); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	spec, err := Resolve("regex")
	if err != nil {
		t.Fatalf("resolve after override: %v", err)
	}
	if len(spec.Topics) != 2 || spec.Topics[0] != "Backreferences" {
		t.Fatalf("override not applied: %#v", spec.Topics)
	}
}

func TestApplyTopicOverrides_RejectsUnknownSubject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	data := []byte("topics:\n  fortran:\n    - \"DO loops\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write topics file: %v", err)
	}

	err := ApplyTopicOverrides(path)
	var unknown *UnknownSubjectError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSubjectError, got %v", err)
	}
}

func TestApplyTopicOverrides_RejectsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	data := []byte("topics:\n  python: []\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write topics file: %v", err)
	}
	if err := ApplyTopicOverrides(path); err == nil {
		t.Fatalf("expected error for empty topic list")
	}
}
