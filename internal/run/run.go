package run

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/quizreel-backend/internal/content"
)

// ArtifactKind keys one artifact record per item. Later calls for the same
// (item, kind) overwrite, they never duplicate.
type ArtifactKind string

const (
	KindImage    ArtifactKind = "image"
	KindCarousel ArtifactKind = "carousel"
	KindVideo    ArtifactKind = "video"
	KindUpload   ArtifactKind = "upload"
)

var validKinds = map[ArtifactKind]bool{
	KindImage:    true,
	KindCarousel: true,
	KindVideo:    true,
	KindUpload:   true,
}

// Failure is one permanently failed item, recorded with its retry history.
type Failure struct {
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Attempts   int    `json:"attempts"`
	LastReason string `json:"last_reason"`
}

// Run is the unit of a single invocation. It exclusively owns its items,
// failures, artifact records, and the topic-exclusion set; nothing outside
// the orchestrating process mutates it.
type Run struct {
	RunID    string
	Subjects []string

	items    []content.Item
	failures []Failure

	artifacts map[uuid.UUID]map[ArtifactKind]any

	// usedTopics[subject][topic]; run-scoped so concurrent runs never
	// interfere with each other's exclusion sets.
	usedTopics map[string]map[string]bool

	startedAt time.Time
	finalized bool
}

// Start creates a Run for one invocation. The run id is timestamp-derived so
// artifact directories sort chronologically.
func Start(subjects []string) *Run {
	return &Run{
		RunID:      time.Now().UTC().Format("20060102_150405"),
		Subjects:   append([]string(nil), subjects...),
		artifacts:  map[uuid.UUID]map[ArtifactKind]any{},
		usedTopics: map[string]map[string]bool{},
		startedAt:  time.Now().UTC(),
	}
}

// RecordItem appends an accepted item. Generation order is preserved; the
// ordinal position is the stable key downstream stages correlate on.
func (r *Run) RecordItem(item content.Item) {
	r.items = append(r.items, item)
	r.MarkTopicUsed(item.Subject, item.Topic)
}

// RecordFailure appends one exhausted item to the failure log.
func (r *Run) RecordFailure(f Failure) {
	r.failures = append(r.failures, f)
	r.MarkTopicUsed(f.Subject, f.Topic)
}

// Items returns the accepted items in generation order.
func (r *Run) Items() []content.Item {
	return append([]content.Item(nil), r.items...)
}

// Failures returns the failure log.
func (r *Run) Failures() []Failure {
	return append([]Failure(nil), r.failures...)
}

// UsedTopics returns the exclusion set for one subject.
func (r *Run) UsedTopics(subject string) map[string]bool {
	m := r.usedTopics[subject]
	if m == nil {
		return map[string]bool{}
	}
	return m
}

func (r *Run) MarkTopicUsed(subject, topic string) {
	if topic == "" {
		return
	}
	if r.usedTopics[subject] == nil {
		r.usedTopics[subject] = map[string]bool{}
	}
	r.usedTopics[subject][topic] = true
}

// RecordArtifact stores one artifact record for an accepted item. Idempotent
// per (item, kind): re-recording replaces the previous value.
func (r *Run) RecordArtifact(itemID uuid.UUID, kind ArtifactKind, value any) error {
	if !validKinds[kind] {
		return fmt.Errorf("unknown artifact kind: %s", kind)
	}
	found := false
	for _, it := range r.items {
		if it.ID == itemID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("artifact for unknown item: %s", itemID)
	}
	if r.artifacts[itemID] == nil {
		r.artifacts[itemID] = map[ArtifactKind]any{}
	}
	r.artifacts[itemID][kind] = value
	return nil
}

// Artifact returns the recorded value for (item, kind), if any.
func (r *Run) Artifact(itemID uuid.UUID, kind ArtifactKind) (any, bool) {
	m, ok := r.artifacts[itemID]
	if !ok {
		return nil, false
	}
	v, ok := m[kind]
	return v, ok
}
