package run

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// IncompleteRunError is returned by Finalize only when zero items were ever
// accepted. A run with some permanently failed items still finalizes.
type IncompleteRunError struct {
	RunID string
}

func (e *IncompleteRunError) Error() string {
	return fmt.Sprintf("run %s accepted no items", e.RunID)
}

// Manifest is the persisted record of a run. Field names are a contract with
// every downstream consumer (renderer, uploader, analytics) and do not change.
type Manifest struct {
	RunID    string         `json:"run_id"`
	Subjects []string       `json:"subjects"`
	Items    []ManifestItem `json:"items"`
	Failures []Failure      `json:"failures"`
}

type ManifestItem struct {
	ID          string            `json:"id"`
	Subject     string            `json:"subject"`
	ContentType string            `json:"content_type"`
	Topic       string            `json:"topic"`
	Question    string            `json:"question"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation"`
	Artifacts   ManifestArtifacts `json:"artifacts"`
}

type ManifestArtifacts struct {
	Image    []string `json:"image"`
	Carousel []string `json:"carousel"`
	Video    *string  `json:"video"`
	Upload   any      `json:"upload"`
}

// Finalize snapshots the run into its manifest document. Items appear in
// generation order regardless of which attempt produced each acceptance.
func (r *Run) Finalize() (Manifest, error) {
	if len(r.items) == 0 {
		return Manifest{}, &IncompleteRunError{RunID: r.RunID}
	}

	m := Manifest{
		RunID:    r.RunID,
		Subjects: append([]string(nil), r.Subjects...),
		Items:    make([]ManifestItem, 0, len(r.items)),
		Failures: append([]Failure{}, r.failures...),
	}

	for _, it := range r.items {
		mi := ManifestItem{
			ID:          it.ID.String(),
			Subject:     it.Subject,
			ContentType: string(it.ContentType),
			Topic:       it.Topic,
			Question:    it.Question,
			Answer:      it.AnswerText(),
			Explanation: it.Explanation,
			Artifacts: ManifestArtifacts{
				Image:    []string{},
				Carousel: []string{},
			},
		}
		if v, ok := r.Artifact(it.ID, KindImage); ok {
			if paths, ok := v.([]string); ok {
				mi.Artifacts.Image = paths
			}
		}
		if v, ok := r.Artifact(it.ID, KindCarousel); ok {
			if paths, ok := v.([]string); ok {
				mi.Artifacts.Carousel = paths
			}
		}
		if v, ok := r.Artifact(it.ID, KindVideo); ok {
			if path, ok := v.(string); ok && path != "" {
				mi.Artifacts.Video = &path
			}
		}
		if v, ok := r.Artifact(it.ID, KindUpload); ok {
			mi.Artifacts.Upload = v
		}
		m.Items = append(m.Items, mi)
	}

	r.finalized = true
	return m, nil
}

// Write serializes the manifest to <dir>/<run_id>/manifest.json.
func (m Manifest) Write(dir string) (string, error) {
	outDir := filepath.Join(dir, m.RunID)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir run dir: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	path := filepath.Join(outDir, "manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}
