package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/quizreel-backend/internal/platform/logger"
)

// Tools wraps the ffmpeg binary for reel stitching. Synchronous and
// deterministic; callers own timeouts beyond the per-command default.
type Tools interface {
	AssertReady(ctx context.Context) error

	// StitchReel builds a vertical reel: each image is shown for its slot
	// duration in order, with the audio track mixed underneath.
	StitchReel(ctx context.Context, imagePaths []string, audioPath string, outPath string, opts ReelOptions) (string, error)

	WriteTempFile(ctx context.Context, data []byte, suffix string) (string, func(), error)
}

type ReelOptions struct {
	SecondsPerImage int
	Width           int
	Height          int
	AudioVolume     float64
}

type tools struct {
	log *logger.Logger

	ffmpegPath string
	workRoot   string

	defaultTimeout time.Duration
}

func New(log *logger.Logger) Tools {
	slog := log.With("service", "MediaTools")
	return &tools{
		log:            slog,
		ffmpegPath:     "ffmpeg",
		workRoot:       "/tmp/quizreel-media",
		defaultTimeout: 10 * time.Minute,
	}
}

func (m *tools) AssertReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := m.assertBinary(ctx, m.ffmpegPath); err != nil {
		return err
	}
	if err := os.MkdirAll(m.workRoot, 0o755); err != nil {
		return fmt.Errorf("create workRoot: %w", err)
	}
	return nil
}

func (m *tools) assertBinary(_ context.Context, name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("missing required binary %q in PATH: %w", name, err)
	}
	return nil
}

func (m *tools) WriteTempFile(_ context.Context, data []byte, suffix string) (string, func(), error) {
	if err := os.MkdirAll(m.workRoot, 0o755); err != nil {
		return "", func() {}, fmt.Errorf("mkdir workRoot: %w", err)
	}
	h := sha256.Sum256(data)
	base := hex.EncodeToString(h[:])[:16]
	if suffix != "" && !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}
	path := filepath.Join(m.workRoot, fmt.Sprintf("%s%s", base, suffix))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", func() {}, fmt.Errorf("write temp file: %w", err)
	}
	cleanup := func() { _ = os.Remove(path) }
	return path, cleanup, nil
}

func (m *tools) StitchReel(ctx context.Context, imagePaths []string, audioPath string, outPath string, opts ReelOptions) (string, error) {
	if err := m.AssertReady(ctx); err != nil {
		return "", err
	}
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("imagePaths required")
	}
	if outPath == "" {
		return "", fmt.Errorf("outPath required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("mkdir outPath dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.defaultTimeout)
	defer cancel()

	args := buildStitchArgs(imagePaths, audioPath, outPath, opts)
	cmd := exec.CommandContext(ctx, m.ffmpegPath, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg stitch failed: %w; out=%s", err, string(out))
	}

	if _, err := os.Stat(outPath); err != nil {
		return "", fmt.Errorf("reel output missing at %s", outPath)
	}
	return outPath, nil
}

// buildStitchArgs assembles the ffmpeg invocation. Each image becomes a
// looped input trimmed to its slot; the concat filter joins them and the
// audio (if any) is trimmed to the total length at reduced volume.
func buildStitchArgs(imagePaths []string, audioPath string, outPath string, opts ReelOptions) []string {
	secs := opts.SecondsPerImage
	if secs <= 0 {
		secs = 5
	}
	w := opts.Width
	if w <= 0 {
		w = 1080
	}
	h := opts.Height
	if h <= 0 {
		h = 1920
	}
	vol := opts.AudioVolume
	if vol <= 0 {
		vol = 0.35
	}
	total := secs * len(imagePaths)

	args := []string{"-y"}
	for _, p := range imagePaths {
		args = append(args, "-loop", "1", "-t", strconv.Itoa(secs), "-i", p)
	}
	hasAudio := audioPath != ""
	if hasAudio {
		args = append(args, "-i", audioPath)
	}

	var filter strings.Builder
	for i := range imagePaths {
		fmt.Fprintf(&filter, "[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1[v%d];", i, w, h, w, h, i)
	}
	for i := range imagePaths {
		fmt.Fprintf(&filter, "[v%d]", i)
	}
	fmt.Fprintf(&filter, "concat=n=%d:v=1:a=0[v]", len(imagePaths))
	if hasAudio {
		fmt.Fprintf(&filter, ";[%d:a]volume=%0.2f,atrim=0:%d[a]", len(imagePaths), vol, total)
	}

	args = append(args, "-filter_complex", filter.String(), "-map", "[v]")
	if hasAudio {
		args = append(args, "-map", "[a]")
	}
	args = append(args,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-r", "30",
	)
	if hasAudio {
		args = append(args, "-c:a", "aac", "-shortest")
	}
	args = append(args, outPath)
	return args
}
