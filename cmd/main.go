package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/datatypes"

	"github.com/yungbote/quizreel-backend/internal/content"
	"github.com/yungbote/quizreel-backend/internal/content/prompts"
	"github.com/yungbote/quizreel-backend/internal/data/db"
	runrepos "github.com/yungbote/quizreel-backend/internal/data/repos/runs"
	domainruns "github.com/yungbote/quizreel-backend/internal/domain/runs"
	"github.com/yungbote/quizreel-backend/internal/generator"
	"github.com/yungbote/quizreel-backend/internal/media"
	"github.com/yungbote/quizreel-backend/internal/platform/envutil"
	"github.com/yungbote/quizreel-backend/internal/platform/logger"
	"github.com/yungbote/quizreel-backend/internal/platform/openai"
	"github.com/yungbote/quizreel-backend/internal/publish"
	"github.com/yungbote/quizreel-backend/internal/render"
	"github.com/yungbote/quizreel-backend/internal/run"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	outputDir := envutil.String("OUTPUT_DIR", "output")
	itemsPerSubject := envutil.Int("ITEMS_PER_SUBJECT", 1)
	renderEnabled := envutil.Bool("RENDER_ENABLED", true)
	videoEnabled := envutil.Bool("VIDEO_ENABLED", false)
	uploadEnabled := envutil.Bool("UPLOAD_ENABLED", false)
	audioPath := envutil.String("REEL_AUDIO_PATH", "")

	// Prompts
	prompts.RegisterAll()
	if overrides := os.Getenv("TOPIC_OVERRIDES_PATH"); overrides != "" {
		if err := content.ApplyTopicOverrides(overrides); err != nil {
			log.Fatal("Topic overrides failed", "path", overrides, "error", err)
		}
	}

	// Subjects: every requested subject must resolve before the run starts.
	subjects := requestedSubjects()
	for _, s := range subjects {
		if _, err := content.Resolve(s); err != nil {
			log.Fatal("Unknown subject requested", "subject", s, "error", err)
		}
	}

	// OpenAI
	aiClient, err := openai.NewClient(log)
	if err != nil {
		log.Fatal("OpenAI client init failed", "error", err)
	}

	// Orchestrator
	orch := generator.New(log, aiClient)

	ctx := context.Background()
	r := run.Start(subjects)
	log.Info("Run started", "run_id", r.RunID, "subjects", strings.Join(subjects, ","))

	// Subjects run sequentially; each subject's failures are recorded on the
	// run and never abort the others.
	unavailable := 0
	for _, subject := range subjects {
		items, err := orch.Generate(ctx, r, subject, itemsPerSubject)
		if err != nil {
			if errors.Is(err, generator.ErrClientUnavailable) {
				unavailable++
			}
			log.Error("Subject generation degraded", "subject", subject, "error", err)
			continue
		}
		log.Info("Subject complete",
			"subject", subject,
			"accepted", len(items),
			"failed", itemsPerSubject-len(items),
		)
	}

	if renderEnabled {
		renderAndPublish(ctx, log, r, outputDir, audioPath, videoEnabled, uploadEnabled)
	}

	manifest, err := r.Finalize()
	if err != nil {
		var incomplete *run.IncompleteRunError
		if errors.As(err, &incomplete) {
			log.Error("Run accepted no items", "run_id", r.RunID)
			os.Exit(1)
		}
		log.Fatal("Finalize failed", "error", err)
	}

	manifestPath, err := manifest.Write(outputDir)
	if err != nil {
		log.Fatal("Manifest write failed", "error", err)
	}
	log.Info("Manifest written", "path", manifestPath)

	persistRun(ctx, log, manifest)

	// The manifest is always persisted before a client outage surfaces as a
	// run-level failure.
	if unavailable > 0 {
		log.Error("Generation client was unreachable",
			"run_id", manifest.RunID,
			"subjects_affected", unavailable,
		)
		os.Exit(1)
	}

	log.Info("Run complete",
		"run_id", manifest.RunID,
		"items", len(manifest.Items),
		"failures", len(manifest.Failures),
	)
}

func requestedSubjects() []string {
	raw := os.Getenv("SUBJECTS")
	if strings.TrimSpace(raw) == "" {
		return content.Subjects()
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// renderAndPublish walks the accepted items and attaches artifacts to the
// run. Rendering problems degrade that item's artifacts, never the run.
func renderAndPublish(ctx context.Context, log *logger.Logger, r *run.Run, outputDir, audioPath string, videoEnabled, uploadEnabled bool) {
	cards, err := render.New(log)
	if err != nil {
		log.Error("Renderer init failed, skipping artifacts", "error", err)
		return
	}

	var mediaTools media.Tools
	if videoEnabled {
		mediaTools = media.New(log)
		if err := mediaTools.AssertReady(ctx); err != nil {
			log.Error("Media tools unavailable, skipping video", "error", err)
			videoEnabled = false
		}
	}

	var uploader publish.Uploader
	if uploadEnabled {
		uploader, err = publish.NewInstagram(log)
		if err != nil {
			log.Error("Uploader init failed, skipping upload", "error", err)
			uploadEnabled = false
		}
	}

	runDir := filepath.Join(outputDir, r.RunID)

	// One closing card per run, appended to every reel.
	var ctaPath string
	if videoEnabled {
		ctaPath, err = cards.RenderCTA(ctx, runDir)
		if err != nil {
			log.Error("CTA render failed, reels continue without it", "error", err)
			ctaPath = ""
		}
	}

	for _, item := range r.Items() {
		profile, err := render.ResolveProfile(item.ContentType)
		if err != nil {
			log.Error("No layout profile", "item_id", item.ID, "content_type", string(item.ContentType), "error", err)
			continue
		}
		itemDir := filepath.Join(runDir, item.Subject)

		imagePaths, err := cards.RenderItem(ctx, item, profile, itemDir)
		if err != nil {
			log.Error("Card render failed", "item_id", item.ID, "error", err)
			continue
		}
		if err := r.RecordArtifact(item.ID, run.KindImage, imagePaths); err != nil {
			log.Error("Artifact record failed", "item_id", item.ID, "error", err)
		}

		carouselPaths, err := cards.RenderCarousel(ctx, item, profile, itemDir)
		if err != nil {
			log.Error("Carousel render failed", "item_id", item.ID, "error", err)
		} else if err := r.RecordArtifact(item.ID, run.KindCarousel, carouselPaths); err != nil {
			log.Error("Artifact record failed", "item_id", item.ID, "error", err)
		}

		if !videoEnabled {
			continue
		}
		reelImages := imagePaths
		if ctaPath != "" {
			reelImages = append(append([]string{}, imagePaths...), ctaPath)
		}
		reelPath := filepath.Join(itemDir, fmt.Sprintf("%s_reel.mp4", item.ID))
		videoPath, err := mediaTools.StitchReel(ctx, reelImages, audioPath, reelPath, media.ReelOptions{})
		if err != nil {
			log.Error("Reel stitch failed", "item_id", item.ID, "error", err)
			continue
		}
		if err := r.RecordArtifact(item.ID, run.KindVideo, videoPath); err != nil {
			log.Error("Artifact record failed", "item_id", item.ID, "error", err)
		}

		if !uploadEnabled {
			continue
		}
		caption, err := publish.CaptionFor(item.Subject)
		if err != nil {
			log.Error("Caption build failed", "subject", item.Subject, "error", err)
			continue
		}
		receipt, err := uploader.Upload(ctx, videoPath, caption)
		if err != nil {
			log.Error("Upload failed", "item_id", item.ID, "error", err)
			continue
		}
		if err := r.RecordArtifact(item.ID, run.KindUpload, receipt); err != nil {
			log.Error("Artifact record failed", "item_id", item.ID, "error", err)
		}
	}
}

// persistRun stores the manifest row for run history. Best effort: a missing
// database never fails a run that already wrote its manifest.
func persistRun(ctx context.Context, log *logger.Logger, manifest run.Manifest) {
	sqliteService, err := db.NewSQLiteService(log)
	if err != nil {
		log.Warn("SQLite init failed, skipping run history", "error", err)
		return
	}
	if err := db.AutoMigrateAll(sqliteService.DB()); err != nil {
		log.Warn("SQLite auto migration failed, skipping run history", "error", err)
		return
	}

	raw, err := json.Marshal(manifest)
	if err != nil {
		log.Warn("Manifest marshal for history failed", "error", err)
		return
	}

	repo := runrepos.NewRunRecordRepo(sqliteService.DB(), log)
	rec := &domainruns.RunRecord{
		RunID:    manifest.RunID,
		Subjects: strings.Join(manifest.Subjects, ","),
		Accepted: len(manifest.Items),
		Failed:   len(manifest.Failures),
		Manifest: datatypes.JSON(raw),
	}
	if _, err := repo.Create(ctx, rec); err != nil {
		log.Warn("Run history insert failed", "run_id", manifest.RunID, "error", err)
		return
	}
	log.Info("Run history stored", "run_id", manifest.RunID)
}
