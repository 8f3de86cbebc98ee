package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yungbote/quizreel-backend/internal/pkg/httpx"
	"github.com/yungbote/quizreel-backend/internal/platform/envutil"
	"github.com/yungbote/quizreel-backend/internal/platform/logger"
)

// Upload failure kinds the orchestrating driver distinguishes.
var (
	ErrAuth           = errors.New("upload auth failed")
	ErrRateLimited    = errors.New("upload rate limited")
	ErrSessionInvalid = errors.New("upload session invalidated")
)

// Receipt is the upload record stored in the run manifest.
type Receipt struct {
	MediaID     string    `json:"media_id"`
	Permalink   string    `json:"permalink,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Uploader is the social platform boundary: artifacts plus a caption in, a
// receipt out.
type Uploader interface {
	Upload(ctx context.Context, videoPath string, caption string) (Receipt, error)
}

type instagram struct {
	log *logger.Logger

	graphURL      string
	sessionPath   string
	publicBaseURL string
	outRoot       string

	httpClient *http.Client
}

// NewInstagram builds the Graph API uploader. Artifacts are local files; the
// platform ingests by URL, so PUBLIC_BASE_URL must serve the output root.
func NewInstagram(log *logger.Logger) (Uploader, error) {
	publicBaseURL := strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL"))
	if publicBaseURL == "" {
		return nil, fmt.Errorf("missing PUBLIC_BASE_URL")
	}

	return &instagram{
		log:           log.With("service", "InstagramUploader"),
		graphURL:      envutil.String("IG_GRAPH_URL", "https://graph.facebook.com/v21.0"),
		sessionPath:   envutil.String("IG_SESSION_PATH", filepath.Join("output", "ig_session.json")),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		outRoot:       envutil.String("OUTPUT_DIR", "output"),
		httpClient:    &http.Client{Timeout: envutil.Seconds("IG_TIMEOUT_SECONDS", 120*time.Second)},
	}, nil
}

// ensureSession loads the persisted session, seeding it from env on first run
// and rejecting stale tokens before any upload starts.
func (ig *instagram) ensureSession() (Session, error) {
	now := time.Now().UTC()

	sess, err := LoadSession(ig.sessionPath)
	if err == nil && sess.Valid(now) {
		return sess, nil
	}

	token := strings.TrimSpace(os.Getenv("IG_ACCESS_TOKEN"))
	userID := strings.TrimSpace(os.Getenv("IG_USER_ID"))
	if token == "" || userID == "" {
		if err != nil {
			return Session{}, fmt.Errorf("%w: no session file and no IG_ACCESS_TOKEN/IG_USER_ID", ErrSessionInvalid)
		}
		return Session{}, fmt.Errorf("%w: session expired at %s", ErrSessionInvalid, sess.ExpiresAt)
	}

	sess = Session{
		UserID:      userID,
		AccessToken: token,
		ExpiresAt:   now.Add(envutil.Seconds("IG_TOKEN_TTL_SECONDS", 45*24*time.Hour)),
	}
	if err := SaveSession(ig.sessionPath, sess); err != nil {
		return Session{}, err
	}
	ig.log.Info("session seeded from env", "path", ig.sessionPath)
	return sess, nil
}

func (ig *instagram) Upload(ctx context.Context, videoPath string, caption string) (Receipt, error) {
	sess, err := ig.ensureSession()
	if err != nil {
		return Receipt{}, err
	}

	videoURL, err := ig.publicURL(videoPath)
	if err != nil {
		return Receipt{}, err
	}

	containerID, err := ig.createContainer(ctx, sess, videoURL, caption)
	if err != nil {
		return Receipt{}, err
	}

	if err := ig.waitContainerReady(ctx, sess, containerID); err != nil {
		return Receipt{}, err
	}

	mediaID, err := ig.publishContainer(ctx, sess, containerID)
	if err != nil {
		return Receipt{}, err
	}

	ig.log.Info("reel published", "media_id", mediaID)
	return Receipt{MediaID: mediaID, PublishedAt: time.Now().UTC()}, nil
}

// publicURL maps a local artifact path onto the served output root.
func (ig *instagram) publicURL(localPath string) (string, error) {
	rel, err := filepath.Rel(ig.outRoot, localPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("artifact %s is outside output root %s", localPath, ig.outRoot)
	}
	return ig.publicBaseURL + "/" + filepath.ToSlash(rel), nil
}

func (ig *instagram) createContainer(ctx context.Context, sess Session, videoURL, caption string) (string, error) {
	form := url.Values{}
	form.Set("media_type", "REELS")
	form.Set("video_url", videoURL)
	form.Set("caption", caption)
	form.Set("access_token", sess.AccessToken)

	var out struct {
		ID string `json:"id"`
	}
	if err := ig.postForm(ctx, fmt.Sprintf("%s/%s/media", ig.graphURL, sess.UserID), form, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("container create returned no id")
	}
	return out.ID, nil
}

// waitContainerReady polls until the platform finishes ingesting the video.
func (ig *instagram) waitContainerReady(ctx context.Context, sess Session, containerID string) error {
	deadline := time.Now().Add(envutil.Seconds("IG_INGEST_TIMEOUT_SECONDS", 5*time.Minute))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("container %s not ready before deadline", containerID)
		}

		var out struct {
			StatusCode string `json:"status_code"`
		}
		u := fmt.Sprintf("%s/%s?fields=status_code&access_token=%s", ig.graphURL, containerID, url.QueryEscape(sess.AccessToken))
		if err := ig.getJSON(ctx, u, &out); err != nil {
			return err
		}
		switch out.StatusCode {
		case "FINISHED":
			return nil
		case "ERROR", "EXPIRED":
			return fmt.Errorf("container %s ingest failed: %s", containerID, out.StatusCode)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
}

func (ig *instagram) publishContainer(ctx context.Context, sess Session, containerID string) (string, error) {
	form := url.Values{}
	form.Set("creation_id", containerID)
	form.Set("access_token", sess.AccessToken)

	var out struct {
		ID string `json:"id"`
	}
	if err := ig.postForm(ctx, fmt.Sprintf("%s/%s/media_publish", ig.graphURL, sess.UserID), form, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("publish returned no media id")
	}
	return out.ID, nil
}

func (ig *instagram) postForm(ctx context.Context, rawURL string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ig.doJSON(req, out)
}

func (ig *instagram) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	return ig.doJSON(req, out)
}

func (ig *instagram) doJSON(req *http.Request, out any) error {
	resp, err := ig.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: http %d", ErrAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: retry after %s", ErrRateLimited, httpx.RetryAfterDuration(resp, 30*time.Second, 5*time.Minute))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("graph api http %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode graph response: %w", err)
	}
	return nil
}
