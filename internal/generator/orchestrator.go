package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yungbote/quizreel-backend/internal/content"
	"github.com/yungbote/quizreel-backend/internal/content/prompts"
	"github.com/yungbote/quizreel-backend/internal/platform/envutil"
	"github.com/yungbote/quizreel-backend/internal/platform/logger"
	"github.com/yungbote/quizreel-backend/internal/run"
)

// AI is the generation client boundary: one structured call per attempt.
type AI interface {
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error)
}

// ErrClientUnavailable is returned when every attempt of every requested item
// failed at the client boundary, without a single validation ever running.
// Callers must still finalize the run before surfacing it.
var ErrClientUnavailable = errors.New("generation client unavailable")

// Orchestrator drives the sequential generate/validate/retry loop for a run.
// One outstanding client call at a time: retries depend on the preceding
// rejection and topic exclusion must update before the next pick.
type Orchestrator struct {
	log *logger.Logger
	ai  AI

	maxAttempts    int
	attemptTimeout time.Duration
}

type Option func(*Orchestrator)

// WithMaxAttempts overrides the per-item retry budget.
func WithMaxAttempts(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// WithAttemptTimeout overrides the per-attempt client deadline.
func WithAttemptTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.attemptTimeout = d
		}
	}
}

func New(log *logger.Logger, ai AI, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		log:            log.With("service", "GenerationOrchestrator"),
		ai:             ai,
		maxAttempts:    envutil.Int("GENERATION_MAX_ATTEMPTS", 3),
		attemptTimeout: envutil.Seconds("GENERATION_ATTEMPT_TIMEOUT_SECONDS", 90*time.Second),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Generate produces up to count accepted items for one subject, appending
// them to the run in request order. An exhausted item never aborts the run:
// it is recorded in the run's failure log and the loop moves on. The returned
// slice holds only accepted items.
func (o *Orchestrator) Generate(ctx context.Context, r *run.Run, subject string, count int) ([]content.Item, error) {
	spec, err := content.Resolve(subject)
	if err != nil {
		return nil, err
	}
	promptName, ok := prompts.ForContentType(spec.ContentType)
	if !ok {
		return nil, fmt.Errorf("no prompt registered for content type %s", spec.ContentType)
	}

	log := o.log.With("subject", subject, "content_type", string(spec.ContentType), "run_id", r.RunID)

	accepted := make([]content.Item, 0, count)
	totalAttempts := 0
	clientFailures := 0

	for i := 0; i < count; i++ {
		topic := content.PickTopic(spec.Topics, r.UsedTopics(subject))

		item, attempts, lastReason, err := o.generateOne(ctx, log, spec, promptName, topic, &clientFailures)
		totalAttempts += attempts
		if err != nil {
			return accepted, err
		}

		if item != nil {
			r.RecordItem(*item)
			accepted = append(accepted, *item)
			continue
		}

		log.Warn("item permanently failed",
			"topic", topic,
			"attempts", attempts,
			"last_reason", lastReason,
		)
		r.RecordFailure(run.Failure{
			Subject:    subject,
			Topic:      topic,
			Attempts:   attempts,
			LastReason: lastReason,
		})
	}

	if len(accepted) == 0 && totalAttempts > 0 && clientFailures == totalAttempts {
		return accepted, fmt.Errorf("%w: %d/%d attempts failed before validation", ErrClientUnavailable, clientFailures, totalAttempts)
	}
	return accepted, nil
}

// generateOne runs the retry state machine for a single requested item. The
// topic stays fixed across retries. A nil item with nil error means the retry
// budget was exhausted; lastReason carries the final rejection.
func (o *Orchestrator) generateOne(
	ctx context.Context,
	log *logger.Logger,
	spec content.Spec,
	promptName prompts.PromptName,
	topic string,
	clientFailures *int,
) (*content.Item, int, string, error) {
	state := statePending
	lastReason := ""
	attempt := 0

	for !state.terminal() {
		if err := ctx.Err(); err != nil {
			return nil, attempt, lastReason, err
		}
		attempt++

		state = stateGenerating
		prompt, err := prompts.Build(promptName, prompts.Input{
			Subject: spec.Subject,
			Topic:   topic,
		})
		if err != nil {
			// A prompt that cannot build will not build on retry either.
			return nil, attempt, lastReason, fmt.Errorf("build prompt: %w", err)
		}

		raw, genErr := o.callClient(ctx, prompt)

		var res content.Result
		if genErr != nil {
			// Transport, timeout, or rate limit: a rejected outcome that
			// consumes a retry, never a crash.
			*clientFailures++
			res = content.Reject(content.ReasonGenerationFailed, nil)
			log.Warn("generation attempt failed",
				"topic", topic,
				"attempt", attempt,
				"error", genErr.Error(),
			)
		} else {
			state = stateValidating
			res = content.Validate(spec.ContentType, raw)
		}

		if res.Accepted {
			state = stateAccepted
			item := res.Item
			item.Subject = spec.Subject
			item.Topic = topic
			item.Attempts = attempt
			log.Info("item accepted", "topic", topic, "attempts", attempt)
			return &item, attempt, "", nil
		}

		lastReason = res.Reason
		if attempt >= o.maxAttempts {
			state = statePermanentlyFailed
		} else {
			state = stateRetryPending
			log.Debug("attempt rejected, retrying",
				"topic", topic,
				"attempt", attempt,
				"reason", res.Reason,
			)
		}
	}

	return nil, attempt, lastReason, nil
}

// callClient issues one generation attempt under its own deadline so a hung
// call consumes a retry instead of stalling the run.
func (o *Orchestrator) callClient(ctx context.Context, p prompts.Prompt) (map[string]any, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, o.attemptTimeout)
	defer cancel()
	return o.ai.GenerateJSON(attemptCtx, p.System, p.User, p.SchemaName, p.Schema)
}
