package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/quizreel-backend/internal/content"
	"github.com/yungbote/quizreel-backend/internal/content/prompts"
	"github.com/yungbote/quizreel-backend/internal/platform/logger"
	"github.com/yungbote/quizreel-backend/internal/run"
)

type fakeAI struct {
	calls        int
	users        []string
	hadDeadlines []bool

	// respond is invoked with the 1-based call number.
	respond func(call int) (map[string]any, error)
}

func (f *fakeAI) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
	f.calls++
	f.users = append(f.users, user)
	_, ok := ctx.Deadline()
	f.hadDeadlines = append(f.hadDeadlines, ok)
	return f.respond(f.calls)
}

func testOrchestrator(t *testing.T, ai AI, opts ...Option) *Orchestrator {
	t.Helper()
	prompts.RegisterAll()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return New(log, ai, opts...)
}

func validQueryOutput() map[string]any {
	return map[string]any{
		"title":       "Counting Rows",
		"code":        "WITH t(id) AS (VALUES (1), (2))\nSELECT COUNT(*) FROM t",
		"question":    "What does this return?",
		"options":     []any{"0", "1", "2", "NULL"},
		"correct":     "C",
		"explanation": "The CTE has two rows, so COUNT(*) is 2.",
	}
}

func validPatternMatch() map[string]any {
	return map[string]any{
		"title":       "Greedy Star",
		"code":        "a.*b on \"aXbYb\"",
		"question":    "What does the match cover?",
		"options":     []any{"aXb", "aXbYb", "ab", "no match"},
		"correct":     "B",
		"explanation": "Star is greedy, it runs to the last b.",
	}
}

func threeOptionCodeOutput() map[string]any {
	return map[string]any{
		"title":       "Scope Trap",
		"code":        "x = 1\ndef f():\n    print(x)",
		"question":    "What does f() print?",
		"options":     []any{"1", "error", "None"},
		"correct":     "A",
		"explanation": "Reading a global without assignment is fine.",
	}
}

func TestGenerate_FirstAttemptSuccess(t *testing.T) {
	fake := &fakeAI{respond: func(int) (map[string]any, error) {
		return validQueryOutput(), nil
	}}
	orch := testOrchestrator(t, fake)

	r := run.Start([]string{"sql"})
	items, err := orch.Generate(context.Background(), r, "sql", 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if fake.calls != 1 {
		t.Fatalf("expected 1 client call, got %d", fake.calls)
	}
	it := items[0]
	if it.Subject != "sql" || it.Attempts != 1 {
		t.Fatalf("unexpected item metadata: subject=%q attempts=%d", it.Subject, it.Attempts)
	}
	if it.Topic == "" {
		t.Fatalf("expected topic assigned")
	}
	if len(r.Failures()) != 0 {
		t.Fatalf("expected no failures, got %#v", r.Failures())
	}
}

func TestGenerate_RetriesMalformedThenAccepts(t *testing.T) {
	fake := &fakeAI{respond: func(call int) (map[string]any, error) {
		if call < 3 {
			out := validPatternMatch()
			delete(out, "correct")
			return out, nil
		}
		return validPatternMatch(), nil
	}}
	orch := testOrchestrator(t, fake)

	r := run.Start([]string{"regex"})
	items, err := orch.Generate(context.Background(), r, "regex", 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Attempts != 3 {
		t.Fatalf("expected acceptance on attempt 3, got %d", items[0].Attempts)
	}
	if fake.calls != 3 {
		t.Fatalf("expected 3 client calls, got %d", fake.calls)
	}
	if len(r.Failures()) != 0 {
		t.Fatalf("an eventually accepted item must not appear in failures: %#v", r.Failures())
	}

	// All retries target the same topic.
	for _, u := range fake.users[1:] {
		if u != fake.users[0] {
			t.Fatalf("topic changed across retries:\n%q\n%q", fake.users[0], u)
		}
	}
}

func TestGenerate_ExhaustedBudgetRecordsFailure(t *testing.T) {
	fake := &fakeAI{respond: func(int) (map[string]any, error) {
		return threeOptionCodeOutput(), nil
	}}
	orch := testOrchestrator(t, fake)

	r := run.Start([]string{"python"})
	items, err := orch.Generate(context.Background(), r, "python", 1)
	if err != nil {
		t.Fatalf("a permanently failed item must not abort the run: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no accepted items, got %d", len(items))
	}
	if fake.calls != 3 {
		t.Fatalf("retry budget is exactly 3 attempts, got %d calls", fake.calls)
	}

	failures := r.Failures()
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	f := failures[0]
	if f.Subject != "python" || f.Attempts != 3 {
		t.Fatalf("unexpected failure record: %#v", f)
	}
	if f.LastReason != content.ReasonOptionCountMismatch {
		t.Fatalf("unexpected last_reason: %q", f.LastReason)
	}
}

func TestGenerate_TopicExclusionWithinRun(t *testing.T) {
	fake := &fakeAI{respond: func(int) (map[string]any, error) {
		return validPatternMatch(), nil
	}}
	orch := testOrchestrator(t, fake)

	r := run.Start([]string{"regex"})
	items, err := orch.Generate(context.Background(), r, "regex", 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	seen := map[string]bool{}
	for _, it := range items {
		if seen[it.Topic] {
			t.Fatalf("topic %q repeated within run", it.Topic)
		}
		seen[it.Topic] = true
	}
}

func TestGenerate_ClientUnavailable(t *testing.T) {
	fake := &fakeAI{respond: func(int) (map[string]any, error) {
		return nil, errors.New("dial tcp: connection refused")
	}}
	orch := testOrchestrator(t, fake)

	r := run.Start([]string{"golang"})
	items, err := orch.Generate(context.Background(), r, "golang", 2)
	if !errors.Is(err, ErrClientUnavailable) {
		t.Fatalf("expected ErrClientUnavailable, got %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}

	// The run still carries the failure log so the caller can finalize.
	failures := r.Failures()
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failures))
	}
	for _, f := range failures {
		if f.LastReason != content.ReasonGenerationFailed {
			t.Fatalf("unexpected last_reason: %q", f.LastReason)
		}
		if f.Attempts != 3 {
			t.Fatalf("unexpected attempts: %d", f.Attempts)
		}
	}
}

func TestGenerate_ClientErrorsThenValidationIsNotUnavailable(t *testing.T) {
	fake := &fakeAI{respond: func(call int) (map[string]any, error) {
		if call == 1 {
			return nil, errors.New("timeout")
		}
		return threeOptionCodeOutput(), nil
	}}
	orch := testOrchestrator(t, fake)

	r := run.Start([]string{"python"})
	_, err := orch.Generate(context.Background(), r, "python", 1)
	if err != nil {
		t.Fatalf("mixed failures must not report unavailability: %v", err)
	}
}

func TestGenerate_UnknownSubject(t *testing.T) {
	fake := &fakeAI{respond: func(int) (map[string]any, error) {
		t.Fatalf("client must not be called for unknown subject")
		return nil, nil
	}}
	orch := testOrchestrator(t, fake)

	r := run.Start([]string{"cobol"})
	_, err := orch.Generate(context.Background(), r, "cobol", 1)
	var unknown *content.UnknownSubjectError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSubjectError, got %v", err)
	}
}

func TestGenerate_EveryAttemptHasDeadline(t *testing.T) {
	fake := &fakeAI{respond: func(call int) (map[string]any, error) {
		if call < 2 {
			return nil, errors.New("flaky")
		}
		return validQueryOutput(), nil
	}}
	orch := testOrchestrator(t, fake)

	r := run.Start([]string{"sql"})
	if _, err := orch.Generate(context.Background(), r, "sql", 1); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for i, had := range fake.hadDeadlines {
		if !had {
			t.Fatalf("attempt %d ran without a deadline", i+1)
		}
	}
}

func TestGenerate_CanceledContextStopsLoop(t *testing.T) {
	fake := &fakeAI{respond: func(int) (map[string]any, error) {
		return validQueryOutput(), nil
	}}
	orch := testOrchestrator(t, fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := run.Start([]string{"sql"})
	_, err := orch.Generate(ctx, r, "sql", 1)
	if err == nil || !strings.Contains(err.Error(), "context canceled") {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	if fake.calls != 0 {
		t.Fatalf("expected no client calls after cancellation, got %d", fake.calls)
	}
}

func TestGenerate_MaxAttemptsOverride(t *testing.T) {
	fake := &fakeAI{respond: func(int) (map[string]any, error) {
		return threeOptionCodeOutput(), nil
	}}
	orch := testOrchestrator(t, fake, WithMaxAttempts(5))

	r := run.Start([]string{"python"})
	if _, err := orch.Generate(context.Background(), r, "python", 1); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if fake.calls != 5 {
		t.Fatalf("expected 5 calls with overridden budget, got %d", fake.calls)
	}
}
