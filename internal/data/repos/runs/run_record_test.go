package runs

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/yungbote/quizreel-backend/internal/data/repos/testutil"
	domainruns "github.com/yungbote/quizreel-backend/internal/domain/runs"
)

func TestRunRecordRepo_CreateAndGetByRunID(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewRunRecordRepo(testutil.Tx(t, gdb), testutil.Logger(t))
	ctx := context.Background()

	rec, err := repo.Create(ctx, &domainruns.RunRecord{
		RunID:    "20260829_120000",
		Subjects: "python,sql",
		Accepted: 2,
		Failed:   1,
		Manifest: datatypes.JSON([]byte(`{"run_id":"20260829_120000"}`)),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID.String() == "" {
		t.Fatalf("expected id assigned")
	}

	got, err := repo.GetByRunID(ctx, "20260829_120000")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatalf("expected record found")
	}
	if got.Subjects != "python,sql" || got.Accepted != 2 || got.Failed != 1 {
		t.Fatalf("unexpected record: %#v", got)
	}
}

func TestRunRecordRepo_GetByRunID_Missing(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewRunRecordRepo(testutil.Tx(t, gdb), testutil.Logger(t))

	got, err := repo.GetByRunID(context.Background(), "absent")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing run, got %#v", got)
	}
}

func TestRunRecordRepo_List_NewestFirst(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewRunRecordRepo(testutil.Tx(t, gdb), testutil.Logger(t))
	ctx := context.Background()

	for _, id := range []string{"20260829_080000", "20260829_090000", "20260829_100000"} {
		if _, err := repo.Create(ctx, &domainruns.RunRecord{RunID: id, Subjects: "python"}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	out, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
}
