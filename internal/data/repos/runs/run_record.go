package runs

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/quizreel-backend/internal/domain/runs"
	"github.com/yungbote/quizreel-backend/internal/platform/logger"
)

type RunRecordRepo interface {
	Create(ctx context.Context, rec *runs.RunRecord) (*runs.RunRecord, error)
	GetByRunID(ctx context.Context, runID string) (*runs.RunRecord, error)
	List(ctx context.Context, limit int) ([]*runs.RunRecord, error)
}

type runRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRunRecordRepo(db *gorm.DB, baseLog *logger.Logger) RunRecordRepo {
	return &runRecordRepo{
		db:  db,
		log: baseLog.With("repo", "RunRecordRepo"),
	}
}

func (r *runRecordRepo) Create(ctx context.Context, rec *runs.RunRecord) (*runs.RunRecord, error) {
	if rec == nil {
		return nil, errors.New("nil record")
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *runRecordRepo) GetByRunID(ctx context.Context, runID string) (*runs.RunRecord, error) {
	if runID == "" {
		return nil, nil
	}
	var rec runs.RunRecord
	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Limit(1).
		Find(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == uuid.Nil {
		return nil, nil
	}
	return &rec, nil
}

func (r *runRecordRepo) List(ctx context.Context, limit int) ([]*runs.RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []*runs.RunRecord
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
