package runs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RunRecord is the durable row for one pipeline run. The manifest JSON is the
// authoritative artifact; this row exists for querying run history.
type RunRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RunID     string         `gorm:"column:run_id;not null;uniqueIndex" json:"run_id"`
	Subjects  string         `gorm:"column:subjects;not null" json:"subjects"`
	Accepted  int            `gorm:"column:accepted;not null;default:0" json:"accepted"`
	Failed    int            `gorm:"column:failed;not null;default:0" json:"failed"`
	Manifest  datatypes.JSON `gorm:"column:manifest" json:"manifest"`
	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (RunRecord) TableName() string { return "run_record" }
