package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yeyakmania/booking-api/internal/models"
)

// Logger persists audit events into audit_logs.
type Logger struct {
	db *gorm.DB
}

var _ Writer = (*Logger)(nil)

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ctx context.Context, ev Event) error {
	var meta datatypes.JSON
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = b
		}
	}

	row := models.AuditLog{
		InstructorID: ev.InstructorID,
		ActorID:      ev.ActorID,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     meta,
	}
	return l.db.WithContext(ctx).Create(&row).Error
}

// Filter narrows an instructor's audit trail. Zero fields are ignored.
type Filter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time

	Page  int
	Limit int
}

// Normalize clamps paging to page >= 1 and 1..200 rows.
func (f *Filter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
}

// List returns one page of logs, newest first, and the total match count.
func (l *Logger) List(ctx context.Context, instructorID uuid.UUID, f Filter) ([]models.AuditLog, int64, error) {
	f.Normalize()

	q := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("instructor_id = ?", instructorID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error
	return logs, total, err
}
