package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeyakmania/booking-api/internal/domain/roster"
	"github.com/yeyakmania/booking-api/internal/models"
)

type RosterGormRepository struct {
	db *gorm.DB
}

var _ roster.Repository = (*RosterGormRepository)(nil)

func NewRosterGormRepository(db *gorm.DB) *RosterGormRepository {
	return &RosterGormRepository{db: db}
}

// EnsureLink relies on the COALESCE unique index created by db.NewDB.
func (r *RosterGormRepository) EnsureLink(ctx context.Context, link *models.StudentInstructor) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(link).Error
}

func (r *RosterGormRepository) ListStudents(ctx context.Context, instructorID uuid.UUID) ([]models.StudentInstructor, error) {
	var out []models.StudentInstructor
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("instructor_id = ?", instructorID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *RosterGormRepository) ListInstructors(ctx context.Context, studentID uuid.UUID) ([]models.StudentInstructor, error) {
	var out []models.StudentInstructor
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
