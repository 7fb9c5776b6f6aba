package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeyakmania/booking-api/internal/domain/coaching"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
)

const coachingSlugIndex = "idx_coaching_slug"

type CoachingGormRepository struct {
	db *gorm.DB
}

var _ coaching.Repository = (*CoachingGormRepository)(nil)

func NewCoachingGormRepository(db *gorm.DB) *CoachingGormRepository {
	return &CoachingGormRepository{db: db}
}

func (r *CoachingGormRepository) CreateCoaching(ctx context.Context, c *models.Coaching) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err, coachingSlugIndex) {
			return httperr.Conflict("slug_taken")
		}
		return translate(err, "coaching_not_found")
	}
	return nil
}

func (r *CoachingGormRepository) GetCoaching(ctx context.Context, id uuid.UUID) (*models.Coaching, error) {
	var c models.Coaching
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err, "coaching_not_found")
	}
	return &c, nil
}

func (r *CoachingGormRepository) GetCoachingBySlug(
	ctx context.Context,
	instructorID uuid.UUID,
	slug string,
) (*models.Coaching, error) {

	var c models.Coaching
	if err := r.db.WithContext(ctx).
		Where("instructor_id = ? AND slug = ?", instructorID, slug).
		First(&c).Error; err != nil {
		return nil, translate(err, "coaching_not_found")
	}
	return &c, nil
}

func (r *CoachingGormRepository) SlugExists(
	ctx context.Context,
	instructorID uuid.UUID,
	slug string,
	exclude uuid.UUID,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Coaching{}).
		Where("instructor_id = ? AND slug = ? AND id <> ?", instructorID, slug, exclude).
		Count(&count).Error
	return count > 0, err
}

func (r *CoachingGormRepository) UpdateCoaching(ctx context.Context, c *models.Coaching) error {
	res := r.db.WithContext(ctx).
		Model(&models.Coaching{}).
		Where("id = ?", c.ID).
		Select(
			"title", "slug", "description", "duration", "price", "type",
			"working_hours", "google_calendar_id", "is_active",
		).
		Updates(c)
	if res.Error != nil && isUniqueViolation(res.Error, coachingSlugIndex) {
		return httperr.Conflict("slug_taken")
	}
	return mustAffect(res, "coaching_not_found")
}

func (r *CoachingGormRepository) DeleteCoaching(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Coaching{}, "id = ?", id)
	return mustAffect(res, "coaching_not_found")
}

func (r *CoachingGormRepository) ListCoachings(
	ctx context.Context,
	instructorID uuid.UUID,
	activeOnly bool,
) ([]models.Coaching, error) {

	q := r.db.WithContext(ctx).Where("instructor_id = ?", instructorID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var out []models.Coaching
	err := q.Order("title ASC").Find(&out).Error
	return out, err
}
