package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeyakmania/booking-api/internal/domain/invitation"
	"github.com/yeyakmania/booking-api/internal/models"
)

type InvitationGormRepository struct {
	db *gorm.DB
}

var _ invitation.Repository = (*InvitationGormRepository)(nil)

func NewInvitationGormRepository(db *gorm.DB) *InvitationGormRepository {
	return &InvitationGormRepository{db: db}
}

func (r *InvitationGormRepository) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	return translate(r.db.WithContext(ctx).Create(inv).Error, "invitation_not_found")
}

func (r *InvitationGormRepository) GetInvitationByCode(ctx context.Context, code string) (*models.Invitation, error) {
	var inv models.Invitation
	if err := r.db.WithContext(ctx).
		Where("invitation_code = ?", code).
		First(&inv).Error; err != nil {
		return nil, translate(err, "invitation_not_found")
	}
	return &inv, nil
}

func (r *InvitationGormRepository) FindPending(
	ctx context.Context,
	coachingID uuid.UUID,
	email string,
	now time.Time,
) (*models.Invitation, error) {

	var inv models.Invitation
	err := r.db.WithContext(ctx).
		Where("coaching_id = ? AND email = ? AND status = ?", coachingID, email, models.InvitationPending).
		Where("expires_at > ?", now).
		Order("created_at DESC").
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvitationGormRepository) MarkAccepted(
	ctx context.Context,
	id uuid.UUID,
	studentID uuid.UUID,
	at time.Time,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("id = ? AND status = ?", id, models.InvitationPending).
		Updates(map[string]any{
			"status":      models.InvitationAccepted,
			"accepted_at": at,
			"accepted_by": studentID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *InvitationGormRepository) ListInvitations(ctx context.Context, instructorID uuid.UUID) ([]models.Invitation, error) {
	var out []models.Invitation
	err := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
