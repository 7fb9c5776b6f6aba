package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeyakmania/booking-api/internal/domain/account"
	"github.com/yeyakmania/booking-api/internal/domain/role"
	"github.com/yeyakmania/booking-api/internal/models"
)

// UserGormRepository covers users, their roles, instructor settings and the
// Google connection, all keyed by user id.
type UserGormRepository struct {
	db *gorm.DB
}

var (
	_ account.UserRepository     = (*UserGormRepository)(nil)
	_ account.SettingsRepository = (*UserGormRepository)(nil)
	_ role.Repository            = (*UserGormRepository)(nil)
)

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *UserGormRepository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, "user_not_found")
	}
	return &u, nil
}

func (r *UserGormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", account.NormalizeEmail(email)).
		First(&u).Error; err != nil {
		return nil, translate(err, "user_not_found")
	}
	return &u, nil
}

func (r *UserGormRepository) UpsertUserByEmail(ctx context.Context, in *models.User) (*models.User, error) {
	row := *in
	row.Email = account.NormalizeEmail(row.Email)

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"google_sub", "updated_at"}),
		}).
		Create(&row).Error; err != nil {
		return nil, translate(err, "user_not_found")
	}

	return r.GetUserByEmail(ctx, row.Email)
}

func (r *UserGormRepository) UpdateUser(ctx context.Context, u *models.User) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"name":              u.Name,
			"studio_name":       u.StudioName,
			"phone":             u.Phone,
			"bio":               u.Bio,
			"profile_image_url": u.ProfileImageURL,
		})
	return mustAffect(res, "user_not_found")
}

// --------------------------------------------------
// Roles
// --------------------------------------------------

func (r *UserGormRepository) ListRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var roles []string
	err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ?", userID).
		Order("role ASC").
		Pluck("role", &roles).Error
	return roles, err
}

func (r *UserGormRepository) AddRole(ctx context.Context, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserRole{UserID: userID, Role: role}).Error
}

func (r *UserGormRepository) ClearRoles(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.UserRole{}).Error
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

func (r *UserGormRepository) GetSettings(ctx context.Context, instructorID uuid.UUID) (*models.InstructorSettings, error) {
	var s models.InstructorSettings
	if err := r.db.WithContext(ctx).First(&s, "instructor_id = ?", instructorID).Error; err != nil {
		return nil, translate(err, "settings_not_found")
	}
	return &s, nil
}

func (r *UserGormRepository) SaveSettings(ctx context.Context, s *models.InstructorSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// --------------------------------------------------
// Google connection
// --------------------------------------------------

func (r *UserGormRepository) GetGoogleConnection(ctx context.Context, userID uuid.UUID) (*models.GoogleConnection, error) {
	var c models.GoogleConnection
	if err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err, "google_not_connected")
	}
	return &c, nil
}

func (r *UserGormRepository) SaveGoogleConnection(ctx context.Context, c *models.GoogleConnection) error {
	return r.db.WithContext(ctx).Save(c).Error
}
