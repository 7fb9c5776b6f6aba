package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeyakmania/booking-api/internal/domain/credit"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
)

type CreditGormRepository struct {
	db *gorm.DB
}

var _ credit.Repository = (*CreditGormRepository)(nil)

func NewCreditGormRepository(db *gorm.DB) *CreditGormRepository {
	return &CreditGormRepository{db: db}
}

// --------------------------------------------------
// Packages
// --------------------------------------------------

func (r *CreditGormRepository) CreatePackage(ctx context.Context, p *models.Package) error {
	return translate(r.db.WithContext(ctx).Create(p).Error, "package_not_found")
}

func (r *CreditGormRepository) GetPackage(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	var p models.Package
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err, "package_not_found")
	}
	return &p, nil
}

func (r *CreditGormRepository) UpdatePackage(ctx context.Context, p *models.Package) error {
	res := r.db.WithContext(ctx).
		Model(&models.Package{}).
		Where("id = ?", p.ID).
		Select(
			"name", "total_sessions", "remaining_sessions",
			"start_date", "expires_at", "working_hours",
		).
		Updates(p)
	return mustAffect(res, "package_not_found")
}

func (r *CreditGormRepository) DeletePackage(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Package{}, "id = ?", id)
	return mustAffect(res, "package_not_found")
}

func (r *CreditGormRepository) ListPackagesForStudent(ctx context.Context, studentID uuid.UUID) ([]models.Package, error) {
	var out []models.Package
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("expires_at ASC").
		Find(&out).Error
	return out, err
}

func (r *CreditGormRepository) ListPackagesForInstructor(ctx context.Context, instructorID uuid.UUID) ([]models.Package, error) {
	var out []models.Package
	err := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("expires_at ASC").
		Find(&out).Error
	return out, err
}

// --------------------------------------------------
// Atomic balance changes
// --------------------------------------------------

func (r *CreditGormRepository) DeductCredit(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	var p models.Package
	res := r.db.WithContext(ctx).
		Model(&p).
		Clauses(clause.Returning{}).
		Where("id = ? AND remaining_sessions > 0", id).
		Update("remaining_sessions", gorm.Expr("remaining_sessions - 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetPackage(ctx, id); err != nil {
			return nil, err
		}
		return nil, httperr.InsufficientCredit("insufficient_credit")
	}
	return &p, nil
}

func (r *CreditGormRepository) RefundCredit(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	var p models.Package
	res := r.db.WithContext(ctx).
		Model(&p).
		Clauses(clause.Returning{}).
		Where("id = ? AND remaining_sessions < total_sessions", id).
		Update("remaining_sessions", gorm.Expr("remaining_sessions + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetPackage(ctx, id); err != nil {
			return nil, err
		}
		return nil, httperr.Conflict("credit_at_capacity")
	}
	return &p, nil
}

// --------------------------------------------------
// Templates
// --------------------------------------------------

func (r *CreditGormRepository) CreateTemplate(ctx context.Context, t *models.PackageTemplate) error {
	return translate(r.db.WithContext(ctx).Create(t).Error, "template_not_found")
}

func (r *CreditGormRepository) GetTemplate(ctx context.Context, id uuid.UUID) (*models.PackageTemplate, error) {
	var t models.PackageTemplate
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err, "template_not_found")
	}
	return &t, nil
}

func (r *CreditGormRepository) UpdateTemplate(ctx context.Context, t *models.PackageTemplate) error {
	res := r.db.WithContext(ctx).
		Model(&models.PackageTemplate{}).
		Where("id = ?", t.ID).
		Select("coaching_id", "name", "total_sessions", "validity_days", "price", "is_active").
		Updates(t)
	return mustAffect(res, "template_not_found")
}

func (r *CreditGormRepository) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.PackageTemplate{}, "id = ?", id)
	return mustAffect(res, "template_not_found")
}

func (r *CreditGormRepository) ListTemplates(ctx context.Context, instructorID uuid.UUID) ([]models.PackageTemplate, error) {
	var out []models.PackageTemplate
	err := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("name ASC").
		Find(&out).Error
	return out, err
}
