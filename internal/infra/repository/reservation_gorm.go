package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeyakmania/booking-api/internal/domain/reservation"
	"github.com/yeyakmania/booking-api/internal/models"
)

var blockingStatuses = []string{
	string(reservation.StatusPending),
	string(reservation.StatusConfirmed),
}

type ReservationGormRepository struct {
	db *gorm.DB
}

var _ reservation.Repository = (*ReservationGormRepository)(nil)

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Create / read
// --------------------------------------------------

func (r *ReservationGormRepository) CreateReservation(ctx context.Context, res *models.Reservation) error {
	return translate(r.db.WithContext(ctx).Omit("Student", "Coaching").Create(res).Error, "reservation_not_found")
}

func (r *ReservationGormRepository) GetReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Coaching").
		First(&res, "id = ?", id).Error; err != nil {
		return nil, translate(err, "reservation_not_found")
	}
	return &res, nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

var attendableStatuses = []string{
	string(reservation.StatusConfirmed),
	string(reservation.StatusCompleted),
}

func (r *ReservationGormRepository) UpdateStatus(
	ctx context.Context,
	res *models.Reservation,
	from reservation.Status,
) (bool, error) {

	tx := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status = ?", res.ID, string(from)).
		Updates(map[string]any{
			"status":       res.Status,
			"completed_at": res.CompletedAt,
		})
	return r.swapped(ctx, tx, res.ID)
}

func (r *ReservationGormRepository) SetAttendance(ctx context.Context, id uuid.UUID, a reservation.Attendance) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status IN ?", id, attendableStatuses).
		Update("attendance_status", string(a))
	return r.swapped(ctx, tx, id)
}

func (r *ReservationGormRepository) MarkCancelled(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status IN ?", id, blockingStatuses).
		Updates(map[string]any{
			"status":       string(reservation.StatusCancelled),
			"cancelled_at": at,
		})
	return r.swapped(ctx, tx, id)
}

// swapped reads the outcome of a conditional update. Zero rows is either a
// lost race (false) or a missing reservation (NotFound).
func (r *ReservationGormRepository) swapped(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	if tx.Error != nil {
		return false, tx.Error
	}
	if tx.RowsAffected == 1 {
		return true, nil
	}
	if _, err := r.GetReservation(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func (r *ReservationGormRepository) SetCalendarEvent(ctx context.Context, id uuid.UUID, eventID, meetLink string) error {
	updates := map[string]any{"google_event_id": eventID}
	if meetLink != "" {
		updates["meet_link"] = meetLink
	}
	tx := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Updates(updates)
	return mustAffect(tx, "reservation_not_found")
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *ReservationGormRepository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Coaching").
		Preload("Student").
		Scopes(scope).
		Order("start_time ASC").
		Find(&out).Error
	return out, err
}

func startingIn(from, to time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("start_time >= ? AND start_time < ?", from, to)
	}
}

func (r *ReservationGormRepository) ListBlockingForInstructor(
	ctx context.Context,
	instructorID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.Reservation, error) {

	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return startingIn(from, to)(db).
			Where("instructor_id = ? AND status IN ?", instructorID, blockingStatuses)
	})
}

func (r *ReservationGormRepository) ListForInstructor(
	ctx context.Context,
	instructorID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.Reservation, error) {

	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return startingIn(from, to)(db).Where("instructor_id = ?", instructorID)
	})
}

func (r *ReservationGormRepository) ListForStudent(
	ctx context.Context,
	studentID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.Reservation, error) {

	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return startingIn(from, to)(db).Where("student_id = ?", studentID)
	})
}

func (r *ReservationGormRepository) ListConfirmedBetween(ctx context.Context, from, to time.Time) ([]models.Reservation, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return startingIn(from, to)(db).Where("status = ?", string(reservation.StatusConfirmed))
	})
}
