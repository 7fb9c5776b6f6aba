package roster

import (
	"context"

	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/models"
)

// Repository manages the links between students and their instructors.
type Repository interface {
	// EnsureLink inserts the link unless an identical one exists.
	EnsureLink(ctx context.Context, link *models.StudentInstructor) error
	ListStudents(ctx context.Context, instructorID uuid.UUID) ([]models.StudentInstructor, error)
	ListInstructors(ctx context.Context, studentID uuid.UUID) ([]models.StudentInstructor, error)
}
