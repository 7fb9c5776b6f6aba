package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	Email           string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name            string `gorm:"size:100;not null" json:"name"`
	StudioName      string `gorm:"size:100" json:"studio_name"`
	Phone           string `gorm:"size:20" json:"phone"`
	Bio             string `gorm:"type:text" json:"bio"`
	ProfileImageURL string `gorm:"size:512" json:"profile_image_url"`
	GoogleSub       string `gorm:"size:64;index" json:"-"`

	Roles []UserRole `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"roles,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRole rows are unique per (user, role); a user may hold both roles.
type UserRole struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role      string    `gorm:"size:20;primaryKey" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
