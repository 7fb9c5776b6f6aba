package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yeyakmania/booking-api/internal/domain/store"
)

// GormStore hands out repositories bound either to the pool or to a single
// transaction.
type GormStore struct {
	db *gorm.DB
}

var _ store.Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Repos() store.Repos {
	return reposFor(s.db)
}

func (s *GormStore) WithTx(ctx context.Context, fn func(r store.Repos) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

// reposFor binds every repository to db. Inside a transaction gorm turns the
// nested Transaction call into SAVEPOINT / ROLLBACK TO SAVEPOINT.
func reposFor(db *gorm.DB) store.Repos {
	users := NewUserGormRepository(db)
	return store.Repos{
		Users:        users,
		Settings:     users,
		Roles:        users,
		Coachings:    NewCoachingGormRepository(db),
		Credits:      NewCreditGormRepository(db),
		Roster:       NewRosterGormRepository(db),
		Invitations:  NewInvitationGormRepository(db),
		Reservations: NewReservationGormRepository(db),
		Savepoint: func(ctx context.Context, fn func(r store.Repos) error) error {
			return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				return fn(reposFor(tx))
			})
		},
	}
}
