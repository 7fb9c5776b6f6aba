package store

import (
	"context"

	"github.com/yeyakmania/booking-api/internal/domain/account"
	"github.com/yeyakmania/booking-api/internal/domain/coaching"
	"github.com/yeyakmania/booking-api/internal/domain/credit"
	"github.com/yeyakmania/booking-api/internal/domain/invitation"
	"github.com/yeyakmania/booking-api/internal/domain/reservation"
	"github.com/yeyakmania/booking-api/internal/domain/role"
	"github.com/yeyakmania/booking-api/internal/domain/roster"
)

// Repos groups every repository bound to the same connection or transaction.
type Repos struct {
	Users        account.UserRepository
	Settings     account.SettingsRepository
	Roles        role.Repository
	Coachings    coaching.Repository
	Credits      credit.Repository
	Roster       roster.Repository
	Invitations  invitation.Repository
	Reservations reservation.Repository

	// Savepoint runs fn nested in the surrounding transaction. A failing fn
	// is undone on its own and leaves the outer transaction usable.
	Savepoint func(ctx context.Context, fn func(r Repos) error) error
}

type Store interface {
	Repos() Repos
	// WithTx runs fn inside one transaction; a non-nil error rolls it back.
	WithTx(ctx context.Context, fn func(r Repos) error) error
}
