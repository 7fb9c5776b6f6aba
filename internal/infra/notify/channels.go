package notify

import (
	"context"
	"time"
)

type Mail struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, text string) error
}

// ReservationPage is one row in the instructor's Notion database.
type ReservationPage struct {
	Title   string
	Student string
	Start   time.Time
	End     time.Time
	Status  string
	Meet    string
}

type NotionWriter interface {
	AddReservation(ctx context.Context, p ReservationPage) error
}
