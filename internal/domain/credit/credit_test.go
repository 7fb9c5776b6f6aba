package credit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
)

func TestValidatePackage(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	base := models.Package{TotalSessions: 10, RemainingSessions: 10, StartDate: start, ExpiresAt: start.AddDate(0, 1, 0)}

	tests := []struct {
		name   string
		mutate func(p *models.Package)
		code   string
	}{
		{"valid", func(p *models.Package) {}, ""},
		{"zero remaining", func(p *models.Package) { p.RemainingSessions = 0 }, ""},
		{"zero total", func(p *models.Package) { p.TotalSessions = 0; p.RemainingSessions = 0 }, "invalid_total_sessions"},
		{"negative remaining", func(p *models.Package) { p.RemainingSessions = -1 }, "invalid_remaining_sessions"},
		{"remaining above total", func(p *models.Package) { p.RemainingSessions = 11 }, "invalid_remaining_sessions"},
		{"expires before start", func(p *models.Package) { p.ExpiresAt = start }, "invalid_package_period"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			err := ValidatePackage(&p)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestValidateTemplate(t *testing.T) {
	tpl := &models.PackageTemplate{Name: "10회권", TotalSessions: 10, ValidityDays: 30, Price: decimal.NewFromInt(300000)}
	if err := ValidateTemplate(tpl); err != nil {
		t.Fatalf("ValidateTemplate: %v", err)
	}
	tpl.ValidityDays = 0
	if err := ValidateTemplate(tpl); !httperr.IsBusiness(err, "invalid_validity_days") {
		t.Fatalf("expected invalid_validity_days, got %v", err)
	}
}

func TestFromTemplate(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tpl := &models.PackageTemplate{ID: uuid.New(), InstructorID: uuid.New(), Name: "10-pack", TotalSessions: 10, ValidityDays: 30}
	student := uuid.New()

	p := FromTemplate(tpl, student, now)
	if p.TotalSessions != 10 || p.RemainingSessions != 10 {
		t.Fatalf("sessions = %d/%d", p.RemainingSessions, p.TotalSessions)
	}
	if !p.ExpiresAt.Equal(now.AddDate(0, 0, 30)) {
		t.Fatalf("expires_at = %v", p.ExpiresAt)
	}
	if p.StudentID != student || p.InstructorID != tpl.InstructorID || *p.TemplateID != tpl.ID {
		t.Fatalf("ownership not copied: %+v", p)
	}
}
