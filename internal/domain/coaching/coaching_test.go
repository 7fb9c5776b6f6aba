package coaching

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/models"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Private Yoga 1:1":   "private-yoga-1-1",
		"  필라테스 개인 레슨  ":     "필라테스-개인-레슨",
		"PT -- 60분!!":        "pt-60분",
		"***":                "",
		"Crème brûlée class": "cr-me-br-l-e-class",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}

	long := Slugify(strings.Repeat("a", 100))
	if len(long) != maxSlugLen {
		t.Fatalf("expected slug truncated to %d, got %d", maxSlugLen, len(long))
	}
}

func TestValidate(t *testing.T) {
	ok := &models.Coaching{Title: "PT", Duration: 60, Type: models.CoachingPrivate, Price: decimal.NewFromInt(50000)}
	if err := Validate(ok); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := *ok
	bad.Duration = 0
	if err := Validate(&bad); !httperr.IsBusiness(err, "invalid_duration") {
		t.Fatalf("expected invalid_duration, got %v", err)
	}

	bad = *ok
	bad.Type = "semi"
	if err := Validate(&bad); !httperr.IsBusiness(err, "invalid_coaching_type") {
		t.Fatalf("expected invalid_coaching_type, got %v", err)
	}

	bad = *ok
	bad.Price = decimal.NewFromInt(-1)
	if err := Validate(&bad); !httperr.IsBusiness(err, "invalid_price") {
		t.Fatalf("expected invalid_price, got %v", err)
	}
}
