package handlers

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/domain/schedule"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/timezone"
)

// ======================================================
// RESPONSES
// ======================================================

func fail(c *gin.Context, logger *slog.Logger, err error) {
	httperr.Respond(c, logger, err)
}

func invalidRequest(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", httperr.Message("invalid_request"))
}

// pathID parses a uuid path parameter and answers 400 when it is malformed.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", httperr.Message("invalid_id"))
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional uuid query parameter.
func queryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", httperr.Message("invalid_id"))
		return nil, false
	}
	return &id, true
}

// ======================================================
// TIME
// ======================================================

// parseInstant accepts RFC 3339 or a bare YYYY-MM-DD, the latter meaning
// midnight in loc.
func parseInstant(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if len(value) == len("2006-01-02") {
		return timezone.ParseDate(value, loc)
	}
	return time.Parse(time.RFC3339, value)
}

// queryRange reads from/to. A bare end date is inclusive.
func queryRange(c *gin.Context, loc *time.Location) (time.Time, time.Time, bool) {
	fromRaw, toRaw := c.Query("from"), c.Query("to")
	if fromRaw == "" || toRaw == "" {
		httperr.BadRequest(c, "invalid_date", httperr.Message("invalid_date"))
		return time.Time{}, time.Time{}, false
	}

	from, err1 := parseInstant(fromRaw, loc)
	to, err2 := parseInstant(toRaw, loc)
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_date", httperr.Message("invalid_date"))
		return time.Time{}, time.Time{}, false
	}
	if len(strings.TrimSpace(toRaw)) == len("2006-01-02") {
		to = to.AddDate(0, 0, 1)
	}
	return from, to, true
}

func defaultLocation() *time.Location {
	return timezone.Location(timezone.DefaultTimezone)
}

// decodeSchedule distinguishes an absent field from an explicit null.
func decodeSchedule(raw json.RawMessage) (set bool, w *schedule.Weekly, err error) {
	if len(raw) == 0 {
		return false, nil, nil
	}
	if string(raw) == "null" {
		return true, nil, nil
	}
	w = new(schedule.Weekly)
	if err := json.Unmarshal(raw, w); err != nil {
		return false, nil, httperr.Invalid("invalid_schedule")
	}
	return true, w, nil
}
