package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/httpresp"
	"github.com/yeyakmania/booking-api/internal/usecase/availability"
)

type AvailabilityHandler struct {
	calc   *availability.Calculator
	logger *slog.Logger
}

func NewAvailabilityHandler(calc *availability.Calculator, logger *slog.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{calc: calc, logger: logger}
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	instructorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	coachingID, ok := queryID(c, "coaching_id")
	if !ok {
		return
	}
	from, to, ok := queryRange(c, defaultLocation())
	if !ok {
		return
	}

	res, err := h.calc.Execute(c.Request.Context(), availability.Input{
		InstructorID: instructorID,
		CoachingID:   coachingID,
		From:         from,
		To:           to,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *AvailabilityHandler) Slots(c *gin.Context) {
	instructorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	coachingID, ok := queryID(c, "coaching_id")
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "invalid_date", httperr.Message("invalid_date"))
		return
	}

	slots, err := h.calc.Slots(c.Request.Context(), availability.SlotsInput{
		InstructorID: instructorID,
		CoachingID:   coachingID,
		Date:         date,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.List(c, slots)
}
