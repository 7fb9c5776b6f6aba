package handlers

import (
	"encoding/json"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/yeyakmania/booking-api/internal/httpresp"
	"github.com/yeyakmania/booking-api/internal/middleware"
	ucCoaching "github.com/yeyakmania/booking-api/internal/usecase/coaching"
)

type CoachingHandler struct {
	coachings *ucCoaching.Manager
	logger    *slog.Logger
}

func NewCoachingHandler(coachings *ucCoaching.Manager, logger *slog.Logger) *CoachingHandler {
	return &CoachingHandler{coachings: coachings, logger: logger}
}

type coachingRequest struct {
	Title            *string          `json:"title" binding:"omitempty,max=100"`
	Slug             *string          `json:"slug" binding:"omitempty,max=100"`
	Description      *string          `json:"description"`
	Duration         *int             `json:"duration"`
	Price            *decimal.Decimal `json:"price"`
	Type             *string          `json:"type"`
	IsActive         *bool            `json:"is_active"`
	GoogleCalendarID *string          `json:"google_calendar_id" binding:"omitempty,max=255"`
	WorkingHours     json.RawMessage  `json:"working_hours"`
}

func (r coachingRequest) input() (ucCoaching.Input, error) {
	set, hours, err := decodeSchedule(r.WorkingHours)
	if err != nil {
		return ucCoaching.Input{}, err
	}
	return ucCoaching.Input{
		Title:            r.Title,
		Slug:             r.Slug,
		Description:      r.Description,
		Duration:         r.Duration,
		Price:            r.Price,
		Type:             r.Type,
		IsActive:         r.IsActive,
		GoogleCalendarID: r.GoogleCalendarID,
		SetWorkingHours:  set,
		WorkingHours:     hours,
	}, nil
}

func (h *CoachingHandler) Create(c *gin.Context) {
	var req coachingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}
	in, err := req.input()
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	coaching, err := h.coachings.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.Created(c, coaching)
}

func (h *CoachingHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	list, err := h.coachings.List(c.Request.Context(), middleware.UserID(c), activeOnly)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.List(c, list)
}

func (h *CoachingHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req coachingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}
	in, err := req.input()
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	coaching, err := h.coachings.Update(c.Request.Context(), middleware.UserID(c), id, in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, coaching)
}

func (h *CoachingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.coachings.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.NoContent(c)
}

// ------------------------------------------------------
// Public
// ------------------------------------------------------

func (h *CoachingHandler) PublicList(c *gin.Context) {
	instructorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.coachings.List(c.Request.Context(), instructorID, true)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.List(c, list)
}

func (h *CoachingHandler) PublicBySlug(c *gin.Context) {
	instructorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	coaching, err := h.coachings.PublicBySlug(c.Request.Context(), instructorID, c.Param("slug"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, coaching)
}
