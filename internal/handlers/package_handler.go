package handlers

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/httpresp"
	"github.com/yeyakmania/booking-api/internal/middleware"
	"github.com/yeyakmania/booking-api/internal/models"
	ucCredit "github.com/yeyakmania/booking-api/internal/usecase/credit"
)

// ======================================================
// HANDLER
// ======================================================

type PackageHandler struct {
	ledger    *ucCredit.Ledger
	templates *ucCredit.Templates
	logger    *slog.Logger
}

func NewPackageHandler(ledger *ucCredit.Ledger, templates *ucCredit.Templates, logger *slog.Logger) *PackageHandler {
	return &PackageHandler{ledger: ledger, templates: templates, logger: logger}
}

// ======================================================
// REQUESTS
// ======================================================

type createPackageRequest struct {
	StudentID         uuid.UUID       `json:"student_id"`
	CoachingID        *uuid.UUID      `json:"coaching_id"`
	TemplateID        *uuid.UUID      `json:"template_id"`
	Name              string          `json:"name" binding:"max=100"`
	TotalSessions     int             `json:"total_sessions"`
	RemainingSessions *int            `json:"remaining_sessions"`
	StartDate         string          `json:"start_date" binding:"required"`
	ExpiresAt         string          `json:"expires_at" binding:"required"`
	WorkingHours      json.RawMessage `json:"working_hours"`
}

type updatePackageRequest struct {
	Name              *string         `json:"name" binding:"omitempty,max=100"`
	TotalSessions     *int            `json:"total_sessions"`
	RemainingSessions *int            `json:"remaining_sessions"`
	StartDate         *string         `json:"start_date"`
	ExpiresAt         *string         `json:"expires_at"`
	WorkingHours      json.RawMessage `json:"working_hours"`
}

type templateRequest struct {
	CoachingID    *uuid.UUID       `json:"coaching_id"`
	Name          *string          `json:"name" binding:"omitempty,max=100"`
	TotalSessions *int             `json:"total_sessions"`
	ValidityDays  *int             `json:"validity_days"`
	Price         *decimal.Decimal `json:"price"`
	IsActive      *bool            `json:"is_active"`
}

func parseOptionalInstant(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseInstant(*value, defaultLocation())
	if err != nil {
		return nil, httperr.Invalid("invalid_date")
	}
	return &t, nil
}

// ======================================================
// PACKAGES
// ======================================================

func (h *PackageHandler) Create(c *gin.Context) {
	var req createPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}
	start, err1 := parseInstant(req.StartDate, defaultLocation())
	expires, err2 := parseInstant(req.ExpiresAt, defaultLocation())
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_date", httperr.Message("invalid_date"))
		return
	}
	_, hours, err := decodeSchedule(req.WorkingHours)
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	p, err := h.ledger.Create(c.Request.Context(), ucCredit.CreatePackageInput{
		InstructorID:      middleware.UserID(c),
		StudentID:         req.StudentID,
		CoachingID:        req.CoachingID,
		TemplateID:        req.TemplateID,
		Name:              req.Name,
		TotalSessions:     req.TotalSessions,
		RemainingSessions: req.RemainingSessions,
		StartDate:         start,
		ExpiresAt:         expires,
		WorkingHours:      hours,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.Created(c, p)
}

// List returns the caller's packages as instructor, or as student with
// ?as=student.
func (h *PackageHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	var (
		list []models.Package
		err  error
	)
	switch c.DefaultQuery("as", "instructor") {
	case "instructor":
		list, err = h.ledger.ListForInstructor(ctx, userID)
	case "student":
		list, err = h.ledger.ListForStudent(ctx, userID)
	default:
		err = httperr.Invalid("invalid_role")
	}
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.List(c, list)
}

func (h *PackageHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.ledger.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *PackageHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	start, err := parseOptionalInstant(req.StartDate)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	expires, err := parseOptionalInstant(req.ExpiresAt)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	set, hours, err := decodeSchedule(req.WorkingHours)
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	p, err := h.ledger.Update(c.Request.Context(), middleware.UserID(c), id, ucCredit.UpdatePackageInput{
		Name:              req.Name,
		TotalSessions:     req.TotalSessions,
		RemainingSessions: req.RemainingSessions,
		StartDate:         start,
		ExpiresAt:         expires,
		SetWorkingHours:   set,
		WorkingHours:      hours,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *PackageHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.ledger.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *PackageHandler) Deduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.ledger.Deduct(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *PackageHandler) Refund(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.ledger.Refund(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, p)
}

// ======================================================
// TEMPLATES
// ======================================================

func (r templateRequest) input() ucCredit.TemplateInput {
	return ucCredit.TemplateInput{
		CoachingID:    r.CoachingID,
		Name:          r.Name,
		TotalSessions: r.TotalSessions,
		ValidityDays:  r.ValidityDays,
		Price:         r.Price,
		IsActive:      r.IsActive,
	}
}

func (h *PackageHandler) CreateTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}
	tpl, err := h.templates.Create(c.Request.Context(), middleware.UserID(c), req.input())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.Created(c, tpl)
}

func (h *PackageHandler) ListTemplates(c *gin.Context) {
	list, err := h.templates.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.List(c, list)
}

func (h *PackageHandler) UpdateTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}
	tpl, err := h.templates.Update(c.Request.Context(), middleware.UserID(c), id, req.input())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, tpl)
}

func (h *PackageHandler) DeleteTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.templates.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.NoContent(c)
}
