package handlers

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/audit"
	"github.com/yeyakmania/booking-api/internal/httpresp"
	"github.com/yeyakmania/booking-api/internal/middleware"
	"github.com/yeyakmania/booking-api/internal/models"
)

type AuditLister interface {
	List(ctx context.Context, instructorID uuid.UUID, f audit.Filter) ([]models.AuditLog, int64, error)
}

var _ AuditLister = (*audit.Logger)(nil)

type AuditLogsHandler struct {
	logs   AuditLister
	logger *slog.Logger
}

func NewAuditLogsHandler(logs AuditLister, logger *slog.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, logger: logger}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}
	f.Normalize()

	loc := defaultLocation()
	if v := c.Query("from"); v != "" {
		if from, err := parseInstant(v, loc); err == nil {
			f.From = &from
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err := parseInstant(v, loc); err == nil {
			if len(v) == len("2006-01-02") {
				to = to.AddDate(0, 0, 1)
			}
			f.To = &to
		}
	}

	logs, total, err := h.logs.List(c.Request.Context(), middleware.UserID(c), f)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	httpresp.OK(c, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
