package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/httpresp"
	"github.com/yeyakmania/booking-api/internal/middleware"
	ucInvitation "github.com/yeyakmania/booking-api/internal/usecase/invitation"
)

type InvitationHandler struct {
	createUC *ucInvitation.CreateInvitation
	acceptUC *ucInvitation.AcceptInvitation
	lookupUC *ucInvitation.LookupInvitation
	logger   *slog.Logger
}

func NewInvitationHandler(
	createUC *ucInvitation.CreateInvitation,
	acceptUC *ucInvitation.AcceptInvitation,
	lookupUC *ucInvitation.LookupInvitation,
	logger *slog.Logger,
) *InvitationHandler {
	return &InvitationHandler{
		createUC: createUC,
		acceptUC: acceptUC,
		lookupUC: lookupUC,
		logger:   logger,
	}
}

type createInvitationRequest struct {
	CoachingID         uuid.UUID   `json:"coaching_id"`
	Email              string      `json:"email" binding:"required"`
	PackageTemplateIDs []uuid.UUID `json:"package_template_ids"`
}

func (h *InvitationHandler) Create(c *gin.Context) {
	var req createInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	inv, err := h.createUC.Execute(c.Request.Context(), ucInvitation.CreateInput{
		ActorID:            middleware.UserID(c),
		CoachingID:         req.CoachingID,
		Email:              req.Email,
		PackageTemplateIDs: req.PackageTemplateIDs,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.Created(c, inv)
}

func (h *InvitationHandler) List(c *gin.Context) {
	list, err := h.createUC.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.List(c, list)
}

func (h *InvitationHandler) Lookup(c *gin.Context) {
	inv, err := h.lookupUC.Execute(c.Request.Context(), c.Param("code"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, inv)
}

// Accept binds the caller to the inviting instructor. The email comes from
// the token, never from the body.
func (h *InvitationHandler) Accept(c *gin.Context) {
	instructor, err := h.acceptUC.Execute(c.Request.Context(), ucInvitation.AcceptInput{
		Code:         c.Param("code"),
		StudentID:    middleware.UserID(c),
		StudentEmail: middleware.UserEmail(c),
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, gin.H{"instructor": instructor})
}
