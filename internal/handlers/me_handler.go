package handlers

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yeyakmania/booking-api/internal/domain/schedule"
	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/httpresp"
	"github.com/yeyakmania/booking-api/internal/middleware"
	ucAccount "github.com/yeyakmania/booking-api/internal/usecase/account"
	ucRole "github.com/yeyakmania/booking-api/internal/usecase/role"
)

// ======================================================
// HANDLER
// ======================================================

type MeHandler struct {
	profile  *ucAccount.Profile
	settings *ucAccount.Settings
	roles    *ucRole.Resolver
	tokens   *ucAccount.TokenIssuer
	logger   *slog.Logger
}

func NewMeHandler(
	profile *ucAccount.Profile,
	settings *ucAccount.Settings,
	roles *ucRole.Resolver,
	tokens *ucAccount.TokenIssuer,
	logger *slog.Logger,
) *MeHandler {
	return &MeHandler{
		profile:  profile,
		settings: settings,
		roles:    roles,
		tokens:   tokens,
		logger:   logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type updateProfileRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	StudioName *string `json:"studio_name" binding:"omitempty,max=100"`
	Phone      *string `json:"phone" binding:"omitempty,max=20"`
	Bio        *string `json:"bio" binding:"omitempty,max=2000"`
}

type settingsRequest struct {
	WorkingHours *schedule.Weekly `json:"working_hours" binding:"omitempty,dive"`
	Timezone     *string          `json:"timezone"`

	RefundWindowHours      *int `json:"refund_window_hours"`
	ResetRefundWindowHours bool `json:"reset_refund_window_hours"`

	NotifyEmail   *bool `json:"notify_email"`
	NotifySMS     *bool `json:"notify_sms"`
	NotionEnabled *bool `json:"notion_enabled"`
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ======================================================
// PROFILE
// ======================================================

func (h *MeHandler) Get(c *gin.Context) {
	view, err := h.profile.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *MeHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	user, err := h.profile.Update(c.Request.Context(), middleware.UserID(c), ucAccount.ProfileInput{
		Name:       req.Name,
		StudioName: req.StudioName,
		Phone:      req.Phone,
		Bio:        req.Bio,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, user)
}

func (h *MeHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_file", httperr.Message("missing_file"))
		return
	}
	file, err := header.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", httperr.Message("invalid_image"))
		return
	}
	defer file.Close()

	user, err := h.profile.SetImage(c.Request.Context(), middleware.UserID(c), file)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, user)
}

// ======================================================
// SETTINGS
// ======================================================

func (h *MeHandler) GetSettings(c *gin.Context) {
	s, err := h.settings.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *MeHandler) SaveSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			httperr.BadRequest(c, "invalid_schedule", httperr.Message("invalid_schedule"))
			return
		}
		invalidRequest(c)
		return
	}

	s, err := h.settings.Save(c.Request.Context(), middleware.UserID(c), ucAccount.SettingsInput{
		WorkingHours:           req.WorkingHours,
		Timezone:               req.Timezone,
		RefundWindowHours:      req.RefundWindowHours,
		ResetRefundWindowHours: req.ResetRefundWindowHours,
		NotifyEmail:            req.NotifyEmail,
		NotifySMS:              req.NotifySMS,
		NotionEnabled:          req.NotionEnabled,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, s)
}

// ======================================================
// ROLES
// ======================================================

func (h *MeHandler) Roles(c *gin.Context) {
	set, err := h.roles.Roles(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, set)
}

// SelectInitialRole answers with a fresh token so the role claim matches.
func (h *MeHandler) SelectInitialRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ctx := c.Request.Context()
	set, err := h.roles.SelectInitial(ctx, middleware.UserID(c), req.Role)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	h.respondWithToken(c, set.Primary, set)
}

func (h *MeHandler) AddRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	set, err := h.roles.Add(c.Request.Context(), middleware.UserID(c), req.Role)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	h.respondWithToken(c, set.Primary, set)
}

func (h *MeHandler) respondWithToken(c *gin.Context, primary string, roles any) {
	view, err := h.profile.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	token, err := h.tokens.Issue(view.User, primary)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, gin.H{"roles": roles, "token": token})
}
