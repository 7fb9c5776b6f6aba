package handlers

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yeyakmania/booking-api/internal/httperr"
	"github.com/yeyakmania/booking-api/internal/httpresp"
	"github.com/yeyakmania/booking-api/internal/middleware"
	"github.com/yeyakmania/booking-api/internal/timezone"
	ucReservation "github.com/yeyakmania/booking-api/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	createUC     *ucReservation.CreateReservation
	cancelUC     *ucReservation.CancelReservation
	confirmUC    *ucReservation.ConfirmReservation
	completeUC   *ucReservation.CompleteReservation
	attendanceUC *ucReservation.MarkAttendance
	listUC       *ucReservation.ListReservations
	logger       *slog.Logger
}

func NewReservationHandler(
	createUC *ucReservation.CreateReservation,
	cancelUC *ucReservation.CancelReservation,
	confirmUC *ucReservation.ConfirmReservation,
	completeUC *ucReservation.CompleteReservation,
	attendanceUC *ucReservation.MarkAttendance,
	listUC *ucReservation.ListReservations,
	logger *slog.Logger,
) *ReservationHandler {
	return &ReservationHandler{
		createUC:     createUC,
		cancelUC:     cancelUC,
		confirmUC:    confirmUC,
		completeUC:   completeUC,
		attendanceUC: attendanceUC,
		listUC:       listUC,
		logger:       logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type createReservationRequest struct {
	// StudentID defaults to the caller.
	StudentID    *uuid.UUID `json:"student_id"`
	InstructorID uuid.UUID  `json:"instructor_id"`
	CoachingID   *uuid.UUID `json:"coaching_id"`
	PackageID    *uuid.UUID `json:"package_id"`
	DeductCredit bool       `json:"deduct_credit"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Notes     string    `json:"notes" binding:"max=2000"`
	Status    string    `json:"status"`
}

type cancelReservationRequest struct {
	SkipTimeCheck bool `json:"skip_time_check"`
}

type attendanceRequest struct {
	Attendance string `json:"attendance" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	actorID := middleware.UserID(c)
	studentID := actorID
	if req.StudentID != nil {
		studentID = *req.StudentID
	}

	r, err := h.createUC.Execute(c.Request.Context(), ucReservation.CreateReservationInput{
		ActorID:      actorID,
		StudentID:    studentID,
		InstructorID: req.InstructorID,
		CoachingID:   req.CoachingID,
		PackageID:    req.PackageID,
		DeductCredit: req.DeductCredit,
		Start:        req.StartTime,
		End:          req.EndTime,
		Notes:        req.Notes,
		Status:       req.Status,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.Created(c, r)
}

// ======================================================
// LIST
// ======================================================

// List takes either ?date=YYYY-MM-DD or a from/to range.
func (h *ReservationHandler) List(c *gin.Context) {
	loc := defaultLocation()

	if date := c.Query("date"); date != "" {
		day, err := timezone.ParseDate(date, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", httperr.Message("invalid_date"))
			return
		}
		from, to := ucReservation.DayRange(day, loc)
		h.list(c, from, to)
		return
	}

	from, to, ok := queryRange(c, loc)
	if !ok {
		return
	}
	h.list(c, from, to)
}

func (h *ReservationHandler) ListByMonth(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_date", httperr.Message("invalid_date"))
		return
	}

	from, to, err := ucReservation.MonthRange(year, time.Month(month), defaultLocation())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	h.list(c, from, to)
}

func (h *ReservationHandler) list(c *gin.Context, from, to time.Time) {
	list, err := h.listUC.Execute(c.Request.Context(), ucReservation.ListInput{
		UserID: middleware.UserID(c),
		As:     c.Query("as"),
		From:   from,
		To:     to,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.List(c, list)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req cancelReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c)
			return
		}
	}

	res, err := h.cancelUC.Execute(c.Request.Context(), ucReservation.CancelInput{
		ReservationID: id,
		ActorID:       middleware.UserID(c),
		SkipTimeCheck: req.SkipTimeCheck,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *ReservationHandler) Confirm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	r, err := h.confirmUC.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *ReservationHandler) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	r, err := h.completeUC.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, r)
}

func (h *ReservationHandler) Attendance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	r, err := h.attendanceUC.Execute(c.Request.Context(), middleware.UserID(c), id, req.Attendance)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	httpresp.OK(c, r)
}
