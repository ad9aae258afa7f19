package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/meditrack/meditrack/internal/billing"
	domain "github.com/meditrack/meditrack/internal/domain/appointment"
	"github.com/meditrack/meditrack/internal/httperr"
	"github.com/meditrack/meditrack/internal/httpresp"
	usecase "github.com/meditrack/meditrack/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book     *usecase.BookAppointment
	confirm  *usecase.ConfirmAppointment
	complete *usecase.CompleteConsultation
	cancel   *usecase.CancelAppointment
	get      *usecase.GetAppointment
	slots    *usecase.ListSlots
	repo     domain.Repository
}

func NewAppointmentHandler(
	book *usecase.BookAppointment,
	confirm *usecase.ConfirmAppointment,
	complete *usecase.CompleteConsultation,
	cancel *usecase.CancelAppointment,
	get *usecase.GetAppointment,
	slots *usecase.ListSlots,
	repo domain.Repository,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:     book,
		confirm:  confirm,
		complete: complete,
		cancel:   cancel,
		get:      get,
		slots:    slots,
		repo:     repo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookRequest struct {
	DoctorID  uint   `json:"doctor_id" binding:"required"`
	PatientID uint   `json:"patient_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Symptoms  string `json:"symptoms"`
}

type ConfirmRequest struct {
	PaymentType   string  `json:"payment_type" binding:"required"`
	PaymentAmount float64 `json:"payment_amount" binding:"required"`
	BillType      string  `json:"bill_type" binding:"required"`
}

type CompleteRequest struct {
	DocObservations string `json:"doc_observations" binding:"required"`
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), usecase.BookInput{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		Date:      req.Date,
		Start:     req.StartTime,
		End:       req.EndTime,
		Symptoms:  req.Symptoms,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid confirmation payload.")
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), id, usecase.ConfirmInput{
		PaymentMethod: req.PaymentType,
		Amount:        req.PaymentAmount,
		BillType:      billing.Category(req.BillType),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid completion payload.")
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), id, req.DocObservations)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	reason := c.Query("reason")

	ap, err := h.cancel.Execute(c.Request.Context(), id, reason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// READS
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) GetBill(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	summary, err := h.repo.GetBillSummaryByAppointment(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, summary)
}

func (h *AppointmentHandler) ListSlots(c *gin.Context) {
	doctorID, ok := parseID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid doctor id.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), doctorID, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, slots)
}
