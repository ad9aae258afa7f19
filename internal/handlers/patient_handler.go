package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/meditrack/meditrack/internal/domain/appointment"
	"github.com/meditrack/meditrack/internal/httperr"
	"github.com/meditrack/meditrack/internal/httpresp"
	"github.com/meditrack/meditrack/internal/models"
	"github.com/meditrack/meditrack/internal/validators"
)

type PatientHandler struct {
	repo domain.Repository
}

func NewPatientHandler(repo domain.Repository) *PatientHandler {
	return &PatientHandler{repo: repo}
}

type CreatePatientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Age     int    `json:"age"`
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid patient payload.")
		return
	}

	if !validators.IsValidEmail(req.Email) {
		httperr.BadRequest(c, "invalid_email", "Email is not valid.")
		return
	}

	pat := &models.Patient{
		Name: req.Name,
		Age:  req.Age,
	}
	pat.Email = req.Email
	pat.Phone = req.Phone
	pat.Address = req.Address

	if err := h.repo.CreatePatient(c.Request.Context(), pat); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, pat)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid patient id.")
		return
	}

	pat, err := h.repo.GetPatientByID(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, pat)
}
