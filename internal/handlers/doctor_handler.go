package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/meditrack/meditrack/internal/domain/appointment"
	"github.com/meditrack/meditrack/internal/httperr"
	"github.com/meditrack/meditrack/internal/httpresp"
	"github.com/meditrack/meditrack/internal/models"
	"github.com/meditrack/meditrack/internal/recommend"
	"github.com/meditrack/meditrack/internal/validators"
)

type DoctorHandler struct {
	repo        domain.Repository
	recommender recommend.Recommender
}

func NewDoctorHandler(repo domain.Repository, recommender recommend.Recommender) *DoctorHandler {
	return &DoctorHandler{repo: repo, recommender: recommender}
}

type CreateDoctorRequest struct {
	Name            string  `json:"name" binding:"required"`
	Email           string  `json:"email" binding:"required"`
	Phone           string  `json:"phone"`
	Address         string  `json:"address"`
	Specialty       string  `json:"specialty" binding:"required"`
	ConsultationFee float64 `json:"consultation_fee"`
	Description     string  `json:"description"`
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid doctor payload.")
		return
	}

	if !validators.IsValidEmail(req.Email) {
		httperr.BadRequest(c, "invalid_email", "Email is not valid.")
		return
	}

	specialty := models.Specialty(req.Specialty)
	if !specialty.Valid() {
		httperr.BadRequest(c, "invalid_specialty", "Unknown specialty.")
		return
	}

	fee := req.ConsultationFee
	if fee <= 0 {
		fee = 500
	}

	doc := &models.Doctor{
		Name:            req.Name,
		Specialty:       specialty,
		ConsultationFee: fee,
		IsAvailable:     true,
		Description:     req.Description,
	}
	doc.Email = req.Email
	doc.Phone = req.Phone
	doc.Address = req.Address

	if err := h.repo.CreateDoctor(c.Request.Context(), doc); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, doc)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid doctor id.")
		return
	}

	doc, err := h.repo.GetDoctorByID(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, doc)
}

func (h *DoctorHandler) List(c *gin.Context) {
	if specialty := c.Query("specialty"); specialty != "" {
		s := models.Specialty(specialty)
		if !s.Valid() {
			httperr.BadRequest(c, "invalid_specialty", "Unknown specialty.")
			return
		}
		docs, err := h.repo.ListDoctorsBySpecialty(c.Request.Context(), s)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.List(c, docs)
		return
	}

	docs, err := h.repo.ListDoctors(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, docs)
}

func (h *DoctorHandler) AppointmentStats(c *gin.Context) {
	counts, err := h.repo.ListDoctorAppointmentCounts(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, counts)
}

type RecommendRequest struct {
	Symptoms string `json:"symptoms" binding:"required"`
}

type RecommendResponse struct {
	Specialty models.Specialty `json:"specialty"`
	Doctors   []models.Doctor  `json:"doctors"`
}

// Recommend maps free-text symptoms to a specialty and a ranked doctor
// list through the external classifier.
func (h *DoctorHandler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Symptoms are required.")
		return
	}

	ctx := c.Request.Context()

	specialty, err := h.recommender.Classify(ctx, req.Symptoms)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ranked, err := h.recommender.RankBySimilarity(ctx, req.Symptoms)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	byID := make(map[uint]models.Doctor)
	docs, err := h.repo.ListDoctors(ctx)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	for _, d := range docs {
		byID[d.ID] = d
	}

	out := RecommendResponse{Specialty: specialty}
	for _, id := range ranked {
		if d, ok := byID[id]; ok && d.IsAvailable {
			out.Doctors = append(out.Doctors, d)
		}
	}

	httpresp.OK(c, out)
}
