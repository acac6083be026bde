package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/httpresp"
	"github.com/bellagenda/salon-scheduler/internal/middleware"
	"github.com/bellagenda/salon-scheduler/internal/models"
	ucReview "github.com/bellagenda/salon-scheduler/internal/usecase/review"
)

type ReviewHandler struct {
	db       *gorm.DB
	createUC *ucReview.CreateReview
}

func NewReviewHandler(db *gorm.DB, createUC *ucReview.CreateReview) *ReviewHandler {
	return &ReviewHandler{db: db, createUC: createUC}
}

type CreateReviewRequest struct {
	AppointmentID string `json:"appointment_id" binding:"required"`
	Rating        int    `json:"rating" binding:"required"`
	Comment       string `json:"comment"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Agendamento e nota são obrigatórios.")
		return
	}

	rv, err := h.createUC.Execute(c.Request.Context(), ucReview.CreateInput{
		AppointmentID:   req.AppointmentID,
		RequesterUserID: userID,
		Rating:          req.Rating,
		Comment:         req.Comment,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.Created(c, "Avaliação registrada com sucesso.", rv)
}

func (h *ReviewHandler) CanReview(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	elig, err := h.createUC.CanReview(c.Request.Context(), c.Param("appointmentId"), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_check_review", "Erro ao verificar avaliação.")
		return
	}

	httpresp.OK(c, elig)
}

func (h *ReviewHandler) ListByProfessional(c *gin.Context) {
	h.list(c, "professional_id", c.Param("id"))
}

func (h *ReviewHandler) ListBySalon(c *gin.Context) {
	h.list(c, "salon_id", c.Param("id"))
}

// list pages reviews for one target column and attaches the star histogram
// computed over the whole target, not just the current page.
func (h *ReviewHandler) list(c *gin.Context, column, id string) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if perPage < 1 || perPage > 50 {
		perPage = 10
	}

	var total int64
	if err := h.db.Model(&models.Review{}).
		Where(column+" = ?", id).Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Erro ao listar avaliações.")
		return
	}

	var reviews []models.Review
	if err := h.db.Preload("Client").
		Where(column+" = ?", id).
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Erro ao listar avaliações.")
		return
	}

	type starRow struct {
		Rating int
		Total  int64
	}
	var rows []starRow
	h.db.Model(&models.Review{}).
		Select("rating, COUNT(*) AS total").
		Where(column+" = ?", id).
		Group("rating").Scan(&rows)

	histogram := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	var sum int64
	for _, r := range rows {
		if r.Rating >= 1 && r.Rating <= 5 {
			histogram[r.Rating] = r.Total
			sum += int64(r.Rating) * r.Total
		}
	}

	average := 0.0
	if total > 0 {
		average = float64(sum) / float64(total)
	}

	httpresp.OK(c, gin.H{
		"reviews": reviews,
		"stats": gin.H{
			"total":     total,
			"average":   average,
			"histogram": histogram,
		},
		"pagination": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
		},
	})
}

func (h *ReviewHandler) writeError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, ucReview.ReasonNotFound):
		httperr.NotFound(c, ucReview.ReasonNotFound, "Agendamento não encontrado.")
	case httperr.IsBusiness(err, ucReview.ReasonNotOwner):
		httperr.Forbidden(c, ucReview.ReasonNotOwner, "Você só pode avaliar seus próprios agendamentos.")
	case httperr.IsBusiness(err, ucReview.ReasonNotCompleted):
		httperr.BadRequest(c, ucReview.ReasonNotCompleted, "Apenas atendimentos concluídos podem ser avaliados.")
	case httperr.IsBusiness(err, ucReview.ReasonAlreadyExists):
		httperr.BadRequest(c, ucReview.ReasonAlreadyExists, "Este agendamento já foi avaliado.")
	case httperr.IsBusiness(err, "invalid_rating"):
		httperr.BadRequest(c, "invalid_rating", "Nota deve ser entre 1 e 5.")
	default:
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}
