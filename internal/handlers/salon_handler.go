package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/httpresp"
	"github.com/bellagenda/salon-scheduler/internal/middleware"
	"github.com/bellagenda/salon-scheduler/internal/models"
	"github.com/bellagenda/salon-scheduler/internal/patch"
)

type SalonHandler struct {
	db *gorm.DB
}

func NewSalonHandler(db *gorm.DB) *SalonHandler {
	return &SalonHandler{db: db}
}

type UpdateSalonRequest struct {
	Name          patch.Field[string] `json:"name"`
	Address       patch.Field[string] `json:"address"`
	Phone         patch.Field[string] `json:"phone"`
	Email         patch.Field[string] `json:"email"`
	Instagram     patch.Field[string] `json:"instagram"`
	Whatsapp      patch.Field[string] `json:"whatsapp"`
	OpeningHours  patch.Field[string] `json:"opening_hours"`
	ClosingHours  patch.Field[string] `json:"closing_hours"`
	LogoURL       patch.Field[string] `json:"logo_url"`
	CoverPhotoURL patch.Field[string] `json:"cover_photo_url"`
	Bio           patch.Field[string] `json:"bio"`
	Niche         patch.Field[string] `json:"niche"`
}

func (h *SalonHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Salon{})

	if niche := c.Query("niche"); niche != "" {
		q = q.Where("niche = ?", niche)
	}

	var salons []models.Salon
	if err := q.Order("name ASC").Find(&salons).Error; err != nil {
		httperr.Internal(c, "failed_to_list_salons", "Erro ao listar salões.")
		return
	}

	httpresp.OK(c, salons)
}

func (h *SalonHandler) Get(c *gin.Context) {
	var salon models.Salon
	if err := h.db.First(&salon, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	var pros []models.Professional
	h.db.Where("salon_id = ? AND is_active = ?", salon.ID, true).
		Order("name ASC").Find(&pros)

	var services []models.Service
	h.db.Where("salon_id = ? AND is_active = ?", salon.ID, true).
		Order("name ASC").Find(&services)

	httpresp.OK(c, gin.H{
		"salon":         salon,
		"professionals": pros,
		"services":      services,
	})
}

func (h *SalonHandler) Update(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var salon models.Salon
	if err := h.db.First(&salon, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}
	if salon.OwnerID != userID {
		httperr.Forbidden(c, "not_salon_owner", "Apenas o dono do salão pode editá-lo.")
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Corpo da requisição inválido.")
		return
	}

	req.Name.Apply(&salon.Name)
	req.Address.Apply(&salon.Address)
	req.Phone.Apply(&salon.Phone)
	req.Email.Apply(&salon.Email)
	req.Instagram.Apply(&salon.Instagram)
	req.Whatsapp.Apply(&salon.Whatsapp)
	req.OpeningHours.Apply(&salon.OpeningHours)
	req.ClosingHours.Apply(&salon.ClosingHours)
	req.LogoURL.Apply(&salon.LogoURL)
	req.CoverPhotoURL.Apply(&salon.CoverPhotoURL)
	req.Bio.Apply(&salon.Bio)
	req.Niche.Apply(&salon.Niche)

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Erro ao atualizar salão.")
		return
	}

	httpresp.OKMessage(c, "Salão atualizado com sucesso.", salon)
}
