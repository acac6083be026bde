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

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_minutes" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Category    string  `json:"category"`
	Icon        string  `json:"icon"`
}

type UpdateServiceRequest struct {
	Name        patch.Field[string]  `json:"name"`
	Description patch.Field[string]  `json:"description"`
	DurationMin patch.Field[int]     `json:"duration_minutes"`
	Price       patch.Field[float64] `json:"price"`
	Category    patch.Field[string]  `json:"category"`
	Icon        patch.Field[string]  `json:"icon"`
	IsActive    patch.Field[bool]    `json:"is_active"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Service{}).Where("is_active = ?", true)

	if salonID := c.Query("salon_id"); salonID != "" {
		q = q.Where("salon_id = ?", salonID)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.OK(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var salon models.Salon
	if err := h.db.Where("owner_id = ?", userID).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nome, duração e preço são obrigatórios.")
		return
	}

	service := models.Service{
		SalonID:     salon.ID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Category:    req.Category,
		IsActive:    true,
	}
	if req.Icon != "" {
		service.Icon = req.Icon
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	httpresp.Created(c, "Serviço criado com sucesso.", service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.ownedService(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Corpo da requisição inválido.")
		return
	}

	if req.DurationMin.Set && req.DurationMin.Value <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Duração deve ser maior que zero.")
		return
	}
	if req.Price.Set && req.Price.Value < 0 {
		httperr.BadRequest(c, "invalid_price", "Preço não pode ser negativo.")
		return
	}

	req.Name.Apply(&service.Name)
	req.Description.Apply(&service.Description)
	req.DurationMin.Apply(&service.DurationMin)
	req.Price.Apply(&service.Price)
	req.Category.Apply(&service.Category)
	req.Icon.Apply(&service.Icon)
	req.IsActive.Apply(&service.IsActive)

	if err := h.db.Save(service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	httpresp.OKMessage(c, "Serviço atualizado com sucesso.", service)
}

// Delete deactivates the service; appointments already booked keep their
// denormalized duration and price.
func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.ownedService(c)
	if !ok {
		return
	}

	if err := h.db.Model(service).Update("is_active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Erro ao remover serviço.")
		return
	}

	httpresp.OKMessage(c, "Serviço removido com sucesso.", nil)
}

func (h *ServiceHandler) ownedService(c *gin.Context) (*models.Service, bool) {
	userID, _ := middleware.UserID(c)

	var service models.Service
	if err := h.db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return nil, false
	}

	var salon models.Salon
	if err := h.db.First(&salon, "id = ?", service.SalonID).Error; err != nil ||
		salon.OwnerID != userID {
		httperr.Forbidden(c, "not_salon_owner", "Apenas o dono do salão pode gerenciar serviços.")
		return nil, false
	}

	return &service, true
}
