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

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type UpdateClientRequest struct {
	Name    patch.Field[string] `json:"name"`
	Phone   patch.Field[string] `json:"phone"`
	Address patch.Field[string] `json:"address"`
	Notes   patch.Field[string] `json:"notes"`
}

// List returns the clients who have booked at the requester's salon at least
// once, most recent first.
func (h *ClientHandler) List(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var salon models.Salon
	if err := h.db.Where("owner_id = ?", userID).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	var clients []models.Client
	err := h.db.
		Joins("JOIN appointments a ON a.client_id = clients.id").
		Where("a.salon_id = ?", salon.ID).
		Group("clients.id").
		Order("MAX(a.created_at) DESC").
		Find(&clients).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.OK(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	var client models.Client
	if err := h.db.First(&client, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	httpresp.OK(c, client)
}

// UpdateMe edits the requester's own client profile.
func (h *ClientHandler) UpdateMe(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var client models.Client
	if err := h.db.Where("user_id = ?", userID).First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Perfil de cliente não encontrado.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Corpo da requisição inválido.")
		return
	}

	req.Name.Apply(&client.Name)
	req.Phone.Apply(&client.Phone)
	req.Address.Apply(&client.Address)
	req.Notes.Apply(&client.Notes)

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	httpresp.OKMessage(c, "Perfil atualizado com sucesso.", client)
}
