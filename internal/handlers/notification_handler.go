package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/httpresp"
	"github.com/bellagenda/salon-scheduler/internal/middleware"
	"github.com/bellagenda/salon-scheduler/internal/models"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	q := h.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if c.Query("unread_only") == "true" {
		q = q.Where("is_read = ?", false)
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var notifications []models.Notification
	if err := q.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		httperr.Internal(c, "failed_to_list_notifications", "Erro ao listar notificações.")
		return
	}

	var unread int64
	h.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).Count(&unread)

	httpresp.OK(c, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	res := h.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Update("is_read", true)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_mark_read", "Erro ao marcar notificação.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "Notificação não encontrada.")
		return
	}

	httpresp.OKMessage(c, "Notificação marcada como lida.", nil)
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	if err := h.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		httperr.Internal(c, "failed_to_mark_read", "Erro ao marcar notificações.")
		return
	}

	httpresp.OKMessage(c, "Todas as notificações foram marcadas como lidas.", nil)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	res := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Delete(&models.Notification{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_notification", "Erro ao excluir notificação.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "Notificação não encontrada.")
		return
	}

	httpresp.OKMessage(c, "Notificação excluída.", nil)
}
