package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/bellagenda/salon-scheduler/internal/domain/appointment"
	"github.com/bellagenda/salon-scheduler/internal/domain/identity"
	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/httpresp"
	"github.com/bellagenda/salon-scheduler/internal/middleware"
	"github.com/bellagenda/salon-scheduler/internal/models"
	ucAppointment "github.com/bellagenda/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	createUC       *ucAppointment.CreateAppointment
	cancelUC       *ucAppointment.CancelAppointment
	rescheduleUC   *ucAppointment.RescheduleAppointment
	startUC        *ucAppointment.StartAppointment
	completeUC     *ucAppointment.CompleteAppointment
	noShowUC       *ucAppointment.NoShowAppointment
	availabilityUC *ucAppointment.GetAvailability

	repo domain.Repository
}

func NewAppointmentHandler(
	db *gorm.DB,
	repo domain.Repository,
	createUC *ucAppointment.CreateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	startUC *ucAppointment.StartAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	noShowUC *ucAppointment.NoShowAppointment,
	availabilityUC *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		repo:           repo,
		createUC:       createUC,
		cancelUC:       cancelUC,
		rescheduleUC:   rescheduleUC,
		startUC:        startUC,
		completeUC:     completeUC,
		noShowUC:       noShowUC,
		availabilityUC: availabilityUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	SalonID        string `json:"salon_id" binding:"required"`
	ProfessionalID string `json:"professional_id" binding:"required"`
	ServiceID      string `json:"service_id" binding:"required"`
	ScheduledDate  string `json:"scheduled_date" binding:"required"`
	ScheduledTime  string `json:"scheduled_time" binding:"required"`
	ClientNotes    string `json:"client_notes"`

	// Guest booking fallback when the requester has no client profile.
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
}

type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellation_reason"`
}

type RescheduleAppointmentRequest struct {
	ScheduledDate string `json:"scheduled_date" binding:"required"`
	ScheduledTime string `json:"scheduled_time" binding:"required"`
}

type CompleteAppointmentRequest struct {
	ProfessionalNotes string `json:"professional_notes"`
}

// ======================================================
// AVAILABLE SLOTS
// ======================================================

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	slots, err := h.availabilityUC.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		ProfessionalID: c.Param("professionalId"),
		Date:           c.Param("date"),
		ServiceID:      c.Query("service_id"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OK(c, slots)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Todos os campos obrigatórios devem ser preenchidos.")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateInput{
		SalonID:         req.SalonID,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		ScheduledDate:   req.ScheduledDate,
		ScheduledTime:   req.ScheduledTime,
		ClientNotes:     req.ClientNotes,
		RequesterUserID: userID,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.Created(c, "Agendamento criado com sucesso.", created)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	filter := domain.ListFilter{
		Status:         c.Query("status"),
		Date:           c.Query("date"),
		FromDate:       c.Query("from_date"),
		ToDate:         c.Query("to_date"),
		ProfessionalID: c.Query("professional_id"),
		SalonID:        c.Query("salon_id"),
		ClientID:       c.Query("client_id"),
	}

	// The requester's role pins the listing to their own records before any
	// query filter applies.
	userID, _ := middleware.UserID(c)
	role, _ := middleware.UserRole(c)

	switch role {
	case identity.RoleClient:
		var client models.Client
		if err := h.db.Where("user_id = ?", userID).First(&client).Error; err == nil {
			filter.ClientID = client.ID
		}
	case identity.RoleProfessional:
		var prof models.Professional
		if err := h.db.Where("user_id = ?", userID).First(&prof).Error; err == nil {
			filter.ProfessionalID = prof.ID
		}
	case identity.RoleSalon:
		var salon models.Salon
		if err := h.db.Where("owner_id = ?", userID).First(&salon).Error; err == nil {
			filter.SalonID = salon.ID
		}
	case identity.RoleUnknown:
	}

	aps, err := h.repo.ListAppointments(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.OK(c, aps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.repo.GetAppointmentDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.NotFound(c, httperr.CodeAppointmentNotFound, "Agendamento não encontrado.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	if req.CancellationReason == "" {
		httperr.BadRequest(c, "missing_cancellation_reason", "Motivo do cancelamento é obrigatório.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), c.Param("id"), req.CancellationReason)
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OKMessage(c, "Agendamento cancelado com sucesso.", ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nova data e horário são obrigatórios.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), c.Param("id"), req.ScheduledDate, req.ScheduledTime)
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OKMessage(c, "Agendamento remarcado com sucesso.", ap)
}

func (h *AppointmentHandler) Start(c *gin.Context) {
	ap, err := h.startUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OKMessage(c, "Atendimento iniciado.", ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	var req CompleteAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.completeUC.Execute(c.Request.Context(), c.Param("id"), req.ProfessionalNotes)
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OKMessage(c, "Atendimento concluído.", ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	_, err := h.noShowUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OKMessage(c, "Marcado como não compareceu.", nil)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func (h *AppointmentHandler) writeError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, httperr.CodeAppointmentNotFound):
		httperr.NotFound(c, httperr.CodeAppointmentNotFound, "Agendamento não encontrado.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
	case httperr.IsBusiness(err, "salon_not_found"):
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
	case httperr.IsBusiness(err, "professional_not_found"):
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
	case httperr.IsBusiness(err, httperr.CodeTimeConflict):
		httperr.BadRequest(c, httperr.CodeTimeConflict, "Horário não disponível.")
	case httperr.IsBusiness(err, httperr.CodeInvalidState):
		httperr.BadRequest(c, httperr.CodeInvalidState, "Transição de status não permitida.")
	case httperr.IsBusiness(err, "already_cancelled"):
		httperr.BadRequest(c, "already_cancelled", "Agendamento já está cancelado.")
	case httperr.IsBusiness(err, "missing_cancellation_reason"):
		httperr.BadRequest(c, "missing_cancellation_reason", "Motivo do cancelamento é obrigatório.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
	case httperr.IsBusiness(err, "invalid_date"):
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
	case httperr.IsBusiness(err, "client_required"):
		httperr.BadRequest(c, "client_required", "Dados do cliente são obrigatórios.")
	default:
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}
