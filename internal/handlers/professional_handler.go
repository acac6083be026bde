package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domain "github.com/bellagenda/salon-scheduler/internal/domain/appointment"
	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/httpresp"
	"github.com/bellagenda/salon-scheduler/internal/middleware"
	"github.com/bellagenda/salon-scheduler/internal/models"
	"github.com/bellagenda/salon-scheduler/internal/patch"
)

type ProfessionalHandler struct {
	db *gorm.DB
}

func NewProfessionalHandler(db *gorm.DB) *ProfessionalHandler {
	return &ProfessionalHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateProfessionalRequest struct {
	Name                 string   `json:"name" binding:"required"`
	Email                string   `json:"email" binding:"required,email"`
	Phone                string   `json:"phone"`
	Password             string   `json:"password" binding:"required,min=6"`
	Specialty            string   `json:"specialty"`
	Bio                  string   `json:"bio"`
	PhotoURL             string   `json:"photo_url"`
	CommissionPercentage *float64 `json:"commission_percentage"`
	ServiceIDs           []string `json:"service_ids"`
}

type UpdateProfessionalRequest struct {
	Name                 patch.Field[string]   `json:"name"`
	Specialty            patch.Field[string]   `json:"specialty"`
	Bio                  patch.Field[string]   `json:"bio"`
	PhotoURL             patch.Field[string]   `json:"photo_url"`
	CommissionPercentage patch.Field[float64]  `json:"commission_percentage"`
	IsActive             patch.Field[bool]     `json:"is_active"`
	ServiceIDs           patch.Field[[]string] `json:"service_ids"`
}

type ScheduleDayRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsWorking *bool  `json:"is_working"`
}

type DayOffRequest struct {
	DateStart string `json:"date_start" binding:"required"`
	DateEnd   string `json:"date_end" binding:"required"`
	Reason    string `json:"reason"`
}

type UpdateScheduleRequest struct {
	Days    []ScheduleDayRequest `json:"days"`
	DaysOff []DayOffRequest      `json:"days_off"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *ProfessionalHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Professional{}).Where("is_active = ?", true)

	if salonID := c.Query("salon_id"); salonID != "" {
		q = q.Where("salon_id = ?", salonID)
	}
	if serviceID := c.Query("service_id"); serviceID != "" {
		q = q.Joins("JOIN professional_services ps ON ps.professional_id = professionals.id").
			Where("ps.service_id = ?", serviceID)
	}

	var pros []models.Professional
	if err := q.Preload("Services", "is_active = ?", true).
		Order("name ASC").Find(&pros).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.OK(c, pros)
}

func (h *ProfessionalHandler) Get(c *gin.Context) {
	var pro models.Professional
	if err := h.db.Preload("Services", "is_active = ?", true).
		First(&pro, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var schedule []models.ScheduleDay
	h.db.Where("professional_id = ?", pro.ID).Order("day_of_week ASC").Find(&schedule)

	var reviews []models.Review
	h.db.Preload("Client").
		Where("professional_id = ?", pro.ID).
		Order("created_at DESC").Limit(10).Find(&reviews)

	httpresp.OK(c, gin.H{
		"professional": pro,
		"schedule":     schedule,
		"reviews":      reviews,
	})
}

// ======================================================
// CREATE
// ======================================================

// Create onboards a professional under the requester's salon: a login user,
// the professional record, its service links and the default weekly template
// (Mon–Sat 09:00–19:00, Sunday off) land in a single transaction.
func (h *ProfessionalHandler) Create(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var salon models.Salon
	if err := h.db.Where("owner_id = ?", userID).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nome, email e senha são obrigatórios.")
		return
	}

	var exists int64
	h.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&exists)
	if exists > 0 {
		httperr.BadRequest(c, "email_in_use", "Email já cadastrado.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "hash_failure", "Erro ao processar a senha.")
		return
	}

	pro := models.Professional{
		SalonID:   salon.ID,
		Name:      req.Name,
		Specialty: req.Specialty,
		Bio:       req.Bio,
		PhotoURL:  req.PhotoURL,
		IsActive:  true,
	}
	if req.CommissionPercentage != nil {
		pro.CommissionPercentage = *req.CommissionPercentage
	} else {
		pro.CommissionPercentage = 50
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: string(hash),
			Role:         "professional",
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		pro.UserID = user.ID
		if err := tx.Create(&pro).Error; err != nil {
			return err
		}

		if len(req.ServiceIDs) > 0 {
			var services []models.Service
			if err := tx.Where("id IN ? AND salon_id = ?", req.ServiceIDs, salon.ID).
				Find(&services).Error; err != nil {
				return err
			}
			if err := tx.Model(&pro).Association("Services").Replace(services); err != nil {
				return err
			}
		}

		days := defaultSchedule(pro.ID)
		return tx.Create(&days).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	httpresp.Created(c, "Profissional criado com sucesso.", pro)
}

// defaultSchedule is the weekly template seeded at onboarding: Monday through
// Saturday 09:00–19:00, Sunday off.
func defaultSchedule(professionalID string) []models.ScheduleDay {
	days := make([]models.ScheduleDay, 0, 7)
	for dow := 0; dow <= 6; dow++ {
		days = append(days, models.ScheduleDay{
			ProfessionalID: professionalID,
			DayOfWeek:      dow,
			StartTime:      "09:00",
			EndTime:        "19:00",
			IsWorking:      dow != 0,
		})
	}
	return days
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *ProfessionalHandler) Update(c *gin.Context) {
	pro, ok := h.ownedProfessional(c)
	if !ok {
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Corpo da requisição inválido.")
		return
	}

	req.Name.Apply(&pro.Name)
	req.Specialty.Apply(&pro.Specialty)
	req.Bio.Apply(&pro.Bio)
	req.PhotoURL.Apply(&pro.PhotoURL)
	req.CommissionPercentage.Apply(&pro.CommissionPercentage)
	req.IsActive.Apply(&pro.IsActive)

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(pro).Error; err != nil {
			return err
		}
		if req.ServiceIDs.Set {
			var services []models.Service
			if err := tx.Where("id IN ? AND salon_id = ?", req.ServiceIDs.Value, pro.SalonID).
				Find(&services).Error; err != nil {
				return err
			}
			return tx.Model(pro).Association("Services").Replace(services)
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
		return
	}

	httpresp.OKMessage(c, "Profissional atualizado com sucesso.", pro)
}

// Delete deactivates; the row and its history stay.
func (h *ProfessionalHandler) Delete(c *gin.Context) {
	pro, ok := h.ownedProfessional(c)
	if !ok {
		return
	}

	if err := h.db.Model(pro).Update("is_active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_professional", "Erro ao remover profissional.")
		return
	}

	httpresp.OKMessage(c, "Profissional removido com sucesso.", nil)
}

// ======================================================
// SCHEDULE
// ======================================================

func (h *ProfessionalHandler) GetSchedule(c *gin.Context) {
	id := c.Param("id")

	var schedule []models.ScheduleDay
	if err := h.db.Where("professional_id = ?", id).
		Order("day_of_week ASC").Find(&schedule).Error; err != nil {
		httperr.Internal(c, "failed_to_get_schedule", "Erro ao buscar agenda.")
		return
	}

	today := time.Now().Format(domain.DateLayout)
	var daysOff []models.DayOff
	h.db.Where("professional_id = ? AND date_end >= ?", id, today).
		Order("date_start ASC").Find(&daysOff)

	httpresp.OK(c, gin.H{
		"schedule": schedule,
		"days_off": daysOff,
	})
}

func (h *ProfessionalHandler) UpdateSchedule(c *gin.Context) {
	pro, ok := h.managedProfessional(c)
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Corpo da requisição inválido.")
		return
	}

	for _, d := range req.Days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			httperr.BadRequest(c, "invalid_day_of_week", "Dia da semana inválido.")
			return
		}
		if d.StartTime != "" {
			if _, err := domain.ParseClock(d.StartTime); err != nil {
				httperr.BadRequest(c, "invalid_time", "Horário inválido.")
				return
			}
		}
		if d.EndTime != "" {
			if _, err := domain.ParseClock(d.EndTime); err != nil {
				httperr.BadRequest(c, "invalid_time", "Horário inválido.")
				return
			}
		}
	}
	for _, off := range req.DaysOff {
		if _, err := domain.ParseDate(off.DateStart); err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		if _, err := domain.ParseDate(off.DateEnd); err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, d := range req.Days {
			var day models.ScheduleDay
			err := tx.Where("professional_id = ? AND day_of_week = ?", pro.ID, d.DayOfWeek).
				First(&day).Error
			if err == gorm.ErrRecordNotFound {
				day = models.ScheduleDay{ProfessionalID: pro.ID, DayOfWeek: d.DayOfWeek}
			} else if err != nil {
				return err
			}

			if d.StartTime != "" {
				day.StartTime = d.StartTime
			}
			if d.EndTime != "" {
				day.EndTime = d.EndTime
			}
			if d.IsWorking != nil {
				day.IsWorking = *d.IsWorking
			}

			if err := tx.Save(&day).Error; err != nil {
				return err
			}
		}

		for _, off := range req.DaysOff {
			dayOff := models.DayOff{
				ProfessionalID: pro.ID,
				DateStart:      off.DateStart,
				DateEnd:        off.DateEnd,
				Reason:         off.Reason,
			}
			if err := tx.Create(&dayOff).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_schedule", "Erro ao atualizar agenda.")
		return
	}

	httpresp.OKMessage(c, "Agenda atualizada com sucesso.", nil)
}

// ======================================================
// STATS
// ======================================================

func (h *ProfessionalHandler) Stats(c *gin.Context) {
	pro, ok := h.managedProfessional(c)
	if !ok {
		return
	}
	id := pro.ID

	type statusCount struct {
		Status string
		Total  int64
	}
	var counts []statusCount
	h.db.Model(&models.Appointment{}).
		Select("status, COUNT(*) AS total").
		Where("professional_id = ?", id).
		Group("status").Scan(&counts)

	byStatus := map[string]int64{}
	var total int64
	for _, sc := range counts {
		byStatus[sc.Status] = sc.Total
		total += sc.Total
	}

	var revenue float64
	h.db.Model(&models.Appointment{}).
		Where("professional_id = ? AND status = ?", id, string(domain.StatusCompleted)).
		Select("COALESCE(SUM(price), 0)").Scan(&revenue)

	httpresp.OK(c, gin.H{
		"total_appointments": total,
		"by_status":          byStatus,
		"completed_revenue":  revenue,
		"commission_due":     revenue * pro.CommissionPercentage / 100,
		"average_rating":     pro.AverageRating,
		"total_reviews":      pro.TotalReviews,
	})
}

// ======================================================
// OWNERSHIP
// ======================================================

// ownedProfessional resolves :id and enforces that the requester owns the
// salon the professional belongs to. Writes the error response on failure.
func (h *ProfessionalHandler) ownedProfessional(c *gin.Context) (*models.Professional, bool) {
	userID, _ := middleware.UserID(c)

	var pro models.Professional
	if err := h.db.First(&pro, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return nil, false
	}

	var salon models.Salon
	if err := h.db.First(&salon, "id = ?", pro.SalonID).Error; err != nil ||
		salon.OwnerID != userID {
		httperr.Forbidden(c, "not_salon_owner", "Apenas o dono do salão pode gerenciar profissionais.")
		return nil, false
	}

	return &pro, true
}

// managedProfessional additionally accepts the professional managing their
// own record, used by schedule and stats routes.
func (h *ProfessionalHandler) managedProfessional(c *gin.Context) (*models.Professional, bool) {
	userID, _ := middleware.UserID(c)

	var pro models.Professional
	if err := h.db.First(&pro, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return nil, false
	}

	if pro.UserID == userID {
		return &pro, true
	}

	var salon models.Salon
	if err := h.db.First(&salon, "id = ?", pro.SalonID).Error; err == nil &&
		salon.OwnerID == userID {
		return &pro, true
	}

	httperr.Forbidden(c, "not_allowed", "Sem permissão para gerenciar esta agenda.")
	return nil, false
}
