package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bellagenda/salon-scheduler/internal/config"
	"github.com/bellagenda/salon-scheduler/internal/domain/identity"
	"github.com/bellagenda/salon-scheduler/internal/httperr"
	"github.com/bellagenda/salon-scheduler/internal/httpresp"
	"github.com/bellagenda/salon-scheduler/internal/middleware"
	"github.com/bellagenda/salon-scheduler/internal/models"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`

	// Salon-owner registration also creates the salon.
	SalonName    string `json:"salon_name"`
	SalonAddress string `json:"salon_address"`
	SalonNiche   string `json:"salon_niche"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	role, err := identity.Parse(req.Role)
	if err != nil || role == identity.RoleProfessional {
		// Professionals are onboarded by their salon, not self-registered.
		httperr.BadRequest(c, "invalid_role", "Tipo de conta inválido.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "E-mail já cadastrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao registrar.")
		return
	}

	user := models.User{
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: string(hashed),
		Name:         req.Name,
		Role:         role.String(),
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		switch role {
		case identity.RoleClient:
			return tx.Create(&models.Client{
				UserID: user.ID,
				Name:   req.Name,
				Phone:  req.Phone,
			}).Error
		case identity.RoleSalon:
			if req.SalonName == "" || req.SalonAddress == "" {
				return httperr.ErrBusiness("missing_salon_fields")
			}
			salon := models.Salon{
				OwnerID: user.ID,
				Name:    req.SalonName,
				Address: req.SalonAddress,
				Phone:   req.Phone,
				Email:   email,
			}
			if req.SalonNiche != "" {
				salon.Niche = req.SalonNiche
			}
			return tx.Create(&salon).Error
		case identity.RoleProfessional, identity.RoleUnknown:
		}
		return nil
	})

	if err != nil {
		if httperr.IsBusiness(err, "missing_salon_fields") {
			httperr.BadRequest(c, "missing_salon_fields", "Nome e endereço do salão são obrigatórios.")
			return
		}
		httperr.Internal(c, "failed_to_register", "Erro ao registrar.")
		return
	}

	h.issueTokens(c, &user, http.StatusCreated)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha incorretos.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha incorretos.")
		return
	}

	h.issueTokens(c, &user, http.StatusOK)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var stored models.RefreshToken
	if err := h.db.Where("token = ?", req.RefreshToken).First(&stored).Error; err != nil {
		httperr.Unauthorized(c, "invalid_refresh_token", "Sessão expirada, faça login novamente.")
		return
	}

	if time.Now().After(stored.ExpiresAt) {
		h.db.Delete(&stored)
		httperr.Unauthorized(c, "expired_refresh_token", "Sessão expirada, faça login novamente.")
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		httperr.Unauthorized(c, "invalid_refresh_token", "Sessão expirada, faça login novamente.")
		return
	}

	// Rotate: one refresh token per use.
	h.db.Delete(&stored)
	h.issueTokens(c, &user, http.StatusOK)
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	data := gin.H{"user": user}

	role, _ := identity.Parse(user.Role)
	switch role {
	case identity.RoleClient:
		var client models.Client
		if err := h.db.Where("user_id = ?", user.ID).First(&client).Error; err == nil {
			data["client"] = client
		}
	case identity.RoleSalon:
		var salon models.Salon
		if err := h.db.Where("owner_id = ?", user.ID).First(&salon).Error; err == nil {
			data["salon"] = salon
		}
	case identity.RoleProfessional:
		var prof models.Professional
		if err := h.db.Where("user_id = ?", user.ID).First(&prof).Error; err == nil {
			data["professional"] = prof
		}
	case identity.RoleUnknown:
	}

	httpresp.OK(c, data)
}

// --------- Tokens ---------

func (h *AuthHandler) issueTokens(c *gin.Context, user *models.User, status int) {
	access, err := h.generateAccessToken(user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	refresh := models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := h.db.Create(&refresh).Error; err != nil {
		httperr.Internal(c, "failed_to_store_refresh_token", "Erro ao gerar token.")
		return
	}

	c.JSON(status, httpresp.Envelope{
		Success: true,
		Data: gin.H{
			"user":          user,
			"token":         access,
			"refresh_token": refresh.Token,
		},
	})
}

func (h *AuthHandler) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
