package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-scheduler/internal/config"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
	"github.com/BruksfildServices01/studio-scheduler/internal/timezone"
	"github.com/BruksfildServices01/studio-scheduler/internal/validators"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	db          *gorm.DB
	config      *config.Config
	checkDomain validators.DomainCheck
	now         func() time.Time
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		db:          db,
		config:      cfg,
		checkDomain: validators.IsEmailDomainValid,
		now:         time.Now,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	StudioName     string `json:"studio_name" binding:"required"`
	StudioSlug     string `json:"studio_slug" binding:"required"`
	StudioPhone    string `json:"studio_phone"`
	StudioAddress  string `json:"studio_address"`
	StudioTimezone string `json:"studio_timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type RegisterClientRequest struct {
	StudioSlug string `json:"studio_slug" binding:"required"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register opens a new studio with its manager account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.StudioSlug))

	tz := strings.TrimSpace(req.StudioTimezone)
	if tz == "" {
		tz = h.config.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
		return
	}

	email, ok := h.validEmail(c, req.Email)
	if !ok {
		return
	}

	var count int64
	if err := h.db.Model(&models.Studio{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}
	if count > 0 {
		httperr.Write(c, http.StatusConflict, "slug_already_exists", "Este endereço de estúdio já está em uso.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro interno.")
		return
	}

	studio := models.Studio{
		Name:     strings.TrimSpace(req.StudioName),
		Slug:     slug,
		Phone:    req.StudioPhone,
		Address:  req.StudioAddress,
		Timezone: tz,
	}
	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         string(domain.RoleManager),
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&studio).Error; err != nil {
			return err
		}
		user.StudioID = studio.ID
		return tx.Omit("Studio").Create(&user).Error
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Write(c, http.StatusConflict, "email_already_exists", "Este e-mail já está cadastrado.")
			return
		}
		httperr.Internal(c, "failed_to_create_studio", "Erro interno.")
		return
	}

	h.respondWithToken(c, http.StatusCreated, &user, &studio)
}

// RegisterClient creates a client account inside an existing studio.
func (h *AuthHandler) RegisterClient(c *gin.Context) {
	var req RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email, ok := h.validEmail(c, req.Email)
	if !ok {
		return
	}

	var studio models.Studio
	if err := h.db.WithContext(c.Request.Context()).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(req.StudioSlug))).
		First(&studio).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "studio_not_found", "Estúdio não encontrado.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	user, err := createUser(c, h.db, studio.ID, domain.RoleClient, req.Name, email, req.Password, req.Phone)
	if err != nil {
		return
	}

	h.respondWithToken(c, http.StatusCreated, user, &studio)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Studio").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	h.respondWithToken(c, http.StatusOK, &user, &user.Studio)
}

func (h *AuthHandler) validEmail(c *gin.Context, raw string) (string, bool) {
	email := validators.NormalizeEmail(raw)
	if !validators.IsEmailSyntaxValid(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return "", false
	}
	if h.checkDomain != nil && !h.checkDomain(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return "", false
	}
	return email, true
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User, studio *models.Studio) {
	token, err := h.generateToken(user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro interno.")
		return
	}

	c.JSON(status, gin.H{
		"user":   userView(user),
		"studio": studioView(studio),
		"token":  token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	now := h.now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"studioId": user.StudioID,
		"role":     user.Role,
		"exp":      now.Add(tokenTTL).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
