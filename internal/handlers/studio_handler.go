package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/studio-scheduler/internal/middleware"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
	"github.com/BruksfildServices01/studio-scheduler/internal/timezone"
	"github.com/BruksfildServices01/studio-scheduler/internal/validators"
)

// StudioHandler serves the manager's studio settings and staff roster.
type StudioHandler struct {
	db          *gorm.DB
	checkDomain validators.DomainCheck
}

func NewStudioHandler(db *gorm.DB) *StudioHandler {
	return &StudioHandler{db: db, checkDomain: validators.IsEmailDomainValid}
}

type UpdateStudioRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

type CreateArtistRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

func (h *StudioHandler) load(c *gin.Context) (*models.Studio, bool) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	var studio models.Studio
	if err := h.db.WithContext(c.Request.Context()).First(&studio, studioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "studio_not_found", "Estúdio não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_studio", "Erro ao buscar dados do estúdio.")
		return nil, false
	}
	return &studio, true
}

func (h *StudioHandler) GetStudio(c *gin.Context) {
	studio, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, studioView(studio))
}

func (h *StudioHandler) UpdateStudio(c *gin.Context) {
	studio, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		studio.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		studio.Timezone = *req.Timezone
	}
	if req.Name != nil {
		studio.Name = *req.Name
	}
	if req.Phone != nil {
		studio.Phone = *req.Phone
	}
	if req.Address != nil {
		studio.Address = *req.Address
	}

	if err := h.db.WithContext(c.Request.Context()).Save(studio).Error; err != nil {
		httperr.Internal(c, "failed_to_update_studio", "Erro ao salvar as configurações do estúdio.")
		return
	}

	httpresp.OK(c, studioView(studio))
}

func (h *StudioHandler) ListArtists(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	artists, err := listArtists(c, h.db, studioID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_artists", "Erro ao listar artistas.")
		return
	}

	out := make([]gin.H, 0, len(artists))
	for i := range artists {
		out = append(out, userView(&artists[i]))
	}
	httpresp.List(c, out)
}

// CreateArtist adds an artist account to the manager's studio.
func (h *StudioHandler) CreateArtist(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	var req CreateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !validators.IsEmailSyntaxValid(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}
	if h.checkDomain != nil && !h.checkDomain(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	user, err := createUser(c, h.db, studioID, domain.RoleArtist, req.Name, email, req.Password, req.Phone)
	if err != nil {
		return
	}

	httpresp.Created(c, userView(user))
}

func listArtists(c *gin.Context, db *gorm.DB, studioID uint) ([]models.User, error) {
	var artists []models.User
	err := db.WithContext(c.Request.Context()).
		Where("studio_id = ? AND role = ?", studioID, string(domain.RoleArtist)).
		Order("name ASC").
		Find(&artists).Error
	return artists, err
}
