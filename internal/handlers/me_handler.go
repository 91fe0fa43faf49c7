package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/middleware"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Studio").
		First(&user, actor.UserID).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   userView(&user),
		"studio": studioView(&user.Studio),
	})
}

// --------- Shared views ---------

func userView(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"phone":     u.Phone,
		"role":      u.Role,
		"studio_id": u.StudioID,
	}
}

func studioView(s *models.Studio) gin.H {
	return gin.H{
		"id":                  s.ID,
		"name":                s.Name,
		"slug":                s.Slug,
		"phone":               s.Phone,
		"address":             s.Address,
		"timezone":            s.Timezone,
		"min_advance_minutes": s.MinAdvanceMinutes,
	}
}

// createUser writes the error response itself and returns it so callers
// only need to stop.
func createUser(
	c *gin.Context,
	db *gorm.DB,
	studioID uint,
	role domain.Role,
	name, email, password, phone string,
) (*models.User, error) {

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro interno.")
		return nil, err
	}

	user := models.User{
		StudioID:     studioID,
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        phone,
		Role:         string(role),
	}

	if err := db.WithContext(c.Request.Context()).Omit("Studio").Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Write(c, http.StatusConflict, "email_already_exists", "Este e-mail já está cadastrado.")
			return nil, err
		}
		httperr.Internal(c, "failed_to_create_user", "Erro interno.")
		return nil, err
	}

	return &user, nil
}
