package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-scheduler/internal/httperr"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves what a visitor needs before signing up: the
// studio and who works there.
type PublicHandler struct {
	db *gorm.DB
}

func NewPublicHandler(db *gorm.DB) *PublicHandler {
	return &PublicHandler{db: db}
}

func (h *PublicHandler) GetStudio(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))

	var studio models.Studio
	if err := h.db.WithContext(c.Request.Context()).
		Where("slug = ?", slug).
		First(&studio).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "studio_not_found", "Estúdio não encontrado.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	artists, err := listArtists(c, h.db, studio.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_artists", "Erro ao listar artistas.")
		return
	}

	out := make([]gin.H, 0, len(artists))
	for _, a := range artists {
		out = append(out, gin.H{"id": a.ID, "name": a.Name})
	}

	c.JSON(http.StatusOK, gin.H{
		"studio": gin.H{
			"name":     studio.Name,
			"slug":     studio.Slug,
			"phone":    studio.Phone,
			"address":  studio.Address,
			"timezone": studio.Timezone,
		},
		"artists": out,
	})
}
