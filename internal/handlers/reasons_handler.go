package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/studio-scheduler/internal/reasons"
)

type ReasonsHandler struct {
	catalog *reasons.Catalog
}

func NewReasonsHandler(catalog *reasons.Catalog) *ReasonsHandler {
	return &ReasonsHandler{catalog: catalog}
}

// List returns every vocabulary with the "other" entry appended.
func (h *ReasonsHandler) List(c *gin.Context) {
	httpresp.OK(c, reasons.Catalog{
		Cancellation: h.catalog.Cancellation.WithOther(),
		Rejection:    h.catalog.Rejection.WithOther(),
		Incident:     h.catalog.Incident.WithOther(),
	})
}
