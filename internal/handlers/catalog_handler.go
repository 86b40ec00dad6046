package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-web/internal/config"
	domain "github.com/BruksfildServices01/barberia-web/internal/domain/schedule"
	"github.com/BruksfildServices01/barberia-web/internal/httpresp"
	"github.com/BruksfildServices01/barberia-web/internal/models"
)

// ======================================================
// CATÁLOGO
// ======================================================

// CatalogHandler serve os dados fixos que o front precisa para montar a
// tela: serviços oferecidos e o formato da grade. Nada disso vem da API
// remota; é contrato do produto.
type CatalogHandler struct {
	cfg *config.Config
}

func NewCatalogHandler(cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{cfg: cfg}
}

func (h *CatalogHandler) Services(c *gin.Context) {
	httpresp.List(c, models.Services)
}

// Shop descreve a grade de atendimento: fuso, janelas de meia hora e os
// horários do dia, do primeiro ao último.
func (h *CatalogHandler) Shop(c *gin.Context) {
	httpresp.OK(c, gin.H{
		"timezone":     h.cfg.Timezone,
		"slot_minutes": 30,
		"opens_at":     domain.TimeLabels[0],
		"last_slot":    domain.TimeLabels[len(domain.TimeLabels)-1],
		"time_slots":   domain.TimeLabels,
	})
}
