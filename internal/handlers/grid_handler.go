package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-web/internal/config"
	domain "github.com/BruksfildServices01/barberia-web/internal/domain/schedule"
	"github.com/BruksfildServices01/barberia-web/internal/httperr"
	"github.com/BruksfildServices01/barberia-web/internal/httpresp"
	"github.com/BruksfildServices01/barberia-web/internal/infra/remote"
	usecase "github.com/BruksfildServices01/barberia-web/internal/usecase/schedule"
)

// ======================================================
// GRADE SEMANAL
// ======================================================

type GridHandler struct {
	base *remote.Client
	cfg  *config.Config
}

func NewGridHandler(base *remote.Client, cfg *config.Config) *GridHandler {
	return &GridHandler{base: base, cfg: cfg}
}

// Weekly monta a grade da semana de um barbeiro, célula por célula já
// classificada (past, reserved, available, unavailable).
//
// Query params:
//
//	barberId — obrigatório para cliente/admin; barbeiro omite e recebe a própria grade
//	date     — qualquer dia da semana desejada (yyyy-MM-dd); vazio usa a semana atual
//	weekday  — filtro opcional por nome do dia (segunda-feira ou seg)
func (h *GridHandler) Weekly(c *gin.Context) {
	barberID := c.Query("barberId")
	role := currentRole(c)

	if barberID == "" {
		if role != domain.RoleBarber {
			httperr.BadRequest(c, "missing_barber_id", "Informe o barbeiro.")
			return
		}
		barberID = currentUserID(c)
	}

	anchor, err := parseAnchor(h.cfg, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	uc := usecase.NewGetWeeklyGrid(sessionRemote(c, h.base))
	grid, err := uc.Execute(c.Request.Context(), usecase.GetWeeklyGridInput{
		BarberID: barberID,
		Anchor:   anchor,
		Weekday:  c.Query("weekday"),
		Now:      nowInShop(h.cfg),
	})
	if err != nil {
		respondRemoteError(c, err, "Não foi possível carregar a agenda.")
		return
	}

	httpresp.OK(c, grid)
}
