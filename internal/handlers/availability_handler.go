package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-web/internal/audit"
	"github.com/BruksfildServices01/barberia-web/internal/config"
	domain "github.com/BruksfildServices01/barberia-web/internal/domain/schedule"
	"github.com/BruksfildServices01/barberia-web/internal/httperr"
	"github.com/BruksfildServices01/barberia-web/internal/httpresp"
	"github.com/BruksfildServices01/barberia-web/internal/infra/remote"
	"github.com/BruksfildServices01/barberia-web/internal/metrics"
	"github.com/BruksfildServices01/barberia-web/internal/timezone"
	usecase "github.com/BruksfildServices01/barberia-web/internal/usecase/schedule"
)

// ======================================================
// PUBLICAÇÃO DE DISPONIBILIDADE (barbeiro)
// ======================================================

type AvailabilityHandler struct {
	base  *remote.Client
	cfg   *config.Config
	audit *audit.Dispatcher
}

func NewAvailabilityHandler(
	base *remote.Client,
	cfg *config.Config,
	audit *audit.Dispatcher,
) *AvailabilityHandler {
	return &AvailabilityHandler{base: base, cfg: cfg, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type SlotRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type PublishAvailabilityRequest struct {
	Slots []SlotRequest `json:"slots" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

// Publish recebe a seleção acumulada do barbeiro e grava tudo em UMA
// chamada em lote na API remota. Sucesso devolve a grade já refeita;
// falha não publica nada (o lote é atômico do lado de lá).
func (h *AvailabilityHandler) Publish(c *gin.Context) {
	role := currentRole(c)
	if !role.CanPublish() {
		httperr.Forbidden(c, "role_not_allowed", "Somente barbeiros publicam horários.")
		return
	}

	var req PublishAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}
	if len(req.Slots) == 0 {
		httperr.BadRequest(c, "empty_selection", "Selecione ao menos um horário.")
		return
	}

	selection := domain.NewSelectionSet()
	var anchor time.Time
	for i, slot := range req.Slots {
		if !domain.IsTimeLabel(slot.Time) {
			httperr.BadRequest(c, "invalid_time", "Horário fora da grade.")
			return
		}
		day, err := timezone.ParseDateIn(h.cfg.Timezone, slot.Date)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		// o lote cobre uma única semana: o refetch pós-publicação devolve
		// a grade inteira que acabou de mudar
		if i == 0 {
			anchor = domain.WeekStart(day)
		} else if !domain.WeekStart(day).Equal(anchor) {
			httperr.BadRequest(c, "cross_week_selection", "Publique os horários de uma semana por vez.")
			return
		}
		selection.Toggle(slot.Date, slot.Time)
	}

	barberID := currentUserID(c)

	uc := usecase.NewPublishAvailability(sessionRemote(c, h.base))
	weekly, err := uc.Execute(c.Request.Context(), usecase.PublishAvailabilityInput{
		BarberID: barberID,
		Days:     selection.GroupByDate(),
		Anchor:   anchor,
	})
	if err != nil {
		if code := httperr.BusinessCode(err); code != "" {
			httperr.BadRequest(c, code, "Seleção inválida.")
			return
		}
		respondRemoteError(c, err, "Não foi possível publicar os horários.")
		return
	}

	metrics.IncAvailabilityPublished()
	h.audit.Dispatch(audit.Event{
		UserID: barberID,
		Role:   string(role),
		Action: "availability_published",
		Entity: "availability",
		Metadata: map[string]any{
			"slots": len(req.Slots),
		},
	})

	grid := usecase.BuildGrid(usecase.GetWeeklyGridInput{
		BarberID: barberID,
		Anchor:   anchor,
		Now:      nowInShop(h.cfg),
	}, weekly)

	httpresp.OK(c, grid)
}
