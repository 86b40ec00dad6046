package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-web/internal/audit"
	"github.com/BruksfildServices01/barberia-web/internal/config"
	"github.com/BruksfildServices01/barberia-web/internal/httperr"
	"github.com/BruksfildServices01/barberia-web/internal/httpresp"
	"github.com/BruksfildServices01/barberia-web/internal/infra/remote"
	"github.com/BruksfildServices01/barberia-web/internal/metrics"
	usecase "github.com/BruksfildServices01/barberia-web/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	base  *remote.Client
	cfg   *config.Config
	audit *audit.Dispatcher
}

func NewAppointmentHandler(
	base *remote.Client,
	cfg *config.Config,
	audit *audit.Dispatcher,
) *AppointmentHandler {
	return &AppointmentHandler{base: base, cfg: cfg, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID string `json:"barberId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Service  string `json:"service" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

// Create reserva um horário para o cliente logado. A célula precisa
// classificar como available AGORA: passado, reservado e indisponível
// são recusados antes de qualquer chamada de escrita. Confirmada a
// reserva, a resposta manda o front para o perfil após a contagem.
func (h *AppointmentHandler) Create(c *gin.Context) {
	role := currentRole(c)
	if !role.CanBook() {
		httperr.Forbidden(c, "role_not_allowed", "Somente clientes reservam horários.")
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	clientID := currentUserID(c)

	uc := usecase.NewRequestBooking(sessionRemote(c, h.base))
	confirmation, err := uc.Execute(c.Request.Context(), usecase.RequestBookingInput{
		ClientID: clientID,
		BarberID: req.BarberID,
		Date:     req.Date,
		Time:     req.Time,
		Service:  req.Service,
		Now:      nowInShop(h.cfg),
	})
	if err != nil {
		if code := httperr.BusinessCode(err); code != "" {
			metrics.IncBookingRequested("rejected")
			httperr.BadRequest(c, code, "Este horário não está mais disponível.")
			return
		}
		metrics.IncBookingRequested("error")
		respondRemoteError(c, err, "Não foi possível concluir a reserva.")
		return
	}

	metrics.IncBookingRequested("confirmed")
	h.audit.Dispatch(audit.Event{
		UserID:   clientID,
		Role:     string(role),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: confirmation.Appointment.ID,
		Metadata: map[string]any{
			"barberId": req.BarberID,
			"date":     req.Date,
			"time":     req.Time,
		},
	})

	httpresp.Created(c, gin.H{
		"appointment":       confirmation.Appointment,
		"redirect_to":       confirmation.RedirectTo,
		"redirect_after_ms": confirmation.RedirectIn.Milliseconds(),
	})
}

// ======================================================
// LIST
// ======================================================

// List devolve os agendamentos do usuário logado; barbeiro enxerga a
// própria agenda, cliente o próprio histórico. Resposta por sessão,
// nunca cacheada.
func (h *AppointmentHandler) List(c *gin.Context) {
	aps, err := sessionRemote(c, h.base).MyAppointments(c.Request.Context())
	if err != nil {
		respondRemoteError(c, err, "Não foi possível carregar os agendamentos.")
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		httperr.BadRequest(c, "missing_id", "Agendamento inválido.")
		return
	}

	if err := sessionRemote(c, h.base).CancelAppointment(c.Request.Context(), id); err != nil {
		respondRemoteError(c, err, "Não foi possível cancelar o agendamento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Role:     string(currentRole(c)),
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: id,
	})

	httpresp.OK(c, gin.H{"status": "cancelled", "id": id})
}
