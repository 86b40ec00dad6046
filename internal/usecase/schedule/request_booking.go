package schedule

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barberia-web/internal/domain/schedule"
	"github.com/BruksfildServices01/barberia-web/internal/httperr"
	"github.com/BruksfildServices01/barberia-web/internal/models"
)

// ======================================================
// RESERVAR HORÁRIO (cliente)
// ======================================================

// ConfirmationDelay é quanto tempo a confirmação fica na tela antes do
// redirecionamento para o perfil.
const ConfirmationDelay = 3 * time.Second

type RequestBooking struct {
	remote domain.Remote
}

func NewRequestBooking(remote domain.Remote) *RequestBooking {
	return &RequestBooking{remote: remote}
}

type RequestBookingInput struct {
	ClientID string
	BarberID string
	Date     string
	Time     string
	Service  string
	Now      time.Time
}

type BookingConfirmation struct {
	Appointment *models.Appointment       `json:"appointment"`
	Weekly      domain.WeeklyAvailability `json:"-"`
	RedirectTo  string                    `json:"redirect_to"`
	RedirectIn  time.Duration             `json:"-"`
}

// Execute só dispara a reserva quando a célula classifica como available
// neste exato momento — reservado, passado ou indisponível nunca viram
// pedido. A criação é UMA chamada; depois dela a grade inteira é refeita
// (nada de patch otimista: quem resolve conflito é o servidor).
func (uc *RequestBooking) Execute(
	ctx context.Context,
	in RequestBookingInput,
) (*BookingConfirmation, error) {

	if !domain.IsTimeLabel(in.Time) {
		return nil, httperr.ErrBusiness("invalid_time")
	}
	if !models.IsService(in.Service) {
		return nil, httperr.ErrBusiness("invalid_service")
	}

	anchor, err := time.ParseInLocation("2006-01-02", in.Date, in.Now.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start := domain.WeekStart(anchor)
	end := domain.WeekEnd(anchor)

	weekly, err := uc.remote.WeeklyAvailability(ctx, in.BarberID, start, end)
	if err != nil {
		return nil, err
	}

	if domain.Classify(in.Date, in.Time, weekly, nil, in.Now) != domain.SlotAvailable {
		return nil, httperr.ErrBusiness("slot_not_available")
	}

	ap, err := uc.remote.CreateAppointment(ctx, domain.CreateAppointmentInput{
		ClientID: in.ClientID,
		BarberID: in.BarberID,
		Date:     in.Date,
		Time:     in.Time,
		Service:  in.Service,
		Status:   models.StatusScheduled,
	})
	if err != nil {
		return nil, err
	}

	refreshed, err := uc.remote.RefreshWeeklyAvailability(ctx, in.BarberID, start, end)
	if err != nil {
		// a reserva já existe; grade obsoleta é recuperável por retry
		refreshed = weekly
	}

	return &BookingConfirmation{
		Appointment: ap,
		Weekly:      refreshed,
		RedirectTo:  "/profile",
		RedirectIn:  ConfirmationDelay,
	}, nil
}
