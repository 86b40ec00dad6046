package schedule

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barberia-web/internal/domain/schedule"
	"github.com/BruksfildServices01/barberia-web/internal/httperr"
)

// ======================================================
// PUBLICAR DISPONIBILIDADE (barbeiro)
// ======================================================

type PublishAvailability struct {
	remote domain.Remote
}

func NewPublishAvailability(remote domain.Remote) *PublishAvailability {
	return &PublishAvailability{remote: remote}
}

// O lote chega pronto: quem agrupa a seleção e a limpa depois do sucesso
// é o chamador, dono do staging. O use case nunca toca na seleção.
type PublishAvailabilityInput struct {
	BarberID string
	Days     []domain.DayTimeSlots
	Anchor   time.Time
}

// Execute publica o lote em UMA chamada e refaz o fetch da mesma semana.
// Falha não publica nada (o lote é atômico do lado de lá).
func (uc *PublishAvailability) Execute(
	ctx context.Context,
	in PublishAvailabilityInput,
) (domain.WeeklyAvailability, error) {

	if len(in.Days) == 0 {
		return nil, httperr.ErrBusiness("empty_selection")
	}

	if err := uc.remote.SetAvailability(ctx, in.BarberID, in.Days); err != nil {
		return nil, err
	}

	start := domain.WeekStart(in.Anchor)
	end := domain.WeekEnd(in.Anchor)
	return uc.remote.RefreshWeeklyAvailability(ctx, in.BarberID, start, end)
}
