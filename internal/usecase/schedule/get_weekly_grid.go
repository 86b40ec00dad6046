package schedule

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barberia-web/internal/domain/schedule"
	"github.com/BruksfildServices01/barberia-web/internal/dto"
)

type GetWeeklyGrid struct {
	remote domain.Remote
}

func NewGetWeeklyGrid(remote domain.Remote) *GetWeeklyGrid {
	return &GetWeeklyGrid{remote: remote}
}

type GetWeeklyGridInput struct {
	BarberID string

	// Qualquer dia dentro da semana desejada; a segunda-feira é recalculada
	Anchor time.Time

	// Filtro opcional de dia da semana (projeção, não altera os dados)
	Weekday string

	// Seleção em staging do barbeiro; nil para cliente/admin
	Selection *domain.SelectionSet

	Now time.Time
}

func (uc *GetWeeklyGrid) Execute(
	ctx context.Context,
	in GetWeeklyGridInput,
) (*dto.WeeklyGridDTO, error) {

	start := domain.WeekStart(in.Anchor)
	end := domain.WeekEnd(in.Anchor)

	weekly, err := uc.remote.WeeklyAvailability(ctx, in.BarberID, start, end)
	if err != nil {
		return nil, err
	}

	return BuildGrid(in, weekly), nil
}

// BuildGrid monta o DTO a partir de uma WeeklyAvailability já em mãos.
// Separado do fetch para a sessão reaproveitar com dados obsoletos quando
// o refetch falha.
func BuildGrid(in GetWeeklyGridInput, weekly domain.WeeklyAvailability) *dto.WeeklyGridDTO {
	week := domain.ComputeWeekDays(in.Anchor)
	days := domain.FilterByWeekday(week, in.Weekday)

	out := &dto.WeeklyGridDTO{
		BarberID:  in.BarberID,
		WeekStart: domain.DateOf(domain.WeekStart(in.Anchor)),
		WeekEnd:   domain.DateOf(domain.WeekEnd(in.Anchor)),
		Days:      make([]dto.GridDayDTO, 0, len(days)),
	}

	for _, day := range days {
		d := dto.GridDayDTO{
			Date:         day.Date,
			DayName:      day.DayName,
			ShortDayName: day.ShortDayName,
			DayNumber:    day.DayNumber,
			Slots:        make([]dto.GridSlotDTO, 0, len(domain.TimeLabels)),
		}
		for _, label := range domain.TimeLabels {
			state := domain.Classify(day.Date, label, weekly, in.Selection, in.Now)
			d.Slots = append(d.Slots, dto.GridSlotDTO{Time: label, State: state.String()})
		}
		out.Days = append(out.Days, d)
	}

	out.AvailableCount = domain.CountAvailable(days, weekly, in.Selection, in.Now)
	out.ReservedCount = domain.CountReserved(days, weekly, in.Now)
	out.TotalSlots = len(days) * len(domain.TimeLabels)

	return out
}
