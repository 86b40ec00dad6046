package schedule

import (
	"strconv"
	"strings"
	"time"
)

// ===============================
// Janela semanal
// ===============================

var weekdayNames = [7]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

var weekdayShortNames = [7]string{
	"dom", "seg", "ter", "qua", "qui", "sex", "sáb",
}

// WeekDay é um dos 7 dias exibidos na grade semanal.
type WeekDay struct {
	Date         string `json:"date"`
	DayName      string `json:"day_name"`
	ShortDayName string `json:"short_day_name"`
	DayNumber    string `json:"day_number"`
}

// WeekStart devolve a segunda-feira (00:00) da semana que contém anchor,
// na localização do próprio anchor. Qualquer dia da semana serve de âncora.
func WeekStart(anchor time.Time) time.Time {
	delta := (int(anchor.Weekday()) + 6) % 7
	day := anchor.AddDate(0, 0, -delta)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
}

// WeekEnd devolve o domingo da mesma semana.
func WeekEnd(anchor time.Time) time.Time {
	return WeekStart(anchor).AddDate(0, 0, 6)
}

// ComputeWeekDays deriva os 7 dias da semana do anchor, sempre começando
// na segunda-feira. Função pura: recalculada a cada uso, nunca guardada.
// AddDate atravessa mudanças de horário de verão sem pular dia.
func ComputeWeekDays(anchor time.Time) []WeekDay {
	start := WeekStart(anchor)

	days := make([]WeekDay, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		wd := int(d.Weekday())
		days = append(days, WeekDay{
			Date:         DateOf(d),
			DayName:      weekdayNames[wd],
			ShortDayName: weekdayShortNames[wd],
			DayNumber:    strconv.Itoa(d.Day()),
		})
	}
	return days
}

// NextWeekAnchor / PrevWeekAnchor deslocam a âncora em ±7 dias.
// A segunda-feira é sempre recalculada a partir da âncora.
func NextWeekAnchor(anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, 7)
}

func PrevWeekAnchor(anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, -7)
}

// FilterByWeekday projeta a semana para no máximo um dia quando há filtro
// ativo. Filtro vazio devolve os 7 dias. Aceita nome completo ou curto.
// Projeção pura: não altera a WeeklyAvailability.
func FilterByWeekday(days []WeekDay, weekday string) []WeekDay {
	if weekday == "" {
		return days
	}

	var out []WeekDay
	for _, d := range days {
		if strings.EqualFold(d.DayName, weekday) || strings.EqualFold(d.ShortDayName, weekday) {
			out = append(out, d)
		}
	}
	return out
}
