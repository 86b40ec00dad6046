package schedule

import (
	"sort"
	"time"
)

// ===============================
// Seleção do barbeiro (staging)
// ===============================

// SlotRef identifica uma célula (data, horário) da grade.
type SlotRef struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// SelectionSet guarda os slots que o barbeiro marcou para publicar mas
// ainda não salvou. Vive só na sessão de edição: é limpo após salvar com
// sucesso e nunca persiste sozinho.
type SelectionSet struct {
	slots map[SlotRef]struct{}
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{slots: make(map[SlotRef]struct{})}
}

func (s *SelectionSet) Contains(date, label string) bool {
	_, ok := s.slots[SlotRef{Date: date, Time: label}]
	return ok
}

func (s *SelectionSet) Len() int {
	return len(s.slots)
}

func (s *SelectionSet) Clear() {
	s.slots = make(map[SlotRef]struct{})
}

// Toggle inverte a presença do slot na seleção, sem olhar a grade.
// Use ToggleSelection para o comportamento guardado pela classificação.
func (s *SelectionSet) Toggle(date, label string) {
	ref := SlotRef{Date: date, Time: label}
	if _, ok := s.slots[ref]; ok {
		delete(s.slots, ref)
		return
	}
	s.slots[ref] = struct{}{}
}

// Slots devolve a seleção em ordem determinística (data, depois horário).
func (s *SelectionSet) Slots() []SlotRef {
	out := make([]SlotRef, 0, len(s.slots))
	for ref := range s.slots {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

// GroupByDate agrupa a seleção no formato de publicação em lote da API:
// uma entrada por dia, horários ordenados.
func (s *SelectionSet) GroupByDate() []DayTimeSlots {
	byDate := make(map[string][]string)
	for ref := range s.slots {
		byDate[ref.Date] = append(byDate[ref.Date], ref.Time)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	out := make([]DayTimeSlots, 0, len(dates))
	for _, date := range dates {
		labels := byDate[date]
		sort.Strings(labels)
		out = append(out, DayTimeSlots{Date: date, TimeSlots: labels})
	}
	return out
}

// ToggleSelection aplica o clique do barbeiro em uma célula: só células
// classificadas como available ou selected entram/saem da seleção. Clicar
// em reservado, passado ou indisponível não muda nada. Devolve true se a
// seleção mudou.
func ToggleSelection(sel *SelectionSet, weekly WeeklyAvailability, date, label string, now time.Time) bool {
	switch Classify(date, label, weekly, sel, now) {
	case SlotAvailable, SlotSelected:
		sel.Toggle(date, label)
		return true
	}
	return false
}
