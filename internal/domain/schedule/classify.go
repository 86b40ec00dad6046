package schedule

import "time"

// ===============================
// Classificação de células
// ===============================

// SlotState é o estado de exibição de uma célula (dia, horário).
// Cada célula tem exatamente um estado.
type SlotState int

const (
	SlotPast SlotState = iota
	SlotReserved
	SlotSelected
	SlotAvailable
	SlotUnavailable
)

var slotStateNames = map[SlotState]string{
	SlotPast:        "past",
	SlotReserved:    "reserved",
	SlotSelected:    "selected",
	SlotAvailable:   "available",
	SlotUnavailable: "unavailable",
}

func (s SlotState) String() string {
	if name, ok := slotStateNames[s]; ok {
		return name
	}
	return "unavailable"
}

// Classify decide o estado de uma célula. A ordem de avaliação é fixa e
// o primeiro match vence:
//
//  1. past — somente quando o dia É a data de hoje e o horário já passou.
//     Dias anteriores a hoje nunca viram past; simplificação herdada do
//     produto e mantida de propósito.
//  2. reserved — reservado vence qualquer outra coisa, inclusive um slot
//     que também consta em availableSlots.
//  3. selected — disponível, não reservado e presente na seleção do barbeiro.
//  4. available — disponível e não reservado.
//  5. unavailable — todo o resto.
func Classify(date, label string, weekly WeeklyAvailability, sel *SelectionSet, now time.Time) SlotState {
	if date == DateOf(now) && label < CurrentTimeLabel(now) {
		return SlotPast
	}

	day, ok := weekly.Day(date)
	if !ok {
		return SlotUnavailable
	}

	if day.IsReserved(label) {
		return SlotReserved
	}

	if day.IsAvailable(label) {
		if sel != nil && sel.Contains(date, label) {
			return SlotSelected
		}
		return SlotAvailable
	}

	return SlotUnavailable
}

// CountAvailable conta células reserváveis (available ou selected) nos dias
// informados. Reservadas e passadas ficam de fora mesmo que também constem
// em availableSlots.
func CountAvailable(days []WeekDay, weekly WeeklyAvailability, sel *SelectionSet, now time.Time) int {
	total := 0
	for _, d := range days {
		for _, label := range TimeLabels {
			switch Classify(d.Date, label, weekly, sel, now) {
			case SlotAvailable, SlotSelected:
				total++
			}
		}
	}
	return total
}

// CountReserved conta células reservadas nos dias informados.
func CountReserved(days []WeekDay, weekly WeeklyAvailability, now time.Time) int {
	total := 0
	for _, d := range days {
		for _, label := range TimeLabels {
			if Classify(d.Date, label, weekly, nil, now) == SlotReserved {
				total++
			}
		}
	}
	return total
}
