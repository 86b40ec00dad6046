package schedule

import "time"

// ===============================
// Time labels
// ===============================

// TimeLabels é a grade fixa de horários exibida no calendário:
// 08:00 até 19:00, de 30 em 30 minutos.
var TimeLabels = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"12:00", "12:30", "13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30", "17:00", "17:30", "18:00", "18:30", "19:00",
}

// IsTimeLabel informa se o valor pertence à grade fixa.
func IsTimeLabel(label string) bool {
	for _, l := range TimeLabels {
		if l == label {
			return true
		}
	}
	return false
}

// CurrentTimeLabel devolve o rótulo HH:MM do instante atual.
// Rótulos são zero-padded, então comparação lexicográfica == temporal.
func CurrentTimeLabel(now time.Time) string {
	return now.Format("15:04")
}

// DateOf formata a data no padrão usado pela API (yyyy-MM-dd).
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
