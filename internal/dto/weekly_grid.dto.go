package dto

// GridSlotDTO é uma célula já classificada da grade.
type GridSlotDTO struct {
	Time  string `json:"time"`
	State string `json:"state"`
}

type GridDayDTO struct {
	Date         string        `json:"date"`
	DayName      string        `json:"day_name"`
	ShortDayName string        `json:"short_day_name"`
	DayNumber    string        `json:"day_number"`
	Slots        []GridSlotDTO `json:"slots"`
}

// WeeklyGridDTO é a grade semanal pronta para renderizar: 7 dias (ou 1,
// com filtro de dia ativo), cada célula com exatamente um estado, mais os
// contadores do rodapé.
type WeeklyGridDTO struct {
	BarberID  string `json:"barber_id"`
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`

	Days []GridDayDTO `json:"days"`

	AvailableCount int `json:"available_count"`
	ReservedCount  int `json:"reserved_count"`
	TotalSlots     int `json:"total_slots"`
}
