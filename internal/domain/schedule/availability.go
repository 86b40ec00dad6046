package schedule

// DayAvailability é a disponibilidade de um barbeiro em uma data,
// exatamente como recebida da API remota. availableSlots e reservedSlots
// são conjuntos independentes: um horário pode estar reservado sem nunca
// ter sido marcado como disponível, e a classificação trata disso.
// Nunca normalizar um contra o outro.
type DayAvailability struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
	ReservedSlots  []string `json:"reservedSlots"`
}

func (d DayAvailability) IsAvailable(label string) bool {
	return containsLabel(d.AvailableSlots, label)
}

func (d DayAvailability) IsReserved(label string) bool {
	return containsLabel(d.ReservedSlots, label)
}

// WeeklyAvailability cobre os 7 dias de uma semana iniciada na segunda,
// indexada por data ISO. É reconstruída por inteiro a cada fetch.
type WeeklyAvailability map[string]DayAvailability

func (w WeeklyAvailability) Day(date string) (DayAvailability, bool) {
	d, ok := w[date]
	return d, ok
}

// DayTimeSlots é o formato de publicação em lote aceito pela API remota.
type DayTimeSlots struct {
	Date      string   `json:"date"`
	TimeSlots []string `json:"timeSlots"`
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
