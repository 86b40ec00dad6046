package models

// Service é um serviço oferecido no agendamento. O catálogo é fixo no
// gateway; a API remota só recebe o id escolhido.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DurationMin int    `json:"duration_min"`
}

var Services = []Service{
	{ID: "corte", Name: "Corte de cabelo", DurationMin: 30},
	{ID: "barba", Name: "Barba", DurationMin: 30},
	{ID: "combo", Name: "Corte + barba", DurationMin: 60},
}

func IsService(id string) bool {
	for _, s := range Services {
		if s.ID == id {
			return true
		}
	}
	return false
}
