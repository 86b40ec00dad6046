package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barberia-web/internal/models"
)

// CreateAppointmentInput é o corpo de POST /appointments da API remota.
// O servidor é a autoridade sobre conflitos; o gateway só monta o pedido.
type CreateAppointmentInput struct {
	ClientID string `json:"clientId"`
	BarberID string `json:"barberId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Service  string `json:"service"`
	Status   string `json:"status"`
}

// Remote é o colaborador externo da grade: a API de agendamento que guarda
// disponibilidade, resolve conflitos e persiste tudo. O gateway nunca
// decide um conflito sozinho.
type Remote interface {
	// -------- Disponibilidade semanal --------
	WeeklyAvailability(
		ctx context.Context,
		barberID string,
		start time.Time,
		end time.Time,
	) (WeeklyAvailability, error)

	// RefreshWeeklyAvailability ignora qualquer resposta em cache e busca
	// de novo. Usado após publicar ou reservar: o servidor é autoritativo,
	// então a grade é sempre refeita por inteiro (sem patch otimista).
	RefreshWeeklyAvailability(
		ctx context.Context,
		barberID string,
		start time.Time,
		end time.Time,
	) (WeeklyAvailability, error)

	// -------- Publicação em lote (barbeiro) --------
	SetAvailability(
		ctx context.Context,
		barberID string,
		days []DayTimeSlots,
	) error

	// -------- Reserva (cliente) --------
	CreateAppointment(
		ctx context.Context,
		in CreateAppointmentInput,
	) (*models.Appointment, error)

	// -------- Barbeiros para o seletor --------
	ListBarbers(ctx context.Context) ([]models.User, error)
}
