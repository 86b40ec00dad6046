package models

import "time"

// StatusScheduled é o status inicial de todo agendamento criado pela web.
const StatusScheduled = "scheduled"

// Appointment como entregue pela API remota.
type Appointment struct {
	ID string `json:"_id"`

	Client User `json:"client"`
	Barber User `json:"barber"`

	Date    string `json:"date"` // yyyy-MM-dd
	Time    string `json:"time"` // HH:mm
	Service string `json:"service"`

	Duration int    `json:"duration"`
	Notes    string `json:"notes,omitempty"`
	Status   string `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
