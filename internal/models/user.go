package models

// User como entregue pela API remota (ids no formato do Mongo).
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Profile é o usuário com seus agendamentos, como em GET /users/profile.
type Profile struct {
	ID           string        `json:"_id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Role         string        `json:"role"`
	Appointments []Appointment `json:"appointments"`
}

// AuthSession é a resposta de login/registro da API remota.
type AuthSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
