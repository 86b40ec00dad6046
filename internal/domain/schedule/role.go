package schedule

import "github.com/BruksfildServices01/barberia-web/internal/httperr"

// ===============================
// Papéis e capacidades
// ===============================

// Role decide quais ações a grade oferece. A mesma grade atende os três
// papéis; muda só o que cada um pode fazer com ela.
type Role string

const (
	RoleClient Role = "client"
	RoleBarber Role = "barber"
	RoleAdmin  Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleBarber, RoleAdmin:
		return Role(s), nil
	}
	return "", httperr.ErrBusiness("invalid_role")
}

// CanPublish: publicar disponibilidade é ação exclusiva do barbeiro.
func (r Role) CanPublish() bool {
	return r == RoleBarber
}

// CanBook: reservar horário é ação exclusiva do cliente.
func (r Role) CanBook() bool {
	return r == RoleClient
}

// CanManageUsers: gestão de usuários é exclusiva do admin.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}
