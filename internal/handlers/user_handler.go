package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-web/internal/audit"
	domain "github.com/BruksfildServices01/barberia-web/internal/domain/schedule"
	"github.com/BruksfildServices01/barberia-web/internal/httperr"
	"github.com/BruksfildServices01/barberia-web/internal/httpresp"
	"github.com/BruksfildServices01/barberia-web/internal/infra/remote"
	"github.com/BruksfildServices01/barberia-web/internal/validators"
)

// ======================================================
// USUÁRIOS (admin) + BARBEIROS (todos)
// ======================================================

type UserHandler struct {
	base  *remote.Client
	audit *audit.Dispatcher
}

func NewUserHandler(base *remote.Client, audit *audit.Dispatcher) *UserHandler {
	return &UserHandler{base: base, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

// ======================================================
// BARBEIROS
// ======================================================

// Barbers lista os barbeiros disponíveis para o seletor da agenda.
// Qualquer papel autenticado enxerga; a resposta é cacheável.
func (h *UserHandler) Barbers(c *gin.Context) {
	barbers, err := sessionRemote(c, h.base).ListBarbers(c.Request.Context())
	if err != nil {
		respondRemoteError(c, err, "Não foi possível carregar os barbeiros.")
		return
	}

	httpresp.List(c, barbers)
}

// ======================================================
// ADMIN
// ======================================================

func (h *UserHandler) List(c *gin.Context) {
	if !currentRole(c).CanManageUsers() {
		httperr.Forbidden(c, "role_not_allowed", "Acesso restrito ao administrador.")
		return
	}

	users, err := sessionRemote(c, h.base).ListUsers(c.Request.Context())
	if err != nil {
		respondRemoteError(c, err, "Não foi possível carregar os usuários.")
		return
	}

	httpresp.List(c, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	role := currentRole(c)
	if !role.CanManageUsers() {
		httperr.Forbidden(c, "role_not_allowed", "Acesso restrito ao administrador.")
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if _, err := domain.ParseRole(req.Role); err != nil {
		httperr.BadRequest(c, "invalid_role", "Papel inválido.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailFormatValid(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}

	user, err := sessionRemote(c, h.base).CreateUser(c.Request.Context(), remote.CreateUserInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondRemoteError(c, err, "Não foi possível criar o usuário.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Role:     string(role),
		Action:   "user_created",
		Entity:   "user",
		EntityID: user.ID,
		Metadata: map[string]any{"role": req.Role},
	})

	httpresp.Created(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	role := currentRole(c)
	if !role.CanManageUsers() {
		httperr.Forbidden(c, "role_not_allowed", "Acesso restrito ao administrador.")
		return
	}

	id := c.Param("id")

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	in := remote.UpdateUserInput{}
	if req.Name != nil {
		in.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validators.IsEmailFormatValid(email) {
			httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
			return
		}
		in.Email = email
	}
	if req.Role != nil {
		if _, err := domain.ParseRole(*req.Role); err != nil {
			httperr.BadRequest(c, "invalid_role", "Papel inválido.")
			return
		}
		in.Role = *req.Role
	}

	if err := sessionRemote(c, h.base).UpdateUser(c.Request.Context(), id, in); err != nil {
		respondRemoteError(c, err, "Não foi possível atualizar o usuário.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Role:     string(role),
		Action:   "user_updated",
		Entity:   "user",
		EntityID: id,
	})

	httpresp.OK(c, gin.H{"status": "updated", "id": id})
}

func (h *UserHandler) Delete(c *gin.Context) {
	role := currentRole(c)
	if !role.CanManageUsers() {
		httperr.Forbidden(c, "role_not_allowed", "Acesso restrito ao administrador.")
		return
	}

	id := c.Param("id")
	if id == currentUserID(c) {
		httperr.BadRequest(c, "cannot_delete_self", "Não é possível excluir a própria conta.")
		return
	}

	if err := sessionRemote(c, h.base).DeleteUser(c.Request.Context(), id); err != nil {
		respondRemoteError(c, err, "Não foi possível excluir o usuário.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Role:     string(role),
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: id,
	})

	httpresp.OK(c, gin.H{"status": "deleted", "id": id})
}
