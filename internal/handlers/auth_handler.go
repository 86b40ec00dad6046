package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-web/internal/audit"
	"github.com/BruksfildServices01/barberia-web/internal/httperr"
	"github.com/BruksfildServices01/barberia-web/internal/httpresp"
	"github.com/BruksfildServices01/barberia-web/internal/infra/remote"
	"github.com/BruksfildServices01/barberia-web/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// AuthHandler repassa login e cadastro para a API remota. Quem emite e
// valida credenciais é ela; aqui só saneamos a entrada antes de gastar
// uma ida à rede.
type AuthHandler struct {
	remote *remote.Client
	audit  *audit.Dispatcher
}

func NewAuthHandler(remote *remote.Client, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{remote: remote, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Password != req.ConfirmPassword {
		httperr.BadRequest(c, "password_mismatch", "As senhas não coincidem.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailFormatValid(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	session, err := h.remote.Register(c.Request.Context(), remote.RegisterInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: req.Password,
	})
	if err != nil {
		respondRemoteError(c, err, "Não foi possível concluir o cadastro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: session.User.ID,
		Role:   session.User.Role,
		Action: "user_registered",
		Entity: "user",
	})

	httpresp.Created(c, session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	session, err := h.remote.Login(c.Request.Context(), remote.LoginInput{
		Email:    email,
		Password: req.Password,
	})
	if err != nil {
		if remote.IsValidation(err) {
			// credencial recusada não vira 400 genérico
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha incorretos.")
			return
		}
		respondRemoteError(c, err, "Não foi possível entrar agora.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: session.User.ID,
		Role:   session.User.Role,
		Action: "user_logged_in",
		Entity: "session",
	})

	httpresp.OK(c, session)
}
