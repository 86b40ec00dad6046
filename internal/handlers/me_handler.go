package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-web/internal/httperr"
	"github.com/BruksfildServices01/barberia-web/internal/httpresp"
	"github.com/BruksfildServices01/barberia-web/internal/infra/remote"
	"github.com/BruksfildServices01/barberia-web/internal/validators"
)

type MeHandler struct {
	base *remote.Client
}

func NewMeHandler(base *remote.Client) *MeHandler {
	return &MeHandler{base: base}
}

type UpdateMeRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// GetMe devolve o perfil do usuário logado com o histórico de
// agendamentos que a API remota anexa.
func (h *MeHandler) GetMe(c *gin.Context) {
	profile, err := sessionRemote(c, h.base).Profile(c.Request.Context())
	if err != nil {
		respondRemoteError(c, err, "Não foi possível carregar o perfil.")
		return
	}

	httpresp.OK(c, profile)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	in := remote.UpdateProfileInput{}
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

	profile, err := sessionRemote(c, h.base).UpdateProfile(c.Request.Context(), in)
	if err != nil {
		respondRemoteError(c, err, "Não foi possível atualizar o perfil.")
		return
	}

	httpresp.OK(c, profile)
}
