package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberia-web/internal/config"
	domain "github.com/BruksfildServices01/barberia-web/internal/domain/schedule"
	"github.com/BruksfildServices01/barberia-web/internal/httperr"
	"github.com/BruksfildServices01/barberia-web/internal/infra/remote"
	"github.com/BruksfildServices01/barberia-web/internal/middleware"
	"github.com/BruksfildServices01/barberia-web/internal/timezone"
)

// --------------------------------------------------
// Contexto da requisição
// --------------------------------------------------

func currentUserID(c *gin.Context) string {
	return c.MustGet(middleware.ContextUserID).(string)
}

func currentRole(c *gin.Context) domain.Role {
	return c.MustGet(middleware.ContextUserRole).(domain.Role)
}

// sessionRemote devolve o client remoto preso ao token da sessão atual.
// O clone é por requisição: o client base nunca carrega token.
func sessionRemote(c *gin.Context, base *remote.Client) *remote.Client {
	token := c.MustGet(middleware.ContextAuthToken).(string)
	return base.WithToken(token)
}

// --------------------------------------------------
// Datas no fuso da barbearia
// --------------------------------------------------

// "hoje" e "horário já passado" são decididos no fuso da barbearia,
// nunca no do servidor.

func nowInShop(cfg *config.Config) time.Time {
	return timezone.NowIn(cfg.Timezone)
}

// parseAnchor interpreta o parâmetro ?date= como âncora da semana; vazio
// ancora na semana atual.
func parseAnchor(cfg *config.Config, dateStr string) (time.Time, error) {
	if dateStr == "" {
		return nowInShop(cfg), nil
	}
	return timezone.ParseDateIn(cfg.Timezone, dateStr)
}

// --------------------------------------------------
// Tradução de erros da API remota
// --------------------------------------------------

// respondRemoteError mapeia o erro do client remoto em resposta HTTP:
// sessão expirada vira 401, validação 4xx vira 400 com a mensagem da
// API, o resto é 502 (transporte ou 5xx do outro lado).
func respondRemoteError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, remote.ErrSessionExpired) {
		httperr.Unauthorized(c, "session_expired", "Sessão expirada. Faça login novamente.")
		return
	}

	if remote.IsValidation(err) {
		httperr.BadRequest(c, "upstream_rejected", remote.UserMessage(err, fallback))
		return
	}

	httperr.BadGateway(c, "upstream_unavailable", fallback)
}
