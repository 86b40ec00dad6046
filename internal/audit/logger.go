package audit

import "github.com/rs/zerolog"

// Logger grava a trilha de atividade como log estruturado. O gateway não
// guarda nada: quem persiste histórico é a API remota; aqui fica só o
// rastro operacional de quem fez o quê.
type Logger struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Logger {
	return &Logger{log: log.With().Str("component", "audit").Logger()}
}

func (l *Logger) Log(ev Event) {
	e := l.log.Info().
		Str("action", ev.Action).
		Str("entity", ev.Entity)

	if ev.UserID != "" {
		e = e.Str("user_id", ev.UserID)
	}
	if ev.Role != "" {
		e = e.Str("role", ev.Role)
	}
	if ev.EntityID != "" {
		e = e.Str("entity_id", ev.EntityID)
	}
	if ev.Metadata != nil {
		e = e.Interface("metadata", ev.Metadata)
	}

	e.Msg("activity")
}

func (l *Logger) Dropped() {
	l.log.Warn().Msg("audit queue full, dropping event")
}
