package remote

import (
	"errors"
	"fmt"
)

// ErrSessionExpired marca um 401 da API remota. O callback de logout já
// rodou quando esse erro chega ao handler; resta só responder 401.
var ErrSessionExpired = errors.New("session_expired")

// APIError é um erro relatado pela API remota (4xx/5xx com corpo).
// Transporte puro (DNS, timeout) chega como erro embrulhado comum.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("booking api %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("booking api %d", e.Status)
}

// IsValidation informa se o erro é uma validação 4xx da API remota,
// distinta de falha de transporte.
func IsValidation(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 400 && apiErr.Status < 500
	}
	return false
}

// UserMessage extrai a mensagem da API remota para exibição, com fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
