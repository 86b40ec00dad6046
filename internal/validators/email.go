package validators

import (
	"net"
	"net/mail"
	"strings"
)

// IsEmailFormatValid valida a forma do endereço antes de gastar DNS.
func IsEmailFormatValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// IsEmailDomainValid confere se o domínio do e-mail resolve (MX ou A).
// Pré-validação barata no gateway; a palavra final é da API remota.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
