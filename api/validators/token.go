package validators

import "strings"

// BearerToken extracts the credential from an Authorization header value.
// A bare token without the scheme is accepted.
func BearerToken(raw string) (string, bool) {
	token := strings.TrimSpace(raw)
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
