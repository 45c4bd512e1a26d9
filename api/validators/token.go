package validators

import "strings"

// ParseBearer extracts the token from an Authorization header value.
// A bare value without the scheme is accepted as the token itself.
func ParseBearer(raw string) string {
	token := strings.TrimSpace(raw)
	if len(token) >= 6 && strings.EqualFold(token[:6], "bearer") && (len(token) == 6 || token[6] == ' ') {
		token = strings.TrimSpace(token[6:])
	}
	return token
}
