package validators

import (
	"errors"
	"strings"
)

var ErrMissingToken = errors.New("missing auth token")

// BearerToken extracts the token from an Authorization header value. The
// "Bearer " prefix is optional and matched case-insensitively.
func BearerToken(header string) (string, error) {
	token := strings.TrimSpace(header)
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	} else if strings.EqualFold(token, "bearer") {
		token = ""
	}
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
