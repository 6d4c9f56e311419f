package auth

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// ExtractBearer returns the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ExtractBearer(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", common.ErrUnauthenticated)
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", fmt.Errorf("%w: invalid authorization header format", common.ErrUnauthenticated)
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", fmt.Errorf("%w: invalid authorization header format", common.ErrUnauthenticated)
	}
	return token, nil
}

// Gate decides whether a request carrying an authorization header may reach
// a protected handler. It relies solely on the token's embedded claims.
type Gate struct {
	tokens *TokenService
}

func NewGate(tokens *TokenService) *Gate {
	return &Gate{tokens: tokens}
}

// Authorize admits the request when the header carries a valid, unexpired
// token and, if allowedRoles is non-empty, the token's role is listed.
// Failures are common.ErrUnauthenticated or common.ErrForbidden.
func (g *Gate) Authorize(header string, allowedRoles ...string) (*Claims, error) {
	token, err := ExtractBearer(header)
	if err != nil {
		return nil, err
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
	}

	if len(allowedRoles) > 0 && !roleAllowed(claims.Role, allowedRoles) {
		return claims, fmt.Errorf("%w: role %q not allowed", common.ErrForbidden, claims.Role)
	}
	return claims, nil
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
