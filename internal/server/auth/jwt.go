package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// DefaultTokenValidity is the access token lifetime used when none is configured.
const DefaultTokenValidity = 24 * time.Hour

// Claims are the assertions carried by an access token: the user id as
// subject, the role and the standard validity window.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// UserID returns the subject of the token.
func (c *Claims) UserID() string { return c.Subject }

// GenerateToken mints an HS256 access token for userID/role that expires
// validityDuration from now.
func GenerateToken(userID, role string, secretKey []byte, validityDuration time.Duration) (string, error) {
	return generateToken(userID, role, secretKey, validityDuration, time.Now())
}

// ParseToken verifies tokenString against secretKey and returns its claims.
// Expired tokens yield common.ErrTokenExpired; anything else that fails
// verification yields common.ErrTokenInvalid.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	return parseToken(tokenString, secretKey, time.Now)
}

func generateToken(userID, role string, secretKey []byte, validityDuration time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
			ID:        uuid.NewString(),
		},
		Role: role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return tokenString, nil
}

func parseToken(tokenString string, secretKey []byte, now func() time.Time) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", common.ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", common.ErrTokenInvalid)
	}
	if claims.Role == "" {
		return nil, fmt.Errorf("%w: missing role", common.ErrTokenInvalid)
	}

	return claims, nil
}

// TokenService holds the process-wide signing secret and token lifetime.
// It is immutable after construction and safe for concurrent use.
type TokenService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenService returns a TokenService. A non-positive validity selects
// DefaultTokenValidity.
func NewTokenService(secretKey string, validity time.Duration) *TokenService {
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	return &TokenService{
		secret:   []byte(secretKey),
		validity: validity,
		now:      time.Now,
	}
}

// Validity reports the configured token lifetime.
func (s *TokenService) Validity() time.Duration { return s.validity }

// Mint issues an access token for the given user id and role.
func (s *TokenService) Mint(userID, role string) (string, error) {
	return generateToken(userID, role, s.secret, s.validity, s.now())
}

// Verify checks the token signature and expiry and returns its claims.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	return parseToken(tokenString, s.secret, s.now)
}
