package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenService mints the opaque access token bound to an application and
// candidate. The token is HMAC-signed with an issued-at timestamp, so
// validity could be re-derived without a database round trip, but lookups
// always go through the persisted assessment row.
type TokenService interface {
	Mint(applicationID, studentID uuid.UUID) (string, error)
	Verify(token string, maxAge time.Duration) (*TokenClaims, error)
}

type TokenClaims struct {
	ApplicationID string `json:"application_id"`
	StudentID     string `json:"student_id"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret []byte
}

func NewTokenService(secret string) TokenService {
	return &tokenService{secret: []byte(secret)}
}

// Mint implements TokenService.
func (t *tokenService) Mint(applicationID, studentID uuid.UUID) (string, error) {
	claims := TokenClaims{
		ApplicationID: applicationID.String(),
		StudentID:     studentID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			ID:       uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign assessment token: %w", err)
	}
	return signed, nil
}

// Verify implements TokenService.
func (t *tokenService) Verify(token string, maxAge time.Duration) (*TokenClaims, error) {
	var claims TokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse assessment token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("assessment token is not valid")
	}

	if maxAge > 0 {
		if claims.IssuedAt == nil {
			return nil, fmt.Errorf("assessment token has no issue timestamp")
		}
		if time.Since(claims.IssuedAt.Time) > maxAge {
			return nil, fmt.Errorf("assessment token expired")
		}
	}

	return &claims, nil
}
