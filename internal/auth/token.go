package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dreamhome/internal/domain"
)

const issuer = "dreamhome"

// Claims is what a verified access token says about its bearer.
type Claims struct {
	UserID string
	Email  string
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt signing key cannot be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %v", ttl)
	}
	return &TokenService{key: []byte(secret), ttl: ttl, now: time.Now}, nil
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issue signs a token for the user that expires after the configured ttl.
func (s *TokenService) Issue(userID, email string) (string, error) {
	now := s.now()
	claims := &accessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the claims of a valid token. Expired, forged or malformed
// tokens all yield domain.ErrTokenInvalid wrapped with the cause.
func (s *TokenService) Verify(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &accessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, fmt.Errorf("%w: expired", domain.ErrTokenInvalid)
		}
		return Claims{}, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	c, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid || c.Subject == "" {
		return Claims{}, domain.ErrTokenInvalid
	}
	return Claims{UserID: c.Subject, Email: c.Email}, nil
}
