package token

import (
	"errors"
	"time"

	"catalog-service/core/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Config holds configuration for member token issuing.
type Config struct {
	// Secret is the HMAC signing key.
	Secret string `mapstructure:"secret" default:""`
	// TTLMinutes is the token lifetime in minutes.
	TTLMinutes int `mapstructure:"ttl_minutes" default:"1440"`
	// Issuer is the value of the iss claim.
	Issuer string `mapstructure:"issuer" default:"catalog-service"`
}

// Claims are the JWT claims carried by a member token.
type Claims struct {
	jwt.RegisteredClaims
	MemberID uint `json:"member_id"`
}

// Service issues and parses member tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewService creates a token service from configuration.
func NewService(cfg Config) *Service {
	ttl := time.Duration(cfg.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		issuer: cfg.Issuer,
	}
}

// Issue creates a signed token for the given member and returns it together
// with its expiry time.
func (s *Service) Issue(memberID uint) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		MemberID: memberID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse validates a signed token and returns its claims. All failures map to
// an Unauthorized error so the HTTP layer answers with 401.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Unauthorized("token expired")
		}
		return nil, apperr.Unauthorized("invalid token")
	}
	if !parsed.Valid || claims.MemberID == 0 {
		return nil, apperr.Unauthorized("invalid token")
	}
	return claims, nil
}
