package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal roles carried in the token
const (
	RolePatient = "Patient"
	RoleDoctor  = "Doctor"
)

// ErrInvalidToken is returned for any token that fails verification.
// Malformed, badly signed and expired tokens are deliberately
// indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the verified contents of a bearer token
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// PrincipalID returns the numeric principal id from the subject claim
func (c *Claims) PrincipalID() (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(c.Subject, "%d", &id); err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// TokenService issues and verifies bearer tokens
type TokenService interface {
	Generate(principalID int64, name, email, role string) (string, error)
	Validate(token string) (*Claims, error)
}

type jwtService struct {
	secret   []byte
	issuer   string
	audience string
	expiry   time.Duration
	now      func() time.Time
}

// NewJWTService creates an HMAC-signed token service
func NewJWTService(secret, issuer, audience string, expiryHours int) TokenService {
	if expiryHours <= 0 {
		expiryHours = 24
	}
	return &jwtService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		expiry:   time.Duration(expiryHours) * time.Hour,
		now:      time.Now,
	}
}

func (s *jwtService) Generate(principalID int64, name, email, role string) (string, error) {
	now := s.now()
	claims := &Claims{
		Name:  name,
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", principalID),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) Validate(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != RolePatient && claims.Role != RoleDoctor {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
