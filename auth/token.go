package auth

import (
	"fmt"
	"time"

	"boothbuzz-admin/model"

	"github.com/dgrijalva/jwt-go"
)

const issuer = "boothbuzz-admin"

type Claims struct {
	Role model.Role `json:"role"`
	City string     `json:"city,omitempty"`
	jwt.StandardClaims
}

// Tokens issues and checks HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret []byte, ttl time.Duration) *Tokens {
	return &Tokens{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token whose subject is the user's profile id.
func (t *Tokens) Issue(u *model.User, strategy string) (*model.Auth, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	claims := Claims{
		Role: u.Role,
		City: u.City,
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID,
			Issuer:    issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: exp.Unix(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return nil, fmt.Errorf("Issue: error signing token: %w", err)
	}
	return &model.Auth{Token: signed, ExpiresAt: exp.Unix(), Strategy: strategy}, nil
}

// Parse verifies signature, algorithm, issuer and expiry.
func (t *Tokens) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("Parse: %v: %w", err, ErrInvalidToken)
	}
	if claims.Issuer != issuer || claims.Subject == "" {
		return nil, fmt.Errorf("Parse: unexpected claims: %w", ErrInvalidToken)
	}
	return claims, nil
}

// TTL is how long issued tokens stay valid.
func (t *Tokens) TTL() time.Duration {
	return t.ttl
}
