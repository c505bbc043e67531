package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL bounds a token when the issuer has no explicit TTL.
const DefaultTokenTTL = 24 * time.Hour

// Claims represents the identity contained in a JWT.
type Claims struct {
	UserID    int64  `json:"uid"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

var (
	errMissingSecret = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// Issuer signs and verifies HS256 identity tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer builds an Issuer. An empty secret falls back to a fixed dev secret
// only in dev and local environments.
func NewIssuer(secret, env string, ttl time.Duration) (*Issuer, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		switch strings.ToLower(strings.TrimSpace(env)) {
		case "", "dev", "development", "local":
			secret = "dev-secret"
		default:
			return nil, fmt.Errorf("%w: JWT_SECRET required in %s", errMissingSecret, env)
		}
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns the lifetime applied to newly signed tokens.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Sign signs the given claims, filling subject, issued-at and expiry when absent.
func (i *Issuer) Sign(claims Claims) (string, error) {
	if claims.UserID <= 0 {
		return "", errors.New("user id is required")
	}
	if claims.SessionID == "" {
		return "", errors.New("session id is required")
	}
	now := i.now().UTC()
	if claims.Subject == "" {
		claims.Subject = strconv.FormatInt(claims.UserID, 10)
	}
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwt.NewNumericDate(now)
	}
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify verifies a token and returns its claims.
func (i *Issuer) Verify(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.UserID <= 0 || claims.SessionID == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
