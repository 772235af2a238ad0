package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type AdminClaims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies admin bearer tokens. Revoked tokens are
// kept in a Blacklist until they would have expired anyway.
type TokenManager struct {
	secret    []byte
	ttl       time.Duration
	issuer    string
	blacklist *Blacklist
	now       func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret:    []byte(secret),
		ttl:       ttl,
		issuer:    "service-booking",
		blacklist: NewBlacklist(),
		now:       time.Now,
	}
}

func (m *TokenManager) TTL() time.Duration { return m.ttl }

func (m *TokenManager) GenerateToken(adminID, email string) (string, error) {
	issuedAt := m.now()
	claims := &AdminClaims{
		AdminID: adminID,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   adminID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) ParseToken(tokenString string) (*AdminClaims, error) {
	if m.blacklist.IsBlacklisted(tokenString) {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || claims.AdminID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RevokeToken blacklists tokenString until expiresAt.
func (m *TokenManager) RevokeToken(tokenString string, expiresAt time.Time) {
	m.blacklist.Add(tokenString, expiresAt)
}
