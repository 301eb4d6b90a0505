package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"restaurant-pos/internal/domain"
)

type JWTClaim struct {
	ID   int64       `json:"id"`
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
	jwt.StandardClaims
}

type Tokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Tokens{key: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Generate(s domain.Staff) (string, error) {
	now := t.now()
	claims := &JWTClaim{
		ID:   s.ID,
		Name: s.Name,
		Role: s.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.ttl).Unix(),
			Subject:   fmt.Sprint(s.ID),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.key)
}

func (t *Tokens) Validate(signedToken string) (*JWTClaim, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&JWTClaim{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return t.key, nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaim)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ID <= 0 || !claims.Role.Valid() {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
