package myjwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type CustomClaims struct {
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type Manager struct {
	key    []byte
	expire time.Duration
	issuer string
}

func NewManager(key string, expireHours int, issuer string) *Manager {
	if expireHours <= 0 {
		expireHours = 24
	}
	return &Manager{
		key:    []byte(key),
		expire: time.Duration(expireHours) * time.Hour,
		issuer: issuer,
	}
}

func (m *Manager) GenerateToken(userID int64, nickname string, role string) (string, error) {
	if len(m.key) == 0 {
		return "", errors.New("jwt key is empty")
	}
	if role == "" {
		role = RoleUser
	}

	now := time.Now()
	claims := CustomClaims{
		UserID:   userID,
		Nickname: nickname,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

func (m *Manager) ParseToken(tokenString string) (*CustomClaims, error) {
	if len(m.key) == 0 {
		return nil, errors.New("jwt key is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.key, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID <= 0 {
		return nil, errors.New("token has no user")
	}
	return claims, nil
}
