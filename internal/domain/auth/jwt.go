// Package auth provides the authentication boundary: a single back-office
// login verified against configured credentials, issuing HS256 tokens.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	appctx "factura/internal/core/context"
	"factura/internal/core/apperror"
)

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret         string
	Issuer         string
	AccessTokenTTL time.Duration
}

// DefaultJWTConfig returns default JWT configuration.
func DefaultJWTConfig(secret string) JWTConfig {
	return JWTConfig{
		Secret:         secret,
		Issuer:         "factura",
		AccessTokenTTL: 8 * time.Hour,
	}
}

// Claims represents JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Name   string `json:"name,omitempty"`
}

// Credentials is the configured back-office account: a username and a bcrypt
// password hash, both from the environment.
type Credentials struct {
	Username     string
	PasswordHash string
}

// JWTService handles token issue and validation.
type JWTService struct {
	config JWTConfig
	creds  Credentials
}

// NewJWTService creates a new JWT service.
func NewJWTService(config JWTConfig, creds Credentials) *JWTService {
	return &JWTService{config: config, creds: creds}
}

// Login verifies the configured credentials and issues an access token.
func (s *JWTService) Login(username, password string) (string, time.Time, error) {
	if username == "" || username != s.creds.Username {
		return "", time.Time{}, apperror.NewUnauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, apperror.NewUnauthorized("invalid credentials")
	}
	return s.GenerateAccessToken(username, username)
}

// GenerateAccessToken generates a new access token.
func (s *JWTService) GenerateAccessToken(userID, name string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.config.AccessTokenTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
		Name:   name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a token and returns the user context.
func (s *JWTService) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &appctx.UserContext{
		UserID: claims.UserID,
		Name:   claims.Name,
	}, nil
}
