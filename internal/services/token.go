package services

import (
	"fmt"
	"os"
	"time"

	"redditradar/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the bearer tokens returned by
// login/register.
type TokenService struct {
	secret      []byte
	expireHours int
}

var tokenService *TokenService

func GetTokenService() *TokenService {
	if tokenService == nil {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			secret = "secret_key_change_me"
		}
		expireHours := utils.StringToInt(os.Getenv("TOKEN_EXPIRE_HOURS"))
		if expireHours <= 0 {
			expireHours = 72
		}
		tokenService = &TokenService{
			secret:      []byte(secret),
			expireHours: expireHours,
		}
	}
	return tokenService
}

func (s *TokenService) Generate(userID uint, username, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
