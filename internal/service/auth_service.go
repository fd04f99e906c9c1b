package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"comparsaGora/internal/config"
)

// AuthService - единая общая учётная запись администратора, без таблицы
// пользователей и refresh-токенов
type AuthService interface {
	Login(username, password string) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
}

type authService struct {
	cfg          *config.Config
	passwordHash []byte
}

func NewAuthService(cfg *config.Config) AuthService {
	s := &authService{cfg: cfg}

	if cfg.Admin.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
		if err == nil {
			s.passwordHash = hash
		}
	}

	return s
}

func (s *authService) Login(username, password string) (string, error) {
	if s.passwordHash == nil {
		return "", fmt.Errorf("учётная запись администратора не настроена")
	}

	if username != s.cfg.Admin.Username {
		return "", fmt.Errorf("неверный логин или пароль")
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", fmt.Errorf("неверный логин или пароль")
	}

	claims := jwt.MapClaims{
		"username": username,
		"role":     "Admin",
		"exp":      time.Now().Add(s.cfg.Admin.TokenDuration).Unix(),
		"iat":      time.Now().Unix(),
		"jti":      uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.Admin.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Admin.JWTSecretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("недействительный токен")
	}

	return token, nil
}
