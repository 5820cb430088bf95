package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ai-learning-service/internal/domain"
)

// AuthService handles signup, login, and access-token verification.
type AuthService struct {
	users    UserRepository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(users UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// SafeUser is the client-facing view of an account, with no password material.
type SafeUser struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	TotalPoints     int    `json:"totalPoints"`
	CompletedLevels []int  `json:"completedLevels"`
}

func toSafeUser(u domain.User) SafeUser {
	completed := u.CompletedLevels
	if completed == nil {
		completed = []int{}
	}
	return SafeUser{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		TotalPoints:     u.TotalPoints,
		CompletedLevels: completed,
	}
}

// Signup registers a new account with empty progress and returns a signed token.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, SafeUser, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return "", SafeUser{}, domain.ErrMissingFields
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", SafeUser{}, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", SafeUser{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", SafeUser{}, err
	}

	user := domain.User{
		ID:              uuid.NewString(),
		Name:            name,
		Email:           email,
		PasswordHash:    string(hash),
		TotalPoints:     0,
		CompletedLevels: []int{},
		LevelScores:     []domain.LevelScore{},
		CreatedAt:       s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", SafeUser{}, err
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return "", SafeUser{}, err
	}
	return token, toSafeUser(user), nil
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, SafeUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", SafeUser{}, domain.ErrInvalidCredentials
		}
		return "", SafeUser{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", SafeUser{}, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return "", SafeUser{}, err
	}
	return token, toSafeUser(user), nil
}

func (s *AuthService) generateToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken parses an access token and returns the user ID it was issued for.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
