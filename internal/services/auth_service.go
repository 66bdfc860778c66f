package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/store"
)

const (
	TokenIssuer         = "job-board"
	AccessTokenDuration = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenBlacklist remembers revoked token ids until they expire.
type TokenBlacklist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{revoked: make(map[string]time.Time)}
}

func (b *TokenBlacklist) Add(jti string, exp time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[jti] = exp
}

func (b *TokenBlacklist) Contains(jti string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.revoked[jti]
	return ok
}

// CleanUpExpired forgets ids whose tokens have expired anyway.
func (b *TokenBlacklist) CleanUpExpired(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for jti, exp := range b.revoked {
		if exp.Before(now) {
			delete(b.revoked, jti)
		}
	}
}

type AuthService struct {
	Users     store.UserStore
	Blacklist *TokenBlacklist
	secret    []byte
	now       func() time.Time
}

func NewAuthService(users store.UserStore, secret string) *AuthService {
	return &AuthService{
		Users:     users,
		Blacklist: NewTokenBlacklist(),
		secret:    []byte(secret),
		now:       time.Now,
	}
}

// EnsureAdmin creates the admin account when it does not exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if _, err := s.Users.GetUserByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	admin := &models.User{
		Username:     username,
		Email:        username + "@jobboard.local",
		FirstName:    "Admin",
		LastName:     "User",
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
	}
	if err := s.Users.CreateUser(ctx, admin); err != nil && !errors.Is(err, store.ErrDuplicate) {
		return err
	}
	log.Info().Str("username", username).Msg("admin account created")
	return nil
}

// Login checks credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*dtos.LoginResponse, error) {
	user, err := s.Users.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return &dtos.LoginResponse{Token: token, User: userDTO(user)}, nil
}

// Logout revokes the token described by claims.
func (s *AuthService) Logout(claims *Claims) {
	exp := s.now().Add(AccessTokenDuration)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	s.Blacklist.Add(claims.ID, exp)
	s.Blacklist.CleanUpExpired(s.now())
}

// Validate parses tokenString and rejects expired, foreign or revoked tokens.
func (s *AuthService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if s.Blacklist.Contains(claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

func (s *AuthService) issue(user *models.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    TokenIssuer,
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenDuration)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func userDTO(u *models.User) dtos.User {
	return dtos.User{
		ID:        int(u.ID),
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}
