package service

import (
	"context"
	"errors"
	"time"

	"carshare/internal/auth"
	"carshare/internal/config"
	"carshare/internal/httpapi/models"
	"carshare/internal/httpapi/repository"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrRevokedToken       = errors.New("token has been revoked")
)

// Claims carried by an access token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, userID string) error
	Me(ctx context.Context, userID string) (*models.User, error)
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

type authService struct {
	users          repository.UserRepository
	revocations    RevocationStore
	jwtSecret      string
	accessTokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, revocations RevocationStore, cfg *config.Config) AuthService {
	return &authService{
		users:          users,
		revocations:    revocations,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// Register creates the user and signs them in with a fresh access token.
func (s *authService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailInUse
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Two concurrent registrations for the same email: the pre-check
		// passes for both, the unique index on email catches the loser.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrEmailInUse
		}
		return nil, "", err
	}

	token, err := s.generateAccessToken(user, time.Now())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials, revokes any previously issued tokens and
// returns a fresh access token. One live session per user.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Dummy compare keeps timing uniform whether or not the email exists.
		auth.VerifyPassword(auth.DummyHash, password)
		return nil, "", ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.revocations.RevokeAll(ctx, user.ID, now); err != nil {
		return nil, "", err
	}

	token, err := s.generateAccessToken(user, now)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout invalidates every outstanding token for the user.
func (s *authService) Logout(ctx context.Context, userID string) error {
	return s.revocations.RevokeAll(ctx, userID, time.Now())
}

func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *authService) generateAccessToken(user *models.User, issuedAt time.Time) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken checks signature, expiry and the revocation watermark, and
// returns the token's claims when it is still good.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	revokedAt, err := s.revocations.RevokedAt(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !revokedAt.IsZero() && claims.IssuedAt != nil && claims.IssuedAt.Time.Before(revokedAt) {
		return nil, ErrRevokedToken
	}

	return claims, nil
}
