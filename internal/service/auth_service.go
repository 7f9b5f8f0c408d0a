package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/presensi-admin-api/internal/dto"
	"github.com/noah-isme/presensi-admin-api/internal/models"
	"github.com/noah-isme/presensi-admin-api/internal/repository"
)

// AuthService authenticates dashboard admins and issues session tokens.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	CurrentUser(ctx context.Context, userID uint) (models.User, error)
}

type authService struct {
	users     repository.UserRepository
	validator *validator.Validate
	secret    string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(users repository.UserRepository, validate *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		validator: validate,
		secret:    secret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

// Login authenticates by full name, NIM or email. Credentials are sha256 hex
// digests written by the existing mobile app, so the same digest is compared
// here. Only admins may access the dashboard.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.FindByIdentifier(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, &StoreReadError{Table: "users", Err: err}
	}

	digest := sha256.Sum256([]byte(req.Password))
	hashed := hex.EncodeToString(digest[:])
	if subtle.ConstantTimeCompare([]byte(hashed), []byte(user.PasswordHash)) != 1 {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if user.Role != models.RoleAdmin {
		return dto.LoginResponse{}, ErrAdminRequired
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"name": user.FullName,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("admin logged in")

	return dto.LoginResponse{Token: token, User: user}, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID uint) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, &StoreReadError{Table: "users", Err: err}
	}

	return user, nil
}
