package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/presensi-admin-api/internal/dto"
	"github.com/noah-isme/presensi-admin-api/internal/models"
)

func hashPassword(password string) string {
	digest := sha256.Sum256([]byte(password))
	return hex.EncodeToString(digest[:])
}

func newAuthService(users *stubUserRepo) AuthService {
	return NewAuthService(users, validator.New(validator.WithRequiredStructEnabled()), "test-secret", time.Hour, zerolog.Nop())
}

func TestLoginIssuesToken(t *testing.T) {
	users := &stubUserRepo{byID: map[uint]models.User{
		1: {ID: 1, FullName: "Admin One", Email: "admin@example.com", Role: models.RoleAdmin, PasswordHash: hashPassword("secret")},
	}}

	svc := newAuthService(users)

	response, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "admin@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	require.Equal(t, uint(1), response.User.ID)

	token, err := jwt.Parse(response.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, float64(1), claims["sub"])
	require.Equal(t, models.RoleAdmin, claims["role"])
	require.Equal(t, "Admin One", claims["name"])
}

func TestLoginByNIM(t *testing.T) {
	users := &stubUserRepo{byID: map[uint]models.User{
		1: {ID: 1, FullName: "Admin One", NIM: "9900001", Email: "admin@example.com", Role: models.RoleAdmin, PasswordHash: hashPassword("secret")},
	}}

	svc := newAuthService(users)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "9900001", Password: "secret"})
	require.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	users := &stubUserRepo{byID: map[uint]models.User{
		1: {ID: 1, Email: "admin@example.com", Role: models.RoleAdmin, PasswordHash: hashPassword("secret")},
	}}

	svc := newAuthService(users)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newAuthService(&stubUserRepo{byID: map[uint]models.User{}})

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ghost@example.com", Password: "secret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsNonAdmin(t *testing.T) {
	users := &stubUserRepo{byID: map[uint]models.User{
		1: {ID: 1, Email: "student@example.com", Role: models.RoleStudent, PasswordHash: hashPassword("secret")},
	}}

	svc := newAuthService(users)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "student@example.com", Password: "secret"})
	require.ErrorIs(t, err, ErrAdminRequired)
}

func TestCurrentUserMissing(t *testing.T) {
	svc := newAuthService(&stubUserRepo{byID: map[uint]models.User{}})

	_, err := svc.CurrentUser(context.Background(), 42)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
