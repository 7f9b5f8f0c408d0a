package dto

import "github.com/noah-isme/presensi-admin-api/internal/models"

// LoginRequest authenticates an admin. Username may be a full name, NIM or
// email address.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and the authenticated user.
type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}
