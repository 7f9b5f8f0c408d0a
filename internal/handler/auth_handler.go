package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/presensi-admin-api/internal/dto"
	"github.com/noah-isme/presensi-admin-api/internal/service"
	"github.com/noah-isme/presensi-admin-api/internal/utils"
)

// AuthHandler wires the authentication endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterPublic attaches routes that require no token.
func (h *AuthHandler) RegisterPublic(router fiber.Router) {
	router.Post("/login", h.login)
	router.Post("/logout", h.logout)
}

// RegisterProtected attaches routes that require a valid token.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Get("/me", h.me)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Login(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "username and password are required")
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid username or password")
		case errors.Is(err, service.ErrAdminRequired):
			return utils.SendError(c, fiber.StatusForbidden, "access denied, admin privileges required")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
		}
	}

	return utils.SendSuccess(c, "login successful", response)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	// Tokens are stateless; logout is acknowledged so clients can clear them.
	return utils.SendSuccess(c, "logout successful", nil)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
	}

	user, err := h.service.CurrentUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load current user")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load current user")
	}

	return utils.SendSuccess(c, "user info retrieved", user)
}
