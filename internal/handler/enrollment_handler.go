package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/presensi-admin-api/internal/dto"
	"github.com/noah-isme/presensi-admin-api/internal/service"
	"github.com/noah-isme/presensi-admin-api/internal/utils"
)

// EnrollmentHandler wires the enrollment reconciliation endpoint.
type EnrollmentHandler struct {
	service service.EnrollmentService
	logger  zerolog.Logger
}

// NewEnrollmentHandler constructs the handler.
func NewEnrollmentHandler(service service.EnrollmentService, logger zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service: service,
		logger:  logger.With().Str("component", "enrollment_handler").Logger(),
	}
}

// Register attaches enrollment routes to the router group.
func (h *EnrollmentHandler) Register(router fiber.Router) {
	router.Post("", h.sync)
}

func (h *EnrollmentHandler) sync(c *fiber.Ctx) error {
	var payload dto.EnrollmentSyncRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload: course_ids must be an array of course ids")
	}

	response, err := h.service.Reconcile(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrCourseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "one or more course ids do not exist")
		case errors.Is(err, service.ErrCourseIDsRequired), isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to reconcile enrollments")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update enrollments")
		}
	}

	message := fmt.Sprintf("enrollments updated: %d added, %d removed", response.Added, response.Deleted)
	return utils.SendSuccess(c, message, response)
}
