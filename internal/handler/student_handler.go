package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/presensi-admin-api/internal/dto"
	"github.com/noah-isme/presensi-admin-api/internal/service"
	"github.com/noah-isme/presensi-admin-api/internal/utils"
)

// StudentHandler wires the student list and detail endpoints.
type StudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches student routes to the router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.detail)
	router.Delete("/:id", h.remove)
}

type studentListData struct {
	Students []dto.StudentSummary `json:"students"`
}

type studentListEnvelope struct {
	Success    bool            `json:"success"`
	Data       studentListData `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
	HasNext    bool            `json:"hasNextPage"`
	HasPrev    bool            `json:"hasPrevPage"`
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}

	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	if limit > 100 {
		limit = 100
	}

	filter := c.Query("filter")
	switch filter {
	case "", dto.StudentFilterAll, dto.StudentFilterExceeded, dto.StudentFilterReached:
	default:
		return utils.SendError(c, fiber.StatusBadRequest, "filter must be one of all, past, reach")
	}

	result, err := h.service.List(c.Context(), dto.StudentListRequest{
		Search: c.Query("search"),
		Filter: filter,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list students")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch students")
	}

	return c.Status(fiber.StatusOK).JSON(studentListEnvelope{
		Success:    true,
		Data:       studentListData{Students: result.Students},
		Total:      result.Meta.Total,
		Page:       result.Meta.Page,
		Limit:      result.Meta.Limit,
		TotalPages: result.Meta.TotalPages,
		HasNext:    result.Meta.HasNext,
		HasPrev:    result.Meta.HasPrev,
	})
}

func (h *StudentHandler) detail(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	detail, err := h.service.Detail(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch student detail")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch student detail")
	}

	return utils.SendSuccess(c, "student retrieved", detail)
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	student, err := h.service.Create(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "full_name, nim, email and a password of at least 8 characters are required")
		case errors.Is(err, service.ErrStudentExists):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create student")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create student")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student created", student)
}

func (h *StudentHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete student")
	}

	return utils.SendSuccess(c, "student deleted", nil)
}
