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

// PermissionHandler wires the permission request endpoints.
type PermissionHandler struct {
	service service.PermissionService
	logger  zerolog.Logger
}

// NewPermissionHandler constructs the handler.
func NewPermissionHandler(service service.PermissionService, logger zerolog.Logger) *PermissionHandler {
	return &PermissionHandler{
		service: service,
		logger:  logger.With().Str("component", "permission_handler").Logger(),
	}
}

// Register attaches permission routes to the router group.
func (h *PermissionHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.detail)
	router.Put("/:id/status", h.decide)
}

type permissionListEnvelope struct {
	Success    bool                     `json:"success"`
	Count      int                      `json:"count"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	TotalPages int                      `json:"totalPages"`
	HasNext    bool                     `json:"hasNextPage"`
	HasPrev    bool                     `json:"hasPrevPage"`
	Data       []dto.PermissionListItem `json:"data"`
}

func (h *PermissionHandler) list(c *fiber.Ctx) error {
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

	result, err := h.service.List(c.Context(), dto.PermissionListRequest{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list permission requests")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch permission requests")
	}

	return c.Status(fiber.StatusOK).JSON(permissionListEnvelope{
		Success:    true,
		Count:      len(result.Items),
		Total:      result.Meta.Total,
		Page:       result.Meta.Page,
		Limit:      result.Meta.Limit,
		TotalPages: result.Meta.TotalPages,
		HasNext:    result.Meta.HasNext,
		HasPrev:    result.Meta.HasPrev,
		Data:       result.Items,
	})
}

func (h *PermissionHandler) detail(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	detail, err := h.service.Detail(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPermissionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "permission request not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch permission detail")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch permission detail")
	}

	return utils.SendSuccess(c, "permission retrieved", detail)
}

func (h *PermissionHandler) decide(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.PermissionDecisionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.Decide(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "permission request not found")
		case errors.Is(err, service.ErrPermissionDecided):
			return utils.SendError(c, fiber.StatusConflict, "permission request already decided")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update permission status")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update permission status")
		}
	}

	return utils.SendSuccess(c, fmt.Sprintf("permission %s successfully", updated.Status), updated)
}
