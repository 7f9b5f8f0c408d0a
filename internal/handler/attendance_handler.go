package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/presensi-admin-api/internal/dto"
	"github.com/noah-isme/presensi-admin-api/internal/service"
	"github.com/noah-isme/presensi-admin-api/internal/utils"
)

// AttendanceHandler wires the attendance log endpoints.
type AttendanceHandler struct {
	service service.AttendanceLogService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service service.AttendanceLogService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register attaches attendance log routes to the router group.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Get("/logs", h.logs)
	router.Get("/logs/today", h.today)
}

type attendanceLogEnvelope struct {
	Success    bool                   `json:"success"`
	Data       []dto.AttendanceLogRow `json:"data"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"totalPages"`
	HasNext    bool                   `json:"hasNextPage"`
	HasPrev    bool                   `json:"hasPrevPage"`
}

type todayLogEnvelope struct {
	Success bool                   `json:"success"`
	Count   int                    `json:"count"`
	Date    string                 `json:"date"`
	Data    []dto.AttendanceLogRow `json:"data"`
}

func (h *AttendanceHandler) logs(c *fiber.Ctx) error {
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

	result, err := h.service.List(c.Context(), dto.AttendanceLogRequest{
		Status: c.Query("status"),
		Date:   c.Query("date"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list attendance logs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch attendance logs")
	}

	return c.Status(fiber.StatusOK).JSON(attendanceLogEnvelope{
		Success:    true,
		Data:       result.Rows,
		Total:      result.Meta.Total,
		Page:       result.Meta.Page,
		Limit:      result.Meta.Limit,
		TotalPages: result.Meta.TotalPages,
		HasNext:    result.Meta.HasNext,
		HasPrev:    result.Meta.HasPrev,
	})
}

func (h *AttendanceHandler) today(c *fiber.Ctx) error {
	result, date, err := h.service.ListToday(c.Context(), c.Query("status"))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list today's attendance logs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch today's attendance logs")
	}

	return c.Status(fiber.StatusOK).JSON(todayLogEnvelope{
		Success: true,
		Count:   len(result.Rows),
		Date:    date,
		Data:    result.Rows,
	})
}
