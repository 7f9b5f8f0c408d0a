package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/presensi-admin-api/internal/dto"
	"github.com/noah-isme/presensi-admin-api/internal/service"
)

type stubAttendanceLogService struct {
	result   dto.AttendanceLogResult
	today    string
	listErr  error
	todayErr error
}

func (s *stubAttendanceLogService) List(_ context.Context, _ dto.AttendanceLogRequest) (dto.AttendanceLogResult, error) {
	if s.listErr != nil {
		return dto.AttendanceLogResult{}, s.listErr
	}
	return s.result, nil
}

func (s *stubAttendanceLogService) ListToday(_ context.Context, _ string) (dto.AttendanceLogResult, string, error) {
	if s.todayErr != nil {
		return dto.AttendanceLogResult{}, s.today, s.todayErr
	}
	return s.result, s.today, nil
}

func newAttendanceApp(svc service.AttendanceLogService) *fiber.App {
	app := fiber.New()
	NewAttendanceHandler(svc, zerolog.Nop()).Register(app.Group("/api/attendance"))
	return app
}

func TestAttendanceLogsEnvelope(t *testing.T) {
	svc := &stubAttendanceLogService{result: dto.AttendanceLogResult{
		Rows: []dto.AttendanceLogRow{
			{ID: 1, NIM: "2210101", Name: "Ani", Status: "present"},
		},
		Meta: dto.NewPageMeta(1, 1, 50),
	}}
	app := newAttendanceApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/attendance/logs", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                   `json:"success"`
		Data    []dto.AttendanceLogRow `json:"data"`
		Total   int64                  `json:"total"`
	}
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	require.True(t, payload.Success)
	require.Len(t, payload.Data, 1)
	require.Equal(t, int64(1), payload.Total)
}

func TestAttendanceLogsInvalidDate(t *testing.T) {
	app := newAttendanceApp(&stubAttendanceLogService{listErr: service.ErrInvalidDate})

	req := httptest.NewRequest(http.MethodGet, "/api/attendance/logs?date=03-2026", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAttendanceTodayEnvelope(t *testing.T) {
	svc := &stubAttendanceLogService{
		result: dto.AttendanceLogResult{
			Rows: []dto.AttendanceLogRow{{ID: 1, Status: "late"}},
		},
		today: "2026-03-09",
	}
	app := newAttendanceApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/attendance/logs/today", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                   `json:"success"`
		Count   int                    `json:"count"`
		Date    string                 `json:"date"`
		Data    []dto.AttendanceLogRow `json:"data"`
	}
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	require.True(t, payload.Success)
	require.Equal(t, 1, payload.Count)
	require.Equal(t, "2026-03-09", payload.Date)
}
