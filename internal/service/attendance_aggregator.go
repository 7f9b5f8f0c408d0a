package service

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/presensi-admin-api/internal/models"
	"github.com/noah-isme/presensi-admin-api/internal/repository"
)

// AttendanceAggregator computes attendance tallies for a set of enrollments,
// combining direct attendance events with approved permission requests.
type AttendanceAggregator interface {
	TalliesByEnrollment(ctx context.Context, enrollmentIDs []uint) (map[uint]Tally, error)
}

type attendanceAggregator struct {
	attendances repository.AttendanceRepository
	permissions repository.PermissionRepository
	logger      zerolog.Logger
}

// NewAttendanceAggregator constructs the aggregator.
func NewAttendanceAggregator(attendances repository.AttendanceRepository, permissions repository.PermissionRepository, logger zerolog.Logger) AttendanceAggregator {
	return &attendanceAggregator{
		attendances: attendances,
		permissions: permissions,
		logger:      logger.With().Str("component", "attendance_aggregator").Logger(),
	}
}

// TalliesByEnrollment issues exactly one batched read per source table for
// the whole working set, independent of enrollment count. A failed read of
// either table aborts the aggregation; no partial tallies are returned.
func (a *attendanceAggregator) TalliesByEnrollment(ctx context.Context, enrollmentIDs []uint) (map[uint]Tally, error) {
	tracer := otel.Tracer("github.com/noah-isme/presensi-admin-api/internal/service/attendance_aggregator")
	ctx, span := tracer.Start(ctx, "attendance.aggregate")
	span.SetAttributes(attribute.Int("attendance.enrollment_count", len(enrollmentIDs)))
	defer span.End()

	tallies := make(map[uint]Tally, len(enrollmentIDs))
	for _, id := range enrollmentIDs {
		tallies[id] = Tally{}
	}

	rows, err := a.attendances.ListByEnrollmentIDs(ctx, enrollmentIDs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "attendances_read_failed")
		a.logger.Error().Err(err).Str("table", "attendances").Msg("aggregation read failed")
		return nil, &StoreReadError{Table: "attendances", Err: err}
	}

	for _, row := range rows {
		tally := tallies[row.EnrollmentID]
		switch row.Status {
		case models.AttendanceStatusPresent:
			tally.Present++
		case models.AttendanceStatusLate:
			tally.Late++
		case models.AttendanceStatusAbsent:
			tally.Absent++
		default:
			continue
		}
		tally.Total++
		tallies[row.EnrollmentID] = tally
	}

	permissions, err := a.permissions.ListApprovedByEnrollmentIDs(ctx, enrollmentIDs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "permissions_read_failed")
		a.logger.Error().Err(err).Str("table", "permissions").Msg("aggregation read failed")
		return nil, &StoreReadError{Table: "permissions", Err: err}
	}

	for _, permission := range permissions {
		bucket, ok := classifyPermissionReason(permission.Reason)
		if !ok {
			continue
		}

		tally := tallies[permission.EnrollmentID]
		if bucket == models.AttendanceStatusSick {
			tally.Sick++
		} else {
			tally.Excused++
		}
		tally.Total++
		tallies[permission.EnrollmentID] = tally
	}

	return tallies, nil
}
