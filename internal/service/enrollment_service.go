package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/presensi-admin-api/internal/dto"
	"github.com/noah-isme/presensi-admin-api/internal/repository"
)

// EnrollmentService converges a student's stored enrollments to a desired
// course set, preserving history via soft delete.
type EnrollmentService interface {
	Reconcile(ctx context.Context, req dto.EnrollmentSyncRequest) (dto.EnrollmentSyncResponse, error)
}

type enrollmentService struct {
	users       repository.UserRepository
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewEnrollmentService constructs the enrollment reconciler.
func NewEnrollmentService(users repository.UserRepository, enrollments repository.EnrollmentRepository, courses repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		users:       users,
		enrollments: enrollments,
		courses:     courses,
		validator:   validate,
		logger:      logger.With().Str("component", "enrollment_service").Logger(),
	}
}

// Reconcile computes a 3-way diff between the desired course set and one
// consistent snapshot of the student's enrollment rows, then applies it in a
// single transaction. Repeating the same desired set is a no-op. Concurrent
// calls for the same student are not serialized here; callers needing that
// must serialize at a higher layer.
func (s *enrollmentService) Reconcile(ctx context.Context, req dto.EnrollmentSyncRequest) (dto.EnrollmentSyncResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.EnrollmentSyncResponse{}, err
	}
	if req.CourseIDs == nil {
		return dto.EnrollmentSyncResponse{}, ErrCourseIDsRequired
	}

	if _, err := s.users.GetStudentByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentSyncResponse{}, ErrStudentNotFound
		}
		return dto.EnrollmentSyncResponse{}, &StoreReadError{Table: "users", Err: err}
	}

	existing, err := s.enrollments.ListByUserID(ctx, req.UserID, true)
	if err != nil {
		return dto.EnrollmentSyncResponse{}, &StoreReadError{Table: "enrollments", Err: err}
	}

	type enrollmentState struct {
		id        uint
		isDeleted bool
	}
	byCourse := make(map[uint]enrollmentState, len(existing))
	for _, enrollment := range existing {
		byCourse[enrollment.CourseID] = enrollmentState{id: enrollment.ID, isDeleted: enrollment.IsDeleted}
	}

	desired := make(map[uint]struct{}, len(req.CourseIDs))
	desiredIDs := make([]uint, 0, len(req.CourseIDs))
	for _, courseID := range req.CourseIDs {
		if _, seen := desired[courseID]; seen {
			continue
		}
		desired[courseID] = struct{}{}
		desiredIDs = append(desiredIDs, courseID)
	}

	if len(desiredIDs) > 0 {
		known, err := s.courses.ListByIDs(ctx, desiredIDs)
		if err != nil {
			return dto.EnrollmentSyncResponse{}, &StoreReadError{Table: "courses", Err: err}
		}
		if len(known) != len(desiredIDs) {
			return dto.EnrollmentSyncResponse{}, ErrCourseNotFound
		}
	}

	var create, restore, remove []uint
	for courseID := range desired {
		state, exists := byCourse[courseID]
		switch {
		case !exists:
			create = append(create, courseID)
		case state.isDeleted:
			restore = append(restore, state.id)
		}
	}
	for courseID, state := range byCourse {
		if state.isDeleted {
			continue
		}
		if _, wanted := desired[courseID]; !wanted {
			remove = append(remove, state.id)
		}
	}

	if len(create)+len(restore)+len(remove) > 0 {
		if err := s.enrollments.ApplyReconciliation(ctx, req.UserID, create, restore, remove); err != nil {
			return dto.EnrollmentSyncResponse{}, &StoreWriteError{Table: "enrollments", Err: err}
		}
	}

	response := dto.EnrollmentSyncResponse{
		UserID:  req.UserID,
		Added:   len(create) + len(restore),
		Deleted: len(remove),
	}

	s.logger.Info().
		Uint("user_id", req.UserID).
		Int("created", len(create)).
		Int("restored", len(restore)).
		Int("removed", len(remove)).
		Msg("enrollments reconciled")

	return response, nil
}
