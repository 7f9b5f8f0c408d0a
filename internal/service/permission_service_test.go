package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/noah-isme/presensi-admin-api/internal/dto"
	"github.com/noah-isme/presensi-admin-api/internal/models"
)

func newPermissionService(permissions *stubPermissionRepo, enrollments *stubEnrollmentRepo, users *stubUserRepo, courses *stubCourseRepo) PermissionService {
	return NewPermissionService(permissions, enrollments, users, courses, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
}

func TestPermissionListEnrichesItems(t *testing.T) {
	submittedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	permissions := &stubPermissionRepo{
		rows: []models.Permission{
			{
				ID:             1,
				EnrollmentID:   10,
				Reason:         "sick",
				Status:         models.PermissionStatusPending,
				PermissionDate: datatypes.Date(submittedAt),
				SubmittedAt:    submittedAt,
			},
			{ID: 2, EnrollmentID: 99, Reason: "other", Status: models.PermissionStatusPending},
		},
		total: 2,
	}
	enrollments := &stubEnrollmentRepo{byUser: map[uint][]models.Enrollment{
		1: {{ID: 10, UserID: 1, CourseID: 100}},
	}}
	users := &stubUserRepo{byID: map[uint]models.User{
		1: {ID: 1, FullName: "Ani", NIM: "2210101", Role: models.RoleStudent},
	}}
	courses := &stubCourseRepo{courses: []models.Course{
		{ID: 100, Code: "IF101", Name: "Algorithms"},
	}}

	svc := newPermissionService(permissions, enrollments, users, courses)

	result, err := svc.List(context.Background(), dto.PermissionListRequest{Page: 1, Limit: 50})
	require.NoError(t, err)

	require.Equal(t, 1, enrollments.listCalls, "one enrollment read regardless of row count")
	require.Len(t, result.Items, 2)

	first := result.Items[0]
	require.Equal(t, "2210101", first.NIM)
	require.Equal(t, "Ani", first.Name)
	require.Equal(t, "IF101", first.CourseCode)
	require.Equal(t, "2026-03-01", first.PermissionDate)
	require.NotNil(t, first.StudentID)

	orphan := result.Items[1]
	require.Equal(t, "-", orphan.NIM, "missing enrollment degrades to sentinels")
	require.Equal(t, "Unknown", orphan.Name)
	require.Nil(t, orphan.StudentID)

	require.Equal(t, int64(2), result.Meta.Total)
}

func TestPermissionDetailNotFound(t *testing.T) {
	svc := newPermissionService(&stubPermissionRepo{byID: map[uint]models.Permission{}}, &stubEnrollmentRepo{}, &stubUserRepo{}, &stubCourseRepo{})

	_, err := svc.Detail(context.Background(), 42)
	require.ErrorIs(t, err, ErrPermissionNotFound)
}

func TestDecideApprovesPendingRequest(t *testing.T) {
	permissions := &stubPermissionRepo{byID: map[uint]models.Permission{
		1: {ID: 1, EnrollmentID: 10, Status: models.PermissionStatusPending},
	}}

	svc := newPermissionService(permissions, &stubEnrollmentRepo{}, &stubUserRepo{}, &stubCourseRepo{})

	updated, err := svc.Decide(context.Background(), 1, dto.PermissionDecisionRequest{
		Status:  models.PermissionStatusApproved,
		AdminID: 5,
	})
	require.NoError(t, err)

	require.Equal(t, models.PermissionStatusApproved, updated.Status)
	require.NotNil(t, updated.ApprovedAt)
	require.NotNil(t, updated.ApprovedBy)
	require.Equal(t, uint(5), *updated.ApprovedBy)
}

func TestDecideRejectsDecidedRequest(t *testing.T) {
	permissions := &stubPermissionRepo{byID: map[uint]models.Permission{
		1: {ID: 1, EnrollmentID: 10, Status: models.PermissionStatusApproved},
	}}

	svc := newPermissionService(permissions, &stubEnrollmentRepo{}, &stubUserRepo{}, &stubCourseRepo{})

	_, err := svc.Decide(context.Background(), 1, dto.PermissionDecisionRequest{
		Status:  models.PermissionStatusRejected,
		AdminID: 5,
	})
	require.ErrorIs(t, err, ErrPermissionDecided)
}

func TestDecideUnknownRequest(t *testing.T) {
	svc := newPermissionService(&stubPermissionRepo{byID: map[uint]models.Permission{}}, &stubEnrollmentRepo{}, &stubUserRepo{}, &stubCourseRepo{})

	_, err := svc.Decide(context.Background(), 42, dto.PermissionDecisionRequest{
		Status:  models.PermissionStatusApproved,
		AdminID: 5,
	})
	require.ErrorIs(t, err, ErrPermissionNotFound)
}

func TestDecideValidatesStatus(t *testing.T) {
	permissions := &stubPermissionRepo{byID: map[uint]models.Permission{
		1: {ID: 1, EnrollmentID: 10, Status: models.PermissionStatusPending},
	}}

	svc := newPermissionService(permissions, &stubEnrollmentRepo{}, &stubUserRepo{}, &stubCourseRepo{})

	_, err := svc.Decide(context.Background(), 1, dto.PermissionDecisionRequest{
		Status:  "maybe",
		AdminID: 5,
	})
	require.Error(t, err)
	require.Zero(t, permissions.decisionCalls)
}
