package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/presensi-admin-api/internal/models"
	"github.com/noah-isme/presensi-admin-api/internal/repository"
)

type stubAttendanceRepo struct {
	rows      []models.Attendance
	logs      []models.Attendance
	logsTotal int64
	err       error

	listCalls  int
	logCalls   int
	lastIDs    []uint
	lastFilter repository.AttendanceLogFilter
}

func (s *stubAttendanceRepo) ListByEnrollmentIDs(_ context.Context, enrollmentIDs []uint) ([]models.Attendance, error) {
	s.listCalls++
	s.lastIDs = enrollmentIDs
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *stubAttendanceRepo) ListLogs(_ context.Context, filter repository.AttendanceLogFilter) ([]models.Attendance, int64, error) {
	s.logCalls++
	s.lastFilter = filter
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.logs, s.logsTotal, nil
}

type stubPermissionRepo struct {
	approved []models.Permission
	rows     []models.Permission
	total    int64
	byID     map[uint]models.Permission
	err      error

	approvedCalls int
	decisionCalls int
	lastStatus    string
	lastAdminID   uint
}

func (s *stubPermissionRepo) ListApprovedByEnrollmentIDs(_ context.Context, _ []uint) ([]models.Permission, error) {
	s.approvedCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.approved, nil
}

func (s *stubPermissionRepo) List(_ context.Context, _ repository.PermissionFilter) ([]models.Permission, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.rows, s.total, nil
}

func (s *stubPermissionRepo) GetByID(_ context.Context, id uint) (models.Permission, error) {
	if s.err != nil {
		return models.Permission{}, s.err
	}
	permission, ok := s.byID[id]
	if !ok {
		return models.Permission{}, gorm.ErrRecordNotFound
	}
	return permission, nil
}

func (s *stubPermissionRepo) SetDecision(_ context.Context, id uint, status string, adminID uint, decidedAt time.Time) error {
	s.decisionCalls++
	s.lastStatus = status
	s.lastAdminID = adminID

	permission, ok := s.byID[id]
	if !ok || permission.Status != models.PermissionStatusPending {
		return repository.ErrPermissionNotPending
	}

	permission.Status = status
	permission.ApprovedAt = &decidedAt
	permission.ApprovedBy = &adminID
	s.byID[id] = permission
	return nil
}

type stubUserRepo struct {
	students []models.User
	total    int64
	byID     map[uint]models.User
	err      error

	listCalls   int
	createCalls int
	deleteCalls int
	lastFilter  repository.StudentFilter
	lastCreated models.User
	lastDeleted uint
}

func (s *stubUserRepo) ListStudents(_ context.Context, filter repository.StudentFilter) ([]models.User, int64, error) {
	s.listCalls++
	s.lastFilter = filter
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.students, s.total, nil
}

func (s *stubUserRepo) GetStudentByID(_ context.Context, id uint) (models.User, error) {
	if s.err != nil {
		return models.User{}, s.err
	}
	user, ok := s.byID[id]
	if !ok || user.Role != models.RoleStudent {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id uint) (models.User, error) {
	if s.err != nil {
		return models.User{}, s.err
	}
	user, ok := s.byID[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) FindByIdentifier(_ context.Context, identifier string) (models.User, error) {
	if s.err != nil {
		return models.User{}, s.err
	}
	for _, user := range s.byID {
		if user.FullName == identifier || user.NIM == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) ListByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := s.byID[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *stubUserRepo) Create(_ context.Context, user *models.User) error {
	s.createCalls++
	if s.err != nil {
		return s.err
	}
	user.ID = uint(len(s.byID) + 1)
	if s.byID == nil {
		s.byID = make(map[uint]models.User)
	}
	s.byID[user.ID] = *user
	s.lastCreated = *user
	return nil
}

func (s *stubUserRepo) ExistsByEmailOrNIM(_ context.Context, email, nim string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, user := range s.byID {
		if user.Email == email || user.NIM == nim {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubUserRepo) Delete(_ context.Context, id uint) error {
	s.deleteCalls++
	s.lastDeleted = id
	if s.err != nil {
		return s.err
	}
	if _, ok := s.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.byID, id)
	return nil
}

type stubEnrollmentRepo struct {
	byUser map[uint][]models.Enrollment
	err    error

	applyCalls  int
	listCalls   int
	lastCreate  []uint
	lastRestore []uint
	lastRemove  []uint
}

func (s *stubEnrollmentRepo) ListByUserID(_ context.Context, userID uint, includeDeleted bool) ([]models.Enrollment, error) {
	if s.err != nil {
		return nil, s.err
	}
	var enrollments []models.Enrollment
	for _, enrollment := range s.byUser[userID] {
		if !includeDeleted && enrollment.IsDeleted {
			continue
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, nil
}

func (s *stubEnrollmentRepo) ListActiveByUserIDs(_ context.Context, userIDs []uint) ([]models.Enrollment, error) {
	if s.err != nil {
		return nil, s.err
	}
	var enrollments []models.Enrollment
	for _, userID := range userIDs {
		for _, enrollment := range s.byUser[userID] {
			if !enrollment.IsDeleted {
				enrollments = append(enrollments, enrollment)
			}
		}
	}
	return enrollments, nil
}

func (s *stubEnrollmentRepo) ListByIDs(_ context.Context, ids []uint) ([]models.Enrollment, error) {
	s.listCalls++
	if s.err != nil {
		return nil, s.err
	}
	wanted := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var enrollments []models.Enrollment
	for _, rows := range s.byUser {
		for _, enrollment := range rows {
			if _, ok := wanted[enrollment.ID]; ok {
				enrollments = append(enrollments, enrollment)
			}
		}
	}
	return enrollments, nil
}

func (s *stubEnrollmentRepo) ApplyReconciliation(_ context.Context, _ uint, createCourseIDs, restoreIDs, removeIDs []uint) error {
	s.applyCalls++
	s.lastCreate = createCourseIDs
	s.lastRestore = restoreIDs
	s.lastRemove = removeIDs
	return s.err
}

type stubCourseRepo struct {
	courses []models.Course
	err     error

	listCalls int
}

func (s *stubCourseRepo) List(_ context.Context) ([]models.Course, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.courses, nil
}

func (s *stubCourseRepo) ListByIDs(_ context.Context, ids []uint) ([]models.Course, error) {
	s.listCalls++
	if s.err != nil {
		return nil, s.err
	}
	wanted := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	courses := make([]models.Course, 0, len(ids))
	for _, course := range s.courses {
		if _, ok := wanted[course.ID]; ok {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

type stubAggregator struct {
	tallies map[uint]Tally
	err     error

	calls   int
	lastIDs []uint
}

func (s *stubAggregator) TalliesByEnrollment(_ context.Context, enrollmentIDs []uint) (map[uint]Tally, error) {
	s.calls++
	s.lastIDs = enrollmentIDs
	if s.err != nil {
		return nil, s.err
	}
	tallies := make(map[uint]Tally, len(enrollmentIDs))
	for _, id := range enrollmentIDs {
		tallies[id] = s.tallies[id]
	}
	return tallies, nil
}
