package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/presensi-admin-api/internal/dto"
	"github.com/noah-isme/presensi-admin-api/internal/models"
	"github.com/noah-isme/presensi-admin-api/internal/repository"
)

// StudentService serves the student list and detail views with tolerance
// aggregation, and manages the student accounts themselves.
type StudentService interface {
	List(ctx context.Context, req dto.StudentListRequest) (dto.StudentListResult, error)
	Detail(ctx context.Context, id uint) (dto.StudentDetailResponse, error)
	Create(ctx context.Context, req dto.StudentCreateRequest) (models.User, error)
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	users       repository.UserRepository
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	aggregator  AttendanceAggregator
	validator   *validator.Validate
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewStudentService constructs the student service. The cache client may be
// nil; caching is a latency optimization, not a correctness mechanism.
func NewStudentService(users repository.UserRepository, enrollments repository.EnrollmentRepository, courses repository.CourseRepository, aggregator AttendanceAggregator, validate *validator.Validate, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) StudentService {
	return &studentService{
		users:       users,
		enrollments: enrollments,
		courses:     courses,
		aggregator:  aggregator,
		validator:   validate,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) List(ctx context.Context, req dto.StudentListRequest) (dto.StudentListResult, error) {
	filter := strings.ToLower(strings.TrimSpace(req.Filter))
	if filter == "" {
		filter = dto.StudentFilterAll
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 50
	}

	cacheKey := fmt.Sprintf("students:list:%s:%s:%d:%d", filter, strings.ToLower(req.Search), req.Page, req.Limit)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var result dto.StudentListResult
			if unmarshalErr := json.Unmarshal([]byte(cached), &result); unmarshalErr == nil {
				s.logger.Debug().Str("cache_key", cacheKey).Msg("student list cache hit")
				return result, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read student list cache")
		}
	}

	var (
		result dto.StudentListResult
		err    error
	)
	if filter == dto.StudentFilterAll {
		result, err = s.listPaged(ctx, req)
	} else {
		result, err = s.listByTolerance(ctx, req, filter)
	}
	if err != nil {
		return dto.StudentListResult{}, err
	}

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(result); marshalErr == nil {
			if cacheErr := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); cacheErr != nil {
				s.logger.Warn().Err(cacheErr).Msg("failed to store student list cache")
			}
		}
	}

	return result, nil
}

// listPaged pages at the store level: a count query and a data query with
// identical predicates, then one aggregation pass over the page's
// enrollments.
func (s *studentService) listPaged(ctx context.Context, req dto.StudentListRequest) (dto.StudentListResult, error) {
	students, total, err := s.users.ListStudents(ctx, repository.StudentFilter{
		Search:   strings.TrimSpace(req.Search),
		Page:     req.Page,
		PageSize: req.Limit,
	})
	if err != nil {
		return dto.StudentListResult{}, &StoreReadError{Table: "users", Err: err}
	}

	summaries, err := s.summarize(ctx, students)
	if err != nil {
		return dto.StudentListResult{}, err
	}

	return dto.StudentListResult{
		Students: summaries,
		Meta:     dto.NewPageMeta(total, req.Page, req.Limit),
	}, nil
}

// listByTolerance applies the global-scope policy for filters the store
// cannot express: fetch every student matching the search, aggregate tallies
// in batch, filter in memory, then paginate the filtered set. Total reflects
// the globally filtered count.
func (s *studentService) listByTolerance(ctx context.Context, req dto.StudentListRequest, filter string) (dto.StudentListResult, error) {
	students, _, err := s.users.ListStudents(ctx, repository.StudentFilter{
		Search: strings.TrimSpace(req.Search),
	})
	if err != nil {
		return dto.StudentListResult{}, &StoreReadError{Table: "users", Err: err}
	}

	summaries, err := s.summarize(ctx, students)
	if err != nil {
		return dto.StudentListResult{}, err
	}

	filtered := make([]dto.StudentSummary, 0, len(summaries))
	for _, summary := range summaries {
		switch filter {
		case dto.StudentFilterExceeded:
			if summary.Tolerance.Exceeded {
				filtered = append(filtered, summary)
			}
		case dto.StudentFilterReached:
			if summary.Tolerance.Reached {
				filtered = append(filtered, summary)
			}
		}
	}

	total := int64(len(filtered))
	start := (req.Page - 1) * req.Limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + req.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return dto.StudentListResult{
		Students: filtered[start:end],
		Meta:     dto.NewPageMeta(total, req.Page, req.Limit),
	}, nil
}

// summarize resolves active enrollments for the given students in one
// batched read, aggregates their tallies, and rolls them up per student.
func (s *studentService) summarize(ctx context.Context, students []models.User) ([]dto.StudentSummary, error) {
	userIDs := make([]uint, 0, len(students))
	for _, student := range students {
		userIDs = append(userIDs, student.ID)
	}

	enrollments, err := s.enrollments.ListActiveByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, &StoreReadError{Table: "enrollments", Err: err}
	}

	enrollmentIDs := make([]uint, 0, len(enrollments))
	for _, enrollment := range enrollments {
		enrollmentIDs = append(enrollmentIDs, enrollment.ID)
	}

	tallies, err := s.aggregator.TalliesByEnrollment(ctx, enrollmentIDs)
	if err != nil {
		return nil, err
	}

	talliesByUser := make(map[uint][]Tally, len(students))
	for _, enrollment := range enrollments {
		talliesByUser[enrollment.UserID] = append(talliesByUser[enrollment.UserID], tallies[enrollment.ID])
	}

	summaries := make([]dto.StudentSummary, 0, len(students))
	for _, student := range students {
		rollup := RollupTallies(talliesByUser[student.ID])
		summaries = append(summaries, dto.StudentSummary{
			UserID:   student.ID,
			FullName: student.FullName,
			NIM:      student.NIM,
			Tolerance: dto.StudentTolerance{
				Late:     rollup.Late,
				Absent:   rollup.Absent,
				Exceeded: rollup.Exceeded,
				Reached:  rollup.Reached,
			},
		})
	}

	return summaries, nil
}

func (s *studentService) Detail(ctx context.Context, id uint) (dto.StudentDetailResponse, error) {
	student, err := s.users.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentDetailResponse{}, ErrStudentNotFound
		}
		return dto.StudentDetailResponse{}, &StoreReadError{Table: "users", Err: err}
	}

	enrollments, err := s.enrollments.ListByUserID(ctx, id, false)
	if err != nil {
		return dto.StudentDetailResponse{}, &StoreReadError{Table: "enrollments", Err: err}
	}

	courseIDs := make([]uint, 0, len(enrollments))
	enrollmentIDs := make([]uint, 0, len(enrollments))
	for _, enrollment := range enrollments {
		courseIDs = append(courseIDs, enrollment.CourseID)
		enrollmentIDs = append(enrollmentIDs, enrollment.ID)
	}

	courses, err := s.courses.ListByIDs(ctx, courseIDs)
	if err != nil {
		return dto.StudentDetailResponse{}, &StoreReadError{Table: "courses", Err: err}
	}
	courseByID := make(map[uint]models.Course, len(courses))
	for _, course := range courses {
		courseByID[course.ID] = course
	}

	tallies, err := s.aggregator.TalliesByEnrollment(ctx, enrollmentIDs)
	if err != nil {
		return dto.StudentDetailResponse{}, err
	}

	courseAttendance := make([]dto.CourseAttendance, 0, len(enrollments))
	tolerance := dto.ToleranceSummary{
		Exceeded: make([]dto.CourseToleranceIssue, 0),
		Reached:  make([]dto.CourseToleranceIssue, 0),
	}

	for _, enrollment := range enrollments {
		tally := tallies[enrollment.ID]

		courseCode := "-"
		courseName := "Unknown"
		if course, ok := courseByID[enrollment.CourseID]; ok {
			courseCode = course.Code
			courseName = course.Name
		}

		courseAttendance = append(courseAttendance, dto.CourseAttendance{
			CourseID:   enrollment.CourseID,
			CourseCode: courseCode,
			CourseName: courseName,
			Attendance: dto.AttendanceCount{
				Present: tally.Present,
				Late:    tally.Late,
				Absent:  tally.Absent,
				Sick:    tally.Sick,
				Excused: tally.Excused,
				Total:   tally.Total,
			},
		})

		issue := dto.CourseToleranceIssue{
			CourseID:   enrollment.CourseID,
			CourseCode: courseCode,
			CourseName: courseName,
			Attendance: dto.ToleranceCounts{
				Late:   tally.Late,
				Absent: tally.Absent,
				Total:  tally.Late + tally.Absent,
			},
		}

		switch tally.Tolerance() {
		case ToleranceExceeded:
			tolerance.Exceeded = append(tolerance.Exceeded, issue)
		case ToleranceReached:
			tolerance.Reached = append(tolerance.Reached, issue)
		}
	}

	tolerance.HasIssues = len(tolerance.Exceeded) > 0 || len(tolerance.Reached) > 0

	return dto.StudentDetailResponse{
		Student:   student,
		Courses:   courseAttendance,
		Tolerance: tolerance,
	}, nil
}

// Create registers a new student account. The password is stored as a sha256
// hex digest, matching what the mobile app writes, so the new account can log
// in there immediately. Duplicate email or NIM is rejected before the insert.
func (s *studentService) Create(ctx context.Context, req dto.StudentCreateRequest) (models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.User{}, err
	}

	email := strings.TrimSpace(req.Email)
	nim := strings.TrimSpace(req.NIM)

	taken, err := s.users.ExistsByEmailOrNIM(ctx, email, nim)
	if err != nil {
		return models.User{}, &StoreReadError{Table: "users", Err: err}
	}
	if taken {
		return models.User{}, ErrStudentExists
	}

	digest := sha256.Sum256([]byte(req.Password))
	student := models.User{
		FullName:     strings.TrimSpace(req.FullName),
		NIM:          nim,
		Email:        email,
		Role:         models.RoleStudent,
		PasswordHash: hex.EncodeToString(digest[:]),
	}

	if err := s.users.Create(ctx, &student); err != nil {
		return models.User{}, &StoreWriteError{Table: "users", Err: err}
	}

	s.logger.Info().Uint("user_id", student.ID).Str("nim", student.NIM).Msg("student created")

	return student, nil
}

// Delete soft deletes a student. Enrollments and attendance rows stay in
// place; the soft-delete scope keeps the student out of listings. The list
// cache is not purged, its TTL bounds the staleness.
func (s *studentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.users.GetStudentByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return &StoreReadError{Table: "users", Err: err}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return &StoreWriteError{Table: "users", Err: err}
	}

	s.logger.Info().Uint("user_id", id).Msg("student deleted")

	return nil
}
