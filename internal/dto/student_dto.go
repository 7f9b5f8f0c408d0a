package dto

import "github.com/noah-isme/presensi-admin-api/internal/models"

// Student list filter values. "past" selects students whose tolerance is
// exceeded on any course, "reach" those who reached the limit without
// exceeding it anywhere.
const (
	StudentFilterAll      = "all"
	StudentFilterExceeded = "past"
	StudentFilterReached  = "reach"
)

// StudentCreateRequest registers a new student account. The password is
// hashed the same way the mobile app hashes it before storage.
type StudentCreateRequest struct {
	FullName string `json:"full_name" validate:"required"`
	NIM      string `json:"nim" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// StudentListRequest captures the query parameters of the student list.
type StudentListRequest struct {
	Search string
	Filter string
	Page   int
	Limit  int
}

// StudentTolerance is the per-student rollup shown in the list view. Late and
// absent are summed across all active courses for display; the flags come
// from the per-course evaluation.
type StudentTolerance struct {
	Late     int  `json:"late"`
	Absent   int  `json:"absent"`
	Exceeded bool `json:"exceeded"`
	Reached  bool `json:"reached"`
}

// StudentSummary is a single row of the student list.
type StudentSummary struct {
	UserID    uint             `json:"user_id"`
	FullName  string           `json:"full_name"`
	NIM       string           `json:"nim"`
	Tolerance StudentTolerance `json:"tolerance"`
}

// StudentListResult is the service-level list result. It is cached as a
// whole, so Meta stays serializable.
type StudentListResult struct {
	Students []StudentSummary `json:"students"`
	Meta     PageMeta         `json:"meta"`
}

// AttendanceCount tallies attendance outcomes for one enrollment. Total only
// counts events that landed in one of the five buckets.
type AttendanceCount struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
	Sick    int `json:"sick"`
	Excused int `json:"excused"`
	Total   int `json:"total"`
}

// CourseAttendance pairs a course with the student's tally for it.
type CourseAttendance struct {
	CourseID   uint            `json:"course_id"`
	CourseCode string          `json:"course_code"`
	CourseName string          `json:"course_name"`
	Attendance AttendanceCount `json:"attendance"`
}

// ToleranceCounts is the reduced tally attached to a tolerance issue.
type ToleranceCounts struct {
	Late   int `json:"late"`
	Absent int `json:"absent"`
	Total  int `json:"total"`
}

// CourseToleranceIssue names a course on which the student reached or
// exceeded the tolerance limit.
type CourseToleranceIssue struct {
	CourseID   uint            `json:"course_id"`
	CourseCode string          `json:"course_code"`
	CourseName string          `json:"course_name"`
	Attendance ToleranceCounts `json:"attendance"`
}

// ToleranceSummary groups a student's tolerance issues per course.
type ToleranceSummary struct {
	HasIssues bool                   `json:"has_issues"`
	Exceeded  []CourseToleranceIssue `json:"exceeded"`
	Reached   []CourseToleranceIssue `json:"reached"`
}

// StudentDetailResponse is the payload of GET /students/:id.
type StudentDetailResponse struct {
	Student   models.User        `json:"student"`
	Courses   []CourseAttendance `json:"courses"`
	Tolerance ToleranceSummary   `json:"tolerance"`
}
