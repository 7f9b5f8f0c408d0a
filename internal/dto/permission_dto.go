package dto

import "time"

// PermissionListRequest captures query parameters for the permission list.
type PermissionListRequest struct {
	Status string
	Page   int
	Limit  int
}

// PermissionListItem is one row of the permission request list, enriched with
// student and course data via batched lookups.
type PermissionListItem struct {
	ID             uint      `json:"id"`
	EnrollmentID   uint      `json:"enrollment_id"`
	StudentID      *uint     `json:"student_id"`
	NIM            string    `json:"nim"`
	Name           string    `json:"name"`
	CourseCode     string    `json:"course_code"`
	CourseName     string    `json:"course_name"`
	PermissionDate string    `json:"permission_date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Reason         string    `json:"reason"`
	Status         string    `json:"status"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// PermissionListResult is the service-level permission listing result.
type PermissionListResult struct {
	Items []PermissionListItem
	Meta  PageMeta
}

// PermissionStudent describes the requester on the detail view.
type PermissionStudent struct {
	ID    *uint  `json:"id"`
	NIM   string `json:"nim"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PermissionCourse describes the course on the detail view.
type PermissionCourse struct {
	ID   *uint  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// PermissionDetailResponse is the payload of GET /permissions/:id.
type PermissionDetailResponse struct {
	ID             uint              `json:"id"`
	EnrollmentID   uint              `json:"enrollment_id"`
	Student        PermissionStudent `json:"student"`
	Course         PermissionCourse  `json:"course"`
	PermissionDate string            `json:"permission_date"`
	StartTime      string            `json:"start_time"`
	EndTime        string            `json:"end_time"`
	Reason         string            `json:"reason"`
	Description    string            `json:"description"`
	Status         string            `json:"status"`
	SubmittedAt    time.Time         `json:"submitted_at"`
	ApprovedAt     *time.Time        `json:"approved_at"`
	ApprovedBy     *uint             `json:"approved_by"`
}

// PermissionDecisionRequest updates the status of a pending request.
type PermissionDecisionRequest struct {
	Status  string `json:"status" validate:"required,oneof=approved rejected"`
	AdminID uint   `json:"admin_id" validate:"required"`
}
