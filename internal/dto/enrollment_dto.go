package dto

// EnrollmentSyncRequest asks the reconciler to converge a student's
// enrollments to the desired course set. An empty course list is valid and
// soft-deletes every active enrollment; a missing or non-array course_ids is
// rejected before any store access.
type EnrollmentSyncRequest struct {
	UserID    uint   `json:"user_id" validate:"required"`
	CourseIDs []uint `json:"course_ids"`
}

// EnrollmentSyncResponse reports what the reconciliation changed. Added
// counts both newly created and restored enrollments; Deleted counts
// soft-deleted ones.
type EnrollmentSyncResponse struct {
	UserID  uint `json:"user_id"`
	Added   int  `json:"added"`
	Deleted int  `json:"deleted"`
}
