package dto

// AttendanceLogRequest captures query parameters for the attendance log list.
type AttendanceLogRequest struct {
	Status string
	Date   string
	Page   int
	Limit  int
}

// AttendanceLogRow is one formatted row of the attendance log. Date is
// YYYY-MM-DD, Time is 24h HH:MM:SS; missing joined entities degrade to "-"
// and "Unknown" instead of dropping the row.
type AttendanceLogRow struct {
	ID         uint   `json:"id"`
	NIM        string `json:"nim"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
}

// AttendanceLogResult is the service-level log listing result.
type AttendanceLogResult struct {
	Rows []AttendanceLogRow
	Meta PageMeta
}
