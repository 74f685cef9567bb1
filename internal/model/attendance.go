package model

// AttendanceStatus is the per-day status recorded for a student.
// The set is open-ended; Present and Absent are the statuses the
// notification templates special-case.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
)

// AttendanceMap associates a calendar date (YYYY-MM-DD) with a status.
// Keys are unique per student: one status per date.
type AttendanceMap map[string]AttendanceStatus

// MarkAttendanceRequest is a batch of per-student statuses for one date,
// scoped to a department and section.
type MarkAttendanceRequest struct {
	Date       string                      `json:"date" binding:"required"`
	Department string                      `json:"department" binding:"required"`
	Section    string                      `json:"section" binding:"required"`
	Attendance map[string]AttendanceStatus `json:"attendance" binding:"required"`
}
