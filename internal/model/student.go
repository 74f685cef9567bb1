package model

import "time"

// Student represents a student record with its sparse attendance history.
// JSON field names follow the public API contract (camelCase).
type Student struct {
	ID          int           `json:"id"`
	RollNo      string        `json:"rollNo"`
	Name        string        `json:"name"`
	Department  string        `json:"department"`
	Section     string        `json:"section"`
	ParentEmail string        `json:"parentEmail"`
	Attendance  AttendanceMap `json:"attendance"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// CreateStudentRequest is the payload for registering a new student.
// The attendance map always starts empty.
type CreateStudentRequest struct {
	RollNo      string `json:"rollNo" binding:"required,min=1,max=30"`
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Department  string `json:"department" binding:"required,min=1,max=50"`
	Section     string `json:"section" binding:"required,min=1,max=20"`
	ParentEmail string `json:"parentEmail" binding:"required,email"`
}

// UpdateStudentRequest is the payload for ad-hoc scalar field updates.
// Only the provided fields are touched.
type UpdateStudentRequest struct {
	ParentEmail *string `json:"parentEmail" binding:"omitempty,email"`
	RollNo      *string `json:"rollNo" binding:"omitempty,min=1,max=30"`
}
