package handler

import (
	"net/http"

	"github.com/attendly/attendly-backend/internal/model"
	"github.com/attendly/attendly-backend/internal/response"
	"github.com/attendly/attendly-backend/internal/service"
	"github.com/attendly/attendly-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// StudentHandler handles student CRUD endpoints.
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// ListStudents godoc
// GET /api/students?department=&section=
// Lists students matching the optional filters as a bare array.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context(), c.Query("department"), c.Query("section"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// CreateStudent godoc
// POST /api/students
// Registers a new student with an empty attendance map.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.ValidationError(c, fields)
		return
	}

	student := &model.Student{
		RollNo:      req.RollNo,
		Name:        req.Name,
		Department:  req.Department,
		Section:     req.Section,
		ParentEmail: req.ParentEmail,
	}

	if err := h.studentService.Create(c.Request.Context(), student); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student added successfully!"})
}

// GetStudent godoc
// GET /api/students/:rollNo
// Returns the matching student, or a JSON null when absent.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.studentService.GetByRollNo(c.Request.Context(), c.Param("rollNo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// UpdateStudent godoc
// PUT /api/students/:rollNo
// Overwrites the provided scalar fields (parent email, roll number).
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var req model.UpdateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.ValidationError(c, fields)
		return
	}

	modified, err := h.studentService.UpdateFields(c.Request.Context(), c.Param("rollNo"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student updated!", "modified": modified})
}

// DeleteStudent godoc
// DELETE /api/students/:rollNo
// Removes the student; deleting an unknown roll number reports deleted: 0.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	deleted, err := h.studentService.Delete(c.Request.Context(), c.Param("rollNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student deleted!", "deleted": deleted})
}
