package handler

import (
	"net/http"

	"github.com/attendly/attendly-backend/internal/model"
	"github.com/attendly/attendly-backend/internal/response"
	"github.com/attendly/attendly-backend/internal/service"
	"github.com/attendly/attendly-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// AttendanceHandler handles the batch attendance reconcile-and-notify endpoint.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// MarkAttendance godoc
// POST /api/attendance
// Reconciles a date's attendance batch for one department+section and
// reports how many change notifications went out.
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	var req model.MarkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.ValidationError(c, fields)
		return
	}

	emailsSent, err := h.attendanceService.Reconcile(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Attendance updated!",
		"emailsSent": emailsSent,
	})
}
