package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/attendly/attendly-backend/internal/response"
	"github.com/attendly/attendly-backend/internal/service"
	"github.com/attendly/attendly-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles the monthly attendance report email endpoint.
type ReportHandler struct {
	notificationService *service.NotificationService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(notificationService *service.NotificationService) *ReportHandler {
	return &ReportHandler{notificationService: notificationService}
}

// MonthlyReportRequest is the payload for the monthly report email. The
// recipient and the percentage come from the caller, not from the store.
type MonthlyReportRequest struct {
	StudentID            string  `json:"studentId" binding:"required"`
	StudentName          string  `json:"studentName" binding:"required"`
	ParentEmail          string  `json:"parentEmail" binding:"required,email"`
	Department           string  `json:"department" binding:"required"`
	Section              string  `json:"section" binding:"required"`
	StartDate            string  `json:"startDate" binding:"required"`
	EndDate              string  `json:"endDate" binding:"required"`
	PresentDays          int     `json:"presentDays" binding:"min=0"`
	TotalDays            int     `json:"totalDays" binding:"min=0"`
	AttendancePercentage float64 `json:"attendancePercentage" binding:"min=0,max=100"`
}

// SendMonthlyReport godoc
// POST /api/send-email
// Sends the monthly attendance summary to the given parent address.
// This endpoint keeps its own {success, ...} wire shape.
func (h *ReportHandler) SendMonthlyReport(c *gin.Context) {
	var req MonthlyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fields := validator.TranslateErrors(err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": flattenFields(fields)})
		return
	}

	err := h.notificationService.SendMonthlyReport(c.Request.Context(), service.MonthlyReportInput{
		StudentID:   req.StudentID,
		StudentName: req.StudentName,
		ParentEmail: req.ParentEmail,
		Department:  req.Department,
		Section:     req.Section,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		PresentDays: req.PresentDays,
		TotalDays:   req.TotalDays,
		Percentage:  req.AttendancePercentage,
	})
	if err != nil {
		c.JSON(response.StatusOf(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email sent successfully"})
}

func flattenFields(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for name, msg := range fields {
		parts = append(parts, name+": "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}
