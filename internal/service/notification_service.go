package service

import (
	"context"
	"net/mail"
	"time"

	"github.com/attendly/attendly-backend/internal/mailer"
	"github.com/attendly/attendly-backend/internal/model"
	"github.com/attendly/attendly-backend/internal/response"
	"github.com/rs/zerolog"
)

// NotificationService builds the parent-facing emails and hands them to the
// configured mail transport. One outbound email per call; no retry.
type NotificationService struct {
	mailer mailer.Mailer
	log    zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(m mailer.Mailer, log zerolog.Logger) *NotificationService {
	return &NotificationService{mailer: m, log: log}
}

var _ Notifier = (*NotificationService)(nil)

// SendDailyNotice emails the student's parent about a changed attendance
// status for one date.
func (s *NotificationService) SendDailyNotice(ctx context.Context, student model.Student, date string, status model.AttendanceStatus) error {
	msg, err := mailer.DailyNotice(
		mail.Address{Name: "Parent/Guardian", Address: student.ParentEmail},
		mailer.DailyNoticeData{
			StudentName: student.Name,
			RollNo:      student.RollNo,
			Department:  student.Department,
			Section:     student.Section,
			Date:        formatVerboseDate(date),
			Status:      string(status),
		},
	)
	if err != nil {
		return response.Tag(response.KindMail, err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return response.Tag(response.KindMail, err)
	}
	s.log.Info().
		Str("to", student.ParentEmail).
		Str("roll_no", student.RollNo).
		Msg("Attendance notice sent")
	return nil
}

// MonthlyReportInput carries the caller-supplied monthly summary. The
// percentage is trusted as given and not recomputed from the day counts.
type MonthlyReportInput struct {
	StudentID   string
	StudentName string
	ParentEmail string
	Department  string
	Section     string
	StartDate   string
	EndDate     string
	PresentDays int
	TotalDays   int
	Percentage  float64
}

// SendMonthlyReport emails the monthly attendance summary to the parent
// address given in the request.
func (s *NotificationService) SendMonthlyReport(ctx context.Context, in MonthlyReportInput) error {
	msg, err := mailer.MonthlyReport(
		mail.Address{Name: "Parent/Guardian", Address: in.ParentEmail},
		mailer.MonthlyReportData{
			StudentID:   in.StudentID,
			StudentName: in.StudentName,
			Department:  in.Department,
			Section:     in.Section,
			StartDate:   formatVerboseDate(in.StartDate),
			EndDate:     formatVerboseDate(in.EndDate),
			PresentDays: in.PresentDays,
			TotalDays:   in.TotalDays,
			Percentage:  in.Percentage,
		},
	)
	if err != nil {
		return response.Tag(response.KindMail, err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return response.Tag(response.KindMail, err)
	}
	s.log.Info().
		Str("to", in.ParentEmail).
		Str("student_id", in.StudentID).
		Msg("Monthly report sent")
	return nil
}

// formatVerboseDate renders a YYYY-MM-DD date as a full
// weekday/month/day/year string. Unparseable input passes through as-is.
func formatVerboseDate(raw string) string {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return raw
	}
	return t.Format("Monday, January 2, 2006")
}
