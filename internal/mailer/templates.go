package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/mail"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.gohtml"))

// Accent colors shared by both templates.
const (
	colorGood       = "#2e7d32"
	colorConcerning = "#f57c00"
	colorPoor       = "#c62828"
	bgPresent       = "#e7f7e7"
	bgAbsent        = "#ffebee"
)

// DailyNoticeData feeds the daily attendance notice template.
type DailyNoticeData struct {
	StudentName string
	RollNo      string
	Department  string
	Section     string
	Date        string // pre-formatted, verbose
	Status      string

	// Derived accents, filled in by DailyNotice.
	StatusColor string
	StatusBg    string
}

// DailyNotice renders the daily attendance notification for a parent.
// A "Present" status gets green accents; anything else is treated as a
// miss and rendered red.
func DailyNotice(to mail.Address, d DailyNoticeData) (Message, error) {
	if d.Status == "Present" {
		d.StatusColor = colorGood
		d.StatusBg = bgPresent
	} else {
		d.StatusColor = colorPoor
		d.StatusBg = bgAbsent
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "daily_notice.gohtml", d); err != nil {
		return Message{}, fmt.Errorf("render daily notice: %w", err)
	}

	return Message{
		To:          to,
		Subject:     fmt.Sprintf("Attendance Update for %s", d.StudentName),
		TextContent: fmt.Sprintf("Attendance for %s (Roll No: %s) was marked %s for %s.", d.StudentName, d.RollNo, d.Status, d.Date),
		HTMLContent: buf.String(),
	}, nil
}

// MonthlyReportData feeds the monthly attendance report template.
// Percentage is supplied by the caller and is deliberately not recomputed
// from PresentDays/TotalDays.
type MonthlyReportData struct {
	StudentID   string
	StudentName string
	Department  string
	Section     string
	StartDate   string // pre-formatted, verbose
	EndDate     string // pre-formatted, verbose
	PresentDays int
	TotalDays   int
	Percentage  float64

	// Derived band, filled in by MonthlyReport.
	StatusClass string
	StatusColor string
}

// MonthlyReport renders the monthly attendance summary for a parent.
// Banding: >=75% Good (green), 50-74% Concerning (orange), <50% Poor (red).
func MonthlyReport(to mail.Address, d MonthlyReportData) (Message, error) {
	switch {
	case d.Percentage >= 75:
		d.StatusClass, d.StatusColor = "Good", colorGood
	case d.Percentage >= 50:
		d.StatusClass, d.StatusColor = "Concerning", colorConcerning
	default:
		d.StatusClass, d.StatusColor = "Poor", colorPoor
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "monthly_report.gohtml", d); err != nil {
		return Message{}, fmt.Errorf("render monthly report: %w", err)
	}

	return Message{
		To:          to,
		Subject:     fmt.Sprintf("Monthly Attendance Report for %s", d.StudentName),
		TextContent: fmt.Sprintf("%s was present %d out of %d days (%v%%, %s) between %s and %s.", d.StudentName, d.PresentDays, d.TotalDays, d.Percentage, d.StatusClass, d.StartDate, d.EndDate),
		HTMLContent: buf.String(),
	}, nil
}
