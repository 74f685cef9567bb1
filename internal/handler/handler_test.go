package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/attendly/attendly-backend/internal/config"
	"github.com/attendly/attendly-backend/internal/handler"
	"github.com/attendly/attendly-backend/internal/mailer"
	"github.com/attendly/attendly-backend/internal/model"
	"github.com/attendly/attendly-backend/internal/repository"
	"github.com/attendly/attendly-backend/internal/router"
	"github.com/attendly/attendly-backend/internal/service"
	"github.com/attendly/attendly-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

// memStore backs every store interface the handlers reach through the
// services, keyed by (rollNo, department, section).
type memStore struct {
	students []*model.Student
}

func (m *memStore) Create(_ context.Context, s *model.Student) error {
	for _, existing := range m.students {
		if existing.RollNo == s.RollNo {
			return repository.ErrDuplicateRollNo
		}
	}
	copied := *s
	m.students = append(m.students, &copied)
	return nil
}

func (m *memStore) GetByRollNo(_ context.Context, rollNo string) (*model.Student, error) {
	for _, s := range m.students {
		if s.RollNo == rollNo {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) List(_ context.Context, department, section string) ([]model.Student, error) {
	var out []model.Student
	for _, s := range m.students {
		if department != "" && s.Department != department {
			continue
		}
		if section != "" && s.Section != section {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (m *memStore) ListByRollNos(_ context.Context, department, section string, rollNos []string) ([]model.Student, error) {
	wanted := make(map[string]struct{}, len(rollNos))
	for _, r := range rollNos {
		wanted[r] = struct{}{}
	}
	var out []model.Student
	for _, s := range m.students {
		if s.Department != department || s.Section != section {
			continue
		}
		if _, ok := wanted[s.RollNo]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memStore) SetAttendance(_ context.Context, rollNo, department, section, date string, status model.AttendanceStatus) error {
	for _, s := range m.students {
		if s.RollNo == rollNo && s.Department == department && s.Section == section {
			if s.Attendance == nil {
				s.Attendance = model.AttendanceMap{}
			}
			s.Attendance[date] = status
		}
	}
	return nil
}

func (m *memStore) UpdateFields(_ context.Context, rollNo string, parentEmail, newRollNo *string) (int64, error) {
	for _, s := range m.students {
		if s.RollNo != rollNo {
			continue
		}
		if parentEmail != nil {
			s.ParentEmail = *parentEmail
		}
		if newRollNo != nil {
			s.RollNo = *newRollNo
		}
		return 1, nil
	}
	return 0, nil
}

func (m *memStore) Delete(_ context.Context, rollNo string) (int64, error) {
	for i, s := range m.students {
		if s.RollNo == rollNo {
			m.students = append(m.students[:i], m.students[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type capturingMailer struct {
	messages []mailer.Message
}

func (m *capturingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.messages = append(m.messages, msg)
	return nil
}

func newTestServer(store *memStore, mail mailer.Mailer) http.Handler {
	log := zerolog.Nop()
	cfg := &config.Config{GinMode: gin.TestMode, AppName: "Attendance Management System"}

	studentService := service.NewStudentService(store, nil, log)
	departmentService := service.NewDepartmentService(store, nil, 0, log)
	notificationService := service.NewNotificationService(mail, log)
	attendanceService := service.NewAttendanceService(store, notificationService, log)

	return router.SetupRouter(&router.Handlers{
		Student:    handler.NewStudentHandler(studentService),
		Department: handler.NewDepartmentHandler(departmentService),
		Attendance: handler.NewAttendanceHandler(attendanceService),
		Report:     handler.NewReportHandler(notificationService),
	}, cfg)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func seededStore() *memStore {
	return &memStore{students: []*model.Student{
		{
			RollNo:      "21ECE015",
			Name:        "Shruti Roy",
			Department:  "ECE",
			Section:     "1",
			ParentEmail: "shruti.parent@example.com",
			Attendance:  model.AttendanceMap{"2025-03-17": model.StatusPresent},
		},
		{
			RollNo:      "21CSE001",
			Name:        "Rahul Sharma",
			Department:  "CSE",
			Section:     "2",
			ParentEmail: "rahul.parent@example.com",
			Attendance:  model.AttendanceMap{},
		},
	}}
}

func TestMarkAttendanceChange(t *testing.T) {
	mail := &capturingMailer{}
	h := newTestServer(seededStore(), mail)

	w := doJSON(t, h, http.MethodPost, "/api/attendance",
		`{"date":"2025-03-17","department":"ECE","section":"1","attendance":{"21ECE015":"Absent"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Message    string `json:"message"`
		EmailsSent int    `json:"emailsSent"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "Attendance updated!" || resp.EmailsSent != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	if len(mail.messages) != 1 {
		t.Fatalf("emails = %d, want 1", len(mail.messages))
	}
	if mail.messages[0].To.Address != "shruti.parent@example.com" {
		t.Fatalf("recipient = %q", mail.messages[0].To.Address)
	}
}

func TestMarkAttendanceUnchanged(t *testing.T) {
	mail := &capturingMailer{}
	h := newTestServer(seededStore(), mail)

	// Already Present on that date: zero writes, zero emails.
	w := doJSON(t, h, http.MethodPost, "/api/attendance",
		`{"date":"2025-03-17","department":"ECE","section":"1","attendance":{"21ECE015":"Present"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		EmailsSent int `json:"emailsSent"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.EmailsSent != 0 {
		t.Fatalf("emailsSent = %d, want 0", resp.EmailsSent)
	}
	if len(mail.messages) != 0 {
		t.Fatalf("emails = %d, want 0", len(mail.messages))
	}
}

func TestDeleteNonExistentStudent(t *testing.T) {
	h := newTestServer(seededStore(), &capturingMailer{})

	w := doJSON(t, h, http.MethodDelete, "/api/students/NOPE999", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Deleted != 0 {
		t.Fatalf("deleted = %d, want 0", resp.Deleted)
	}
}

func TestGetMissingStudentIsNull(t *testing.T) {
	h := newTestServer(seededStore(), &capturingMailer{})

	w := doJSON(t, h, http.MethodGet, "/api/students/NOPE999", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "null" {
		t.Fatalf("body = %q, want null", body)
	}
}

func TestCreateStudentAndDuplicate(t *testing.T) {
	h := newTestServer(&memStore{}, &capturingMailer{})

	payload := `{"rollNo":"21ECE015","name":"Shruti Roy","department":"ECE","section":"1","parentEmail":"shruti.parent@example.com"}`

	w := doJSON(t, h, http.MethodPost, "/api/students", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Student added successfully!") {
		t.Fatalf("body = %s", w.Body.String())
	}

	w = doJSON(t, h, http.MethodPost, "/api/students", payload)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error == "" {
		t.Fatal("duplicate must carry an error message")
	}
}

func TestCreateStudentValidation(t *testing.T) {
	h := newTestServer(&memStore{}, &capturingMailer{})

	w := doJSON(t, h, http.MethodPost, "/api/students",
		`{"rollNo":"21ECE015","name":"Shruti Roy","department":"ECE","section":"1","parentEmail":"not-an-email"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestListDepartments(t *testing.T) {
	h := newTestServer(seededStore(), &capturingMailer{})

	w := doJSON(t, h, http.MethodGet, "/api/departments", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var departments []model.Department
	if err := json.Unmarshal(w.Body.Bytes(), &departments); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(departments) != 2 {
		t.Fatalf("departments = %+v, want 2 entries", departments)
	}
	found := make(map[string][]string)
	for _, d := range departments {
		found[d.Name] = d.Sections
	}
	if len(found["ECE"]) != 1 || found["ECE"][0] != "1" {
		t.Fatalf("ECE sections = %v", found["ECE"])
	}
	if len(found["CSE"]) != 1 || found["CSE"][0] != "2" {
		t.Fatalf("CSE sections = %v", found["CSE"])
	}
}

func TestListStudentsFiltered(t *testing.T) {
	h := newTestServer(seededStore(), &capturingMailer{})

	w := doJSON(t, h, http.MethodGet, "/api/students?department=ECE&section=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var students []model.Student
	if err := json.Unmarshal(w.Body.Bytes(), &students); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(students) != 1 || students[0].RollNo != "21ECE015" {
		t.Fatalf("students = %+v", students)
	}

	// No filters returns everyone.
	w = doJSON(t, h, http.MethodGet, "/api/students", "")
	if err := json.Unmarshal(w.Body.Bytes(), &students); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("unfiltered students = %d, want 2", len(students))
	}
}

func TestSendMonthlyReportEndpoint(t *testing.T) {
	mail := &capturingMailer{}
	h := newTestServer(seededStore(), mail)

	w := doJSON(t, h, http.MethodPost, "/api/send-email", `{
		"studentId":"21ECE015","studentName":"Shruti Roy",
		"parentEmail":"shruti.parent@example.com",
		"department":"ECE","section":"1",
		"startDate":"2025-03-01","endDate":"2025-03-31",
		"presentDays":10,"totalDays":25,"attendancePercentage":40
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success || resp.Message != "Email sent successfully" {
		t.Fatalf("resp = %+v", resp)
	}
	if len(mail.messages) != 1 {
		t.Fatalf("emails = %d, want 1", len(mail.messages))
	}
	if !strings.Contains(mail.messages[0].HTMLContent, "Poor") {
		t.Fatal("40%% must render the Poor band")
	}
}

func TestRootBanner(t *testing.T) {
	h := newTestServer(&memStore{}, &capturingMailer{})

	w := doJSON(t, h, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Attendance Management System API") {
		t.Fatalf("body = %q", w.Body.String())
	}
}
