package service

import (
	"context"
	"sort"

	"github.com/attendly/attendly-backend/internal/model"
	"github.com/attendly/attendly-backend/internal/response"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// AttendanceStore is the persistence surface the reconciler needs.
type AttendanceStore interface {
	ListByRollNos(ctx context.Context, department, section string, rollNos []string) ([]model.Student, error)
	SetAttendance(ctx context.Context, rollNo, department, section, date string, status model.AttendanceStatus) error
}

// Notifier delivers the per-change attendance notice.
type Notifier interface {
	SendDailyNotice(ctx context.Context, student model.Student, date string, status model.AttendanceStatus) error
}

// AttendanceService reconciles a submitted attendance batch against stored
// state: only changed entries are written and notified, so re-submitting an
// identical batch produces zero writes and zero emails.
type AttendanceService struct {
	store    AttendanceStore
	notifier Notifier
	log      zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(store AttendanceStore, notifier Notifier, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{store: store, notifier: notifier, log: log}
}

type attendanceChange struct {
	student model.Student
	status  model.AttendanceStatus
}

// Reconcile diffs the batch against stored per-date statuses, persists the
// deltas, and notifies each changed student's parent. It returns the number
// of changed records, which is also the number of notifications attempted.
//
// Roll numbers that match no student in the given department+section are
// silently skipped. Notification failures are logged and swallowed: the
// writes have already committed and the batch must not fail because of mail.
func (s *AttendanceService) Reconcile(ctx context.Context, req *model.MarkAttendanceRequest) (int, error) {
	rollNos := make([]string, 0, len(req.Attendance))
	for rollNo := range req.Attendance {
		rollNos = append(rollNos, rollNo)
	}
	sort.Strings(rollNos)

	students, err := s.store.ListByRollNos(ctx, req.Department, req.Section, rollNos)
	if err != nil {
		return 0, response.Tag(response.KindStorage, err)
	}

	byRollNo := make(map[string]model.Student, len(students))
	for _, st := range students {
		byRollNo[st.RollNo] = st
	}

	// Diff: an absent key is "no prior status" and differs from every status.
	var changes []attendanceChange
	for _, rollNo := range rollNos {
		student, ok := byRollNo[rollNo]
		if !ok {
			continue
		}
		requested := req.Attendance[rollNo]
		if current, recorded := student.Attendance[req.Date]; recorded && current == requested {
			continue
		}
		changes = append(changes, attendanceChange{student: student, status: requested})
	}

	// Fan out the point writes and join before notifying. The writes touch
	// disjoint student documents, so order among them is not significant.
	g, gctx := errgroup.WithContext(ctx)
	for _, ch := range changes {
		ch := ch
		g.Go(func() error {
			return s.store.SetAttendance(gctx, ch.student.RollNo, req.Department, req.Section, req.Date, ch.status)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, response.Tag(response.KindStorage, err)
	}

	for _, ch := range changes {
		if err := s.notifier.SendDailyNotice(ctx, ch.student, req.Date, ch.status); err != nil {
			s.log.Error().
				Err(err).
				Str("roll_no", ch.student.RollNo).
				Str("parent_email", ch.student.ParentEmail).
				Msg("Attendance notification failed")
		}
	}

	return len(changes), nil
}
