package service

import (
	"context"
	"errors"

	"github.com/attendly/attendly-backend/internal/config"
	"github.com/attendly/attendly-backend/internal/model"
	"github.com/attendly/attendly-backend/internal/repository"
	"github.com/attendly/attendly-backend/internal/response"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// StudentStore is the persistence surface the student service needs.
type StudentStore interface {
	Create(ctx context.Context, s *model.Student) error
	GetByRollNo(ctx context.Context, rollNo string) (*model.Student, error)
	List(ctx context.Context, department, section string) ([]model.Student, error)
	UpdateFields(ctx context.Context, rollNo string, parentEmail, newRollNo *string) (int64, error)
	Delete(ctx context.Context, rollNo string) (int64, error)
}

// StudentService handles student CRUD business logic.
type StudentService struct {
	store StudentStore
	rdb   *redis.Client // nil disables cache invalidation
	log   zerolog.Logger
}

// NewStudentService creates a new StudentService. rdb may be nil.
func NewStudentService(store StudentStore, rdb *redis.Client, log zerolog.Logger) *StudentService {
	return &StudentService{store: store, rdb: rdb, log: log}
}

// Create registers a new student with an empty attendance map.
// Duplicate roll numbers are rejected as a conflict.
func (s *StudentService) Create(ctx context.Context, student *model.Student) error {
	student.Attendance = model.AttendanceMap{}
	if err := s.store.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicateRollNo) {
			return response.Tag(response.KindConflict, err)
		}
		return response.Tag(response.KindStorage, err)
	}
	s.invalidateDirectory(ctx)
	return nil
}

// GetByRollNo retrieves one student, or (nil, nil) when absent.
func (s *StudentService) GetByRollNo(ctx context.Context, rollNo string) (*model.Student, error) {
	student, err := s.store.GetByRollNo(ctx, rollNo)
	if err != nil {
		return nil, response.Tag(response.KindStorage, err)
	}
	return student, nil
}

// List retrieves students matching optional department/section filters.
// The result is never nil: no matches is an empty list, not an error.
func (s *StudentService) List(ctx context.Context, department, section string) ([]model.Student, error) {
	students, err := s.store.List(ctx, department, section)
	if err != nil {
		return nil, response.Tag(response.KindStorage, err)
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// UpdateFields overwrites the provided scalar fields for a student and
// reports how many records were modified (0 for an unknown roll number).
func (s *StudentService) UpdateFields(ctx context.Context, rollNo string, req *model.UpdateStudentRequest) (int64, error) {
	if req.ParentEmail == nil && req.RollNo == nil {
		return 0, nil
	}
	modified, err := s.store.UpdateFields(ctx, rollNo, req.ParentEmail, req.RollNo)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRollNo) {
			return 0, response.Tag(response.KindConflict, err)
		}
		return 0, response.Tag(response.KindStorage, err)
	}
	s.invalidateDirectory(ctx)
	return modified, nil
}

// Delete removes a student and reports how many records were removed.
// Deleting an unknown roll number reports 0, not an error.
func (s *StudentService) Delete(ctx context.Context, rollNo string) (int64, error) {
	deleted, err := s.store.Delete(ctx, rollNo)
	if err != nil {
		return 0, response.Tag(response.KindStorage, err)
	}
	if deleted > 0 {
		s.invalidateDirectory(ctx)
	}
	return deleted, nil
}

// invalidateDirectory busts the cached department directory after any
// mutation that may change the set of (department, section) pairs.
// Cache trouble is never allowed to fail the mutation.
func (s *StudentService) invalidateDirectory(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, config.CacheKey.DepartmentDirectoryKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Department directory cache invalidation failed")
	}
}
