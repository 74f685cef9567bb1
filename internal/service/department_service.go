package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/attendly/attendly-backend/internal/config"
	"github.com/attendly/attendly-backend/internal/model"
	"github.com/attendly/attendly-backend/internal/response"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DirectoryStore is the read surface the department directory needs.
type DirectoryStore interface {
	List(ctx context.Context, department, section string) ([]model.Student, error)
}

// DepartmentService computes the derived department directory: the
// distinct (department, section) pairs observed across student records,
// grouped by department. Nothing is stored; Redis only caches the result.
type DepartmentService struct {
	store DirectoryStore
	rdb   *redis.Client // nil disables caching
	ttl   time.Duration
	log   zerolog.Logger
}

// NewDepartmentService creates a new DepartmentService. rdb may be nil.
func NewDepartmentService(store DirectoryStore, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *DepartmentService {
	return &DepartmentService{store: store, rdb: rdb, ttl: ttl, log: log}
}

// List returns every department with its distinct sections. The result has
// set semantics; departments and sections are sorted only to keep output
// stable, no caller may rely on a particular order.
func (s *DepartmentService) List(ctx context.Context) ([]model.Department, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	students, err := s.store.List(ctx, "", "")
	if err != nil {
		return nil, response.Tag(response.KindStorage, err)
	}

	departments := GroupDepartments(students)
	s.toCache(ctx, departments)
	return departments, nil
}

// GroupDepartments reduces student records to the distinct
// (department, section) pairs, grouped by department.
func GroupDepartments(students []model.Student) []model.Department {
	sections := make(map[string]map[string]struct{})
	for _, st := range students {
		if sections[st.Department] == nil {
			sections[st.Department] = make(map[string]struct{})
		}
		sections[st.Department][st.Section] = struct{}{}
	}

	departments := make([]model.Department, 0, len(sections))
	for name, set := range sections {
		dept := model.Department{Name: name, Sections: make([]string, 0, len(set))}
		for section := range set {
			dept.Sections = append(dept.Sections, section)
		}
		sort.Strings(dept.Sections)
		departments = append(departments, dept)
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i].Name < departments[j].Name })
	return departments
}

func (s *DepartmentService) fromCache(ctx context.Context) ([]model.Department, bool) {
	if s.rdb == nil {
		return nil, false
	}
	data, err := s.rdb.Get(ctx, config.CacheKey.DepartmentDirectoryKey()).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn().Err(err).Msg("Department directory cache read failed")
		}
		return nil, false
	}
	var departments []model.Department
	if err := json.Unmarshal(data, &departments); err != nil {
		s.log.Warn().Err(err).Msg("Department directory cache entry corrupt")
		return nil, false
	}
	return departments, true
}

func (s *DepartmentService) toCache(ctx context.Context, departments []model.Department) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(departments)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, config.CacheKey.DepartmentDirectoryKey(), data, s.ttl).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Department directory cache write failed")
	}
}
