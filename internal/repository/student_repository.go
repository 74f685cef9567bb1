package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/attendly/attendly-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateRollNo = errors.New("student with this roll number already exists")

const studentColumns = `id, roll_no, name, department, section, parent_email, attendance, created_at, updated_at`

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

func scanStudent(row pgx.Row) (*model.Student, error) {
	s := &model.Student{}
	err := row.Scan(&s.ID, &s.RollNo, &s.Name, &s.Department, &s.Section, &s.ParentEmail, &s.Attendance, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if s.Attendance == nil {
		s.Attendance = model.AttendanceMap{}
	}
	return s, nil
}

// Create inserts a new student with an empty attendance map.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	if s.Attendance == nil {
		s.Attendance = model.AttendanceMap{}
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (roll_no, name, department, section, parent_email, attendance)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		s.RollNo, s.Name, s.Department, s.Section, s.ParentEmail, s.Attendance,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateRollNo
		}
		return err
	}
	return nil
}

// GetByRollNo retrieves a student by roll number.
// Returns (nil, nil) when no record matches: absence is not an error.
func (r *StudentRepository) GetByRollNo(ctx context.Context, rollNo string) (*model.Student, error) {
	s, err := scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE roll_no = $1`, rollNo))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// List retrieves students filtered by department and/or section.
// Empty filters are skipped, so List(ctx, "", "") returns every student.
func (r *StudentRepository) List(ctx context.Context, department, section string) ([]model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students`
	var args []interface{}
	argIdx := 1

	if department != "" {
		query += ` WHERE department = $` + strconv.Itoa(argIdx)
		args = append(args, department)
		argIdx++
	}
	if section != "" {
		if argIdx == 1 {
			query += ` WHERE`
		} else {
			query += ` AND`
		}
		query += ` section = $` + strconv.Itoa(argIdx)
		args = append(args, section)
	}
	query += ` ORDER BY roll_no`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStudents(rows)
}

// ListByRollNos retrieves students whose roll numbers are in the given set,
// scoped to a department and section. Roll numbers that match nothing are
// simply not present in the result.
func (r *StudentRepository) ListByRollNos(ctx context.Context, department, section string, rollNos []string) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students
		 WHERE department = $1 AND section = $2 AND roll_no = ANY($3)`,
		department, section, rollNos,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStudents(rows)
}

// SetAttendance writes exactly one date entry in a student's attendance map.
// The department+section predicate keeps the write scoped even when roll
// numbers collide across sections.
func (r *StudentRepository) SetAttendance(ctx context.Context, rollNo, department, section, date string, status model.AttendanceStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students
		 SET attendance = jsonb_set(attendance, ARRAY[$1], to_jsonb($2::text), true),
		     updated_at = CURRENT_TIMESTAMP
		 WHERE roll_no = $3 AND department = $4 AND section = $5`,
		date, string(status), rollNo, department, section,
	)
	return err
}

// UpdateFields overwrites the provided scalar fields for a student.
// Returns the number of rows modified (0 when the roll number is unknown).
func (r *StudentRepository) UpdateFields(ctx context.Context, rollNo string, parentEmail, newRollNo *string) (int64, error) {
	query := `UPDATE students SET updated_at = CURRENT_TIMESTAMP`
	var args []interface{}
	argIdx := 1

	if parentEmail != nil {
		query += `, parent_email = $` + strconv.Itoa(argIdx)
		args = append(args, *parentEmail)
		argIdx++
	}
	if newRollNo != nil {
		query += `, roll_no = $` + strconv.Itoa(argIdx)
		args = append(args, *newRollNo)
		argIdx++
	}

	query += ` WHERE roll_no = $` + strconv.Itoa(argIdx)
	args = append(args, rollNo)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicateRollNo
		}
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes a student by roll number.
// Returns the number of rows removed (0 when nothing matched, not an error).
func (r *StudentRepository) Delete(ctx context.Context, rollNo string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE roll_no = $1`, rollNo)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func collectStudents(rows pgx.Rows) ([]model.Student, error) {
	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.RollNo, &s.Name, &s.Department, &s.Section, &s.ParentEmail, &s.Attendance, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if s.Attendance == nil {
			s.Attendance = model.AttendanceMap{}
		}
		students = append(students, s)
	}
	return students, rows.Err()
}
