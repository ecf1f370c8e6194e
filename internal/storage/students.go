package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gradeflow/gradeflow/internal/common"
	"github.com/gradeflow/gradeflow/internal/model"
)

// SaveStudent inserts or updates a roster entry.
func (s *SQLiteStorage) SaveStudent(ctx context.Context, student *model.Student) error {
	if student == nil {
		return fmt.Errorf("student must not be nil")
	}
	if student.ID == "" {
		return fmt.Errorf("student ID must not be empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO students (id, first_name, last_name, external_student_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			external_student_id = excluded.external_student_id`,
		student.ID, student.FirstName, student.LastName, student.ExternalStudentID)
	if err != nil {
		return fmt.Errorf("failed to save student: %w", err)
	}
	return nil
}

// GetStudent fetches one roster entry by id.
func (s *SQLiteStorage) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, COALESCE(external_student_id, '')
		FROM students WHERE id = ?`, id).
		Scan(&student.ID, &student.FirstName, &student.LastName, &student.ExternalStudentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: student %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return &student, nil
}

// ListStudents returns the full roster ordered by last then first name.
func (s *SQLiteStorage) ListStudents(ctx context.Context) ([]model.Student, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, COALESCE(external_student_id, '')
		FROM students ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var students []model.Student
	for rows.Next() {
		var student model.Student
		if err := rows.Scan(&student.ID, &student.FirstName, &student.LastName, &student.ExternalStudentID); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", err)
	}
	return students, nil
}

// DeleteStudent removes a roster entry. Unknown ids are a no-op.
func (s *SQLiteStorage) DeleteStudent(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	return nil
}
