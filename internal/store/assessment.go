package store

import (
	"database/sql"
	"errors"
	"time"
)

// Assessment represents one evaluated assessment within a session. The
// Result column carries the full evaluated payload as JSON; results are
// immutable once written, so there is no update operation.
type Assessment struct {
	ID          string
	SessionID   string
	Type        string
	Repetitions int
	DurationMs  int64
	Result      string
	CreatedAt   time.Time
}

// AssessmentRepository provides storage operations for assessment
// results.
type AssessmentRepository struct {
	db *sql.DB
}

// Assessments returns the assessment repository for this store.
func (s *Store) Assessments() *AssessmentRepository {
	return &AssessmentRepository{db: s.db}
}

// Create inserts a new assessment result into the database.
func (r *AssessmentRepository) Create(a *Assessment) error {
	a.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO assessments (id, session_id, type, repetitions, duration_ms, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.SessionID, a.Type, a.Repetitions, a.DurationMs, a.Result, a.CreatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves an assessment by its ID.
func (r *AssessmentRepository) GetByID(id string) (*Assessment, error) {
	a := &Assessment{}

	err := r.db.QueryRow(
		`SELECT id, session_id, type, repetitions, duration_ms, result, created_at
		 FROM assessments WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.SessionID, &a.Type, &a.Repetitions, &a.DurationMs, &a.Result, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return a, nil
}

// ListBySession retrieves all assessments recorded in a session, oldest
// first.
func (r *AssessmentRepository) ListBySession(sessionID string) ([]*Assessment, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, type, repetitions, duration_ms, result, created_at
		 FROM assessments WHERE session_id = ? ORDER BY created_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []*Assessment
	for rows.Next() {
		a := &Assessment{}

		err := rows.Scan(&a.ID, &a.SessionID, &a.Type, &a.Repetitions, &a.DurationMs, &a.Result, &a.CreatedAt)
		if err != nil {
			return nil, err
		}

		assessments = append(assessments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assessments, nil
}

// Delete removes an assessment by its ID.
func (r *AssessmentRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM assessments WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
