// Package progress owns per-user, per-module training state: one record
// per (user, module) pair, created at first login and updated as quizzes
// are completed.
package progress

import (
	"database/sql"
	"errors"
	"math"

	"github.com/Sampa-07/cyber-training/models"
	"github.com/jmoiron/sqlx"
)

// Modules is the set of training modules every user is enrolled in.
// Adding a module here is enough: records are initialized lazily at login.
var Modules = []string{"password", "phishing"}

// ErrRecordNotFound is returned when an operation targets a (user, module)
// pair that was never initialized. Updates that would match zero rows
// report this instead of silently succeeding.
var ErrRecordNotFound = errors.New("progress record not found")

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// EnsureInitialized creates a default record for each module the user does
// not have one for yet. Idempotent and race-safe: the composite primary key
// on (user_id, module_name) makes concurrent calls collapse into one row.
func (s *Store) EnsureInitialized(userID int, moduleNames []string) error {
	for _, name := range moduleNames {
		_, err := s.db.Exec(
			"INSERT OR IGNORE INTO user_progress (user_id, module_name) VALUES (?, ?)",
			userID, name)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetAll returns the user's records ordered by module name so rendering
// is deterministic.
func (s *Store) GetAll(userID int) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	err := s.db.Select(&records,
		"SELECT user_id, module_name, completion_status, score, last_accessed FROM user_progress WHERE user_id = ? ORDER BY module_name",
		userID)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) GetOne(userID int, moduleName string) (models.ProgressRecord, error) {
	var record models.ProgressRecord
	err := s.db.Get(&record,
		"SELECT user_id, module_name, completion_status, score, last_accessed FROM user_progress WHERE user_id = ? AND module_name = ?",
		userID, moduleName)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ProgressRecord{}, ErrRecordNotFound
	}
	if err != nil {
		return models.ProgressRecord{}, err
	}
	return record, nil
}

// SetScore overwrites score and completion status, last writer wins.
// A missing record is an error, not a zero-row no-op.
func (s *Store) SetScore(userID int, moduleName string, score int, completed bool) error {
	status := 0
	if completed {
		status = 1
	}
	res, err := s.db.Exec(
		"UPDATE user_progress SET score = ?, completion_status = ? WHERE user_id = ? AND module_name = ?",
		score, status, userID, moduleName)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Touch stamps last_accessed, called when the user opens a module page.
func (s *Store) Touch(userID int, moduleName string) error {
	res, err := s.db.Exec(
		"UPDATE user_progress SET last_accessed = CURRENT_TIMESTAMP WHERE user_id = ? AND module_name = ?",
		userID, moduleName)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// OverallCompletionPercent is the share of the user's initialized modules
// marked complete, rounded half away from zero. A user with no records
// is at 0, never a division by zero.
func (s *Store) OverallCompletionPercent(userID int) (int, error) {
	var counts struct {
		Total     int `db:"total"`
		Completed int `db:"completed"`
	}
	err := s.db.Get(&counts,
		"SELECT COUNT(*) AS total, COALESCE(SUM(completion_status), 0) AS completed FROM user_progress WHERE user_id = ?",
		userID)
	if err != nil {
		return 0, err
	}
	if counts.Total == 0 {
		return 0, nil
	}
	return int(math.Round(100 * float64(counts.Completed) / float64(counts.Total))), nil
}
