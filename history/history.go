// Package history is the append-only log of passwords submitted to the
// strength checker. Samples are stored raw: the password module shows the
// user their own recent attempts as part of the exercise.
package history

import (
	"github.com/Sampa-07/cyber-training/models"
	"github.com/jmoiron/sqlx"
)

// DefaultLimit bounds how much history the module page shows.
const DefaultLimit = 5

type Log struct {
	db *sqlx.DB
}

func NewLog(db *sqlx.DB) *Log {
	return &Log{db: db}
}

func (l *Log) Append(userID int, rawPassword string, score int) error {
	_, err := l.db.Exec(
		"INSERT INTO password_history (user_id, password, strength_score) VALUES (?, ?, ?)",
		userID, rawPassword, score)
	return err
}

// Recent returns at most limit samples, newest first.
func (l *Log) Recent(userID, limit int) ([]models.PasswordSample, error) {
	var samples []models.PasswordSample
	err := l.db.Select(&samples,
		"SELECT id, user_id, password, strength_score, created_at FROM password_history WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, err
	}
	return samples, nil
}
