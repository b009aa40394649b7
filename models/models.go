package models

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int       `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ProgressRecord tracks one user's state in one training module.
// Exactly one row exists per (user, module) pair once the pair has been
// initialized at login.
type ProgressRecord struct {
	UserID       int          `db:"user_id" json:"user_id"`
	ModuleName   string       `db:"module_name" json:"module_name"`
	Completed    bool         `db:"completion_status" json:"completed"`
	Score        int          `db:"score" json:"score"`
	LastAccessed sql.NullTime `db:"last_accessed" json:"-"`
}

// PasswordSample is one submission to the strength checker. The raw text is
// stored deliberately: the password module replays recent attempts back to
// the user as part of the training exercise.
type PasswordSample struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Password  string    `db:"password" json:"password"`
	Score     int       `db:"strength_score" json:"strength_score"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
