package db

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

var DB *sqlx.DB

// DummyHash is a bcrypt hash login handlers compare against when the
// username does not exist, so unknown and known usernames take the same
// time to reject. Computed once at startup.
var DummyHash = mustDummyHash()

func mustDummyHash() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("cybertrain-timing-dummy"), 12)
	if err != nil {
		log.Fatalf("Error generating dummy hash: %v", err)
	}
	return string(hash)
}

func InitDB(dataSourceName string) {
	var err error
	DB, err = sqlx.Open("sqlite3", dataSourceName)
	if err != nil {
		log.Fatal(err)
	}
	// One writer connection keeps concurrent requests from hitting SQLITE_BUSY
	DB.SetMaxOpenConns(1)

	createTables := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS user_progress (
		user_id INTEGER NOT NULL,
		module_name TEXT NOT NULL,
		completion_status INTEGER DEFAULT 0,
		score INTEGER DEFAULT 0,
		last_accessed DATETIME,
		PRIMARY KEY (user_id, module_name),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS password_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		password TEXT NOT NULL,
		strength_score INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	`

	_, err = DB.Exec(createTables)
	if err != nil {
		log.Fatalf("Error creating tables: %v", err)
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
