package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"g5-training-system/internal/models/config"
)

// NewSQLite открывает встроенную БД и создаёт таблицы, если их нет.
// Дескриптор *sqlx.DB безопасен для вызовов из нескольких горутин UI;
// логическая запись при этом остаётся однопоточной на уровне вызывающего.
func NewSQLite() (*sqlx.DB, error) {
	cfg := config.AppConfig.Database

	// _busy_timeout на случай конкурентного обращения к дескриптору,
	// _foreign_keys включает каскадное удаление
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", cfg.Path)

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// SQLite - один писатель; одно соединение также позволяет
	// использовать ":memory:" в тестах
	db.SetMaxOpenConns(1)

	if err = createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func createTables(db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS athletes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		birth_date DATE NOT NULL,
		position TEXT DEFAULT '',
		status TEXT NOT NULL DEFAULT 'ACTIVE',
		contact TEXT DEFAULT '',
		notes TEXT DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_date DATE NOT NULL,
		category TEXT NOT NULL,
		general_flag TEXT,
		general_notes TEXT DEFAULT '',
		training_types TEXT DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE(session_date, category)
	);

	CREATE TABLE IF NOT EXISTS performances (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		athlete_id INTEGER NOT NULL REFERENCES athletes(id) ON DELETE CASCADE,
		attendance TEXT NOT NULL DEFAULT 'PRESENT',
		mark INTEGER,
		flag TEXT,
		note TEXT DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE(session_id, athlete_id)
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_category ON sessions(category);
	CREATE INDEX IF NOT EXISTS idx_performances_session ON performances(session_id);
	CREATE INDEX IF NOT EXISTS idx_performances_athlete ON performances(athlete_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	return nil
}
