package session

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"g5-training-system/internal/models"
	"g5-training-system/internal/repository"
)

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// CreateWithRecords создаёт сессию и по одной записи производительности
// на каждого переданного атлета (по умолчанию PRESENT, без оценки и флага).
// Одна транзакция: либо сессия со всеми записями, либо ничего.
func (r *sessionRepository) CreateWithRecords(session *models.TrainingSession, athleteIDs []int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("session tx begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	session.Date = dateOnly(session.Date)
	session.CreatedAt = now
	session.UpdatedAt = now

	res, err := tx.Exec(`
		INSERT INTO sessions (session_date, category, general_flag, general_notes, training_types, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		session.Date,
		session.Category,
		session.GeneralFlag,
		session.GeneralNotes,
		session.TrainingTypes,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("session insert: %w", err)
	}
	if session.ID, err = res.LastInsertId(); err != nil {
		return err
	}

	for _, athleteID := range athleteIDs {
		_, err = tx.Exec(`
			INSERT INTO performances (session_id, athlete_id, attendance, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, session.ID, athleteID, models.AttendancePresent, now, now)
		if err != nil {
			return fmt.Errorf("performance insert (athlete %d): %w", athleteID, err)
		}
	}

	return tx.Commit()
}

func (r *sessionRepository) GetByDateAndCategory(date time.Time, category string) (*models.TrainingSession, error) {
	var session models.TrainingSession
	query := `SELECT * FROM sessions WHERE session_date = ? AND category = ?`
	err := r.db.Get(&session, query, dateOnly(date), category)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // сессии на этот день нет
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) GetByID(id int64) (*models.TrainingSession, error) {
	var session models.TrainingSession
	err := r.db.Get(&session, `SELECT * FROM sessions WHERE id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) GetAllByCategory(category string) ([]models.TrainingSession, error) {
	var sessions []models.TrainingSession
	query := `SELECT * FROM sessions WHERE category = ? ORDER BY session_date`
	if err := r.db.Select(&sessions, query, category); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) UpdateEvaluation(id int64, flag *string, notes string) error {
	query := `UPDATE sessions SET general_flag = ?, general_notes = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.Exec(query, flag, notes, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *sessionRepository) GetRecordByID(id int64) (*models.PerformanceRecord, error) {
	var record models.PerformanceRecord
	query := `
		SELECT p.*, a.name AS athlete_name
		FROM performances p
		JOIN athletes a ON a.id = p.athlete_id
		WHERE p.id = ?
	`
	err := r.db.Get(&record, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *sessionRepository) GetRecordsBySession(sessionID int64) ([]models.PerformanceRecord, error) {
	var records []models.PerformanceRecord
	query := `
		SELECT p.*, a.name AS athlete_name
		FROM performances p
		JOIN athletes a ON a.id = p.athlete_id
		WHERE p.session_id = ?
		ORDER BY a.name
	`
	if err := r.db.Select(&records, query, sessionID); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *sessionRepository) UpdateRecord(id int64, mark *int, flag *string, attendance string) error {
	query := `UPDATE performances SET mark = ?, flag = ?, attendance = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.Exec(query, mark, flag, attendance, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// PerformanceHistory возвращает плоскую историю категории в порядке дат -
// вход движка аналитики
func (r *sessionRepository) PerformanceHistory(category string) ([]models.PerformanceRow, error) {
	var rows []models.PerformanceRow
	query := `
		SELECT a.name AS athlete_name, s.session_date, p.mark, p.attendance, p.flag
		FROM performances p
		JOIN sessions s ON s.id = p.session_id
		JOIN athletes a ON a.id = p.athlete_id
		WHERE s.category = ?
		ORDER BY s.session_date, p.id
	`
	if err := r.db.Select(&rows, query, category); err != nil {
		return nil, err
	}
	return rows, nil
}

// dateOnly нормализует дату до полуночи UTC: уникальность пары
// (дата, категория) опирается на точное совпадение значения
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
