package athlete

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"g5-training-system/internal/models"
	"g5-training-system/internal/repository"
)

type athleteRepository struct {
	db *sqlx.DB
}

func NewAthleteRepository(db *sqlx.DB) repository.AthleteRepository {
	return &athleteRepository{db: db}
}

func (r *athleteRepository) Create(athlete *models.Athlete) error {
	if athlete.Status == "" {
		athlete.Status = models.StatusActive
	}
	now := time.Now()
	athlete.CreatedAt = now
	athlete.UpdatedAt = now

	query := `
		INSERT INTO athletes (name, birth_date, position, status, contact, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.Exec(
		query,
		athlete.Name,
		athlete.BirthDate,
		athlete.Position,
		athlete.Status,
		athlete.Contact,
		athlete.Notes,
		athlete.CreatedAt,
		athlete.UpdatedAt,
	)
	if err != nil {
		return err
	}

	athlete.ID, err = res.LastInsertId()
	return err
}

func (r *athleteRepository) GetByID(id int64) (*models.Athlete, error) {
	var athlete models.Athlete
	query := `SELECT * FROM athletes WHERE id = ?`
	err := r.db.Get(&athlete, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // атлет не найден
		}
		return nil, err
	}
	return &athlete, nil
}

func (r *athleteRepository) GetAll(activeOnly bool) ([]models.Athlete, error) {
	query := `SELECT * FROM athletes ORDER BY name`
	if activeOnly {
		query = `SELECT * FROM athletes WHERE status = 'ACTIVE' ORDER BY name`
	}

	var athletes []models.Athlete
	if err := r.db.Select(&athletes, query); err != nil {
		return nil, err
	}
	return athletes, nil
}

func (r *athleteRepository) Update(athlete *models.Athlete) error {
	athlete.UpdatedAt = time.Now()

	query := `
		UPDATE athletes
		SET name = ?, birth_date = ?, position = ?, contact = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.Exec(
		query,
		athlete.Name,
		athlete.BirthDate,
		athlete.Position,
		athlete.Contact,
		athlete.Notes,
		athlete.UpdatedAt,
		athlete.ID,
	)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *athleteRepository) SetStatus(id int64, status string) error {
	query := `UPDATE athletes SET status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.Exec(query, status, time.Now(), id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// Delete удаляет атлета насовсем. Административная операция:
// каскадно уничтожает его записи производительности.
func (r *athleteRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM athletes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
