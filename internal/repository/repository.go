package repository

import (
	"time"

	"g5-training-system/internal/models"
)

type AthleteRepository interface {
	Create(athlete *models.Athlete) error
	GetByID(id int64) (*models.Athlete, error)
	GetAll(activeOnly bool) ([]models.Athlete, error)
	Update(athlete *models.Athlete) error
	SetStatus(id int64, status string) error
	Delete(id int64) error
}

type SessionRepository interface {
	// Сессии
	CreateWithRecords(session *models.TrainingSession, athleteIDs []int64) error
	GetByDateAndCategory(date time.Time, category string) (*models.TrainingSession, error)
	GetByID(id int64) (*models.TrainingSession, error)
	GetAllByCategory(category string) ([]models.TrainingSession, error)
	UpdateEvaluation(id int64, flag *string, notes string) error

	// Записи производительности
	GetRecordByID(id int64) (*models.PerformanceRecord, error)
	GetRecordsBySession(sessionID int64) ([]models.PerformanceRecord, error)
	UpdateRecord(id int64, mark *int, flag *string, attendance string) error

	// Плоская проекция истории категории для аналитики
	PerformanceHistory(category string) ([]models.PerformanceRow, error)
}
