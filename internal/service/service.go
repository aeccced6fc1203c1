package service

import (
	"time"

	"g5-training-system/internal/models"
)

type AthleteService interface {
	Register(name string, birthDate time.Time, position, contact string) (*models.Athlete, error)
	Get(id int64) (*models.Athlete, error)
	List(activeOnly bool) ([]models.Athlete, error)
	// ListActiveInCategory - активные атлеты с вычисленной категорией,
	// равной заданной, в порядке имён
	ListActiveInCategory(category string) ([]models.Athlete, error)
	UpdateNotes(id int64, notes string) error
	Deactivate(id int64) error
	// Delete - административное удаление с каскадом записей производительности
	Delete(id int64) error
}

type SessionService interface {
	// GetOrCreateSession идемпотентна: существующая сессия возвращается
	// как есть, типы тренировки второго вызова не применяются
	GetOrCreateSession(date time.Time, category string, trainingTypes []string) (*models.TrainingSession, error)
	GetSession(date time.Time, category string) (*models.TrainingSession, error)
	GetSessionRecords(sessionID int64) ([]models.PerformanceRecord, error)
	UpdatePerformance(recordID int64, mark *int, flag *string, attendance string) error
	SetSessionEvaluation(sessionID int64, flag *string, notes string) error
	// PerformanceHistory - плоская история категории для аналитики
	PerformanceHistory(category string) ([]models.PerformanceRow, error)
}

// AnalyticsService - чистые функции над плоской историей,
// без обращения к хранилищу
type AnalyticsService interface {
	// KPIsForAthlete возвращает nil, если по атлету нет ни одной строки
	KPIsForAthlete(history []models.PerformanceRow, athleteName string) *models.AthleteKPI
	// RankingByImprovement - топ-10 по score, минимум 3 сессии с оценкой
	RankingByImprovement(history []models.PerformanceRow) []models.RankingEntry
	// CriticalAlerts - атлеты с >= 3 пропусками или низкой недавней средней
	CriticalAlerts(history []models.PerformanceRow) []models.Alert
}

// ExportService - read-only выгрузки для внешнего слоя отчётности
type ExportService interface {
	AllAthletes() ([]models.Athlete, error)
	CategoryDump(category string) ([]models.SessionDump, error)
}
