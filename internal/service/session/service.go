package session_service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"g5-training-system/internal/models"
	"g5-training-system/internal/models/config"
	"g5-training-system/internal/repository"
	"g5-training-system/internal/service"
)

var validate = validator.New()

type sessionService struct {
	sessionRepo repository.SessionRepository
	athleteRepo repository.AthleteRepository
	logger      *zap.Logger
}

func NewSessionService(sessionRepo repository.SessionRepository, athleteRepo repository.AthleteRepository, logger *zap.Logger) service.SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		athleteRepo: athleteRepo,
		logger:      logger,
	}
}

// GetOrCreateSession возвращает сессию на (дата, категория), создавая её
// при отсутствии. На существующей сессии типы тренировки из аргумента
// не применяются - только предупреждение в лог, поведение идемпотентно.
// При создании на каждого активного атлета категории заводится запись
// производительности (PRESENT, без оценки и флага) в одной транзакции.
// Атлеты, попавшие в категорию позже, задним числом не добавляются:
// состав сессии - снимок на момент создания.
func (s *sessionService) GetOrCreateSession(date time.Time, category string, trainingTypes []string) (*models.TrainingSession, error) {
	if err := validateTrainingTypes(trainingTypes); err != nil {
		return nil, err
	}

	existing, err := s.sessionRepo.GetByDateAndCategory(date, category)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		requested := models.JoinTrainingTypes(trainingTypes)
		if requested != "" && requested != models.JoinTrainingTypes(existing.Types()) {
			s.logger.Warn("сессия уже существует, типы тренировки из вызова проигнорированы",
				zap.Int64("session_id", existing.ID),
				zap.String("category", category),
				zap.String("stored_types", existing.TrainingTypes),
				zap.String("requested_types", requested),
			)
		}
		return existing, nil
	}

	athletes, err := s.athleteRepo.GetAll(true)
	if err != nil {
		return nil, err
	}
	var athleteIDs []int64
	for _, a := range athletes {
		if a.Category() == category {
			athleteIDs = append(athleteIDs, a.ID)
		}
	}

	session := &models.TrainingSession{
		Date:          date,
		Category:      category,
		TrainingTypes: models.JoinTrainingTypes(trainingTypes),
	}
	if err := s.sessionRepo.CreateWithRecords(session, athleteIDs); err != nil {
		return nil, err
	}

	s.logger.Info("создана тренировочная сессия",
		zap.Int64("session_id", session.ID),
		zap.String("category", category),
		zap.Time("date", session.Date),
		zap.Int("records", len(athleteIDs)),
	)
	return session, nil
}

func (s *sessionService) GetSession(date time.Time, category string) (*models.TrainingSession, error) {
	return s.sessionRepo.GetByDateAndCategory(date, category)
}

func (s *sessionService) GetSessionRecords(sessionID int64) ([]models.PerformanceRecord, error) {
	return s.sessionRepo.GetRecordsBySession(sessionID)
}

// UpdatePerformance обновляет три изменяемых поля записи по месту.
// Перечисления проверяются здесь, на границе: репозиторий ничего не
// валидирует, чтобы исторические значения вне перечислений читались.
func (s *sessionService) UpdatePerformance(recordID int64, mark *int, flag *string, attendance string) error {
	var flds []models.FieldError

	if mark != nil {
		if err := validate.Var(*mark, "min=1,max=3"); err != nil {
			flds = append(flds, models.FieldError{Field: "mark", Error: "оценка должна быть от 1 до 3"})
		}
	}
	if err := validate.Var(attendance, "required,oneof="+strings.Join(config.AppConfig.AttendanceCodes, " ")); err != nil {
		flds = append(flds, models.FieldError{Field: "attendance", Error: fmt.Sprintf("неизвестный код посещаемости %q", attendance)})
	}
	if flag != nil && !config.ValidAthleteFlag(*flag) {
		flds = append(flds, models.FieldError{Field: "flag", Error: fmt.Sprintf("неизвестный флаг атлета %q", *flag)})
	}
	if len(flds) > 0 {
		return models.NewValidationError(errors.New("некорректные данные производительности"), flds...)
	}

	return s.sessionRepo.UpdateRecord(recordID, mark, flag, attendance)
}

func (s *sessionService) SetSessionEvaluation(sessionID int64, flag *string, notes string) error {
	if flag != nil && !config.ValidTrainingFlag(*flag) {
		return models.NewValidationError(
			errors.New("некорректная оценка тренировки"),
			models.FieldError{Field: "flag", Error: fmt.Sprintf("неизвестный флаг тренировки %q", *flag)},
		)
	}
	return s.sessionRepo.UpdateEvaluation(sessionID, flag, notes)
}

func (s *sessionService) PerformanceHistory(category string) ([]models.PerformanceRow, error) {
	return s.sessionRepo.PerformanceHistory(category)
}

func validateTrainingTypes(types []string) error {
	var flds []models.FieldError
	for _, t := range types {
		if strings.TrimSpace(t) == "" {
			continue
		}
		if !config.ValidTrainingType(t) {
			flds = append(flds, models.FieldError{Field: "training_types", Error: fmt.Sprintf("неизвестный тип тренировки %q", t)})
		}
	}
	if len(flds) > 0 {
		return models.NewValidationError(errors.New("некорректные типы тренировки"), flds...)
	}
	return nil
}
