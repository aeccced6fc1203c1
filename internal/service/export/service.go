package export_service

import (
	"g5-training-system/internal/models"
	"g5-training-system/internal/repository"
	"g5-training-system/internal/service"
)

// exportService отдаёт read-only выгрузки для внешнего слоя отчётности.
// Сериализация в табличный формат - забота потребителя.
type exportService struct {
	athleteRepo repository.AthleteRepository
	sessionRepo repository.SessionRepository
}

func NewExportService(athleteRepo repository.AthleteRepository, sessionRepo repository.SessionRepository) service.ExportService {
	return &exportService{
		athleteRepo: athleteRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *exportService) AllAthletes() ([]models.Athlete, error) {
	return s.athleteRepo.GetAll(false)
}

// CategoryDump - все сессии категории вместе с записями производительности
func (s *exportService) CategoryDump(category string) ([]models.SessionDump, error) {
	sessions, err := s.sessionRepo.GetAllByCategory(category)
	if err != nil {
		return nil, err
	}

	dumps := make([]models.SessionDump, 0, len(sessions))
	for _, session := range sessions {
		records, err := s.sessionRepo.GetRecordsBySession(session.ID)
		if err != nil {
			return nil, err
		}
		dumps = append(dumps, models.SessionDump{Session: session, Records: records})
	}
	return dumps, nil
}
