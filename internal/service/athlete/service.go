package athlete_service

import (
	"errors"
	"strings"
	"time"

	"g5-training-system/internal/models"
	"g5-training-system/internal/repository"
	"g5-training-system/internal/service"
)

type athleteService struct {
	athleteRepo repository.AthleteRepository
}

func NewAthleteService(athleteRepo repository.AthleteRepository) service.AthleteService {
	return &athleteService{athleteRepo: athleteRepo}
}

func (s *athleteService) Register(name string, birthDate time.Time, position, contact string) (*models.Athlete, error) {
	var flds []models.FieldError
	name = strings.TrimSpace(name)
	if name == "" {
		flds = append(flds, models.FieldError{Field: "name", Error: "имя обязательно"})
	}
	if birthDate.IsZero() {
		flds = append(flds, models.FieldError{Field: "birth_date", Error: "дата рождения обязательна"})
	} else if birthDate.After(time.Now()) {
		flds = append(flds, models.FieldError{Field: "birth_date", Error: "дата рождения в будущем"})
	}
	if len(flds) > 0 {
		return nil, models.NewValidationError(errors.New("некорректные данные атлета"), flds...)
	}

	athlete := &models.Athlete{
		Name:      name,
		BirthDate: birthDate,
		Position:  position,
		Contact:   contact,
		Status:    models.StatusActive,
	}
	if err := s.athleteRepo.Create(athlete); err != nil {
		return nil, err
	}
	return athlete, nil
}

func (s *athleteService) Get(id int64) (*models.Athlete, error) {
	athlete, err := s.athleteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if athlete == nil {
		return nil, models.ErrNotFound
	}
	return athlete, nil
}

func (s *athleteService) List(activeOnly bool) ([]models.Athlete, error) {
	return s.athleteRepo.GetAll(activeOnly)
}

// ListActiveInCategory фильтрует в памяти: категория вычисляется из даты
// рождения и не хранится в БД, запросом её не отобрать.
// O(n) по активным атлетам - на целевых объёмах это десятки строк.
func (s *athleteService) ListActiveInCategory(category string) ([]models.Athlete, error) {
	all, err := s.athleteRepo.GetAll(true)
	if err != nil {
		return nil, err
	}

	var result []models.Athlete
	for _, a := range all {
		if a.Category() == category {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *athleteService) UpdateNotes(id int64, notes string) error {
	athlete, err := s.Get(id)
	if err != nil {
		return err
	}
	athlete.Notes = notes
	return s.athleteRepo.Update(athlete)
}

// Deactivate - мягкая деактивация флагом статуса.
// История производительности атлета сохраняется.
func (s *athleteService) Deactivate(id int64) error {
	return s.athleteRepo.SetStatus(id, models.StatusInactive)
}

func (s *athleteService) Delete(id int64) error {
	return s.athleteRepo.Delete(id)
}
