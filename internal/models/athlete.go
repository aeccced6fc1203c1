package models

import (
	"time"

	"g5-training-system/internal/models/config"
)

// Статусы атлета
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Athlete - модель атлета
type Athlete struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	BirthDate time.Time `db:"birth_date" json:"birth_date"`
	Position  string    `db:"position" json:"position,omitempty"`
	Status    string    `db:"status" json:"status"` // ACTIVE, INACTIVE
	Contact   string    `db:"contact" json:"contact,omitempty"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Category вычисляет категорию по году рождения при каждом обращении.
// Значение никогда не хранится и не кешируется, иначе оно устареет
// при смене правил категорий в конфигурации.
func (a *Athlete) Category() string {
	return config.CategoryFor(a.BirthDate.Year())
}

// Age - возраст по текущему году
func (a *Athlete) Age() int {
	return time.Now().Year() - a.BirthDate.Year()
}

// IsActive - активен ли атлет (мягкая деактивация флагом статуса)
func (a *Athlete) IsActive() bool {
	return a.Status == StatusActive
}
