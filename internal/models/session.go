package models

import (
	"strings"
	"time"
)

// TrainingSession - модель тренировочной сессии.
// Не больше одной сессии на пару (дата, категория).
type TrainingSession struct {
	ID       int64     `db:"id" json:"id"`
	Date     time.Time `db:"session_date" json:"date"`
	Category string    `db:"category" json:"category"`

	// Общая оценка тренировки тренером
	GeneralFlag  *string `db:"general_flag" json:"general_flag,omitempty"`
	GeneralNotes string  `db:"general_notes" json:"general_notes,omitempty"`

	// Типы тренировки за день, хранятся строкой через запятую.
	// Семантика множества: только принадлежность, без порядка и счётчиков.
	TrainingTypes string `db:"training_types" json:"training_types"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Types возвращает набор типов тренировки
func (t *TrainingSession) Types() []string {
	return SplitTrainingTypes(t.TrainingTypes)
}

// HasType проверяет принадлежность типа к набору
func (t *TrainingSession) HasType(name string) bool {
	for _, tt := range t.Types() {
		if tt == name {
			return true
		}
	}
	return false
}

// JoinTrainingTypes собирает набор типов в хранимую строку,
// отбрасывая пустые значения и дубликаты
func JoinTrainingTypes(types []string) string {
	seen := map[string]bool{}
	out := make([]string, 0, len(types))
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return strings.Join(out, ",")
}

// SplitTrainingTypes разбирает хранимую строку в набор типов
func SplitTrainingTypes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
