package models

import (
	"time"

	"g5-training-system/internal/models/config"
)

// Коды посещаемости, реэкспорт для слоёв, не зависящих от пакета config
const (
	AttendancePresent = config.AttendancePresent
	AttendanceAbsent  = config.AttendanceAbsent
	AttendanceExcused = config.AttendanceExcused
)

// PerformanceRecord - запись посещаемости/производительности атлета
// в одной сессии. Ровно одна запись на пару (сессия, атлет): создаётся
// при создании сессии и дальше обновляется по месту.
type PerformanceRecord struct {
	ID        int64 `db:"id" json:"id"`
	SessionID int64 `db:"session_id" json:"session_id"`
	AthleteID int64 `db:"athlete_id" json:"athlete_id"`

	Attendance string  `db:"attendance" json:"attendance"` // PRESENT, ABSENT, EXCUSED
	Mark       *int    `db:"mark" json:"mark"`             // 1-3, nil если не выставлена
	Flag       *string `db:"flag" json:"flag"`             // флаг атлета (DM, 3...), nil если нет
	Note       string  `db:"note" json:"note,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Joined fields
	AthleteName string `db:"athlete_name" json:"athlete_name,omitempty"`
}

// PerformanceRow - плоская денормализованная строка истории категории.
// Единственный входной контракт движка аналитики: он никогда не ходит
// в хранилище сам, соединение таблиц - забота слоя репозитория.
type PerformanceRow struct {
	AthleteName string    `db:"athlete_name" json:"athlete_name"`
	Date        time.Time `db:"session_date" json:"date"`
	Mark        *int      `db:"mark" json:"mark"`
	Attendance  string    `db:"attendance" json:"attendance"`
	Flag        *string   `db:"flag" json:"flag"`
}

// SessionDump - сессия со своими записями для внешнего экспорта
type SessionDump struct {
	Session TrainingSession     `json:"session"`
	Records []PerformanceRecord `json:"records"`
}
