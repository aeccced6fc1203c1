package models

// Тенденция динамики атлета
const (
	TrendUp      = "UP"
	TrendDown    = "DOWN"
	TrendUnknown = "UNKNOWN" // средняя оценка не определена (нет ни одной оценки)
)

// Типы критических алертов
const (
	AlertAbsences    = "ABSENCES"
	AlertPerformance = "PERFORMANCE"
)

// AthleteKPI - индивидуальные показатели атлета по истории категории.
// OverallMeanMark и RecentMeanMark равны NaN, когда оценок нет вообще:
// форматирование обязано проверять math.IsNaN и не печатать 0.
type AthleteKPI struct {
	AthleteName       string  `json:"athlete_name"`
	TotalSessions     int     `json:"total_sessions"`
	AttendanceFreqPct float64 `json:"attendance_freq_pct"` // 1 знак после запятой
	OverallMeanMark   float64 `json:"overall_mean_mark"`   // 2 знака, NaN если оценок нет
	RecentMeanMark    float64 `json:"recent_mean_mark"`    // по последним 5 сессиям
	Trend             string  `json:"trend"`               // UP, DOWN, UNKNOWN
}

// RankingEntry - позиция атлета в рейтинге эволюции.
// Score = среднее * (1 - stddev/10): высокая средняя поощряется,
// нестабильность линейно штрафуется.
type RankingEntry struct {
	AthleteName string  `json:"athlete_name"`
	MeanMark    float64 `json:"mean_mark"`
	StdDev      float64 `json:"std_dev"`
	Sessions    int     `json:"sessions"` // количество сессий с оценкой
	Score       float64 `json:"score"`
}

// Alert - атлет, требующий внимания тренера
type Alert struct {
	AthleteName string `json:"athlete_name"`
	Type        string `json:"type"` // ABSENCES, PERFORMANCE
	Detail      string `json:"detail"`
}
