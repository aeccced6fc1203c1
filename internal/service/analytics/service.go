package analytics_service

import (
	"fmt"
	"math"
	"sort"

	"g5-training-system/internal/models"
	"g5-training-system/internal/service"
)

// Пороговые значения алертов
const (
	absenceAlertThreshold  = 3
	criticalRecentMean     = 1.8
	recentWindowKPI        = 5
	recentWindowAlert      = 3
	rankingMinSessions     = 3
	rankingLimit           = 10
	stabilityPenaltyFactor = 10.0
)

type analyticsService struct{}

func NewAnalyticsService() service.AnalyticsService {
	return &analyticsService{}
}

// KPIsForAthlete считает индивидуальные показатели по истории категории.
// nil - по атлету нет ни одной строки (не ошибка, а пустой результат).
func (s *analyticsService) KPIsForAthlete(history []models.PerformanceRow, athleteName string) *models.AthleteKPI {
	var rows []models.PerformanceRow
	for _, row := range history {
		if row.AthleteName == athleteName {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	sortByDate(rows)

	total := len(rows)
	present := 0
	for _, row := range rows {
		if row.Attendance == models.AttendancePresent {
			present++
		}
	}

	// средние игнорируют отсутствующие оценки: знаменатель - число
	// выставленных оценок, не число строк
	overall := meanMarks(rows)
	recent := meanMarks(lastN(rows, recentWindowKPI))

	// сравнение с NaN не определено: без единой оценки тенденции нет
	trend := models.TrendDown
	if math.IsNaN(overall) {
		trend = models.TrendUnknown
	} else if recent > overall {
		trend = models.TrendUp
	}

	return &models.AthleteKPI{
		AthleteName:       athleteName,
		TotalSessions:     total,
		AttendanceFreqPct: round1(float64(present) / float64(total) * 100),
		OverallMeanMark:   round2(overall),
		RecentMeanMark:    round2(recent),
		Trend:             trend,
	}
}

// RankingByImprovement строит рейтинг эволюции: высокая средняя оценка
// поощряется, нестабильность (stddev) линейно штрафует score.
// Атлеты с менее чем тремя оценками не ранжируются - одна удачная
// сессия не должна доминировать в рейтинге.
func (s *analyticsService) RankingByImprovement(history []models.PerformanceRow) []models.RankingEntry {
	names, marksByName := groupMarks(history)

	var entries []models.RankingEntry
	for _, name := range names {
		marks := marksByName[name]
		if len(marks) < rankingMinSessions {
			continue
		}
		mean := meanOf(marks)
		std := sampleStdDev(marks, mean)
		entries = append(entries, models.RankingEntry{
			AthleteName: name,
			MeanMark:    mean,
			StdDev:      std,
			Sessions:    len(marks),
			Score:       mean * (1 - std/stabilityPenaltyFactor),
		})
	}

	// стабильная сортировка: при равном score сохраняется порядок
	// первого появления в истории
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > rankingLimit {
		entries = entries[:rankingLimit]
	}
	return entries
}

// CriticalAlerts находит атлетов, требующих внимания. Обе проверки
// независимы и могут сработать для одного атлета одновременно.
func (s *analyticsService) CriticalAlerts(history []models.PerformanceRow) []models.Alert {
	names, rowsByName := groupRows(history)

	var alerts []models.Alert
	for _, name := range names {
		rows := rowsByName[name]
		sortByDate(rows)

		absences := 0
		for _, row := range rows {
			if row.Attendance == models.AttendanceAbsent {
				absences++
			}
		}
		if absences >= absenceAlertThreshold {
			alerts = append(alerts, models.Alert{
				AthleteName: name,
				Type:        models.AlertAbsences,
				Detail:      fmt.Sprintf("%d absences recorded", absences),
			})
		}

		// по данным без единой оценки алерт не поднимаем
		recentMean := meanMarks(lastN(rows, recentWindowAlert))
		if !math.IsNaN(recentMean) && recentMean < criticalRecentMean {
			alerts = append(alerts, models.Alert{
				AthleteName: name,
				Type:        models.AlertPerformance,
				Detail:      fmt.Sprintf("critical recent average (< %.1f)", criticalRecentMean),
			})
		}
	}
	return alerts
}

// ///////////////////////////// helpers /////////////////////////////

func groupRows(history []models.PerformanceRow) ([]string, map[string][]models.PerformanceRow) {
	var names []string
	byName := map[string][]models.PerformanceRow{}
	for _, row := range history {
		if _, ok := byName[row.AthleteName]; !ok {
			names = append(names, row.AthleteName)
		}
		byName[row.AthleteName] = append(byName[row.AthleteName], row)
	}
	return names, byName
}

func groupMarks(history []models.PerformanceRow) ([]string, map[string][]float64) {
	names, rowsByName := groupRows(history)
	marksByName := make(map[string][]float64, len(rowsByName))
	for _, name := range names {
		for _, row := range rowsByName[name] {
			if row.Mark != nil {
				marksByName[name] = append(marksByName[name], float64(*row.Mark))
			}
		}
	}
	return names, marksByName
}

func sortByDate(rows []models.PerformanceRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
}

func lastN(rows []models.PerformanceRow, n int) []models.PerformanceRow {
	if len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}

// meanMarks - среднее по выставленным оценкам; NaN, если оценок нет
func meanMarks(rows []models.PerformanceRow) float64 {
	var marks []float64
	for _, row := range rows {
		if row.Mark != nil {
			marks = append(marks, float64(*row.Mark))
		}
	}
	return meanOf(marks)
}

func meanOf(marks []float64) float64 {
	if len(marks) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, m := range marks {
		sum += m
	}
	return sum / float64(len(marks))
}

// sampleStdDev - выборочное стандартное отклонение (поправка Бесселя);
// 0 при менее чем двух значениях
func sampleStdDev(marks []float64, mean float64) float64 {
	if len(marks) < 2 {
		return 0
	}
	sum := 0.0
	for _, m := range marks {
		d := m - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(marks)-1))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	return math.Round(x*100) / 100
}
