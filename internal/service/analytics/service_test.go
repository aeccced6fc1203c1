package analytics_service

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"g5-training-system/internal/models"
)

// row строит строку истории; mark < 0 означает "оценка не выставлена"
func row(name string, day int, mark int, attendance string) models.PerformanceRow {
	r := models.PerformanceRow{
		AthleteName: name,
		Date:        time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		Attendance:  attendance,
	}
	if mark >= 0 {
		m := mark
		r.Mark = &m
	}
	return r
}

func TestKPIsEmptyHistory(t *testing.T) {
	svc := NewAnalyticsService()

	assert.Nil(t, svc.KPIsForAthlete(nil, "Alice"))
	assert.Nil(t, svc.KPIsForAthlete([]models.PerformanceRow{row("Bruno", 1, 2, models.AttendancePresent)}, "Alice"))
}

func TestKPIsMeanIgnoresMissingMarks(t *testing.T) {
	svc := NewAnalyticsService()
	history := []models.PerformanceRow{
		row("Alice", 1, 3, models.AttendancePresent),
		row("Alice", 2, -1, models.AttendanceAbsent),
		row("Alice", 3, 1, models.AttendancePresent),
	}

	kpi := svc.KPIsForAthlete(history, "Alice")
	require.NotNil(t, kpi)

	assert.Equal(t, 3, kpi.TotalSessions)
	// знаменатель частоты - все строки, знаменатель средней - только оценки
	assert.InDelta(t, 66.7, kpi.AttendanceFreqPct, 0.01)
	assert.InDelta(t, 2.0, kpi.OverallMeanMark, 0.001)
	assert.InDelta(t, 2.0, kpi.RecentMeanMark, 0.001)
	assert.Equal(t, models.TrendDown, kpi.Trend) // равенство - это DOWN
}

func TestKPIsTrendUp(t *testing.T) {
	svc := NewAnalyticsService()
	// слабое начало, сильные последние пять
	history := []models.PerformanceRow{
		row("Alice", 1, 1, models.AttendancePresent),
		row("Alice", 2, 1, models.AttendancePresent),
		row("Alice", 3, 1, models.AttendancePresent),
		row("Alice", 4, 3, models.AttendancePresent),
		row("Alice", 5, 3, models.AttendancePresent),
		row("Alice", 6, 3, models.AttendancePresent),
		row("Alice", 7, 3, models.AttendancePresent),
	}

	kpi := svc.KPIsForAthlete(history, "Alice")
	require.NotNil(t, kpi)
	assert.Equal(t, models.TrendUp, kpi.Trend)
	assert.InDelta(t, 2.14, kpi.OverallMeanMark, 0.001)
	assert.InDelta(t, 2.6, kpi.RecentMeanMark, 0.001) // последние 5 по дате
}

func TestKPIsLastFiveByDateOrder(t *testing.T) {
	svc := NewAnalyticsService()
	// история подаётся в перемешанном порядке - окно всё равно по датам
	history := []models.PerformanceRow{
		row("Alice", 7, 3, models.AttendancePresent),
		row("Alice", 1, 1, models.AttendancePresent),
		row("Alice", 5, 3, models.AttendancePresent),
		row("Alice", 2, 1, models.AttendancePresent),
		row("Alice", 6, 3, models.AttendancePresent),
		row("Alice", 3, 1, models.AttendancePresent),
		row("Alice", 4, 3, models.AttendancePresent),
	}

	kpi := svc.KPIsForAthlete(history, "Alice")
	require.NotNil(t, kpi)
	assert.InDelta(t, 2.6, kpi.RecentMeanMark, 0.001)
}

func TestKPIsTrendUnknownWithoutMarks(t *testing.T) {
	svc := NewAnalyticsService()
	history := []models.PerformanceRow{
		row("Alice", 1, -1, models.AttendancePresent),
		row("Alice", 2, -1, models.AttendanceExcused),
	}

	kpi := svc.KPIsForAthlete(history, "Alice")
	require.NotNil(t, kpi)

	// без единой оценки средняя не определена - тенденция UNKNOWN, не DOWN
	assert.True(t, math.IsNaN(kpi.OverallMeanMark))
	assert.Equal(t, models.TrendUnknown, kpi.Trend)
	assert.InDelta(t, 50.0, kpi.AttendanceFreqPct, 0.01) // EXCUSED не присутствие
}

func TestRankingMinimumSessionsFloor(t *testing.T) {
	svc := NewAnalyticsService()
	history := []models.PerformanceRow{
		// двух оценок мало для рейтинга, какими бы они ни были
		row("Bruno", 1, 3, models.AttendancePresent),
		row("Bruno", 2, 3, models.AttendancePresent),
		// трёх достаточно
		row("Alice", 1, 1, models.AttendancePresent),
		row("Alice", 2, 1, models.AttendancePresent),
		row("Alice", 3, 1, models.AttendancePresent),
	}

	ranking := svc.RankingByImprovement(history)
	require.Len(t, ranking, 1)
	assert.Equal(t, "Alice", ranking[0].AthleteName)
	assert.Equal(t, 3, ranking[0].Sessions)
}

func TestRankingScorePenalizesInstability(t *testing.T) {
	svc := NewAnalyticsService()
	history := []models.PerformanceRow{
		row("Alice", 1, 3, models.AttendancePresent),
		row("Alice", 2, 3, models.AttendancePresent),
		row("Alice", 3, 3, models.AttendancePresent),
		row("Bruno", 1, 3, models.AttendancePresent),
		row("Bruno", 2, 1, models.AttendancePresent),
		row("Bruno", 3, 3, models.AttendancePresent),
	}

	ranking := svc.RankingByImprovement(history)
	require.Len(t, ranking, 2)

	// стабильные [3,3,3] выше нестабильных [3,1,3] при той же вершине
	assert.Equal(t, "Alice", ranking[0].AthleteName)
	assert.InDelta(t, 3.0, ranking[0].Score, 0.001)
	assert.InDelta(t, 0.0, ranking[0].StdDev, 0.001)

	assert.Equal(t, "Bruno", ranking[1].AthleteName)
	assert.InDelta(t, 2.33, ranking[1].MeanMark, 0.01)
	assert.InDelta(t, 1.15, ranking[1].StdDev, 0.01)
	assert.InDelta(t, 2.06, ranking[1].Score, 0.01)
}

func TestRankingTopTenAndStableTies(t *testing.T) {
	svc := NewAnalyticsService()

	var history []models.PerformanceRow
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("Atleta %02d", i)
		for day := 1; day <= 3; day++ {
			history = append(history, row(name, day, 2, models.AttendancePresent))
		}
	}

	ranking := svc.RankingByImprovement(history)
	require.Len(t, ranking, 10)

	// одинаковый score - порядок первого появления в истории
	for i, entry := range ranking {
		assert.Equal(t, fmt.Sprintf("Atleta %02d", i), entry.AthleteName)
	}
}

func TestAlertsAbsenceThreshold(t *testing.T) {
	svc := NewAnalyticsService()

	twoAbsences := []models.PerformanceRow{
		row("Alice", 1, 2, models.AttendanceAbsent),
		row("Alice", 2, 2, models.AttendanceAbsent),
		row("Alice", 3, 2, models.AttendancePresent),
	}
	assert.Empty(t, svc.CriticalAlerts(twoAbsences))

	threeAbsences := append(twoAbsences, row("Alice", 4, 2, models.AttendanceAbsent))
	alerts := svc.CriticalAlerts(threeAbsences)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertAbsences, alerts[0].Type)
	assert.Equal(t, "3 absences recorded", alerts[0].Detail)
}

func TestAlertsExcusedIsNotAbsence(t *testing.T) {
	svc := NewAnalyticsService()
	history := []models.PerformanceRow{
		row("Alice", 1, 2, models.AttendanceExcused),
		row("Alice", 2, 2, models.AttendanceExcused),
		row("Alice", 3, 2, models.AttendanceExcused),
	}
	assert.Empty(t, svc.CriticalAlerts(history))
}

func TestAlertsPerformanceThreshold(t *testing.T) {
	svc := NewAnalyticsService()

	low := []models.PerformanceRow{
		row("Alice", 1, 3, models.AttendancePresent),
		row("Alice", 2, 1, models.AttendancePresent),
		row("Alice", 3, 2, models.AttendancePresent),
		row("Alice", 4, 1, models.AttendancePresent), // последние три: 1,2,1
	}
	alerts := svc.CriticalAlerts(low)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertPerformance, alerts[0].Type)
	assert.Equal(t, "critical recent average (< 1.8)", alerts[0].Detail)

	ok := []models.PerformanceRow{
		row("Bruno", 1, 2, models.AttendancePresent),
		row("Bruno", 2, 2, models.AttendancePresent),
		row("Bruno", 3, 2, models.AttendancePresent),
	}
	assert.Empty(t, svc.CriticalAlerts(ok))
}

func TestAlertsBothChecksFireIndependently(t *testing.T) {
	svc := NewAnalyticsService()
	history := []models.PerformanceRow{
		row("Alice", 1, 1, models.AttendanceAbsent),
		row("Alice", 2, 1, models.AttendanceAbsent),
		row("Alice", 3, 1, models.AttendanceAbsent),
	}

	alerts := svc.CriticalAlerts(history)
	require.Len(t, alerts, 2)
	assert.Equal(t, models.AlertAbsences, alerts[0].Type)
	assert.Equal(t, models.AlertPerformance, alerts[1].Type)
}

func TestAlertsNoMarksNoPerformanceAlert(t *testing.T) {
	svc := NewAnalyticsService()
	history := []models.PerformanceRow{
		row("Alice", 1, -1, models.AttendancePresent),
		row("Alice", 2, -1, models.AttendancePresent),
		row("Alice", 3, -1, models.AttendancePresent),
	}
	// на неопределённых данных алерт не поднимается
	assert.Empty(t, svc.CriticalAlerts(history))
}
