package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"g5-training-system/internal/models"
	"g5-training-system/internal/models/config"
	athlete_repo "g5-training-system/internal/repository/athlete"
	session_repo "g5-training-system/internal/repository/session"
	"g5-training-system/internal/service"
	analytics_service "g5-training-system/internal/service/analytics"
	athlete_service "g5-training-system/internal/service/athlete"
	export_service "g5-training-system/internal/service/export"
	session_service "g5-training-system/internal/service/session"
	database "g5-training-system/pkg"
)

const dateLayout = "2006-01-02"

func main() {
	// Загружаем конфигурацию
	if err := config.Load(); err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	var (
		athletes  service.AthleteService
		sessions  service.SessionService
		analytics service.AnalyticsService
		export    service.ExportService
	)

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			newLogger,
			database.NewSQLite,
			athlete_repo.NewAthleteRepository,
			session_repo.NewSessionRepository,
			athlete_service.NewAthleteService,
			session_service.NewSessionService,
			analytics_service.NewAnalyticsService,
			export_service.NewExportService,
		),
		fx.Invoke(registerCleanup),
		fx.Populate(&athletes, &sessions, &analytics, &export),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		log.Fatalf("❌ Ошибка запуска: %v", err)
	}

	err := run(os.Args[1:], athletes, sessions, analytics, export)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if stopErr := app.Stop(stopCtx); stopErr != nil {
		log.Printf("⚠️  Ошибка завершения: %v", stopErr)
	}
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func newLogger() (*zap.Logger, error) {
	if config.AppConfig.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// registerCleanup закрывает дескриптор БД при остановке приложения
func registerCleanup(lc fx.Lifecycle, db *sqlx.DB, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = logger.Sync()
			return db.Close()
		},
	})
}

func run(
	args []string,
	athletes service.AthleteService,
	sessions service.SessionService,
	analytics service.AnalyticsService,
	export service.ExportService,
) error {
	if len(args) == 0 {
		usage()
		return nil
	}

	switch args[0] {
	case "add-athlete":
		return cmdAddAthlete(args[1:], athletes)
	case "athletes":
		return cmdAthletes(args[1:], athletes)
	case "session":
		return cmdSession(args[1:], sessions)
	case "mark":
		return cmdMark(args[1:], sessions)
	case "evaluate":
		return cmdEvaluate(args[1:], sessions)
	case "report":
		return cmdReport(args[1:], sessions, analytics)
	case "export":
		return cmdExport(args[1:], export)
	default:
		usage()
		return fmt.Errorf("неизвестная команда %q", args[0])
	}
}

func usage() {
	fmt.Println(`g5 - учёт посещаемости и производительности тренировок

Команды:
  add-athlete -name <имя> -birth <ГГГГ-ММ-ДД> [-position <позиция>] [-contact <контакт>]
  athletes    [-category <категория>] [-all]
  session     -category <категория> [-date <ГГГГ-ММ-ДД>] [-types <тип,тип>]
  mark        -record <id> -attendance <PRESENT|ABSENT|EXCUSED> [-mark <1-3>] [-flag <флаг>]
  evaluate    -session <id> [-flag <флаг>] [-notes <заметки>]
  report      -category <категория>
  export      [-category <категория>]`)
}

func cmdAddAthlete(args []string, athletes service.AthleteService) error {
	fs := flag.NewFlagSet("add-athlete", flag.ExitOnError)
	name := fs.String("name", "", "полное имя")
	birth := fs.String("birth", "", "дата рождения (ГГГГ-ММ-ДД)")
	position := fs.String("position", "", "позиция")
	contact := fs.String("contact", "", "контакт родителей")
	fs.Parse(args)

	birthDate, err := time.Parse(dateLayout, *birth)
	if err != nil {
		return fmt.Errorf("дата рождения: %w", err)
	}

	athlete, err := athletes.Register(*name, birthDate, *position, *contact)
	if err != nil {
		return err
	}
	fmt.Printf("Атлет #%d %s, категория: %s\n", athlete.ID, athlete.Name, athlete.Category())
	return nil
}

func cmdAthletes(args []string, athletes service.AthleteService) error {
	fs := flag.NewFlagSet("athletes", flag.ExitOnError)
	category := fs.String("category", "", "фильтр по категории")
	all := fs.Bool("all", false, "включая неактивных")
	fs.Parse(args)

	var (
		list []models.Athlete
		err  error
	)
	if *category != "" {
		list, err = athletes.ListActiveInCategory(*category)
	} else {
		list, err = athletes.List(!*all)
	}
	if err != nil {
		return err
	}

	for _, a := range list {
		fmt.Printf("#%-4d %-30s %-8s %s\n", a.ID, a.Name, a.Category(), a.Status)
	}
	fmt.Printf("Всего: %d\n", len(list))
	return nil
}

func cmdSession(args []string, sessions service.SessionService) error {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	category := fs.String("category", "", "целевая категория")
	date := fs.String("date", time.Now().Format(dateLayout), "дата сессии (ГГГГ-ММ-ДД)")
	types := fs.String("types", "", "типы тренировки через запятую")
	fs.Parse(args)

	day, err := time.Parse(dateLayout, *date)
	if err != nil {
		return fmt.Errorf("дата сессии: %w", err)
	}

	session, err := sessions.GetOrCreateSession(day, *category, strings.Split(*types, ","))
	if err != nil {
		return err
	}

	records, err := sessions.GetSessionRecords(session.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Сессия #%d %s / %s, типы: %s\n",
		session.ID, session.Date.Format(dateLayout), session.Category, session.TrainingTypes)
	for _, rec := range records {
		mark := "—"
		if rec.Mark != nil {
			mark = fmt.Sprintf("%d", *rec.Mark)
		}
		fmt.Printf("  запись #%-4d %-30s %-8s оценка: %s\n", rec.ID, rec.AthleteName, rec.Attendance, mark)
	}
	return nil
}

func cmdMark(args []string, sessions service.SessionService) error {
	fs := flag.NewFlagSet("mark", flag.ExitOnError)
	record := fs.Int64("record", 0, "id записи производительности")
	mark := fs.Int("mark", 0, "оценка 1-3 (0 - не выставлена)")
	flagVal := fs.String("flag", "", "флаг атлета")
	attendance := fs.String("attendance", config.AttendancePresent, "код посещаемости")
	fs.Parse(args)

	var markPtr *int
	if *mark != 0 {
		markPtr = mark
	}
	var flagPtr *string
	if *flagVal != "" {
		flagPtr = flagVal
	}

	if err := sessions.UpdatePerformance(*record, markPtr, flagPtr, *attendance); err != nil {
		return err
	}
	fmt.Printf("Запись #%d обновлена\n", *record)
	return nil
}

func cmdEvaluate(args []string, sessions service.SessionService) error {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	session := fs.Int64("session", 0, "id сессии")
	flagVal := fs.String("flag", "", "общая оценка тренировки")
	notes := fs.String("notes", "", "общие заметки")
	fs.Parse(args)

	var flagPtr *string
	if *flagVal != "" {
		flagPtr = flagVal
	}

	if err := sessions.SetSessionEvaluation(*session, flagPtr, *notes); err != nil {
		return err
	}
	fmt.Printf("Сессия #%d оценена\n", *session)
	return nil
}

func cmdReport(args []string, sessions service.SessionService, analytics service.AnalyticsService) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	category := fs.String("category", "", "категория")
	fs.Parse(args)

	history, err := sessions.PerformanceHistory(*category)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Printf("По категории %q нет данных\n", *category)
		return nil
	}

	fmt.Printf("── KPI атлетов (%s) ──\n", *category)
	for _, name := range distinctNames(history) {
		kpi := analytics.KPIsForAthlete(history, name)
		if kpi == nil {
			continue
		}
		fmt.Printf("%-30s тренировок: %-3d частота: %5.1f%%  средняя: %-5s недавняя: %-5s тенденция: %s\n",
			kpi.AthleteName, kpi.TotalSessions, kpi.AttendanceFreqPct,
			fmtMean(kpi.OverallMeanMark), fmtMean(kpi.RecentMeanMark), kpi.Trend)
	}

	fmt.Println("── Рейтинг эволюции ──")
	for i, entry := range analytics.RankingByImprovement(history) {
		fmt.Printf("%2d. %-30s score: %.2f (средняя %.2f, stddev %.2f, сессий %d)\n",
			i+1, entry.AthleteName, entry.Score, entry.MeanMark, entry.StdDev, entry.Sessions)
	}

	fmt.Println("── Критические алерты ──")
	alerts := analytics.CriticalAlerts(history)
	if len(alerts) == 0 {
		fmt.Println("нет")
	}
	for _, alert := range alerts {
		fmt.Printf("[%s] %s: %s\n", alert.Type, alert.AthleteName, alert.Detail)
	}
	return nil
}

func cmdExport(args []string, export service.ExportService) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	category := fs.String("category", "", "категория (пусто - выгрузка атлетов)")
	fs.Parse(args)

	var (
		payload interface{}
		err     error
	)
	if *category == "" {
		payload, err = export.AllAthletes()
	} else {
		payload, err = export.CategoryDump(*category)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func distinctNames(history []models.PerformanceRow) []string {
	var names []string
	seen := map[string]bool{}
	for _, row := range history {
		if !seen[row.AthleteName] {
			seen[row.AthleteName] = true
			names = append(names, row.AthleteName)
		}
	}
	return names
}

// fmtMean печатает среднюю оценку; NaN выводится прочерком,
// никогда не нулём
func fmtMean(x float64) string {
	if math.IsNaN(x) {
		return "—"
	}
	return fmt.Sprintf("%.2f", x)
}
