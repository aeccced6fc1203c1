package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig глобальная конфигурация приложения
var AppConfig *Config

// Config основной конфиг
type Config struct {
	Environment string
	Database    DatabaseConfig

	// Categories - правила категорий: метка -> годы рождения.
	// Годы не могут пересекаться между категориями (проверяется в Load).
	Categories map[string][]int

	// TrainingTypes - признанные типы тренировок (чеклист сессии)
	TrainingTypes []string

	// AttendanceCodes - закрытый набор кодов посещаемости
	AttendanceCodes []string

	// AthleteFlags - флаги атлета с человекочитаемой легендой
	AthleteFlags map[string]string

	// TrainingFlags - флаги общей оценки тренировки с легендой
	TrainingFlags map[string]string
}

// ConfigurationError - фатальная ошибка конфигурации (пересечение годов,
// пустые правила). Не подлежит восстановлению: приложение завершается.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "некорректная конфигурация: " + e.Reason
}

// Load загружает конфигурацию: значения по умолчанию, файл g5.yaml
// (если есть) и переменные окружения с префиксом G5
func Load() error {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("environment", "development")
	v.SetDefault("database.path", "g5_system.db")
	v.SetDefault("categories", defaultCategories())
	v.SetDefault("training_types", defaultTrainingTypes())
	v.SetDefault("attendance_codes", []string{AttendancePresent, AttendanceAbsent, AttendanceExcused})
	v.SetDefault("athlete_flags", defaultAthleteFlags())
	v.SetDefault("training_flags", defaultTrainingFlags())

	// .env подхватываем, если лежит рядом (dev-режим)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("config: godotenv: %w", err)
		}
	}

	v.SetEnvPrefix("G5")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// внешний файл конфигурации переопределяет правила категорий и легенды
	v.SetConfigName("g5")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return &ConfigurationError{Reason: fmt.Sprintf("файл конфигурации: %v", err)}
		}
	}

	cfg := &Config{
		Environment:     v.GetString("environment"),
		Database:        DatabaseConfig{Path: v.GetString("database.path")},
		TrainingTypes:   v.GetStringSlice("training_types"),
		AttendanceCodes: v.GetStringSlice("attendance_codes"),
		AthleteFlags:    v.GetStringMapString("athlete_flags"),
		TrainingFlags:   v.GetStringMapString("training_flags"),
	}
	if err := v.UnmarshalKey("categories", &cfg.Categories); err != nil {
		return &ConfigurationError{Reason: fmt.Sprintf("правила категорий: %v", err)}
	}

	if err := validateCategories(cfg.Categories); err != nil {
		return err
	}

	AppConfig = cfg
	return nil
}

// validateCategories отклоняет пересекающиеся и пустые правила.
// Порядок обхода map не определён, поэтому пересечение годов - это
// недетерминированный выбор категории: такую конфигурацию не принимаем.
func validateCategories(categories map[string][]int) error {
	if len(categories) == 0 {
		return &ConfigurationError{Reason: "правила категорий пусты"}
	}

	claimed := map[int]string{}
	for cat, years := range categories {
		if strings.TrimSpace(cat) == "" {
			return &ConfigurationError{Reason: "пустая метка категории"}
		}
		if len(years) == 0 {
			return &ConfigurationError{Reason: fmt.Sprintf("категория %q без годов рождения", cat)}
		}
		for _, y := range years {
			if other, ok := claimed[y]; ok && other != cat {
				return &ConfigurationError{
					Reason: fmt.Sprintf("год %d заявлен и в %q, и в %q", y, other, cat),
				}
			}
			claimed[y] = cat
		}
	}
	return nil
}

// Categories возвращает метки категорий от старших к младшим
// (по минимальному году рождения)
func Categories() []string {
	labels := make([]string, 0, len(AppConfig.Categories))
	for cat := range AppConfig.Categories {
		labels = append(labels, cat)
	}
	sort.Slice(labels, func(i, j int) bool {
		return minYear(AppConfig.Categories[labels[i]]) < minYear(AppConfig.Categories[labels[j]])
	})
	return labels
}

func minYear(years []int) int {
	min := years[0]
	for _, y := range years[1:] {
		if y < min {
			min = y
		}
	}
	return min
}
