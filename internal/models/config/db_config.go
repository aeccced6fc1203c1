package config

// DatabaseConfig конфигурация встроенной БД
type DatabaseConfig struct {
	// Path - путь к файлу SQLite (":memory:" для тестов)
	Path string
}
