package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New создает zerolog логгер с уровнем из конфигурации.
// Неизвестный или пустой уровень трактуется как info.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
