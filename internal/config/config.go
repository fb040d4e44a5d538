// Package config загружает конфигурацию сервиса из YAML файла.
// Строковые значения могут содержать плейсхолдеры вида ${VAR:-default},
// которые раскрываются переменными окружения при загрузке.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

var envPlaceholder = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// InitConfig читает конфигурационный файл и возвращает экземпляр
// конфигурации произвольного типа
func InitConfig[C any](configFile string) (*C, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType(strings.TrimLeft(filepath.Ext(configFile), "."))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig: %w", err)
	}

	// Раскрываем плейсхолдеры во всех значениях; раскрытое значение
	// приводится к числу или bool, если на них похоже, иначе остается строкой
	for _, key := range v.AllKeys() {
		raw := v.GetString(key)
		if raw == "" {
			continue
		}
		v.Set(key, coerce(expandEnv(raw)))
	}

	cfg := new(C)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return cfg, nil
}

// expandEnv заменяет плейсхолдеры ${VAR:-default} на значение переменной
// окружения; для неустановленной переменной берется default (или пустая строка)
func expandEnv(s string) string {
	return envPlaceholder.ReplaceAllStringFunc(s, func(match string) string {
		parts := envPlaceholder.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) > 2 {
			return parts[2]
		}
		return ""
	})
}

// coerce приводит строку к bool, int или float64
func coerce(s string) any {
	if s == "true" || s == "false" {
		value, _ := strconv.ParseBool(s)
		return value
	}
	if value, err := strconv.Atoi(s); err == nil {
		return value
	}
	if value, err := strconv.ParseFloat(s, 64); err == nil {
		return value
	}
	return s
}
