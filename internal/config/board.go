package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Leganyst/operations-board/internal/schedule"
)

// BoardVariantConfig — вариант доски и разрешённые для него уровни масштаба.
// Разные варианты (суточная операционная доска, многомесячная планировочная)
// показывают непересекающиеся подмножества уровней.
type BoardVariantConfig struct {
	Name string   `yaml:"name"`
	Zoom []string `yaml:"zoom"`
}

// BoardConfig — конфигурация сервиса операционной доски.
type BoardConfig struct {
	// Адрес HTTP-сервера.
	Listen string `yaml:"listen"`

	// Шаг сетки привязки в минутах. Единственный источник значения:
	// колл-сайты получают его отсюда, а не из констант.
	GranularityMinutes int `yaml:"granularity_minutes"`

	// Варианты доски.
	Variants []BoardVariantConfig `yaml:"variants"`
}

// DefaultBoardConfig возвращает конфигурацию по умолчанию.
func DefaultBoardConfig() *BoardConfig {
	return &BoardConfig{
		Listen:             ":8080",
		GranularityMinutes: 15,
		Variants: []BoardVariantConfig{
			{Name: "operations", Zoom: []string{"quarter_hour", "half_hour", "hour", "day"}},
			{Name: "planning", Zoom: []string{"week", "month", "season", "year"}},
		},
	}
}

// LoadBoardConfig читает YAML-конфигурацию из path. Отсутствующий файл —
// не ошибка: возвращаются значения по умолчанию.
func LoadBoardConfig(path string) (*BoardConfig, error) {
	cfg := DefaultBoardConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read board config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse board config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *BoardConfig) validate() error {
	if c.GranularityMinutes <= 0 {
		return fmt.Errorf("board config: granularity_minutes must be positive")
	}
	if len(c.Variants) == 0 {
		return fmt.Errorf("board config: at least one variant is required")
	}
	for _, v := range c.Variants {
		if v.Name == "" {
			return fmt.Errorf("board config: variant without a name")
		}
		for _, z := range v.Zoom {
			if !schedule.KnownZoomLevel(schedule.ZoomLevel(z)) {
				return fmt.Errorf("board config: variant %q: unknown zoom level %q", v.Name, z)
			}
		}
	}
	return nil
}

// Granularity возвращает шаг сетки как time.Duration.
func (c *BoardConfig) Granularity() time.Duration {
	return time.Duration(c.GranularityMinutes) * time.Minute
}

// VariantZoomLevels строит отображение вариант → разрешённые уровни масштаба.
func (c *BoardConfig) VariantZoomLevels() map[string][]schedule.ZoomLevel {
	variants := make(map[string][]schedule.ZoomLevel, len(c.Variants))
	for _, v := range c.Variants {
		levels := make([]schedule.ZoomLevel, 0, len(v.Zoom))
		for _, z := range v.Zoom {
			levels = append(levels, schedule.ZoomLevel(z))
		}
		variants[v.Name] = levels
	}
	return variants
}
