package schedule

import (
	"errors"
	"time"
)

var ErrUnsupportedZoomLevel = errors.New("unsupported zoom level")

// Уровень масштаба таймлайна.
type ZoomLevel string

const (
	ZoomQuarterHour ZoomLevel = "quarter_hour"
	ZoomHalfHour    ZoomLevel = "half_hour"
	ZoomHour        ZoomLevel = "hour"
	ZoomDay         ZoomLevel = "day"
	ZoomWeek        ZoomLevel = "week"
	ZoomMonth       ZoomLevel = "month"
	ZoomSeason      ZoomLevel = "season"
	ZoomYear        ZoomLevel = "year"
)

// ZoomSpec описывает параметры уровня масштаба: длительность слота
// и плотность отображения (примерное число колонок на экран).
type ZoomSpec struct {
	Level        ZoomLevel
	SlotDuration time.Duration
	Density      int
	Label        string
}

// Статическая таблица уровней масштаба. Месяц/сезон/год — номинальные
// длительности: слоты служат геометрии отрисовки, не календарной арифметике.
var zoomTable = map[ZoomLevel]ZoomSpec{
	ZoomQuarterHour: {Level: ZoomQuarterHour, SlotDuration: 15 * time.Minute, Density: 96, Label: "15 минут"},
	ZoomHalfHour:    {Level: ZoomHalfHour, SlotDuration: 30 * time.Minute, Density: 48, Label: "30 минут"},
	ZoomHour:        {Level: ZoomHour, SlotDuration: time.Hour, Density: 24, Label: "Час"},
	ZoomDay:         {Level: ZoomDay, SlotDuration: 24 * time.Hour, Density: 31, Label: "День"},
	ZoomWeek:        {Level: ZoomWeek, SlotDuration: 7 * 24 * time.Hour, Density: 26, Label: "Неделя"},
	ZoomMonth:       {Level: ZoomMonth, SlotDuration: 30 * 24 * time.Hour, Density: 12, Label: "Месяц"},
	ZoomSeason:      {Level: ZoomSeason, SlotDuration: 90 * 24 * time.Hour, Density: 8, Label: "Сезон"},
	ZoomYear:        {Level: ZoomYear, SlotDuration: 365 * 24 * time.Hour, Density: 5, Label: "Год"},
}

// ResolveZoom возвращает параметры уровня масштаба, если он известен
// и входит в разрешённый для варианта доски набор allowed.
func ResolveZoom(level ZoomLevel, allowed []ZoomLevel) (ZoomSpec, error) {
	spec, ok := zoomTable[level]
	if !ok {
		return ZoomSpec{}, ErrUnsupportedZoomLevel
	}
	for _, a := range allowed {
		if a == level {
			return spec, nil
		}
	}
	return ZoomSpec{}, ErrUnsupportedZoomLevel
}

// KnownZoomLevel сообщает, известен ли уровень таблице масштабов.
func KnownZoomLevel(level ZoomLevel) bool {
	_, ok := zoomTable[level]
	return ok
}
