package schedule

import (
	"errors"
	"iter"
	"time"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrSlotDuration     = errors.New("slot duration must be positive")
)

// TimeRange представляет полуоткрытый интервал [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange создаёт интервал и валидирует границы: Start строго меньше End,
// нулевые значения не допускаются.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Duration возвращает длину интервала.
func (tr TimeRange) Duration() time.Duration {
	return tr.End.Sub(tr.Start)
}

// SnapDown усекает t до ближайшей границы, кратной granularity, не позже t.
// Границы считаются от полуночи UTC. Идемпотентна: SnapDown(SnapDown(t)) == SnapDown(t).
// При granularity <= 0 возвращает t без изменений.
func SnapDown(t time.Time, granularity time.Duration) time.Time {
	if granularity <= 0 {
		return t
	}
	return t.UTC().Truncate(granularity)
}

// SnapUp округляет t вверх до ближайшей границы, кратной granularity.
// Если t уже на границе — возвращает t без изменений.
func SnapUp(t time.Time, granularity time.Duration) time.Time {
	if granularity <= 0 {
		return t
	}
	down := SnapDown(t, granularity)
	if down.Equal(t.UTC()) {
		return down
	}
	return down.Add(granularity)
}

// Slots возвращает ленивую последовательность слотов [slotStart, slotEnd),
// непрерывно покрывающую [from, to). Последний слот усекается, если длина
// диапазона не кратна slotDuration. Последовательность можно обходить повторно.
// При некорректных аргументах последовательность пуста.
func Slots(from, to time.Time, slotDuration time.Duration) iter.Seq[TimeRange] {
	return func(yield func(TimeRange) bool) {
		if slotDuration <= 0 || !to.After(from) {
			return
		}
		for cur := from; cur.Before(to); cur = cur.Add(slotDuration) {
			end := cur.Add(slotDuration)
			if end.After(to) {
				end = to
			}
			if !yield(TimeRange{Start: cur, End: end}) {
				return
			}
		}
	}
}

// SlotList материализует Slots в срез с валидацией аргументов.
func SlotList(from, to time.Time, slotDuration time.Duration) ([]TimeRange, error) {
	if slotDuration <= 0 {
		return nil, ErrSlotDuration
	}
	if from.IsZero() || to.IsZero() || !to.After(from) {
		return nil, ErrInvalidTimeRange
	}

	var slots []TimeRange
	for slot := range Slots(from, to, slotDuration) {
		slots = append(slots, slot)
	}
	return slots, nil
}
