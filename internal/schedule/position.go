package schedule

import "time"

// SlotPosition — горизонтальная геометрия видимой части блока внутри слота,
// в долях ширины слота.
type SlotPosition struct {
	OffsetFraction float64 `json:"offset_fraction"`
	WidthFraction  float64 `json:"width_fraction"`
}

// PositionWithinSlot вычисляет положение видимой части блока [evStart, evEnd)
// внутри слота. Возвращает false, если блок слот не пересекает.
//
// Гарантии: OffsetFraction в [0, 1), OffsetFraction + WidthFraction <= 1;
// блок, полностью накрывающий слот, даёт {0, 1}.
func PositionWithinSlot(evStart, evEnd time.Time, slot TimeRange) (SlotPosition, bool) {
	slotDur := slot.Duration()
	if slotDur <= 0 {
		return SlotPosition{}, false
	}
	if !Overlaps(evStart, evEnd, slot.Start, slot.End) {
		return SlotPosition{}, false
	}

	visibleStart := evStart
	if visibleStart.Before(slot.Start) {
		visibleStart = slot.Start
	}
	visibleEnd := evEnd
	if visibleEnd.After(slot.End) {
		visibleEnd = slot.End
	}

	offset := float64(visibleStart.Sub(slot.Start)) / float64(slotDur)
	width := float64(visibleEnd.Sub(visibleStart)) / float64(slotDur)

	// Сумма долей не должна превышать 1 даже с учётом погрешности float64.
	if offset+width > 1 {
		width = 1 - offset
	}

	return SlotPosition{OffsetFraction: offset, WidthFraction: width}, true
}
