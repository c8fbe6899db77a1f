package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/operations-board/internal/model"
)

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd)
// и [bStart, bEnd): они пересекаются, если aStart < bEnd && bStart < aEnd.
// Касание концами пересечением не считается.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflicts возвращает все активные блоки ресурса resourceID из existing,
// пересекающиеся с кандидатом [start, end). Блок с идентификатором excludeID
// пропускается (редактирование блока на месте); uuid.Nil — без исключений.
//
// Пустой результат означает, что кандидата можно фиксировать. Блоки других
// ресурсов игнорируются: родитель и его единицы оснащения — независимые
// пространства конфликтов.
func FindConflicts(
	existing []model.ScheduleEvent,
	resourceID uuid.UUID,
	start, end time.Time,
	excludeID uuid.UUID,
) []model.ScheduleEvent {
	var conflicts []model.ScheduleEvent

	for _, ev := range existing {
		if ev.ResourceID != resourceID {
			continue
		}
		if ev.Status == model.EventStatusCancelled {
			continue
		}
		if excludeID != uuid.Nil && ev.ID == excludeID {
			continue
		}
		if Overlaps(start, end, ev.StartsAt, ev.EndsAt) {
			conflicts = append(conflicts, ev)
		}
	}

	return conflicts
}
