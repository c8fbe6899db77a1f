package httpapi

import (
	"time"

	"github.com/Leganyst/operations-board/internal/model"
)

// Тело запроса на создание блока.
type createEventRequest struct {
	ResourceID string `json:"resource_id"`
	EventType  string `json:"event_type"`
	StartsAt   string `json:"starts_at"`
	EndsAt     string `json:"ends_at"`
	Title      string `json:"title"`
	Notes      string `json:"notes"`
}

// conflictBlock — описание блокирующего блока в ответе о конфликте,
// достаточное для человекочитаемого объяснения отказа.
type conflictBlock struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	EventType string    `json:"event_type"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
}

func toConflictBlocks(events []model.ScheduleEvent) []conflictBlock {
	blocks := make([]conflictBlock, 0, len(events))
	for _, ev := range events {
		blocks = append(blocks, conflictBlock{
			ID:        ev.ID.String(),
			Type:      "schedule_event",
			EventType: string(ev.Kind),
			Title:     ev.Title,
			StartsAt:  ev.StartsAt,
			EndsAt:    ev.EndsAt,
		})
	}
	return blocks
}

type eventsResponse struct {
	Events []model.ScheduleEvent `json:"events"`
}
