package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Leganyst/operations-board/internal/model"
)

var (
	// Кандидат после привязки к сетке имеет start >= end.
	ErrInvalidInterval = errors.New("invalid interval")
	// Ресурс не найден в каталоге или деактивирован к моменту фиксации.
	ErrResourceNotFound = errors.New("resource not found")
	// Неизвестный вариант доски в конфигурации запроса.
	ErrUnknownBoardVariant = errors.New("unknown board variant")
)

// ConflictError — штатный бизнес-отказ: кандидат пересекается с уже
// зафиксированными блоками ресурса. Несёт полный список конфликтующих
// блоков, чтобы вызывающая сторона могла объяснить отказ пользователю.
// Отличим от инфраструктурных сбоев через errors.As.
type ConflictError struct {
	ResourceID uuid.UUID
	Conflicts  []model.ScheduleEvent
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("resource %s: candidate overlaps %d existing block(s)", e.ResourceID, len(e.Conflicts))
}
