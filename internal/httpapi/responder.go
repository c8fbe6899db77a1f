package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Leganyst/operations-board/internal/schedule"
	"github.com/Leganyst/operations-board/internal/service"
)

// Машиночитаемые коды ошибок внешнего контракта.
const (
	codeInvalidRequest   = "INVALID_REQUEST"
	codeInvalidInterval  = "INVALID_INTERVAL"
	codeUnsupportedZoom  = "UNSUPPORTED_ZOOM_LEVEL"
	codeUnknownVariant   = "UNKNOWN_BOARD_VARIANT"
	codeResourceNotFound = "RESOURCE_NOT_FOUND"
	codeNotFound         = "NOT_FOUND"
	codeTimeConflict     = "RESOURCE_TIME_CONFLICT"
	codeInternal         = "INTERNAL"
)

type errorResponse struct {
	ErrorCode    string          `json:"error_code"`
	Message      string          `json:"message"`
	ConflictWith []conflictBlock `json:"conflict_with,omitempty"`
}

type responder struct {
	log *zap.Logger
}

func newResponder(log *zap.Logger) responder {
	if log == nil {
		log = zap.NewNop()
	}
	return responder{log: log}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.log.Error("encode response", zap.Error(err))
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, code, message string) {
	r.writeJSON(ctx, w, status, errorResponse{ErrorCode: code, Message: message})
}

// handleServiceError транслирует ошибки сервисного слоя в HTTP-ответы.
// Конфликт времени — штатный бизнес-исход с полным списком блокирующих
// блоков; всё неопознанное считается инфраструктурным сбоем, пригодным
// для повтора на стороне клиента.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode:    codeTimeConflict,
			Message:      "интервал пересекается с существующими блоками ресурса",
			ConflictWith: toConflictBlocks(conflictErr.Conflicts),
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidInterval):
		r.writeError(ctx, w, http.StatusUnprocessableEntity, codeInvalidInterval,
			"начало интервала должно быть строго раньше конца")
	case errors.Is(err, service.ErrResourceNotFound):
		r.writeError(ctx, w, http.StatusNotFound, codeResourceNotFound,
			"ресурс не найден или деактивирован")
	case errors.Is(err, service.ErrUnknownBoardVariant):
		r.writeError(ctx, w, http.StatusBadRequest, codeUnknownVariant,
			"неизвестный вариант доски")
	case errors.Is(err, schedule.ErrUnsupportedZoomLevel):
		r.writeError(ctx, w, http.StatusBadRequest, codeUnsupportedZoom,
			"уровень масштаба недоступен для этого варианта доски")
	case errors.Is(err, schedule.ErrInvalidTimeRange), errors.Is(err, schedule.ErrSlotDuration):
		r.writeError(ctx, w, http.StatusBadRequest, codeInvalidRequest,
			"некорректный диапазон дат")
	case errors.Is(err, gorm.ErrRecordNotFound):
		r.writeError(ctx, w, http.StatusNotFound, codeNotFound, "объект не найден")
	default:
		r.log.Error("service error", zap.Error(err))
		r.writeError(ctx, w, http.StatusInternalServerError, codeInternal,
			"внутренняя ошибка, повторите запрос позже")
	}
}
