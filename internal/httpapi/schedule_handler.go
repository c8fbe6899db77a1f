package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Leganyst/operations-board/internal/model"
	"github.com/Leganyst/operations-board/internal/repository"
	"github.com/Leganyst/operations-board/internal/schedule"
	"github.com/Leganyst/operations-board/internal/service"
)

type boardService interface {
	ListEvents(ctx context.Context, tenantID string, from, to time.Time) ([]model.ScheduleEvent, error)
	View(ctx context.Context, params service.ViewParams) (*service.BoardView, error)
}

type schedulingService interface {
	CreateEvent(ctx context.Context, draft service.EventDraft) (*model.ScheduleEvent, error)
	CancelEvent(ctx context.Context, id string) error
	DeleteEvent(ctx context.Context, id string) error
}

type ScheduleHandler struct {
	board      boardService
	scheduling schedulingService
	responder  responder
}

func NewScheduleHandler(board boardService, scheduling schedulingService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{board: board, scheduling: scheduling, responder: newResponder(log)}
}

// Виды блоков, создаваемые через внешний контракт. Блоки booked приходят
// из внешней системы бронирования, не через этот эндпоинт.
var creatableKinds = map[model.EventKind]struct{}{
	model.EventKindHold:        {},
	model.EventKindMaintenance: {},
	model.EventKindBuffer:      {},
}

// ListEvents — GET /api/v1/schedule?from=&to=.
func (h *ScheduleHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.parseWindow(w, r)
	if !ok {
		return
	}

	events, err := h.board.ListEvents(r.Context(), TenantFromContext(r.Context()), from, to)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventsResponse{Events: events})
}

// CreateEvent — POST /api/v1/schedule/events.
func (h *ScheduleHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, codeInvalidRequest,
			"некорректное тело запроса")
		return
	}

	resourceID, err := uuid.Parse(req.ResourceID)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, codeInvalidRequest,
			"resource_id должен быть UUID")
		return
	}

	kind := model.EventKind(req.EventType)
	if _, ok := creatableKinds[kind]; !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, codeInvalidRequest,
			"event_type должен быть одним из: hold, maintenance, buffer")
		return
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, codeInvalidRequest,
			"starts_at должен быть в формате RFC 3339")
		return
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, codeInvalidRequest,
			"ends_at должен быть в формате RFC 3339")
		return
	}

	event, err := h.scheduling.CreateEvent(r.Context(), service.EventDraft{
		ResourceID: resourceID,
		Kind:       kind,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		Title:      req.Title,
		Notes:      req.Notes,
		TenantID:   TenantFromContext(r.Context()),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, event)
}

// CancelEvent — POST /api/v1/schedule/events/{id}/cancel.
func (h *ScheduleHandler) CancelEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, codeInvalidRequest,
			"идентификатор блока должен быть UUID")
		return
	}

	if err := h.scheduling.CancelEvent(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// DeleteEvent — DELETE /api/v1/schedule/events/{id}.
func (h *ScheduleHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, codeInvalidRequest,
			"идентификатор блока должен быть UUID")
		return
	}

	if err := h.scheduling.DeleteEvent(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Board — GET /api/v1/schedule/board?variant=&zoom=&from=&to=&search=&type=.
func (h *ScheduleHandler) Board(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.parseWindow(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	variant := q.Get("variant")
	if variant == "" {
		variant = "operations"
	}

	filter := repository.ResourceFilter{
		Search:   q.Get("search"),
		TenantID: TenantFromContext(r.Context()),
	}
	for _, t := range q["type"] {
		if t != "" {
			filter.Types = append(filter.Types, model.ResourceType(t))
		}
	}

	view, err := h.board.View(r.Context(), service.ViewParams{
		Variant: variant,
		Zoom:    schedule.ZoomLevel(q.Get("zoom")),
		From:    from,
		To:      to,
		Filter:  filter,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, view)
}

func (h *ScheduleHandler) parseWindow(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	q := r.URL.Query()

	from, err := time.Parse(time.RFC3339, q.Get("from"))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, codeInvalidRequest,
			"from должен быть в формате RFC 3339")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(time.RFC3339, q.Get("to"))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, codeInvalidRequest,
			"to должен быть в формате RFC 3339")
		return time.Time{}, time.Time{}, false
	}
	if !to.After(from) {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, codeInvalidRequest,
			"to должен быть позже from")
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}
