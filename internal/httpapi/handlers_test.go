package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/operations-board/internal/model"
	"github.com/Leganyst/operations-board/internal/repository"
	"github.com/Leganyst/operations-board/internal/schedule"
	"github.com/Leganyst/operations-board/internal/service"
)

type fakeCatalog struct {
	listing   *service.ResourceListing
	err       error
	gotFilter repository.ResourceFilter
}

func (f *fakeCatalog) ListResources(ctx context.Context, filter repository.ResourceFilter, page, pageSize int) (*service.ResourceListing, error) {
	f.gotFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.listing, nil
}

type fakeBoard struct {
	events []model.ScheduleEvent
	view   *service.BoardView
	err    error
}

func (f *fakeBoard) ListEvents(ctx context.Context, tenantID string, from, to time.Time) ([]model.ScheduleEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeBoard) View(ctx context.Context, params service.ViewParams) (*service.BoardView, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.view, nil
}

type fakeScheduling struct {
	event    *model.ScheduleEvent
	err      error
	gotDraft service.EventDraft
}

func (f *fakeScheduling) CreateEvent(ctx context.Context, draft service.EventDraft) (*model.ScheduleEvent, error) {
	f.gotDraft = draft
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeScheduling) CancelEvent(ctx context.Context, id string) error { return f.err }
func (f *fakeScheduling) DeleteEvent(ctx context.Context, id string) error { return f.err }

func newTestRouter(catalog *fakeCatalog, board *fakeBoard, scheduling *fakeScheduling) http.Handler {
	return NewRouter(
		NewResourceHandler(catalog, nil),
		NewScheduleHandler(board, scheduling, nil),
		nil,
	)
}

func testInstant(t *testing.T, hour int) time.Time {
	t.Helper()
	return time.Date(2024, 5, 20, hour, 0, 0, 0, time.UTC)
}

func TestCreateEvent_Created(t *testing.T) {
	eventID := uuid.New()
	resourceID := uuid.New()
	scheduling := &fakeScheduling{event: &model.ScheduleEvent{
		ID:         eventID,
		ResourceID: resourceID,
		Kind:       model.EventKindHold,
		StartsAt:   testInstant(t, 10),
		EndsAt:     testInstant(t, 12),
		Status:     model.EventStatusActive,
	}}
	router := newTestRouter(&fakeCatalog{}, &fakeBoard{}, scheduling)

	body := `{
		"resource_id": "` + resourceID.String() + `",
		"event_type": "hold",
		"starts_at": "2024-05-20T10:00:00Z",
		"ends_at": "2024-05-20T12:00:00Z",
		"title": "Удержание под заявку"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/events", strings.NewReader(body))
	req.Header.Set("X-Tenant-ID", "tenant-7")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var got model.ScheduleEvent
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != eventID {
		t.Fatalf("event id = %s, want %s", got.ID, eventID)
	}

	// Тенант из заголовка прокинут в черновик.
	if scheduling.gotDraft.TenantID != "tenant-7" {
		t.Fatalf("draft tenant = %q, want tenant-7", scheduling.gotDraft.TenantID)
	}
	if scheduling.gotDraft.Kind != model.EventKindHold {
		t.Fatalf("draft kind = %s, want hold", scheduling.gotDraft.Kind)
	}
}

func TestCreateEvent_ConflictPayload(t *testing.T) {
	blocking := model.ScheduleEvent{
		ID:         uuid.New(),
		ResourceID: uuid.New(),
		Kind:       model.EventKindHold,
		StartsAt:   testInstant(t, 10),
		EndsAt:     testInstant(t, 14),
		Title:      "Удержание",
		Status:     model.EventStatusActive,
	}
	scheduling := &fakeScheduling{err: &service.ConflictError{
		ResourceID: blocking.ResourceID,
		Conflicts:  []model.ScheduleEvent{blocking},
	}}
	router := newTestRouter(&fakeCatalog{}, &fakeBoard{}, scheduling)

	body := `{
		"resource_id": "` + blocking.ResourceID.String() + `",
		"event_type": "maintenance",
		"starts_at": "2024-05-20T11:00:00Z",
		"ends_at": "2024-05-20T13:00:00Z"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/events", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ErrorCode != "RESOURCE_TIME_CONFLICT" {
		t.Fatalf("error_code = %q, want RESOURCE_TIME_CONFLICT", resp.ErrorCode)
	}
	if len(resp.ConflictWith) != 1 {
		t.Fatalf("conflict_with len = %d, want 1", len(resp.ConflictWith))
	}
	block := resp.ConflictWith[0]
	if block.ID != blocking.ID.String() {
		t.Fatalf("conflict block id = %s, want %s", block.ID, blocking.ID)
	}
	if block.EventType != "hold" || block.Title != "Удержание" {
		t.Fatalf("conflict block = %+v, want hold/Удержание", block)
	}
	if !block.StartsAt.Equal(blocking.StartsAt) || !block.EndsAt.Equal(blocking.EndsAt) {
		t.Fatalf("conflict block interval mismatch: %+v", block)
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	router := newTestRouter(&fakeCatalog{}, &fakeBoard{}, &fakeScheduling{})

	cases := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"bad resource id", `{"resource_id":"nope","event_type":"hold","starts_at":"2024-05-20T10:00:00Z","ends_at":"2024-05-20T11:00:00Z"}`},
		{"booked not creatable", `{"resource_id":"` + uuid.NewString() + `","event_type":"booked","starts_at":"2024-05-20T10:00:00Z","ends_at":"2024-05-20T11:00:00Z"}`},
		{"bad starts_at", `{"resource_id":"` + uuid.NewString() + `","event_type":"hold","starts_at":"вчера","ends_at":"2024-05-20T11:00:00Z"}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/events", strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestCreateEvent_InvalidInterval(t *testing.T) {
	scheduling := &fakeScheduling{err: service.ErrInvalidInterval}
	router := newTestRouter(&fakeCatalog{}, &fakeBoard{}, scheduling)

	body := `{"resource_id":"` + uuid.NewString() + `","event_type":"hold","starts_at":"2024-05-20T10:00:00Z","ends_at":"2024-05-20T10:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/events", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ErrorCode != "INVALID_INTERVAL" {
		t.Fatalf("error_code = %q, want INVALID_INTERVAL", resp.ErrorCode)
	}
}

func TestListEvents_WindowValidation(t *testing.T) {
	board := &fakeBoard{events: []model.ScheduleEvent{}}
	router := newTestRouter(&fakeCatalog{}, board, &fakeScheduling{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/schedule?from=2024-05-20T10:00:00Z&to=2024-05-20T09:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("inverted window: status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet,
		"/api/v1/schedule?from=2024-05-20T10:00:00Z&to=2024-05-20T12:00:00Z", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid window: status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp eventsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Events == nil {
		t.Fatalf("events must be an empty array, not null")
	}
}

func TestBoard_UnsupportedZoom(t *testing.T) {
	board := &fakeBoard{err: schedule.ErrUnsupportedZoomLevel}
	router := newTestRouter(&fakeCatalog{}, board, &fakeScheduling{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/schedule/board?variant=operations&zoom=year&from=2024-05-20T00:00:00Z&to=2024-05-21T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ErrorCode != "UNSUPPORTED_ZOOM_LEVEL" {
		t.Fatalf("error_code = %q, want UNSUPPORTED_ZOOM_LEVEL", resp.ErrorCode)
	}
}

func TestListResources_FilterParsing(t *testing.T) {
	catalog := &fakeCatalog{listing: &service.ResourceListing{
		Resources:  []model.Resource{},
		Grouped:    map[model.ResourceType][]model.Resource{},
		AssetTypes: []string{},
	}}
	router := newTestRouter(catalog, &fakeBoard{}, &fakeScheduling{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/schedule/resources?search=домик&type=accommodation,vehicle&include_inactive=true", nil)
	req.Header.Set("X-Tenant-ID", "tenant-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if catalog.gotFilter.Search != "домик" {
		t.Fatalf("filter search = %q", catalog.gotFilter.Search)
	}
	if len(catalog.gotFilter.Types) != 2 {
		t.Fatalf("filter types = %v, want 2 entries", catalog.gotFilter.Types)
	}
	if !catalog.gotFilter.IncludeInactive {
		t.Fatalf("filter include_inactive must be true")
	}
	if catalog.gotFilter.TenantID != "tenant-1" {
		t.Fatalf("filter tenant = %q, want tenant-1", catalog.gotFilter.TenantID)
	}

	// Некорректный булев флаг.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/schedule/resources?include_inactive=да", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad bool: status = %d, want 400", rec.Code)
	}
}

func TestDeleteEvent_BadID(t *testing.T) {
	router := newTestRouter(&fakeCatalog{}, &fakeBoard{}, &fakeScheduling{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/schedule/events/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeCatalog{}, &fakeBoard{}, &fakeScheduling{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
