package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/operations-board/internal/model"
	"github.com/Leganyst/operations-board/internal/repository"
	"github.com/Leganyst/operations-board/internal/schedule"
)

// ResourceListing — ответ каталога ресурсов для клиентов доски.
type ResourceListing struct {
	Resources  []model.Resource                        `json:"resources"`
	Grouped    map[model.ResourceType][]model.Resource `json:"grouped"`
	AssetTypes []string                                `json:"asset_types"`
	Page       int                                     `json:"page"`
	PageSize   int                                     `json:"page_size"`
	Total      int                                     `json:"total"`
}

// PlacedSegment — видимая часть блока в конкретном слоте.
type PlacedSegment struct {
	SlotIndex int                   `json:"slot_index"`
	Position  schedule.SlotPosition `json:"position"`
}

// PlacedEvent — блок с геометрией отрисовки по слотам окна.
type PlacedEvent struct {
	Event    model.ScheduleEvent `json:"event"`
	Segments []PlacedSegment     `json:"segments"`
}

// BoardRow — строка доски: ресурс с отступом и размещёнными блоками.
type BoardRow struct {
	Resource model.Resource `json:"resource"`
	Indent   int            `json:"indent"`
	Events   []PlacedEvent  `json:"events"`
}

// BoardView — собранное представление доски для диапазона и масштаба.
type BoardView struct {
	Variant string               `json:"variant"`
	Zoom    schedule.ZoomSpec    `json:"zoom"`
	From    time.Time            `json:"from"`
	To      time.Time            `json:"to"`
	Slots   []schedule.TimeRange `json:"slots"`
	Rows    []BoardRow           `json:"rows"`
}

// ViewParams — параметры запроса представления доски.
type ViewParams struct {
	Variant string
	Zoom    schedule.ZoomLevel
	From    time.Time
	To      time.Time
	Filter  repository.ResourceFilter
}

// BoardService собирает представления доски из чистых компонентов ядра.
// Операции чтения без побочных эффектов, выполняются параллельно свободно.
type BoardService struct {
	resources repository.ResourceRepository
	events    repository.EventRepository

	// Разрешённые уровни масштаба по вариантам доски; из конфигурации.
	variants map[string][]schedule.ZoomLevel
}

func NewBoardService(
	resources repository.ResourceRepository,
	events repository.EventRepository,
	variants map[string][]schedule.ZoomLevel,
) *BoardService {
	return &BoardService{
		resources: resources,
		events:    events,
		variants:  variants,
	}
}

// ListResources возвращает отфильтрованный каталог: страницу верхнеуровневых
// ресурсов с единицами оснащения, группировку по типу и список типов.
func (s *BoardService) ListResources(
	ctx context.Context,
	filter repository.ResourceFilter,
	page, pageSize int,
) (*ResourceListing, error) {
	resources, err := s.resources.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	pg := schedule.Paginate(resources, page, pageSize)

	return &ResourceListing{
		Resources:  pg.Items,
		Grouped:    schedule.GroupByType(pg.Items),
		AssetTypes: schedule.TypeTags(resources),
		Page:       pg.Page,
		PageSize:   pg.PageSize,
		Total:      pg.Total,
	}, nil
}

// ListEvents возвращает блоки, пересекающие окно [from, to).
func (s *BoardService) ListEvents(ctx context.Context, tenantID string, from, to time.Time) ([]model.ScheduleEvent, error) {
	if from.IsZero() || to.IsZero() || !to.After(from) {
		return nil, schedule.ErrInvalidTimeRange
	}
	events, err := s.events.ListRange(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.ScheduleEvent{}
	}
	return events, nil
}

// View собирает доску: масштаб → слоты → уплощённый каталог → блоки по
// ресурсам → геометрия каждого блока по слотам окна.
func (s *BoardService) View(ctx context.Context, params ViewParams) (*BoardView, error) {
	allowed, ok := s.variants[params.Variant]
	if !ok {
		return nil, ErrUnknownBoardVariant
	}

	spec, err := schedule.ResolveZoom(params.Zoom, allowed)
	if err != nil {
		return nil, err
	}

	slots, err := schedule.SlotList(params.From, params.To, spec.SlotDuration)
	if err != nil {
		return nil, err
	}

	resources, err := s.resources.List(ctx, params.Filter)
	if err != nil {
		return nil, err
	}
	flat := schedule.FlattenWithUnits(resources)

	ids := make([]uuid.UUID, 0, len(flat))
	for _, row := range flat {
		ids = append(ids, row.Resource.ID)
	}

	byResource, err := s.events.QueryRange(ctx, params.Filter.TenantID, ids, params.From, params.To)
	if err != nil {
		return nil, err
	}

	rows := make([]BoardRow, 0, len(flat))
	for _, row := range flat {
		boardRow := BoardRow{
			Resource: row.Resource,
			Indent:   row.Indent,
			Events:   []PlacedEvent{},
		}
		for _, ev := range byResource[row.Resource.ID] {
			placed := PlacedEvent{Event: ev}
			for i, slot := range slots {
				if pos, ok := schedule.PositionWithinSlot(ev.StartsAt, ev.EndsAt, slot); ok {
					placed.Segments = append(placed.Segments, PlacedSegment{SlotIndex: i, Position: pos})
				}
			}
			boardRow.Events = append(boardRow.Events, placed)
		}
		rows = append(rows, boardRow)
	}

	return &BoardView{
		Variant: params.Variant,
		Zoom:    spec,
		From:    params.From,
		To:      params.To,
		Slots:   slots,
		Rows:    rows,
	}, nil
}
