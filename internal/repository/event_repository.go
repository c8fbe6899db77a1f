package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/operations-board/internal/model"
)

type EventRepository interface {
	// Блоки ресурсов, пересекающие окно [from, to), сгруппированные по
	// ресурсу и упорядоченные по началу. Блок, начавшийся до from и
	// закончившийся после, тоже попадает в выборку.
	QueryRange(ctx context.Context, tenantID string, resourceIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID][]model.ScheduleEvent, error)
	// Все блоки, пересекающие окно [from, to), плоским списком.
	ListRange(ctx context.Context, tenantID string, from, to time.Time) ([]model.ScheduleEvent, error)
	// Найти блок по ID.
	GetByID(ctx context.Context, id string) (*model.ScheduleEvent, error)
	// Создать блок. Проверка конфликтов — обязанность вызывающего.
	Create(ctx context.Context, event *model.ScheduleEvent) error
	// Удалить блок.
	Delete(ctx context.Context, id string) error
	// Сменить статус блока (отмена, подтверждение внешней системой).
	UpdateStatus(ctx context.Context, id string, status model.EventStatus) error
}

// Реализация на GORM.
type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Условие пересечения полуоткрытых интервалов на стороне SQL.
func intersecting(q *gorm.DB, from, to time.Time) *gorm.DB {
	return q.Where("starts_at < ? AND ends_at > ?", to, from)
}

func (r *GormEventRepository) QueryRange(
	ctx context.Context,
	tenantID string,
	resourceIDs []uuid.UUID,
	from, to time.Time,
) (map[uuid.UUID][]model.ScheduleEvent, error) {
	if len(resourceIDs) == 0 {
		return map[uuid.UUID][]model.ScheduleEvent{}, nil
	}

	q := r.db.WithContext(ctx).
		Model(&model.ScheduleEvent{}).
		Where("resource_id IN ?", resourceIDs)
	q = intersecting(q, from, to)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}

	var events []model.ScheduleEvent
	if err := q.Order("starts_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}

	byResource := make(map[uuid.UUID][]model.ScheduleEvent, len(resourceIDs))
	for _, ev := range events {
		byResource[ev.ResourceID] = append(byResource[ev.ResourceID], ev)
	}
	return byResource, nil
}

func (r *GormEventRepository) ListRange(
	ctx context.Context,
	tenantID string,
	from, to time.Time,
) ([]model.ScheduleEvent, error) {
	q := r.db.WithContext(ctx).Model(&model.ScheduleEvent{})
	q = intersecting(q, from, to)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}

	var events []model.ScheduleEvent
	if err := q.Order("starts_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *GormEventRepository) GetByID(ctx context.Context, id string) (*model.ScheduleEvent, error) {
	var ev model.ScheduleEvent
	if err := r.db.WithContext(ctx).First(&ev, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *GormEventRepository) Create(ctx context.Context, event *model.ScheduleEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *GormEventRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.ScheduleEvent{}, "id = ?", id).Error
}

func (r *GormEventRepository) UpdateStatus(ctx context.Context, id string, status model.EventStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.ScheduleEvent{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}
