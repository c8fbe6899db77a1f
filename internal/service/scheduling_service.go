package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Leganyst/operations-board/internal/model"
	"github.com/Leganyst/operations-board/internal/repository"
	"github.com/Leganyst/operations-board/internal/schedule"
)

// EventDraft — черновик блока: пользовательский ввод до привязки к сетке
// и проверки конфликтов.
type EventDraft struct {
	ResourceID uuid.UUID
	Kind       model.EventKind
	StartsAt   time.Time
	EndsAt     time.Time
	Title      string
	Notes      string
	TenantID   string
}

// SchedulingService — единственный компонент ядра с побочными эффектами:
// проводит черновик через привязку к сетке, валидацию и авторитетную
// проверку конфликтов, после чего фиксирует блок в хранилище.
type SchedulingService struct {
	db        *gorm.DB
	resources repository.ResourceRepository
	events    repository.EventRepository

	// Шаг сетки привязки; задаётся конфигурацией, не колл-сайтами.
	granularity time.Duration

	locks *resourceLocks
	log   *zap.Logger
}

func NewSchedulingService(
	db *gorm.DB,
	resources repository.ResourceRepository,
	events repository.EventRepository,
	granularity time.Duration,
	log *zap.Logger,
) *SchedulingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SchedulingService{
		db:          db,
		resources:   resources,
		events:      events,
		granularity: granularity,
		locks:       newResourceLocks(),
		log:         log,
	}
}

// CreateEvent проводит черновик по цепочке Draft → Validated → Committed
// либо Draft/Validated → Rejected:
//
//   - начало притягивается к сетке вниз, конец — вверх, так что блок
//     всегда накрывает выбранный пользователем интервал;
//   - ErrInvalidInterval — если после привязки start >= end;
//   - ErrResourceNotFound — если ресурса нет в каталоге или он
//     деактивирован к моменту фиксации;
//   - *ConflictError — если кандидат пересекает существующие блоки;
//     хранилище при этом не изменяется.
//
// Проверка конфликтов и вставка выполняются под мьютексом ресурса внутри
// одной транзакции: проверка повторяется по свежим данным непосредственно
// перед вставкой, успешная фиксация видна следующей проверке того же
// ресурса без устаревших чтений.
func (s *SchedulingService) CreateEvent(ctx context.Context, draft EventDraft) (*model.ScheduleEvent, error) {
	start := schedule.SnapDown(draft.StartsAt, s.granularity)
	end := schedule.SnapUp(draft.EndsAt, s.granularity)

	if start.IsZero() || end.IsZero() || !end.After(start) {
		return nil, ErrInvalidInterval
	}

	res, err := s.resources.GetByID(ctx, draft.ResourceID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	if !res.IsActive {
		return nil, ErrResourceNotFound
	}

	unlock := s.locks.lock(draft.ResourceID)
	defer unlock()

	event := &model.ScheduleEvent{
		ID:         uuid.New(),
		ResourceID: draft.ResourceID,
		Kind:       draft.Kind,
		StartsAt:   start,
		EndsAt:     end,
		Title:      draft.Title,
		Notes:      draft.Notes,
		Status:     model.EventStatusActive,
		TenantID:   draft.TenantID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []model.ScheduleEvent
		if err := tx.
			Where("resource_id = ?", draft.ResourceID).
			Where("starts_at < ? AND ends_at > ?", end, start).
			Order("starts_at ASC").
			Find(&existing).Error; err != nil {
			return err
		}

		conflicts := schedule.FindConflicts(existing, draft.ResourceID, start, end, uuid.Nil)
		if len(conflicts) > 0 {
			return &ConflictError{ResourceID: draft.ResourceID, Conflicts: conflicts}
		}

		return tx.Create(event).Error
	})
	if err != nil {
		var conflictErr *ConflictError
		if errors.As(err, &conflictErr) {
			s.log.Info("event rejected: time conflict",
				zap.String("resource_id", draft.ResourceID.String()),
				zap.Int("conflicts", len(conflictErr.Conflicts)),
			)
		}
		return nil, err
	}

	s.log.Info("event committed",
		zap.String("event_id", event.ID.String()),
		zap.String("resource_id", draft.ResourceID.String()),
		zap.Time("starts_at", start),
		zap.Time("ends_at", end),
	)

	return event, nil
}

// CancelEvent переводит блок в статус cancelled. Отменённые блоки не
// участвуют в проверке конфликтов.
func (s *SchedulingService) CancelEvent(ctx context.Context, id string) error {
	if _, err := s.events.GetByID(ctx, id); err != nil {
		return err
	}
	return s.events.UpdateStatus(ctx, id, model.EventStatusCancelled)
}

// DeleteEvent удаляет блок из хранилища.
func (s *SchedulingService) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.events.GetByID(ctx, id); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}
