package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Leganyst/operations-board/internal/model"
)

// ResourceFilter — опции выборки каталога ресурсов.
type ResourceFilter struct {
	// Подстрока имени, без учёта регистра.
	Search string
	// Типы ресурсов для включения; пусто — все типы.
	Types []model.ResourceType
	// Включать ли деактивированные ресурсы. По умолчанию — нет.
	IncludeInactive bool
	// Тенант из контекста запроса; пусто — без скоупинга.
	TenantID string
}

type ResourceRepository interface {
	// Верхнеуровневые ресурсы по фильтру, с предзагруженными единицами
	// оснащения в порядке вставки.
	List(ctx context.Context, filter ResourceFilter) ([]model.Resource, error)
	// Найти ресурс по ID.
	GetByID(ctx context.Context, id string) (*model.Resource, error)
	// Создать ресурс.
	Create(ctx context.Context, res *model.Resource) error
	// Сменить флаг активности.
	SetActive(ctx context.Context, id string, active bool) error
}

// Реализация на GORM.
type GormResourceRepository struct {
	db *gorm.DB
}

func NewGormResourceRepository(db *gorm.DB) *GormResourceRepository {
	return &GormResourceRepository{db: db}
}

func (r *GormResourceRepository) List(ctx context.Context, filter ResourceFilter) ([]model.Resource, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Resource{}).
		Where("parent_id IS NULL")

	if !filter.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if len(filter.Types) > 0 {
		q = q.Where("type IN ?", filter.Types)
	}
	if filter.TenantID != "" {
		q = q.Where("tenant_id = ?", filter.TenantID)
	}

	includeInactive := filter.IncludeInactive
	q = q.Preload("Units", func(db *gorm.DB) *gorm.DB {
		if !includeInactive {
			db = db.Where("is_active = ?", true)
		}
		return db.Order("created_at ASC")
	})

	var resources []model.Resource
	if err := q.Order("name ASC").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *GormResourceRepository) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	var res model.Resource
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *GormResourceRepository) Create(ctx context.Context, res *model.Resource) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *GormResourceRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Resource{}).
		Where("id = ?", id).
		Update("is_active", active).
		Error
}
