package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Тип ресурса. Словарь открытый: новые типы добавляются каталогом,
// ядро планирования их не интерпретирует.
type ResourceType string

const (
	ResourceTypeAccommodation ResourceType = "accommodation"
	ResourceTypeVehicle       ResourceType = "vehicle"
	ResourceTypeEquipment     ResourceType = "equipment"
	ResourceTypeParkingSpot   ResourceType = "parking_spot"
	ResourceTypeCrew          ResourceType = "crew"
)

// resources — планируемые сущности операционной доски.
//
// Ресурс с ParentID != nil — "единица оснащения" (capability unit):
// дочерний ресурс, бронируемый независимо от родителя. Конфликты всегда
// проверяются по идентификатору ресурса; блок на родителе не блокирует
// его дочерние единицы и наоборот.
type Resource struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Name string       `gorm:"type:varchar(255);not null;index" json:"name"`
	Type ResourceType `gorm:"type:varchar(64);not null;index" json:"type"`

	IsActive bool `gorm:"not null;default:true;index" json:"is_active"`

	// Родитель для единиц оснащения; nil для верхнеуровневых ресурсов.
	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`

	// Произвольные атрибуты каталога (номер машины, вместимость и т.п.).
	Attributes datatypes.JSON `gorm:"type:jsonb" json:"attributes,omitempty"`

	// Тенант прокидывается из контекста запроса, ядром не интерпретируется.
	TenantID string `gorm:"type:varchar(64);index" json:"tenant_id,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"-"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"-"`

	// Навигационные поля.
	Parent *Resource  `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Units  []Resource `gorm:"foreignKey:ParentID" json:"units,omitempty"`
}
