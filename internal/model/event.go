package model

import (
	"time"

	"github.com/google/uuid"
)

// Вид блока на таймлайне.
type EventKind string

const (
	EventKindBooked      EventKind = "booked"
	EventKindHold        EventKind = "hold"
	EventKindMaintenance EventKind = "maintenance"
	EventKindBuffer      EventKind = "buffer"
)

// Статус блока. Ядро планирования создаёт блоки активными; смена статуса
// (отмена, подтверждение) — операции внешних систем.
type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
)

// schedule_events — блоки времени на ресурсах.
//
// Интервал полуоткрытый: [StartsAt, EndsAt). Инвариант StartsAt < EndsAt
// проверяется при создании; пересечение активных блоков на одном ресурсе
// запрещено и проверяется оркестратором перед вставкой.
type ScheduleEvent struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	ResourceID uuid.UUID `gorm:"type:uuid;not null;index" json:"resource_id"`

	Kind EventKind `gorm:"type:varchar(32);not null;index" json:"event_type"`

	StartsAt time.Time `gorm:"type:timestamp with time zone;not null;index" json:"starts_at"`
	EndsAt   time.Time `gorm:"type:timestamp with time zone;not null" json:"ends_at"`

	Title string `gorm:"type:varchar(255)" json:"title"`
	Notes string `gorm:"type:text" json:"notes,omitempty"`

	Status EventStatus `gorm:"type:varchar(32);not null;default:'active';index" json:"status"`

	TenantID string `gorm:"type:varchar(64);index" json:"tenant_id,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"-"`

	Resource *Resource `gorm:"foreignKey:ResourceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
