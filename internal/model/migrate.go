package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию сущностей ядра планирования.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Resource{},
		&ScheduleEvent{},
	)
}
