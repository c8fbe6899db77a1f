package service

import (
	"sync"

	"github.com/google/uuid"
)

// resourceLocks — взаимное исключение по идентификатору ресурса.
// Секция проверки конфликтов и вставки должна выполняться атомарно
// в пределах одного ресурса; мьютексы живут до останова процесса,
// их число ограничено размером каталога.
type resourceLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newResourceLocks() *resourceLocks {
	return &resourceLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// lock захватывает мьютекс ресурса и возвращает функцию освобождения.
func (l *resourceLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
