package storage

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
)

// MemoryStorage keeps values in process; state is lost on restart.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		values: make(map[string]string),
	}
}

func (that *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	value, ok := that.values[key]
	if !ok {
		return "", apperror.ErrNotFound
	}

	return value, nil
}

func (that *MemoryStorage) Set(_ context.Context, key, value string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.values[key] = value

	return nil
}

func (that *MemoryStorage) Close() error {
	return nil
}
