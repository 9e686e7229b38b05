// Package store provides an in-memory template.Database, recording
// the most recent response for each (profile, recipe) pair so the
// Trigger Resolver can reuse history instead of sending a new
// request.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/slumberhq/slumber/pkg/template"
)

type entry struct {
	id     uuid.UUID
	record template.RequestRecord
}

// Memory is a goroutine-safe, process-local request history.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemory returns an empty history.
func NewMemory() *Memory {
	return &Memory{entries: map[string]entry{}}
}

func key(profileID *string, recipeID string) string {
	if profileID == nil {
		return "\x00:" + recipeID
	}
	return *profileID + ":" + recipeID
}

// Record stores resp as the most recent response for (profileID, recipeID).
func (m *Memory) Record(profileID *string, recipeID string, resp template.Response) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.entries[key(profileID, recipeID)] = entry{
		id: id,
		record: template.RequestRecord{
			Response: resp,
			EndTime:  time.Now(),
		},
	}
	return id
}

// GetLastRequest implements template.Database.
func (m *Memory) GetLastRequest(_ context.Context, profileID *string, recipeID string) (*template.RequestRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key(profileID, recipeID)]
	if !ok {
		return nil, nil
	}
	record := e.record
	return &record, nil
}
