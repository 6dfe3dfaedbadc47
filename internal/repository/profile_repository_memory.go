package repository

import (
	"context"
	"sync"

	"github.com/finseva/finseva/internal/domain"
)

// ProfileStoreMemory is an in-memory implementation of ProfileStore.
type ProfileStoreMemory struct {
	mu   sync.RWMutex
	data map[string]domain.Profile
}

// NewProfileStoreMemory creates a new in-memory profile store.
func NewProfileStoreMemory() *ProfileStoreMemory {
	return &ProfileStoreMemory{
		data: map[string]domain.Profile{},
	}
}

// Get returns the stored profile or ErrNotFound.
func (r *ProfileStoreMemory) Get(_ context.Context, userID string) (domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.data[userID]
	if !ok {
		return domain.Profile{}, ErrNotFound
	}
	return profile, nil
}

// Upsert replaces the user's profile.
func (r *ProfileStoreMemory) Upsert(_ context.Context, userID string, profile domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[userID] = profile
	return nil
}
