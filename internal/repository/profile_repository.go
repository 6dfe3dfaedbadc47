// Package repository persists user profiles.
package repository

import (
	"context"
	"errors"

	"github.com/finseva/finseva/internal/domain"
)

// ErrNotFound is returned when a user has no stored profile
var ErrNotFound = errors.New("profile not found")

// ProfileStore reads and writes one profile per user
type ProfileStore interface {
	Get(ctx context.Context, userID string) (domain.Profile, error)
	Upsert(ctx context.Context, userID string, profile domain.Profile) error
}
