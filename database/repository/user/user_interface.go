package userRepo

import (
	"context"

	"clipprmobile/models"
)

// UserRepository reads provider profiles for scheduling.
type UserRepository interface {
	// GetSchedulingProfile returns the fields scheduling needs, or nil when no user has the ID.
	GetSchedulingProfile(ctx context.Context, id string) (*models.User, error)
}
