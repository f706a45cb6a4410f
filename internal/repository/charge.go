package repository

import (
	"context"

	"snap/internal/domain"
)

// ChargeRepository defines the persistence operations for pending
// wallet charges.
type ChargeRepository interface {
	// Create persists a new pending charge.
	Create(ctx context.Context, charge *domain.Charge) error

	// GetByID retrieves a charge by ID.
	GetByID(ctx context.Context, id string) (*domain.Charge, error)

	// GetByDriverID retrieves all pending charges for a driver.
	GetByDriverID(ctx context.Context, driverID string) ([]*domain.Charge, error)

	// Delete removes a charge by ID.
	Delete(ctx context.Context, id string) error
}
