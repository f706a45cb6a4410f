package repository

import (
	"context"

	"snap/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
//
// CreditWallet, DebitWallet and AddReview are atomic read-modify-write
// primitives at single-record granularity: concurrent calls against the
// same driver must serialize inside the store so no update is lost and
// the wallet never goes negative.
type DriverRepository interface {
	// Create adds a new driver profile.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetByUserID retrieves a driver by the owning user's ID.
	GetByUserID(ctx context.Context, userID string) (*domain.Driver, error)

	// GetAll retrieves all drivers.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// UpdateStatus updates the onboarding status of a driver.
	UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error

	// CreditWallet atomically adds amount to the driver's wallet and
	// returns the new balance.
	CreditWallet(ctx context.Context, id string, amount float64) (float64, error)

	// DebitWallet atomically subtracts amount from the driver's wallet
	// and returns the new balance. Returns ErrInsufficientFunds without
	// mutating when the balance is smaller than amount.
	DebitWallet(ctx context.Context, id string, amount float64) (float64, error)

	// AddReview atomically accumulates a review score into the driver's
	// running (totalScore, count) pair.
	AddReview(ctx context.Context, id string, score float64) error
}
