package repository

import (
	"context"

	"snap/internal/domain"
)

// OrderRepository defines the persistence operations for orders.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by ID.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// GetAll retrieves all orders.
	GetAll(ctx context.Context) ([]*domain.Order, error)

	// AssignDriver sets the driver and status of an order.
	AssignDriver(ctx context.Context, id, driverID string, status domain.OrderStatus) error

	// Delete removes an order by ID.
	Delete(ctx context.Context, id string) error
}
