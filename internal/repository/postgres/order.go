package postgres

import (
	"context"
	"database/sql"
	"errors"

	"snap/internal/domain"
	"snap/internal/repository"
)

const orderColumns = `
	id, user_id, date, from_address, to_address, from_lat, from_lng, to_lat,
	to_lng, expected_price, type, distance, COALESCE(notes, ''), no_passengers,
	user_image, user_name, user_phone, status, COALESCE(driver_id, ''),
	COALESCE(review, ''), created_at`

// OrderRepository is a PostgreSQL implementation of repository.OrderRepository.
type OrderRepository struct {
	q Querier
}

// NewOrderRepository creates a new PostgreSQL order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{q: db}
}

// NewOrderRepositoryWithTx creates an order repository using a transaction.
func NewOrderRepositoryWithTx(tx *sql.Tx) *OrderRepository {
	return &OrderRepository{q: tx}
}

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (
			id, user_id, date, from_address, to_address, from_lat, from_lng,
			to_lat, to_lng, expected_price, type, distance, notes, no_passengers,
			user_image, user_name, user_phone, status, driver_id, review, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, NULLIF($19, ''), NULLIF($20, ''), $21)
	`

	_, err := r.q.ExecContext(ctx, query,
		order.ID,
		order.UserID,
		order.Date,
		order.From,
		order.To,
		order.FromLatLng.Lat,
		order.FromLatLng.Lng,
		order.ToLatLng.Lat,
		order.ToLatLng.Lng,
		order.ExpectedPrice,
		order.Type,
		order.Distance,
		order.Notes,
		order.NoPassengers,
		order.UserImage,
		order.UserName,
		order.UserPhone,
		order.Status,
		order.DriverID,
		order.Review,
		order.CreatedAt,
	)

	return err
}

func scanOrderRow(scan func(dest ...any) error) (*domain.Order, error) {
	var o domain.Order
	err := scan(
		&o.ID, &o.UserID, &o.Date, &o.From, &o.To, &o.FromLatLng.Lat,
		&o.FromLatLng.Lng, &o.ToLatLng.Lat, &o.ToLatLng.Lng, &o.ExpectedPrice,
		&o.Type, &o.Distance, &o.Notes, &o.NoPassengers, &o.UserImage,
		&o.UserName, &o.UserPhone, &o.Status, &o.DriverID, &o.Review, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrderRow(r.q.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// GetAll retrieves all orders.
func (r *OrderRepository) GetAll(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrderRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// AssignDriver sets the driver and status of an order.
func (r *OrderRepository) AssignDriver(ctx context.Context, id, driverID string, status domain.OrderStatus) error {
	query := `UPDATE orders SET driver_id = $1, status = $2 WHERE id = $3`

	result, err := r.q.ExecContext(ctx, query, driverID, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes an order by ID.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
