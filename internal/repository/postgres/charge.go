package postgres

import (
	"context"
	"database/sql"
	"errors"

	"snap/internal/domain"
	"snap/internal/repository"
)

// ChargeRepository is a PostgreSQL implementation of repository.ChargeRepository.
type ChargeRepository struct {
	q Querier
}

// NewChargeRepository creates a new PostgreSQL charge repository.
func NewChargeRepository(db *sql.DB) *ChargeRepository {
	return &ChargeRepository{q: db}
}

// NewChargeRepositoryWithTx creates a charge repository using a transaction.
func NewChargeRepositoryWithTx(tx *sql.Tx) *ChargeRepository {
	return &ChargeRepository{q: tx}
}

// Create persists a new pending charge.
func (r *ChargeRepository) Create(ctx context.Context, charge *domain.Charge) error {
	query := `
		INSERT INTO charges (id, driver_id, name, value, image)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.q.ExecContext(ctx, query,
		charge.ID,
		charge.DriverID,
		charge.Name,
		charge.Value,
		charge.Image,
	)
	return err
}

// GetByID retrieves a charge by ID.
func (r *ChargeRepository) GetByID(ctx context.Context, id string) (*domain.Charge, error) {
	query := `SELECT id, driver_id, name, value, image FROM charges WHERE id = $1`

	var charge domain.Charge
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&charge.ID,
		&charge.DriverID,
		&charge.Name,
		&charge.Value,
		&charge.Image,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &charge, nil
}

// GetByDriverID retrieves all pending charges for a driver.
func (r *ChargeRepository) GetByDriverID(ctx context.Context, driverID string) ([]*domain.Charge, error) {
	query := `SELECT id, driver_id, name, value, image FROM charges WHERE driver_id = $1 ORDER BY id`
	rows, err := r.q.QueryContext(ctx, query, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []*domain.Charge
	for rows.Next() {
		var charge domain.Charge
		if err := rows.Scan(&charge.ID, &charge.DriverID, &charge.Name, &charge.Value, &charge.Image); err != nil {
			return nil, err
		}
		charges = append(charges, &charge)
	}
	return charges, rows.Err()
}

// Delete removes a charge by ID.
func (r *ChargeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM charges WHERE id = $1`, id)
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
