package postgres

import (
	"context"
	"database/sql"
	"errors"

	"snap/internal/domain"
	"snap/internal/repository"
)

const driverColumns = `
	id, user_id, full_name, national_id, age, license_number, email,
	license_expiry_date, driver_photo, driver_id_card, driver_license_front,
	driver_license_back, id_card_front, id_card_back, car_photo,
	car_license_front, car_license_back, car_brand, car_model, car_color,
	car_plate_number, status, wallet, total_score, review_count`

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

// Create adds a new driver profile.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (
			id, user_id, full_name, national_id, age, license_number, email,
			license_expiry_date, driver_photo, driver_id_card, driver_license_front,
			driver_license_back, id_card_front, id_card_back, car_photo,
			car_license_front, car_license_back, car_brand, car_model, car_color,
			car_plate_number, status, wallet, total_score, review_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
	`

	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.UserID,
		driver.FullName,
		driver.NationalID,
		driver.Age,
		driver.LicenseNumber,
		driver.Email,
		driver.LicenseExpiryDate,
		driver.DriverPhoto,
		driver.DriverIDCard,
		driver.DriverLicenseFront,
		driver.DriverLicenseBack,
		driver.IDCardFront,
		driver.IDCardBack,
		driver.Car.CarPhoto,
		driver.Car.LicenseFront,
		driver.Car.LicenseBack,
		driver.Car.Brand,
		driver.Car.Model,
		driver.Car.Color,
		driver.Car.PlateNumber,
		driver.Status,
		driver.Wallet,
		driver.TotalScore,
		driver.ReviewCount,
	)

	return err
}

func scanDriver(row *sql.Row) (*domain.Driver, error) {
	var d domain.Driver
	err := row.Scan(
		&d.ID, &d.UserID, &d.FullName, &d.NationalID, &d.Age, &d.LicenseNumber,
		&d.Email, &d.LicenseExpiryDate, &d.DriverPhoto, &d.DriverIDCard,
		&d.DriverLicenseFront, &d.DriverLicenseBack, &d.IDCardFront, &d.IDCardBack,
		&d.Car.CarPhoto, &d.Car.LicenseFront, &d.Car.LicenseBack, &d.Car.Brand,
		&d.Car.Model, &d.Car.Color, &d.Car.PlateNumber, &d.Status, &d.Wallet,
		&d.TotalScore, &d.ReviewCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	return scanDriver(r.q.QueryRowContext(ctx, query, id))
}

// GetByUserID retrieves a driver by the owning user's ID.
func (r *DriverRepository) GetByUserID(ctx context.Context, userID string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE user_id = $1`
	return scanDriver(r.q.QueryRowContext(ctx, query, userID))
}

// GetAll retrieves all drivers.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY id`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		var d domain.Driver
		err := rows.Scan(
			&d.ID, &d.UserID, &d.FullName, &d.NationalID, &d.Age, &d.LicenseNumber,
			&d.Email, &d.LicenseExpiryDate, &d.DriverPhoto, &d.DriverIDCard,
			&d.DriverLicenseFront, &d.DriverLicenseBack, &d.IDCardFront, &d.IDCardBack,
			&d.Car.CarPhoto, &d.Car.LicenseFront, &d.Car.LicenseBack, &d.Car.Brand,
			&d.Car.Model, &d.Car.Color, &d.Car.PlateNumber, &d.Status, &d.Wallet,
			&d.TotalScore, &d.ReviewCount,
		)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, &d)
	}
	return drivers, rows.Err()
}

// UpdateStatus updates the onboarding status of a driver.
func (r *DriverRepository) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	query := `UPDATE drivers SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
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

// CreditWallet atomically adds amount to the driver's wallet and
// returns the new balance.
func (r *DriverRepository) CreditWallet(ctx context.Context, id string, amount float64) (float64, error) {
	query := `UPDATE drivers SET wallet = wallet + $1 WHERE id = $2 RETURNING wallet`

	var balance float64
	err := r.q.QueryRowContext(ctx, query, amount, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}

	return balance, nil
}

// DebitWallet atomically subtracts amount from the driver's wallet and
// returns the new balance. The conditional update closes the
// check-then-act race: the debit applies only if the balance covers it.
func (r *DriverRepository) DebitWallet(ctx context.Context, id string, amount float64) (float64, error) {
	query := `
		UPDATE drivers SET wallet = wallet - $1
		WHERE id = $2 AND wallet >= $1
		RETURNING wallet
	`

	var balance float64
	err := r.q.QueryRowContext(ctx, query, amount, id).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	// Distinguish a missing driver from an uncovered debit.
	var exists bool
	if err := r.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM drivers WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, err
	}
	if !exists {
		return 0, repository.ErrNotFound
	}
	return 0, repository.ErrInsufficientFunds
}

// AddReview atomically accumulates a review score into the driver's
// running (totalScore, count) pair.
func (r *DriverRepository) AddReview(ctx context.Context, id string, score float64) error {
	query := `
		UPDATE drivers
		SET total_score = total_score + $1, review_count = review_count + 1
		WHERE id = $2
	`

	result, err := r.q.ExecContext(ctx, query, score, id)
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
