package service

import (
	"context"

	"github.com/google/uuid"

	"snap/internal/domain"
	"snap/internal/redis"
	"snap/internal/repository"
)

// DriverService handles driver onboarding, status transitions and
// review aggregation.
type DriverService struct {
	driverRepo repository.DriverRepository
	cacheStore *redis.CacheStore
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo repository.DriverRepository, cacheStore *redis.CacheStore) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
		cacheStore: cacheStore,
	}
}

// Register creates a new driver profile in pending status with an empty
// wallet. Approval is a separate administrative action.
func (s *DriverService) Register(ctx context.Context, driver *domain.Driver) (*domain.Driver, error) {
	if driver.UserID == "" {
		return nil, ErrInvalidUserID
	}

	driver.ID = uuid.New().String()
	driver.Status = domain.DriverStatusPending
	driver.Wallet = 0
	driver.TotalScore = 0
	driver.ReviewCount = 0

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}

	return driver, nil
}

// GetByUserID retrieves the driver profile owned by a user.
func (s *DriverService) GetByUserID(ctx context.Context, userID string) (*domain.Driver, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.driverRepo.GetByUserID(ctx, userID)
}

// List retrieves all driver profiles, for administrative review.
func (s *DriverService) List(ctx context.Context) ([]*domain.Driver, error) {
	return s.driverRepo.GetAll(ctx)
}

// GetByID retrieves a driver profile.
func (s *DriverService) GetByID(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.driverRepo.GetByID(ctx, driverID)
}

// ChangeStatus applies an administrator-driven status transition.
// Values outside {pending, approved, reject} are rejected.
func (s *DriverService) ChangeStatus(ctx context.Context, driverID string, status domain.DriverStatus) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}
	if !domain.ValidDriverStatus(status) {
		return ErrInvalidStatus
	}

	if err := s.driverRepo.UpdateStatus(ctx, driverID, status); err != nil {
		return err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateDriver(ctx, driverID)
	}

	return nil
}

// AddReview accumulates a review score for a driver. Scores must lie in
// [0, 5]; the average is computed on read.
func (s *DriverService) AddReview(ctx context.Context, driverID string, score float64) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}
	if score < 0 || score > 5 {
		return ErrScoreOutOfRange
	}

	if err := s.driverRepo.AddReview(ctx, driverID, score); err != nil {
		return err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateDriver(ctx, driverID)
	}

	return nil
}
