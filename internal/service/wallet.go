package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"snap/internal/domain"
	"snap/internal/redis"
	"snap/internal/repository"
	"snap/internal/repository/postgres"
)

const walletLockTTL = 5 * time.Second

// WalletService applies monetary mutations to driver balances with the
// non-negativity invariant preserved and the charge lifecycle enforced:
// a charge is created pending, and its resolution either credits the
// wallet and deletes it (approve) or just deletes it (reject).
type WalletService struct {
	db         *sql.DB
	driverRepo repository.DriverRepository
	chargeRepo repository.ChargeRepository
	lockStore  redis.LockStoreInterface
	cacheStore *redis.CacheStore
}

// NewWalletService creates a new WalletService.
func NewWalletService(
	db *sql.DB,
	driverRepo repository.DriverRepository,
	chargeRepo repository.ChargeRepository,
	lockStore redis.LockStoreInterface,
	cacheStore *redis.CacheStore,
) *WalletService {
	return &WalletService{
		db:         db,
		driverRepo: driverRepo,
		chargeRepo: chargeRepo,
		lockStore:  lockStore,
		cacheStore: cacheStore,
	}
}

// RequestChargeRequest contains the parameters for raising a charge.
type RequestChargeRequest struct {
	DriverID string
	Name     string
	Amount   float64
	Image    string
}

// RequestCharge creates a pending charge for a driver. The balance is
// not touched until an administrator approves the charge.
func (s *WalletService) RequestCharge(ctx context.Context, req RequestChargeRequest) (*domain.Charge, error) {
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}
	if req.Amount < 0 {
		return nil, ErrInvalidAmount
	}

	if _, err := s.driverRepo.GetByID(ctx, req.DriverID); err != nil {
		return nil, err
	}

	charge := &domain.Charge{
		ID:       uuid.New().String(),
		DriverID: req.DriverID,
		Name:     req.Name,
		Value:    req.Amount,
		Image:    req.Image,
	}

	if err := s.chargeRepo.Create(ctx, charge); err != nil {
		return nil, err
	}

	return charge, nil
}

// ResolveChargeRequest contains the parameters for resolving a charge.
// OverrideAmount, when set on approval, is authoritative over the
// charge's stored value: it is the administrator's correction of the
// receipt amount.
type ResolveChargeRequest struct {
	ChargeID       string
	Action         domain.ChargeAction
	OverrideAmount *float64
}

// ResolveChargeResult describes the applied resolution.
type ResolveChargeResult struct {
	ChargeID   string
	DriverID   string
	Action     domain.ChargeAction
	Amount     float64 // credited amount, 0 on reject
	NewBalance float64 // balance after resolution, unchanged on reject
}

// ResolveCharge applies an administrative resolution to a pending
// charge. The charge record is always removed on resolution; exactly
// one balance mutation happens on approve and none on reject. Credit
// and delete commit in one transaction so a failure leaves no partial
// mutation visible.
func (s *WalletService) ResolveCharge(ctx context.Context, req ResolveChargeRequest) (*ResolveChargeResult, error) {
	if req.ChargeID == "" {
		return nil, ErrInvalidChargeID
	}
	if !domain.ValidChargeAction(req.Action) {
		return nil, ErrInvalidAction
	}

	charge, err := s.chargeRepo.GetByID(ctx, req.ChargeID)
	if err != nil {
		return nil, err
	}

	// Serialize against other resolutions and deductions on this driver.
	locked, err := s.lockStore.AcquireWalletLock(ctx, charge.DriverID, walletLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrWalletBusy
	}
	defer s.lockStore.ReleaseWalletLock(ctx, charge.DriverID)

	if req.Action == domain.ChargeActionReject {
		if err := s.chargeRepo.Delete(ctx, req.ChargeID); err != nil {
			return nil, err
		}
		s.invalidateDriver(ctx, charge.DriverID)
		return &ResolveChargeResult{
			ChargeID: charge.ID,
			DriverID: charge.DriverID,
			Action:   req.Action,
		}, nil
	}

	amount := charge.Value
	if req.OverrideAmount != nil {
		amount = *req.OverrideAmount
	}
	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txDriverRepo := postgres.NewDriverRepositoryWithTx(tx)
	txChargeRepo := postgres.NewChargeRepositoryWithTx(tx)

	var newBalance float64
	if newBalance, err = txDriverRepo.CreditWallet(ctx, charge.DriverID, amount); err != nil {
		return nil, err
	}

	if err = txChargeRepo.Delete(ctx, req.ChargeID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidateDriver(ctx, charge.DriverID)

	return &ResolveChargeResult{
		ChargeID:   charge.ID,
		DriverID:   charge.DriverID,
		Action:     req.Action,
		Amount:     amount,
		NewBalance: newBalance,
	}, nil
}

// DeductWallet debits amount from the driver's balance and returns the
// new balance. The debit is a hard precondition failure when the
// balance does not cover it, never a clamp to zero.
func (s *WalletService) DeductWallet(ctx context.Context, driverID string, amount float64) (float64, error) {
	if driverID == "" {
		return 0, ErrInvalidDriverID
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	locked, err := s.lockStore.AcquireWalletLock(ctx, driverID, walletLockTTL)
	if err != nil {
		return 0, err
	}
	if !locked {
		return 0, ErrWalletBusy
	}
	defer s.lockStore.ReleaseWalletLock(ctx, driverID)

	newBalance, err := s.driverRepo.DebitWallet(ctx, driverID, amount)
	if err != nil {
		return 0, err
	}

	s.invalidateDriver(ctx, driverID)

	return newBalance, nil
}

// GetBalance returns the driver's current wallet summary, served from
// cache when fresh.
func (s *WalletService) GetBalance(ctx context.Context, driverID string) (*redis.CachedDriver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetDriver(ctx, driverID)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	cached := &redis.CachedDriver{
		ID:            driver.ID,
		UserID:        driver.UserID,
		FullName:      driver.FullName,
		Status:        string(driver.Status),
		Wallet:        driver.Wallet,
		AverageReview: driver.AverageReview(),
	}
	if s.cacheStore != nil {
		_ = s.cacheStore.SetDriver(ctx, cached)
	}
	return cached, nil
}

// ListCharges returns the pending charges for a driver.
func (s *WalletService) ListCharges(ctx context.Context, driverID string) ([]*domain.Charge, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.chargeRepo.GetByDriverID(ctx, driverID)
}

func (s *WalletService) invalidateDriver(ctx context.Context, driverID string) {
	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateDriver(ctx, driverID)
	}
}
