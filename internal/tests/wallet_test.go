package tests

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"snap/internal/domain"
	"snap/internal/repository"
	"snap/internal/service"
)

func newWalletFixture() (*service.WalletService, *MockDriverRepository, *MockChargeRepository, *MockLockStore) {
	driverRepo := NewMockDriverRepository()
	chargeRepo := NewMockChargeRepository()
	lockStore := NewMockLockStore()
	svc := service.NewWalletService(nil, driverRepo, chargeRepo, lockStore, nil)
	return svc, driverRepo, chargeRepo, lockStore
}

func TestDeductWallet_Success(t *testing.T) {
	svc, driverRepo, _, _ := newWalletFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Wallet: 100})

	balance, err := svc.DeductWallet(context.Background(), "driver-1", 40)
	if err != nil {
		t.Fatalf("DeductWallet failed: %v", err)
	}
	if balance != 60 {
		t.Errorf("expected balance 60, got %.2f", balance)
	}
}

func TestDeductWallet_InsufficientFunds(t *testing.T) {
	svc, driverRepo, _, _ := newWalletFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Wallet: 50})

	_, err := svc.DeductWallet(context.Background(), "driver-1", 80)
	if !errors.Is(err, repository.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// Balance must be untouched by the rejected debit.
	if got := driverRepo.GetDriver("driver-1").Wallet; got != 50 {
		t.Errorf("expected balance 50 after rejected debit, got %.2f", got)
	}
}

func TestDeductWallet_InvalidAmount(t *testing.T) {
	svc, driverRepo, _, _ := newWalletFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Wallet: 100})

	for _, amount := range []float64{0, -10} {
		if _, err := svc.DeductWallet(context.Background(), "driver-1", amount); !errors.Is(err, service.ErrInvalidAmount) {
			t.Errorf("amount %.2f: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestDeductWallet_DriverNotFound(t *testing.T) {
	svc, _, _, _ := newWalletFixture()

	_, err := svc.DeductWallet(context.Background(), "missing", 10)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeductWallet_LockContention(t *testing.T) {
	svc, driverRepo, _, lockStore := newWalletFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Wallet: 100})

	ctx := context.Background()
	if ok, _ := lockStore.AcquireWalletLock(ctx, "driver-1", time.Minute); !ok {
		t.Fatal("test setup: could not pre-acquire lock")
	}

	if _, err := svc.DeductWallet(ctx, "driver-1", 10); !errors.Is(err, service.ErrWalletBusy) {
		t.Errorf("expected ErrWalletBusy while lock held, got %v", err)
	}
}

func TestRequestCharge_Success(t *testing.T) {
	svc, driverRepo, chargeRepo, _ := newWalletFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Wallet: 10})

	charge, err := svc.RequestCharge(context.Background(), service.RequestChargeRequest{
		DriverID: "driver-1",
		Name:     "fuel receipt",
		Amount:   25,
	})
	if err != nil {
		t.Fatalf("RequestCharge failed: %v", err)
	}
	if charge.ID == "" {
		t.Error("expected charge to receive an ID")
	}
	if chargeRepo.ChargeCount() != 1 {
		t.Errorf("expected 1 stored charge, got %d", chargeRepo.ChargeCount())
	}

	// Raising a charge never touches the balance.
	if got := driverRepo.GetDriver("driver-1").Wallet; got != 10 {
		t.Errorf("expected balance 10 after request, got %.2f", got)
	}
}

func TestRequestCharge_DriverNotFound(t *testing.T) {
	svc, _, _, _ := newWalletFixture()

	_, err := svc.RequestCharge(context.Background(), service.RequestChargeRequest{
		DriverID: "missing",
		Amount:   25,
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRequestCharge_NegativeAmount(t *testing.T) {
	svc, driverRepo, _, _ := newWalletFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1"})

	_, err := svc.RequestCharge(context.Background(), service.RequestChargeRequest{
		DriverID: "driver-1",
		Amount:   -5,
	})
	if !errors.Is(err, service.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestResolveCharge_Reject(t *testing.T) {
	svc, driverRepo, chargeRepo, _ := newWalletFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Wallet: 100})
	chargeRepo.AddCharge(&domain.Charge{ID: "charge-1", DriverID: "driver-1", Value: 40})

	result, err := svc.ResolveCharge(context.Background(), service.ResolveChargeRequest{
		ChargeID: "charge-1",
		Action:   domain.ChargeActionReject,
	})
	if err != nil {
		t.Fatalf("ResolveCharge failed: %v", err)
	}
	if result.Action != domain.ChargeActionReject {
		t.Errorf("expected reject action in result, got %s", result.Action)
	}
	if result.Amount != 0 {
		t.Errorf("reject must credit nothing, got %.2f", result.Amount)
	}
	if chargeRepo.ChargeCount() != 0 {
		t.Error("expected charge to be deleted on reject")
	}
	if got := driverRepo.GetDriver("driver-1").Wallet; got != 100 {
		t.Errorf("expected balance 100 after reject, got %.2f", got)
	}
	if atomic.LoadInt32(&driverRepo.CreditCallCount) != 0 {
		t.Error("reject must never credit the wallet")
	}
}

func TestResolveCharge_InvalidAction(t *testing.T) {
	svc, _, chargeRepo, _ := newWalletFixture()
	chargeRepo.AddCharge(&domain.Charge{ID: "charge-1", DriverID: "driver-1", Value: 40})

	_, err := svc.ResolveCharge(context.Background(), service.ResolveChargeRequest{
		ChargeID: "charge-1",
		Action:   domain.ChargeAction("defer"),
	})
	if !errors.Is(err, service.ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction, got %v", err)
	}
	if chargeRepo.ChargeCount() != 1 {
		t.Error("an invalid action must leave the charge pending")
	}
}

func TestResolveCharge_ChargeNotFound(t *testing.T) {
	svc, _, _, _ := newWalletFixture()

	_, err := svc.ResolveCharge(context.Background(), service.ResolveChargeRequest{
		ChargeID: "missing",
		Action:   domain.ChargeActionReject,
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveCharge_LockContention(t *testing.T) {
	svc, driverRepo, chargeRepo, lockStore := newWalletFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Wallet: 100})
	chargeRepo.AddCharge(&domain.Charge{ID: "charge-1", DriverID: "driver-1", Value: 40})

	ctx := context.Background()
	if ok, _ := lockStore.AcquireWalletLock(ctx, "driver-1", time.Minute); !ok {
		t.Fatal("test setup: could not pre-acquire lock")
	}

	_, err := svc.ResolveCharge(ctx, service.ResolveChargeRequest{
		ChargeID: "charge-1",
		Action:   domain.ChargeActionReject,
	})
	if !errors.Is(err, service.ErrWalletBusy) {
		t.Errorf("expected ErrWalletBusy while lock held, got %v", err)
	}
	if chargeRepo.ChargeCount() != 1 {
		t.Error("a busy wallet must leave the charge pending")
	}
}

func TestWallet_ConcurrentCreditsLoseNoUpdates(t *testing.T) {
	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Wallet: 0})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := driverRepo.CreditWallet(ctx, "driver-1", 1); err != nil {
				t.Errorf("CreditWallet failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := driverRepo.GetDriver("driver-1").Wallet; got != 50 {
		t.Errorf("expected balance 50 after 50 credits of 1, got %.2f", got)
	}
}

func TestWallet_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Wallet: 100})
	ctx := context.Background()

	var successes int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := driverRepo.DebitWallet(ctx, "driver-1", 30)
			switch {
			case err == nil:
				atomic.AddInt32(&successes, 1)
			case errors.Is(err, repository.ErrInsufficientFunds):
				// Acceptable outcome under contention.
			default:
				t.Errorf("unexpected debit error: %v", err)
			}
		}()
	}
	wg.Wait()

	final := driverRepo.GetDriver("driver-1").Wallet
	if final < 0 {
		t.Fatalf("balance went negative: %.2f", final)
	}
	expected := 100 - 30*float64(atomic.LoadInt32(&successes))
	if final != expected {
		t.Errorf("expected balance %.2f for %d successful debits, got %.2f",
			expected, successes, final)
	}
}
