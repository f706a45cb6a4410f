package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"snap/internal/config"
	"snap/internal/domain"
	"snap/internal/otp"
	"snap/internal/repository"
	"snap/internal/service"
)

func newIdentityFixture() (*service.IdentityService, *service.OtpService, *MockUserRepository, *MockNotifier) {
	userRepo := NewMockUserRepository()
	notifier := NewMockNotifier()
	otpService := service.NewOtpService(otp.NewStore(), notifier)
	jwtCfg := config.JWTConfig{Secret: "test-secret", Issuer: "snap", TTL: time.Hour}
	identity := service.NewIdentityService(userRepo, otpService, jwtCfg)
	return identity, otpService, userRepo, notifier
}

// verifyPhone issues and verifies an OTP for phone so registration can
// proceed.
func verifyPhone(t *testing.T, svc *service.OtpService, notifier *MockNotifier, phone string) {
	t.Helper()
	if _, err := svc.IssueOtp(context.Background(), phone, phone); err != nil {
		t.Fatalf("IssueOtp failed: %v", err)
	}
	if err := svc.VerifyOtp(phone, sentCode(t, notifier)); err != nil {
		t.Fatalf("VerifyOtp failed: %v", err)
	}
}

func TestRegister_RequiresVerifiedPhone(t *testing.T) {
	identity, _, _, _ := newIdentityFixture()

	_, err := identity.Register(context.Background(), service.RegisterRequest{
		FullName: "Sara Ahmadi",
		Email:    "sara@example.com",
		Phone:    "+15550001111",
		Password: "hunter22",
	})
	if !errors.Is(err, service.ErrPhoneNotVerified) {
		t.Errorf("expected ErrPhoneNotVerified, got %v", err)
	}
}

func TestRegister_FullFlow(t *testing.T) {
	identity, otpService, userRepo, notifier := newIdentityFixture()
	ctx := context.Background()

	verifyPhone(t, otpService, notifier, "+15550001111")

	result, err := identity.Register(ctx, service.RegisterRequest{
		FullName: "Sara Ahmadi",
		Email:    "sara@example.com",
		Phone:    "+15550001111",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token on registration")
	}
	if result.User.Username != "sara" {
		t.Errorf("expected username derived from email, got %q", result.User.Username)
	}

	stored := userRepo.GetUser(result.User.ID)
	if stored == nil {
		t.Fatal("expected user to be persisted")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")) != nil {
		t.Error("stored hash does not match the password")
	}

	// The OTP entry is consumed; a second registration with the same
	// phone must re-verify.
	_, err = identity.Register(ctx, service.RegisterRequest{
		FullName: "Other Name",
		Email:    "other@example.com",
		Phone:    "+15550001111",
		Password: "hunter22",
	})
	if !errors.Is(err, service.ErrPhoneNotVerified) {
		t.Errorf("expected ErrPhoneNotVerified on replay, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	identity, otpService, userRepo, notifier := newIdentityFixture()
	userRepo.AddUser(&domain.User{ID: "user-1", FullName: "Existing", Email: "sara@example.com"})

	verifyPhone(t, otpService, notifier, "+15550001111")

	_, err := identity.Register(context.Background(), service.RegisterRequest{
		FullName: "Sara Ahmadi",
		Email:    "sara@example.com",
		Phone:    "+15550001111",
		Password: "hunter22",
	})
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_DuplicateFullName(t *testing.T) {
	identity, otpService, userRepo, notifier := newIdentityFixture()
	userRepo.AddUser(&domain.User{ID: "user-1", FullName: "Sara Ahmadi", Email: "old@example.com"})

	verifyPhone(t, otpService, notifier, "+15550001111")

	_, err := identity.Register(context.Background(), service.RegisterRequest{
		FullName: "sara ahmadi", // name matching is case-insensitive
		Email:    "new@example.com",
		Phone:    "+15550001111",
		Password: "hunter22",
	})
	if !errors.Is(err, service.ErrNameTaken) {
		t.Errorf("expected ErrNameTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	identity, _, userRepo, _ := newIdentityFixture()
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	userRepo.AddUser(&domain.User{
		ID:           "user-1",
		FullName:     "Sara Ahmadi",
		Email:        "sara@example.com",
		Phone:        "+15550001111",
		PasswordHash: string(hash),
	})

	result, err := identity.Login(ctx, "sara@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token on login")
	}

	if _, err := identity.Login(ctx, "+15550001111", "hunter22"); err != nil {
		t.Errorf("login by phone failed: %v", err)
	}

	if _, err := identity.Login(ctx, "sara@example.com", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	if _, err := identity.Login(ctx, "nobody@example.com", "hunter22"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown account, got %v", err)
	}
}

func TestPasswordReset_FullFlow(t *testing.T) {
	identity, _, userRepo, notifier := newIdentityFixture()
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("oldpass"), bcrypt.MinCost)
	userRepo.AddUser(&domain.User{
		ID:           "user-1",
		Email:        "sara@example.com",
		Phone:        "+15550001111",
		PasswordHash: string(hash),
	})

	delivery, err := identity.RequestPasswordReset(ctx, "+15550001111")
	if err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}
	if delivery != service.DeliverySent {
		t.Errorf("expected delivery sent, got %s", delivery)
	}

	if err := identity.VerifyPasswordResetOtp("+15550001111", sentCode(t, notifier)); err != nil {
		t.Fatalf("VerifyPasswordResetOtp failed: %v", err)
	}

	if err := identity.ResetPassword(ctx, "+15550001111", "newpass"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	stored := userRepo.GetUser("user-1")
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass")) != nil {
		t.Error("password was not updated")
	}

	// The reset entry is consumed; a second reset must re-verify.
	if err := identity.ResetPassword(ctx, "+15550001111", "another"); !errors.Is(err, service.ErrPhoneNotVerified) {
		t.Errorf("expected ErrPhoneNotVerified on replay, got %v", err)
	}
}

func TestPasswordReset_UnknownPhone(t *testing.T) {
	identity, _, _, _ := newIdentityFixture()

	_, err := identity.RequestPasswordReset(context.Background(), "+15559999999")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPasswordReset_KeyIsolatedFromRegistration(t *testing.T) {
	identity, otpService, userRepo, notifier := newIdentityFixture()
	ctx := context.Background()

	userRepo.AddUser(&domain.User{ID: "user-1", Phone: "+15550001111", Email: "sara@example.com"})

	// A verified reset code must not satisfy registration's phone check.
	if _, err := identity.RequestPasswordReset(ctx, "+15550001111"); err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}
	if err := identity.VerifyPasswordResetOtp("+15550001111", sentCode(t, notifier)); err != nil {
		t.Fatalf("VerifyPasswordResetOtp failed: %v", err)
	}

	if otpService.ConsumeIfVerified("+15550001111") {
		t.Error("a reset code must not be consumable under the plain phone key")
	}
}

func TestDeleteUser(t *testing.T) {
	identity, _, userRepo, _ := newIdentityFixture()
	ctx := context.Background()

	userRepo.AddUser(&domain.User{ID: "user-1", Email: "sara@example.com"})

	if err := identity.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if userRepo.GetUser("user-1") != nil {
		t.Error("expected user to be removed")
	}

	if err := identity.Delete(ctx, ""); !errors.Is(err, service.ErrInvalidUserID) {
		t.Errorf("expected ErrInvalidUserID, got %v", err)
	}
	if err := identity.Delete(ctx, "user-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for deleted user, got %v", err)
	}
}
