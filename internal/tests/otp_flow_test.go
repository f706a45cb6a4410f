package tests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"snap/internal/config"
	"snap/internal/otp"
	"snap/internal/service"
)

// sentCode extracts the code from the last delivered message.
func sentCode(t *testing.T, notifier *MockNotifier) string {
	t.Helper()
	messages := notifier.Messages()
	if len(messages) == 0 {
		t.Fatal("expected at least one delivered message")
	}
	last := messages[len(messages)-1].Message
	return strings.TrimPrefix(last, "Your OTP is: ")
}

func TestOtpFlow_IssueVerifyConsumeRemove(t *testing.T) {
	store := otp.NewStore()
	notifier := NewMockNotifier()
	svc := service.NewOtpService(store, notifier)
	ctx := context.Background()

	delivery, err := svc.IssueOtp(ctx, "+15550001111", "+15550001111")
	if err != nil {
		t.Fatalf("IssueOtp failed: %v", err)
	}
	if delivery != service.DeliverySent {
		t.Errorf("expected delivery sent, got %s", delivery)
	}

	code := sentCode(t, notifier)
	if len(code) != 6 {
		t.Fatalf("expected a 6-digit code, got %q", code)
	}

	if err := svc.VerifyOtp("+15550001111", code); err != nil {
		t.Fatalf("VerifyOtp failed: %v", err)
	}

	if !svc.ConsumeIfVerified("+15550001111") {
		t.Fatal("expected verified entry to be consumable")
	}

	svc.Remove("+15550001111")

	if svc.ConsumeIfVerified("+15550001111") {
		t.Error("expected consume to fail after removal")
	}
}

func TestOtpFlow_VerifyWithoutIssue(t *testing.T) {
	svc := service.NewOtpService(otp.NewStore(), NewMockNotifier())

	err := svc.VerifyOtp("+15550001111", "123456")
	if !errors.Is(err, service.ErrOtpNotRequested) {
		t.Errorf("expected ErrOtpNotRequested, got %v", err)
	}
}

func TestOtpFlow_WrongCodeNeverVerifies(t *testing.T) {
	store := otp.NewStore()
	notifier := NewMockNotifier()
	svc := service.NewOtpService(store, notifier)

	if _, err := svc.IssueOtp(context.Background(), "+15550001111", "+15550001111"); err != nil {
		t.Fatalf("IssueOtp failed: %v", err)
	}

	code := sentCode(t, notifier)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	err := svc.VerifyOtp("+15550001111", wrong)
	if !errors.Is(err, service.ErrOtpMismatch) {
		t.Errorf("expected ErrOtpMismatch, got %v", err)
	}

	if svc.ConsumeIfVerified("+15550001111") {
		t.Error("a failed verification must not make the entry consumable")
	}

	// The correct code still works after a failed attempt.
	if err := svc.VerifyOtp("+15550001111", code); err != nil {
		t.Errorf("VerifyOtp with the correct code failed: %v", err)
	}
}

func TestOtpFlow_ExpiredCode(t *testing.T) {
	store := otp.NewStore()
	svc := service.NewOtpService(store, NewMockNotifier())

	store.Put("+15550001111", "123456", time.Now().Add(-time.Second))

	err := svc.VerifyOtp("+15550001111", "123456")
	if !errors.Is(err, service.ErrOtpExpired) {
		t.Errorf("expected ErrOtpExpired, got %v", err)
	}
}

func TestOtpFlow_ExpiredEntryNotConsumable(t *testing.T) {
	store := otp.NewStore()
	svc := service.NewOtpService(store, NewMockNotifier())

	// A verified entry that has since expired must not be consumable.
	store.Put("+15550001111", "123456", time.Now().Add(-time.Second))
	store.MarkVerified("+15550001111")

	if svc.ConsumeIfVerified("+15550001111") {
		t.Error("expected expired entry to be unconsumable")
	}
}

func TestOtpFlow_ReissueReplacesCode(t *testing.T) {
	store := otp.NewStore()
	notifier := NewMockNotifier()
	svc := service.NewOtpService(store, notifier)
	ctx := context.Background()

	if _, err := svc.IssueOtp(ctx, "+15550001111", "+15550001111"); err != nil {
		t.Fatalf("first IssueOtp failed: %v", err)
	}
	first := sentCode(t, notifier)

	if _, err := svc.IssueOtp(ctx, "+15550001111", "+15550001111"); err != nil {
		t.Fatalf("second IssueOtp failed: %v", err)
	}
	second := sentCode(t, notifier)

	if first != second {
		if err := svc.VerifyOtp("+15550001111", first); !errors.Is(err, service.ErrOtpMismatch) {
			t.Errorf("expected superseded code to mismatch, got %v", err)
		}
	}
	if err := svc.VerifyOtp("+15550001111", second); err != nil {
		t.Errorf("latest code must verify, got %v", err)
	}
}

func TestOtpFlow_DeliverySkippedWhenUnconfigured(t *testing.T) {
	notifier := NewMockNotifier()
	notifier.SendError = service.ErrNotifierNotConfigured
	svc := service.NewOtpService(otp.NewStore(), notifier)

	delivery, err := svc.IssueOtp(context.Background(), "+15550001111", "+15550001111")
	if err != nil {
		t.Fatalf("IssueOtp failed: %v", err)
	}
	if delivery != service.DeliverySkipped {
		t.Errorf("expected delivery skipped, got %s", delivery)
	}
}

func TestOtpFlow_DeliveryFailureDoesNotFailIssuance(t *testing.T) {
	notifier := NewMockNotifier()
	notifier.SendError = errors.New("network down")
	svc := service.NewOtpService(otp.NewStore(), notifier)

	delivery, err := svc.IssueOtp(context.Background(), "+15550001111", "+15550001111")
	if err != nil {
		t.Fatalf("issuance must not fail on delivery errors: %v", err)
	}
	if delivery != service.DeliveryFailed {
		t.Errorf("expected delivery failed, got %s", delivery)
	}
}

func TestOtpFlow_UnconfiguredTwilioSkipsDelivery(t *testing.T) {
	notifier := service.NewTwilioNotifier(config.TwilioConfig{})
	svc := service.NewOtpService(otp.NewStore(), notifier)

	delivery, err := svc.IssueOtp(context.Background(), "+15550001111", "+15550001111")
	if err != nil {
		t.Fatalf("IssueOtp failed: %v", err)
	}
	if delivery != service.DeliverySkipped {
		t.Errorf("expected delivery skipped without credentials, got %s", delivery)
	}
}

func TestOtpFlow_EmptyPhoneRejected(t *testing.T) {
	svc := service.NewOtpService(otp.NewStore(), NewMockNotifier())

	if _, err := svc.IssueOtp(context.Background(), "", ""); !errors.Is(err, service.ErrInvalidPhone) {
		t.Errorf("expected ErrInvalidPhone, got %v", err)
	}
}
