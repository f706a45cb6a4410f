package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"snap/internal/otp"
)

// OtpLifetime is the fixed lifetime of an issued code. Expiry is checked
// lazily at verification time; no background sweep is required.
const OtpLifetime = 5 * time.Minute

// Delivery reports the outcome of a best-effort code delivery.
type Delivery string

const (
	DeliverySent    Delivery = "sent"
	DeliverySkipped Delivery = "skipped" // channel not configured
	DeliveryFailed  Delivery = "failed"
)

// ResetKey derives the OTP store key used for password-reset codes, so a
// reset challenge never collides with a plain phone-verification one.
func ResetKey(phone string) string {
	return "reset_" + phone
}

// OtpService orchestrates issuance and two-phase verification of
// one-time passcodes: verify marks the entry, and the dependent flow
// (registration, password reset) later consumes and removes it.
type OtpService struct {
	store    *otp.Store
	notifier Notifier
}

// NewOtpService creates a new OtpService.
func NewOtpService(store *otp.Store, notifier Notifier) *OtpService {
	return &OtpService{store: store, notifier: notifier}
}

// generateCode returns a 6-digit numeric code. This is a low-assurance
// channel, not a security boundary; math/rand is sufficient.
func generateCode() string {
	return fmt.Sprintf("%06d", rand.Intn(900000)+100000)
}

// IssueOtp generates a fresh code for key, replacing any prior entry,
// and asks the notifier to deliver it to phone. Issuance succeeds once
// the code is stored; delivery is best-effort and its outcome is
// reported separately.
func (s *OtpService) IssueOtp(ctx context.Context, key, phone string) (Delivery, error) {
	if key == "" || phone == "" {
		return "", ErrInvalidPhone
	}

	code := generateCode()
	s.store.Put(key, code, time.Now().Add(OtpLifetime))

	if s.notifier == nil {
		return DeliverySkipped, nil
	}

	err := s.notifier.Send(ctx, phone, fmt.Sprintf("Your OTP is: %s", code))
	switch {
	case err == nil:
		return DeliverySent, nil
	case errors.Is(err, ErrNotifierNotConfigured):
		return DeliverySkipped, nil
	default:
		log.Printf("otp delivery to %s failed: %v", phone, err)
		return DeliveryFailed, nil
	}
}

// VerifyOtp checks the submitted code for key and marks the entry
// verified on success. Re-verifying an already-verified, unexpired entry
// with the correct code succeeds again. An expired entry is not deleted;
// a later issuance simply overwrites it.
func (s *OtpService) VerifyOtp(key, submittedCode string) error {
	entry, ok := s.store.Get(key)
	if !ok {
		return ErrOtpNotRequested
	}
	if entry.Expired(time.Now()) {
		return ErrOtpExpired
	}
	if entry.Code != submittedCode {
		return ErrOtpMismatch
	}
	if !s.store.MarkVerified(key) {
		// Entry vanished between Get and MarkVerified.
		return ErrOtpNotRequested
	}
	return nil
}

// ConsumeIfVerified reports whether key holds a verified, unexpired
// entry. The dependent flow must call Remove after it completes, or the
// entry stays usable until expiry.
func (s *OtpService) ConsumeIfVerified(key string) bool {
	entry, ok := s.store.Get(key)
	return ok && entry.Verified && !entry.Expired(time.Now())
}

// Remove deletes the entry for key, closing the replay window after the
// dependent flow completes.
func (s *OtpService) Remove(key string) {
	s.store.Remove(key)
}
