package service

import "errors"

var (
	// ErrOtpNotRequested is returned when verifying a key that has no pending code.
	ErrOtpNotRequested = errors.New("otp not requested")

	// ErrOtpExpired is returned when the code's lifetime has elapsed.
	ErrOtpExpired = errors.New("otp expired")

	// ErrOtpMismatch is returned when the submitted code does not match.
	ErrOtpMismatch = errors.New("invalid otp")

	// ErrPhoneNotVerified is returned when a dependent flow runs without a
	// verified OTP for the phone number.
	ErrPhoneNotVerified = errors.New("phone number not verified by otp")

	// ErrInvalidAmount is returned when a monetary amount is zero or negative.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidAction is returned when a charge resolution action is not
	// approve or reject.
	ErrInvalidAction = errors.New("invalid charge action")

	// ErrWalletBusy is returned when another mutation holds the driver's
	// wallet lock.
	ErrWalletBusy = errors.New("wallet busy, retry")

	// ErrInvalidStatus is returned when a driver status is outside the
	// enumerated set.
	ErrInvalidStatus = errors.New("invalid driver status")

	// ErrScoreOutOfRange is returned when a review score is outside 0..5.
	ErrScoreOutOfRange = errors.New("review score out of range")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidChargeID is returned when charge ID is empty.
	ErrInvalidChargeID = errors.New("invalid charge id")

	// ErrInvalidUserID is returned when user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidPhone is returned when a phone number is empty.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidOrderType is returned when an order type is neither ride
	// nor delivery.
	ErrInvalidOrderType = errors.New("invalid order type")

	// ErrEmailTaken is returned when an account already exists for the email.
	ErrEmailTaken = errors.New("an account is already registered with this email")

	// ErrNameTaken is returned when the display name is already in use.
	ErrNameTaken = errors.New("display name is already taken")

	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
