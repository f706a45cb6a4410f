package domain

import "time"

// DriverStatus represents the onboarding status of a driver.
// Transitions are administrator-driven only.
type DriverStatus string

const (
	DriverStatusPending  DriverStatus = "pending"
	DriverStatusApproved DriverStatus = "approved"
	DriverStatusReject   DriverStatus = "reject"
)

// ValidDriverStatus reports whether s is one of the enumerated statuses.
func ValidDriverStatus(s DriverStatus) bool {
	switch s {
	case DriverStatusPending, DriverStatusApproved, DriverStatusReject:
		return true
	}
	return false
}

// Car holds the vehicle data attached to a driver profile.
type Car struct {
	CarPhoto     string
	LicenseFront string
	LicenseBack  string
	Brand        string
	Model        string
	Color        string
	PlateNumber  string
}

// Driver represents a driver in the system, including onboarding
// documents, wallet balance and review aggregates.
type Driver struct {
	ID                 string
	UserID             string
	FullName           string
	NationalID         string
	Age                int
	LicenseNumber      string
	Email              string
	LicenseExpiryDate  time.Time
	DriverPhoto        string
	DriverIDCard       string
	DriverLicenseFront string
	DriverLicenseBack  string
	IDCardFront        string
	IDCardBack         string
	Car                Car
	Status             DriverStatus
	Wallet             float64 // never negative
	TotalScore         float64
	ReviewCount        int
}

// AverageReview returns the driver's average review score, clamped to 5.
// The clamp guards against accumulated floating-point drift, not input;
// a single review of 5 reads back exactly 5.
func (d *Driver) AverageReview() float64 {
	if d.ReviewCount == 0 {
		return 0
	}
	avg := d.TotalScore / float64(d.ReviewCount)
	if avg > 5 {
		return 5
	}
	return avg
}
