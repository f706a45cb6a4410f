package domain

// Charge represents a pending request to credit a driver's wallet,
// typically backed by a receipt image. A charge never outlives its
// resolution: approve credits the wallet and deletes the record,
// reject deletes the record without touching the balance.
type Charge struct {
	ID       string
	DriverID string
	Name     string
	Value    float64
	Image    string // receipt evidence, opaque
}

// ChargeAction is the administrative resolution applied to a charge.
type ChargeAction string

const (
	ChargeActionApprove ChargeAction = "approve"
	ChargeActionReject  ChargeAction = "reject"
)

// ValidChargeAction reports whether a is a recognized resolution action.
func ValidChargeAction(a ChargeAction) bool {
	return a == ChargeActionApprove || a == ChargeActionReject
}
