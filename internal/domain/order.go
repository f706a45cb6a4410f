package domain

import "time"

// OrderStatus represents the dispatch status of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderType distinguishes passenger rides from deliveries.
type OrderType string

const (
	OrderTypeRide     OrderType = "ride"
	OrderTypeDelivery OrderType = "delivery"
)

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64
	Lng float64
}

// Order represents a ride or delivery request in the system.
// User display fields are denormalized at creation time so driver
// apps can render the request without a second lookup.
type Order struct {
	ID            string
	UserID        string
	Date          time.Time
	From          string
	To            string
	FromLatLng    LatLng
	ToLatLng      LatLng
	ExpectedPrice float64
	Type          OrderType
	Distance      float64
	Notes         string
	NoPassengers  int
	UserImage     string
	UserName      string
	UserPhone     string
	Status        OrderStatus
	DriverID      string
	Review        string
	CreatedAt     time.Time
}
