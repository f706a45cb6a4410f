package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"snap/internal/domain"
	"snap/internal/repository"
	"snap/internal/service"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderRepo repository.OrderRepository, userRepo repository.UserRepository) *OrderHandler {
	return &OrderHandler{
		orderRepo: orderRepo,
		userRepo:  userRepo,
	}
}

// LatLngRequest is a coordinate pair in request/response bodies.
type LatLngRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CreateOrderRequest is the HTTP request body for creating an order.
type CreateOrderRequest struct {
	UserID        string        `json:"user_id"`
	Date          time.Time     `json:"date"`
	From          string        `json:"from"`
	To            string        `json:"to"`
	FromLatLng    LatLngRequest `json:"from_lat_lng"`
	ToLatLng      LatLngRequest `json:"to_lat_lng"`
	ExpectedPrice float64       `json:"expected_price"`
	Type          string        `json:"type"`
	Distance      float64       `json:"distance"`
	Notes         string        `json:"notes"`
	NoPassengers  int           `json:"no_passengers"`
}

// AssignDriverRequest is the HTTP request body for assigning a driver.
type AssignDriverRequest struct {
	OrderID  string `json:"order_id"`
	DriverID string `json:"driver_id"`
	Status   string `json:"status"`
}

// OrderResponse is the HTTP response for order data.
type OrderResponse struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	Date          time.Time     `json:"date"`
	From          string        `json:"from"`
	To            string        `json:"to"`
	FromLatLng    LatLngRequest `json:"from_lat_lng"`
	ToLatLng      LatLngRequest `json:"to_lat_lng"`
	ExpectedPrice float64       `json:"expected_price"`
	Type          string        `json:"type"`
	Distance      float64       `json:"distance"`
	Notes         string        `json:"notes,omitempty"`
	NoPassengers  int           `json:"no_passengers"`
	UserImage     string        `json:"user_image,omitempty"`
	UserName      string        `json:"user_name"`
	UserPhone     string        `json:"user_phone"`
	Status        string        `json:"status"`
	DriverID      string        `json:"driver_id,omitempty"`
	Review        string        `json:"review,omitempty"`
}

func orderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Date:          o.Date,
		From:          o.From,
		To:            o.To,
		FromLatLng:    LatLngRequest{Lat: o.FromLatLng.Lat, Lng: o.FromLatLng.Lng},
		ToLatLng:      LatLngRequest{Lat: o.ToLatLng.Lat, Lng: o.ToLatLng.Lng},
		ExpectedPrice: o.ExpectedPrice,
		Type:          string(o.Type),
		Distance:      o.Distance,
		Notes:         o.Notes,
		NoPassengers:  o.NoPassengers,
		UserImage:     o.UserImage,
		UserName:      o.UserName,
		UserPhone:     o.UserPhone,
		Status:        string(o.Status),
		DriverID:      o.DriverID,
		Review:        o.Review,
	}
}

// Create handles POST /v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	orderType := domain.OrderType(strings.ToLower(req.Type))
	if orderType != domain.OrderTypeRide && orderType != domain.OrderTypeDelivery {
		respondError(c, service.ErrInvalidOrderType)
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	order := &domain.Order{
		ID:            uuid.New().String(),
		UserID:        user.ID,
		Date:          req.Date,
		From:          req.From,
		To:            req.To,
		FromLatLng:    domain.LatLng{Lat: req.FromLatLng.Lat, Lng: req.FromLatLng.Lng},
		ToLatLng:      domain.LatLng{Lat: req.ToLatLng.Lat, Lng: req.ToLatLng.Lng},
		ExpectedPrice: req.ExpectedPrice,
		Type:          orderType,
		Distance:      req.Distance,
		Notes:         req.Notes,
		NoPassengers:  req.NoPassengers,
		UserImage:     user.Image,
		UserName:      user.FullName,
		UserPhone:     user.Phone,
		Status:        domain.OrderStatusPending,
		CreatedAt:     time.Now(),
	}

	if err := h.orderRepo.Create(c.Request.Context(), order); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, orderResponse(order))
}

// GetAll handles GET /v1/orders
func (h *OrderHandler) GetAll(c *gin.Context) {
	orders, err := h.orderRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, orderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderResponse(order))
}

// AssignDriver handles PUT /v1/orders/driver
func (h *OrderHandler) AssignDriver(c *gin.Context) {
	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.orderRepo.AssignDriver(c.Request.Context(), req.OrderID, req.DriverID, domain.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /v1/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orderRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
