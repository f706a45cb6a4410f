package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"snap/internal/domain"
	"snap/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// CarRequest is the vehicle section of a driver registration.
type CarRequest struct {
	CarPhoto     string `json:"car_photo"`
	LicenseFront string `json:"license_front"`
	LicenseBack  string `json:"license_back"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	PlateNumber  string `json:"plate_number"`
}

// RegisterDriverRequest is the HTTP request body for driver onboarding.
type RegisterDriverRequest struct {
	UserID             string     `json:"user_id"`
	FullName           string     `json:"full_name"`
	NationalID         string     `json:"national_id"`
	Age                int        `json:"age"`
	LicenseNumber      string     `json:"license_number"`
	Email              string     `json:"email"`
	LicenseExpiryDate  time.Time  `json:"license_expiry_date"`
	DriverPhoto        string     `json:"driver_photo"`
	DriverIDCard       string     `json:"driver_id_card"`
	DriverLicenseFront string     `json:"driver_license_front"`
	DriverLicenseBack  string     `json:"driver_license_back"`
	IDCardFront        string     `json:"id_card_front"`
	IDCardBack         string     `json:"id_card_back"`
	Car                CarRequest `json:"car"`
}

// ChangeStatusRequest is the HTTP request body for a status transition.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// AddReviewRequest is the HTTP request body for adding a review.
type AddReviewRequest struct {
	Score float64 `json:"score"`
}

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Status        string  `json:"status"`
	Wallet        float64 `json:"wallet"`
	AverageReview float64 `json:"average_review"`
}

func driverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:            d.ID,
		UserID:        d.UserID,
		FullName:      d.FullName,
		Email:         d.Email,
		Status:        string(d.Status),
		Wallet:        d.Wallet,
		AverageReview: d.AverageReview(),
	}
}

// Register handles POST /v1/drivers/register
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.UserID == "" || req.FullName == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_id and full_name are required"})
		return
	}

	driver := &domain.Driver{
		UserID:             req.UserID,
		FullName:           req.FullName,
		NationalID:         req.NationalID,
		Age:                req.Age,
		LicenseNumber:      req.LicenseNumber,
		Email:              req.Email,
		LicenseExpiryDate:  req.LicenseExpiryDate,
		DriverPhoto:        req.DriverPhoto,
		DriverIDCard:       req.DriverIDCard,
		DriverLicenseFront: req.DriverLicenseFront,
		DriverLicenseBack:  req.DriverLicenseBack,
		IDCardFront:        req.IDCardFront,
		IDCardBack:         req.IDCardBack,
		Car: domain.Car{
			CarPhoto:     req.Car.CarPhoto,
			LicenseFront: req.Car.LicenseFront,
			LicenseBack:  req.Car.LicenseBack,
			Brand:        req.Car.Brand,
			Model:        req.Car.Model,
			Color:        req.Car.Color,
			PlateNumber:  req.Car.PlateNumber,
		},
	}

	created, err := h.driverService.Register(c.Request.Context(), driver)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, driverResponse(created))
}

// List handles GET /v1/drivers
func (h *DriverHandler) List(c *gin.Context) {
	drivers, err := h.driverService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, driverResponse(d))
	}

	c.JSON(http.StatusOK, response)
}

// GetByUserID handles GET /v1/drivers/by-user/:userId
func (h *DriverHandler) GetByUserID(c *gin.Context) {
	driver, err := h.driverService.GetByUserID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, driverResponse(driver))
}

// Get handles GET /v1/drivers/:id
func (h *DriverHandler) Get(c *gin.Context) {
	driver, err := h.driverService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, driverResponse(driver))
}

// ChangeStatus handles POST /v1/drivers/:id/status
func (h *DriverHandler) ChangeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.driverService.ChangeStatus(c.Request.Context(), c.Param("id"), domain.DriverStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddReview handles POST /v1/drivers/:id/reviews
func (h *DriverHandler) AddReview(c *gin.Context) {
	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.driverService.AddReview(c.Request.Context(), c.Param("id"), req.Score); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
