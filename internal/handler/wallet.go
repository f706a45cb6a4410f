package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"snap/internal/domain"
	"snap/internal/service"
)

// WalletHandler handles HTTP requests for charges and wallet mutations.
type WalletHandler struct {
	walletService *service.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// RequestChargeRequest is the HTTP request body for raising a charge.
type RequestChargeRequest struct {
	DriverID string  `json:"driver_id"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Image    string  `json:"image"`
}

// ChargeResponse is the HTTP response for charge data.
type ChargeResponse struct {
	ID       string  `json:"id"`
	DriverID string  `json:"driver_id"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Image    string  `json:"image,omitempty"`
}

// ResolveChargeRequest is the HTTP request body for resolving a charge.
// Value, when present on approval, overrides the charge's stored amount.
type ResolveChargeRequest struct {
	Action string   `json:"action"`
	Value  *float64 `json:"value,omitempty"`
}

// ResolveChargeResponse is the HTTP response for a charge resolution.
type ResolveChargeResponse struct {
	ChargeID   string  `json:"charge_id"`
	DriverID   string  `json:"driver_id"`
	Action     string  `json:"action"`
	Amount     float64 `json:"amount"`
	NewBalance float64 `json:"new_balance"`
}

// DeductRequest is the HTTP request body for a wallet deduction.
type DeductRequest struct {
	Amount float64 `json:"amount"`
}

// BalanceResponse is the HTTP response for a wallet balance read.
type BalanceResponse struct {
	DriverID      string  `json:"driver_id"`
	Wallet        float64 `json:"wallet"`
	Status        string  `json:"status"`
	AverageReview float64 `json:"average_review"`
}

// RequestCharge handles POST /v1/charges
func (h *WalletHandler) RequestCharge(c *gin.Context) {
	var req RequestChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	charge, err := h.walletService.RequestCharge(c.Request.Context(), service.RequestChargeRequest{
		DriverID: req.DriverID,
		Name:     req.Name,
		Amount:   req.Value,
		Image:    req.Image,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ChargeResponse{
		ID:       charge.ID,
		DriverID: charge.DriverID,
		Name:     charge.Name,
		Value:    charge.Value,
		Image:    charge.Image,
	})
}

// ListCharges handles GET /v1/drivers/:id/charges
func (h *WalletHandler) ListCharges(c *gin.Context) {
	charges, err := h.walletService.ListCharges(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ChargeResponse, 0, len(charges))
	for _, charge := range charges {
		response = append(response, ChargeResponse{
			ID:       charge.ID,
			DriverID: charge.DriverID,
			Name:     charge.Name,
			Value:    charge.Value,
			Image:    charge.Image,
		})
	}

	c.JSON(http.StatusOK, response)
}

// ResolveCharge handles POST /v1/charges/:id/resolve
func (h *WalletHandler) ResolveCharge(c *gin.Context) {
	var req ResolveChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.walletService.ResolveCharge(c.Request.Context(), service.ResolveChargeRequest{
		ChargeID:       c.Param("id"),
		Action:         domain.ChargeAction(req.Action),
		OverrideAmount: req.Value,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ResolveChargeResponse{
		ChargeID:   result.ChargeID,
		DriverID:   result.DriverID,
		Action:     string(result.Action),
		Amount:     result.Amount,
		NewBalance: result.NewBalance,
	})
}

// Deduct handles POST /v1/drivers/:id/wallet/deduct
func (h *WalletHandler) Deduct(c *gin.Context) {
	var req DeductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	newBalance, err := h.walletService.DeductWallet(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"driver_id": c.Param("id"), "wallet": newBalance})
}

// GetBalance handles GET /v1/drivers/:id/wallet
func (h *WalletHandler) GetBalance(c *gin.Context) {
	summary, err := h.walletService.GetBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		DriverID:      summary.ID,
		Wallet:        summary.Wallet,
		Status:        summary.Status,
		AverageReview: summary.AverageReview,
	})
}
