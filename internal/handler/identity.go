package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"snap/internal/service"
)

// IdentityHandler handles HTTP requests for accounts and OTP flows.
type IdentityHandler struct {
	identityService *service.IdentityService
	otpService      *service.OtpService
}

// NewIdentityHandler creates a new IdentityHandler.
func NewIdentityHandler(identityService *service.IdentityService, otpService *service.OtpService) *IdentityHandler {
	return &IdentityHandler{
		identityService: identityService,
		otpService:      otpService,
	}
}

// SendOtpRequest is the HTTP request body for issuing a verification code.
type SendOtpRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// SendOtpResponse reports issuance and the delivery outcome.
type SendOtpResponse struct {
	Message  string `json:"message"`
	Delivery string `json:"delivery"`
}

// VerifyOtpRequest is the HTTP request body for verifying a code.
type VerifyOtpRequest struct {
	PhoneNumber string `json:"phone_number"`
	Otp         string `json:"otp"`
}

// RegisterRequest is the HTTP request body for account registration.
type RegisterRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	EmailOrPhone string `json:"email_or_phone"`
	Password     string `json:"password"`
}

// ResetPasswordRequest is the HTTP request body for completing a
// password reset.
type ResetPasswordRequest struct {
	PhoneNumber string `json:"phone_number"`
	NewPassword string `json:"new_password"`
}

// UserResponse is the HTTP response for account data.
type UserResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Token       string `json:"token"`
}

// SendOtp handles POST /v1/identity/otp/send
func (h *IdentityHandler) SendOtp(c *gin.Context) {
	var req SendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	delivery, err := h.otpService.IssueOtp(c.Request.Context(), req.PhoneNumber, req.PhoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SendOtpResponse{
		Message:  "OTP sent to " + req.PhoneNumber,
		Delivery: string(delivery),
	})
}

// VerifyOtp handles POST /v1/identity/otp/verify
func (h *IdentityHandler) VerifyOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.otpService.VerifyOtp(req.PhoneNumber, req.Otp); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified"})
}

// Register handles POST /v1/identity/register
func (h *IdentityHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.FullName == "" || req.Email == "" || req.PhoneNumber == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "full_name, email, phone_number and password are required"})
		return
	}

	result, err := h.identityService.Register(c.Request.Context(), service.RegisterRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.PhoneNumber,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		UserID:      result.User.ID,
		DisplayName: result.User.FullName,
		Email:       result.User.Email,
		PhoneNumber: result.User.Phone,
		Token:       result.Token,
	})
}

// Login handles POST /v1/identity/login
func (h *IdentityHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.identityService.Login(c.Request.Context(), req.EmailOrPhone, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		UserID:      result.User.ID,
		DisplayName: result.User.FullName,
		Email:       result.User.Email,
		PhoneNumber: result.User.Phone,
		Token:       result.Token,
	})
}

// DeleteUser handles DELETE /v1/identity/:userId
func (h *IdentityHandler) DeleteUser(c *gin.Context) {
	if err := h.identityService.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// RequestResetPasswordOtp handles POST /v1/identity/password/otp
func (h *IdentityHandler) RequestResetPasswordOtp(c *gin.Context) {
	var req SendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	delivery, err := h.identityService.RequestPasswordReset(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SendOtpResponse{
		Message:  "password reset OTP sent to " + req.PhoneNumber,
		Delivery: string(delivery),
	})
}

// VerifyResetPasswordOtp handles POST /v1/identity/password/otp/verify
func (h *IdentityHandler) VerifyResetPasswordOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.identityService.VerifyPasswordResetOtp(req.PhoneNumber, req.Otp); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified for password reset"})
}

// ResetPassword handles POST /v1/identity/password/reset
func (h *IdentityHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.identityService.ResetPassword(c.Request.Context(), req.PhoneNumber, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password reset successful"})
}
