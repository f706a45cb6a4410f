package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"snap/internal/config"
	"snap/internal/domain"
	"snap/internal/repository"
)

// IdentityService handles account creation, credential checks and token
// issuance, with the OTP service gating registration and password reset.
type IdentityService struct {
	userRepo repository.UserRepository
	otps     *OtpService
	jwtCfg   config.JWTConfig
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(userRepo repository.UserRepository, otps *OtpService, jwtCfg config.JWTConfig) *IdentityService {
	return &IdentityService{
		userRepo: userRepo,
		otps:     otps,
		jwtCfg:   jwtCfg,
	}
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	User  *domain.User
	Token string
}

// RegisterRequest contains the parameters for creating an account.
type RegisterRequest struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

// Register creates a new account. The phone number must carry a
// verified, unexpired OTP; the entry is removed once the account is
// created, closing the replay window.
func (s *IdentityService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if !s.otps.ConsumeIfVerified(req.Phone) {
		return nil, ErrPhoneNotVerified
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.GetByFullName(ctx, req.FullName); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		FullName:     req.FullName,
		Username:     strings.SplitN(req.Email, "@", 2)[0],
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.otps.Remove(req.Phone)

	return &AuthResult{User: user, Token: token}, nil
}

// Login checks credentials for an account addressed by email or phone
// and issues a token on success.
func (s *IdentityService) Login(ctx context.Context, emailOrPhone, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, emailOrPhone)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = s.userRepo.GetByPhone(ctx, emailOrPhone)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Delete removes an account by ID.
func (s *IdentityService) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrInvalidUserID
	}
	return s.userRepo.Delete(ctx, userID)
}

// RequestPasswordReset issues a reset OTP for an existing account's
// phone number. The code lives under a derived key so it cannot be used
// for registration.
func (s *IdentityService) RequestPasswordReset(ctx context.Context, phone string) (Delivery, error) {
	if phone == "" {
		return "", ErrInvalidPhone
	}

	if _, err := s.userRepo.GetByPhone(ctx, phone); err != nil {
		return "", err
	}

	return s.otps.IssueOtp(ctx, ResetKey(phone), phone)
}

// VerifyPasswordResetOtp checks a submitted reset code.
func (s *IdentityService) VerifyPasswordResetOtp(phone, code string) error {
	return s.otps.VerifyOtp(ResetKey(phone), code)
}

// ResetPassword replaces the account password once the reset OTP has
// been verified, then consumes the entry.
func (s *IdentityService) ResetPassword(ctx context.Context, phone, newPassword string) error {
	if !s.otps.ConsumeIfVerified(ResetKey(phone)) {
		return ErrPhoneNotVerified
	}

	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.otps.Remove(ResetKey(phone))

	return nil
}

func (s *IdentityService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.FullName,
		"iss":   s.jwtCfg.Issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.jwtCfg.TTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}
