package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leafscan-service/internal/api/dto"
	"github.com/spec-kit/leafscan-service/internal/auth"
	"github.com/spec-kit/leafscan-service/internal/service"
	apperrors "github.com/spec-kit/leafscan-service/pkg/util"
)

// AuthHandler exposes signup, verification and session endpoints.
type AuthHandler struct {
	identity *service.IdentityService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(identity *service.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.identity.Signup(c.UserContext(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful. Verification code sent to your email.",
		"user_id": user.ID,
	})
}

// VerifyOtp handles POST /api/auth/verify-otp.
func (h *AuthHandler) VerifyOtp(c *fiber.Ctx) error {
	var req dto.VerifyOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, token, exp, err := h.identity.VerifyOtp(c.UserContext(), req.Email, req.Otp)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Email verified successfully",
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		"user":    dto.NewUserResponse(user),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, token, exp, err := h.identity.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		"user":    dto.NewUserResponse(user),
	})
}

// ResendOtp handles POST /api/auth/resend-otp.
func (h *AuthHandler) ResendOtp(c *fiber.Ctx) error {
	var req dto.ResendOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.identity.ResendOtp(c.UserContext(), req.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Verification code sent to your email"})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response is
// identical whether or not the address is registered.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.identity.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "If your email is registered, you will receive a password reset code",
	})
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.identity.ResetPassword(c.UserContext(), req.Email, req.Otp, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Password reset successful"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	fresh, err := h.identity.Me(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(fresh)})
}
