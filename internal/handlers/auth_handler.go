package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/arjunvn/shopstack/internal/auth"
	"github.com/arjunvn/shopstack/internal/schema"
	"github.com/arjunvn/shopstack/internal/services"
	"github.com/arjunvn/shopstack/internal/store"
)

type AuthHandler struct {
	svc    *services.AuthService
	google auth.Verifier
	log    *zap.Logger
}

// NewAuthHandler wires the auth endpoints. google may be nil when no identity
// provider is configured.
func NewAuthHandler(svc *services.AuthService, google auth.Verifier, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, google: google, log: log}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body store.Document
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	data, ferrs := schema.Signup.Validate(body)
	if len(ferrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  ferrs,
		})
	}

	user, token, err := h.svc.Signup(c.Context(), data)
	if errors.Is(err, services.ErrEmailTaken) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "User already exists"})
	}
	if err != nil {
		h.log.Error("signup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Signup failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Signup successful",
		"token":   token,
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body store.Document
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	data, ferrs := schema.Login.Validate(body)
	if len(ferrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  ferrs,
		})
	}

	token, err := h.svc.Login(c.Context(), cast.ToString(data["email"]), cast.ToString(data["password"]))
	if errors.Is(err, services.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	if err != nil {
		h.log.Error("login failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed. Please try again later."})
	}

	return c.JSON(fiber.Map{"token": token})
}

// GoogleAuth verifies a provider-issued ID token and upserts the user.
func (h *AuthHandler) GoogleAuth(c *fiber.Ctx) error {
	if h.google == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Identity provider not configured"})
	}

	header := c.Get("Authorization")
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if header == "" || tokenString == header || tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No token provided"})
	}

	principal, err := h.google.Authenticate(c.Context(), tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid or expired token"})
	}

	user, err := h.svc.GoogleSignIn(c.Context(), principal)
	if err != nil {
		h.log.Error("google sign-in failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Login failed"})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var body store.Document
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	data, ferrs := schema.ResetPassword.Validate(body)
	if len(ferrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  ferrs,
		})
	}

	if err := h.svc.RequestPasswordReset(c.Context(), cast.ToString(data["email"])); err != nil {
		h.log.Error("password reset request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not send reset mail"})
	}

	return c.JSON(fiber.Map{"message": "If the account exists, a reset link has been sent"})
}

// GetSetPassword checks an oobCode from the query string so a reset page can
// decide whether to show the form.
func (h *AuthHandler) GetSetPassword(c *fiber.Ctx) error {
	code := c.Query("oobCode")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing oobCode")
	}
	if err := h.svc.VerifyResetCode(c.Context(), code); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid or expired reset code")
	}
	return c.SendString("Reset code valid. Submit the new password via POST.")
}

func (h *AuthHandler) PostSetPassword(c *fiber.Ctx) error {
	var body store.Document
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	data, ferrs := schema.SetPassword.Validate(body)
	if len(ferrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  ferrs,
		})
	}

	err := h.svc.SetPassword(c.Context(), cast.ToString(data["oobCode"]), cast.ToString(data["newPassword"]))
	if errors.Is(err, services.ErrResetCodeInvalid) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid or expired reset code"})
	}
	if err != nil {
		h.log.Error("set password failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not update password"})
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
