package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/az-solve/shop-support/internal/api/dto"
	"github.com/az-solve/shop-support/internal/auth"
	"github.com/az-solve/shop-support/internal/config"
	apperrors "github.com/az-solve/shop-support/pkg/util"
)

// AuthHandler issues admin bearer tokens for the read endpoints.
type AuthHandler struct {
	tokens   *auth.TokenManager
	cfg      config.AuthConfig
	validate *validator.Validate
}

// NewAuthHandler constructs handler.
func NewAuthHandler(tokens *auth.TokenManager, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{tokens: tokens, cfg: cfg, validate: validator.New()}
}

// AdminLogin POST /auth/admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("email and password are required", nil)
	}

	if h.cfg.AdminEmail == "" || h.cfg.AdminPasswordHash == "" {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	if !strings.EqualFold(req.Email, h.cfg.AdminEmail) || !auth.VerifyPassword(h.cfg.AdminPasswordHash, req.Password) {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := h.tokens.GenerateToken(h.cfg.AdminEmail, auth.RoleAdmin)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.AdminLoginResponse{AccessToken: token, ExpiresAt: expiresAt})
}
