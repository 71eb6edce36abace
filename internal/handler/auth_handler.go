package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apierrors "patchwork/internal/errors"
	"patchwork/internal/service"
)

// AuthHandler handles the credential-exchange endpoints.
type AuthHandler struct {
	authService service.AuthService
	log         *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// IsLoggedRequest carries a full "Bearer <jwt>" string to check.
type IsLoggedRequest struct {
	Token string `json:"token" validate:"required"`
}

// Login godoc
// @Summary Exchange email and password for a bearer token
// @Tags auth
// @Accept json
// @Produce plain
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {string} string "Bearer <token>"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /login [put]
func (h *AuthHandler) Login(c echo.Context) error {
	logEntry(h.log, c)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequestBody(h.log, c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(h.log, c, err)
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidPassword):
		return replyError(h.log, c, http.StatusUnauthorized, err.Error(), apierrors.CodeUnauthorized)
	case err != nil:
		return internalError(h.log, c, err)
	}

	logOK(h.log, c)
	return c.String(http.StatusOK, token)
}

// IsLogged godoc
// @Summary Check whether a bearer token is still valid
// @Tags auth
// @Accept json
// @Produce json
// @Param request body IsLoggedRequest true "Bearer token"
// @Success 200 {boolean} boolean
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /isLogged [put]
func (h *AuthHandler) IsLogged(c echo.Context) error {
	logEntry(h.log, c)

	var req IsLoggedRequest
	if err := c.Bind(&req); err != nil {
		return badRequestBody(h.log, c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(h.log, c, err)
	}

	if _, err := h.authService.IsLogged(req.Token); err != nil {
		return replyError(h.log, c, http.StatusUnauthorized, err.Error(), apierrors.CodeUnauthorized)
	}

	logOK(h.log, c)
	return c.JSON(http.StatusOK, true)
}
