package auth

import (
	"catalog-service/core/apperr"
	"catalog-service/core/logger"
	"catalog-service/core/middleware/jwtauth"
	"catalog-service/core/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for member authentication.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the auth routes. Register and login are public;
// the rest sits behind the guard.
func (h *Handler) RegisterRoutes(app fiber.Router, guard fiber.Handler) {
	group := app.Group("/auth")
	group.Post("/register", h.HandleRegister)
	group.Post("/login", h.HandleLogin)
	group.Get("/me", guard, h.HandleMe)
	group.Post("/logout", guard, h.HandleLogout)
	group.Post("/refresh", guard, h.HandleRefresh)
}

// HandleRegister registers a new member.
// @Summary Register
// @Description Create a member account and receive a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body auth.RegisterInput true "Registration payload"
// @Success 200 {object} response.Envelope "Member and token"
// @Failure 422 {object} response.Envelope "Validation failure"
// @Router /api/auth/register [post]
func (h *Handler) HandleRegister(c *fiber.Ctx) error {
	var in RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return response.FromError(c, apperr.Validation("malformed request body"), "")
	}

	payload, err := h.service.Register(c.Context(), in)
	if err != nil {
		h.logError(c, "register failed", err)
		return response.FromError(c, err, "registration failed")
	}
	return response.Success(c, payload, "registered")
}

// HandleLogin authenticates a member.
// @Summary Login
// @Description Verify credentials and receive a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body auth.LoginInput true "Login payload"
// @Success 200 {object} response.Envelope "Member and token"
// @Failure 401 {object} response.Envelope "Invalid credentials"
// @Router /api/auth/login [post]
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	var in LoginInput
	if err := c.BodyParser(&in); err != nil {
		return response.FromError(c, apperr.Validation("malformed request body"), "")
	}

	payload, err := h.service.Login(c.Context(), in)
	if err != nil {
		h.logError(c, "login failed", err)
		return response.FromError(c, err, "login failed")
	}
	return response.Success(c, payload, "logged in")
}

// HandleMe returns the authenticated member.
// @Summary Current member
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "Member"
// @Failure 401 {object} response.Envelope "Unauthorized"
// @Router /api/auth/me [get]
func (h *Handler) HandleMe(c *fiber.Ctx) error {
	member, err := h.service.Me(c.Context(), jwtauth.MemberID(c))
	if err != nil {
		return response.FromError(c, err, "member lookup failed")
	}
	return response.Success(c, member, "ok")
}

// HandleLogout stamps the member's logout time.
// @Summary Logout
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /api/auth/logout [post]
func (h *Handler) HandleLogout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.Context(), jwtauth.MemberID(c)); err != nil {
		h.logError(c, "logout failed", err)
		return response.FromError(c, err, "logout failed")
	}
	return response.Success(c, nil, "logged out")
}

// HandleRefresh issues a fresh token.
// @Summary Refresh token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "New token"
// @Failure 401 {object} response.Envelope "Unauthorized"
// @Router /api/auth/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	payload, err := h.service.Refresh(c.Context(), jwtauth.MemberID(c))
	if err != nil {
		return response.FromError(c, err, "token refresh failed")
	}
	return response.Success(c, payload, "token refreshed")
}

func (h *Handler) logError(c *fiber.Ctx, msg string, err error) {
	l := logger.WithRayID(h.service.logger, c)
	if apperr.IsClient(err) {
		l.Info(msg, zap.Error(err))
		return
	}
	l.Error(msg, zap.Error(err))
}
