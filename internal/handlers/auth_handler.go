package handlers

import (
	"inventory/internal/logger"
	"inventory/internal/middleware"
	"inventory/internal/models"
	"inventory/internal/responses"
	"inventory/internal/services"
	pkgerrors "inventory/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	log         *logger.Logger
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the public authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// RegisterProtectedRoutes registers the routes that need a valid token.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/auth/me", h.HandleMe)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username  string `json:"username" validate:"omitempty,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=30"`
	LastName  string `json:"last_name" validate:"max=30"`
}

// HandleRegister handles new user registration. Accounts created here always
// get the user role; admins are created from the command line.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.BadRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return responses.WriteError(c, h.log, validationError(err))
	}

	user, err := h.authService.RegisterUser(c.UserContext(), services.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleUser,
	})
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}

	h.log.Info(h.log.WithUserID(c.UserContext(), user.ID), "user registered")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginRequest represents the request body for login. Username may also be
// the account's email address.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.BadRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return responses.WriteError(c, h.log, validationError(err))
	}

	token, user, err := h.authService.LoginUser(c.UserContext(), req.Username, req.Password)
	if err != nil {
		h.log.Debug(h.log.WithField(c.UserContext(), "identifier", req.Username), "login rejected")
		return responses.WriteError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// HandleMe returns the authenticated user's profile.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.authService.CurrentUser(c.UserContext(), middleware.Actor(c))
	if err != nil {
		return responses.WriteError(c, h.log, err)
	}
	return c.JSON(user)
}

func isTyped(err error) bool {
	return pkgerrors.As(err) != nil
}
