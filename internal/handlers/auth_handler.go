package handlers

import (
	"lifeshare/internal/middleware"
	"lifeshare/internal/models"
	"lifeshare/internal/services"
	"lifeshare/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// AuthHandler handles HTTP requests for the account lifecycle.
type AuthHandler struct {
	authService  *services.AuthService
	validate     *validator.Validate
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		validate:     validator.New(),
		cookieSecure: cookieSecure,
	}
}

// RegisterRoutes registers the account routes. It expects
// middleware.LoadSession to run before them.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	for _, path := range []string{"/", "/login"} {
		router.Get(path, h.HandleLoginPage)
		router.Post(path, h.HandleLogin)
	}
	router.Get("/register", h.HandleRegisterPage)
	router.Post("/register", h.HandleRegister)
	router.Get("/home", middleware.RequireSession(), h.HandleHome)
	router.Get("/logout", h.HandleLogout)
	router.Post("/delete_account", middleware.RequireSession(), h.HandleDeleteAccount)
}

// CredentialsForm is the body of the login and register forms.
type CredentialsForm struct {
	Username string `form:"username" json:"username" validate:"required,max=100"`
	Password string `form:"password" json:"password" validate:"required"`
}

func (h *AuthHandler) parseCredentials(c *fiber.Ctx) (*CredentialsForm, error) {
	var form CredentialsForm
	if err := c.BodyParser(&form); err != nil {
		return nil, err
	}
	if err := h.validate.Struct(form); err != nil {
		return nil, err
	}
	return &form, nil
}

// HandleLoginPage renders the login view model.
func (h *AuthHandler) HandleLoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":  "login",
		"flash": popFlash(c),
	})
}

// HandleLogin authenticates the user and starts a session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	form, err := h.parseCredentials(c)
	if err != nil {
		setFlash(c, FlashError, "Username and password are required")
		return c.Redirect("/login")
	}

	token, session, err := h.authService.Authenticate(c.UserContext(), form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, models.ErrInvalidCredentials) {
			logger.Log.WithError(err).WithField("username", form.Username).Error("Login failed")
		}
		setFlash(c, FlashError, "Invalid username or password")
		return c.Redirect("/login")
	}

	middleware.SetSessionCookie(c, token, session.ExpiresAt, h.cookieSecure)
	setFlash(c, FlashSuccess, "Login successful! Welcome back")
	return c.Redirect("/home")
}

// HandleRegisterPage renders the registration view model.
func (h *AuthHandler) HandleRegisterPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":  "register",
		"flash": popFlash(c),
	})
}

// HandleRegister creates a new account.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	form, err := h.parseCredentials(c)
	if err != nil {
		setFlash(c, FlashError, "Username and password are required")
		return c.Redirect("/register")
	}

	if err := h.authService.Register(c.UserContext(), form.Username, form.Password); err != nil {
		if errors.Is(err, models.ErrConflict) {
			setFlash(c, FlashError, "Username already exists")
			return c.Redirect("/register")
		}
		logger.Log.WithError(err).WithField("username", form.Username).Error("Registration failed")
		setFlash(c, FlashError, "Could not create account")
		return c.Redirect("/register")
	}

	setFlash(c, FlashSuccess, "Account created successfully. Please login.")
	return c.Redirect("/login")
}

// HandleHome renders the landing page view model.
func (h *AuthHandler) HandleHome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":  "home",
		"user":  middleware.CurrentUsername(c),
		"flash": popFlash(c),
	})
}

// HandleLogout ends the current session, if any.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), middleware.CurrentSession(c)); err != nil {
		logger.Log.WithError(err).Warn("Failed to revoke session on logout")
	}
	middleware.ClearSessionCookie(c)
	setFlash(c, FlashSuccess, "Logged out successfully")
	return c.Redirect("/login")
}

// HandleDeleteAccount permanently deletes the current user and their content.
func (h *AuthHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if err := h.authService.DeleteAccount(c.UserContext(), session); err != nil {
		logger.Log.WithError(err).WithField("username", session.Username).Error("Account deletion failed")
		setFlash(c, FlashError, "Could not delete your account")
		return c.Redirect("/home")
	}

	middleware.ClearSessionCookie(c)
	setFlash(c, FlashSuccess, "Your account has been permanently deleted")
	return c.Redirect("/login")
}
