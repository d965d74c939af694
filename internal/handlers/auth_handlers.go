package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"servicefinder/internal/common"
	"servicefinder/internal/models"
	"servicefinder/internal/repositories"
	"servicefinder/internal/services"
)

// AuthHandlers handles signup, login and the protected probe route.
type AuthHandlers struct {
	userRepo repositories.UserRepository
	hasher   *services.PasswordHasher
	authSvc  services.AuthService
}

func NewAuthHandlers(userRepo repositories.UserRepository, hasher *services.PasswordHasher, authSvc services.AuthService) *AuthHandlers {
	return &AuthHandlers{
		userRepo: userRepo,
		hasher:   hasher,
		authSvc:  authSvc,
	}
}

// SignupRequest represents the signup request payload.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// Signup registers a new user and returns a bearer token.
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Email == "" || req.Password == "" || req.FullName == "" || req.Phone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email, password, full name, and phone are required")
	}

	existing, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check existing user")
	}
	if existing != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup can slip past the pre-check; the unique
		// constraint settles the race.
		if errors.Is(err, repositories.ErrDuplicateUser) {
			return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
		}
		log.Printf("Failed to create user %s: %v", req.Email, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	token, err := h.authSvc.IssueToken(user.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// LoginRequest represents the login request payload. The form field is named
// username for OAuth2 password-form compatibility but carries the email.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Login verifies credentials and returns a bearer token. Unknown email and
// wrong password produce the identical response so neither can be probed.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	email := req.Username
	if email == "" {
		email = req.Email
	}
	if email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	user, err := h.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to look up user")
	}

	if !h.hasher.Verify(req.Password, user.PasswordHash) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
	}

	token, err := h.authSvc.IssueToken(user.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Protected responds for authenticated callers; the JWT middleware has already
// validated the token by the time this runs.
func (h *AuthHandlers) Protected(c echo.Context) error {
	email, ok := common.GetUserEmailFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or missing token")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "This is a protected route",
		"user":    email,
	})
}
