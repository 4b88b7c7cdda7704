package handler

import (
	"net/http"
	"strings"

	"inventory-service/internal/model"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler issues bearer tokens binding requests to an account
type AuthHandler struct {
	db      *gorm.DB
	jwtUtil *jwtutil.JWTUtil
}

// NewAuthHandler creates an auth handler with its collaborators
func NewAuthHandler(db *gorm.DB, jwtUtil *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{db: db, jwtUtil: jwtUtil}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse register request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a valid email is required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}

	var count int64
	if err := h.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Error("Failed to check existing user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "an account with this email already exists"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	user := model.User{Email: email, Password: string(hashed)}
	if err := h.db.Create(&user).Error; err != nil {
		log.Error("Failed to create user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	log.Info("User registered", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
	return c.JSON(http.StatusCreated, echo.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

// Login verifies credentials and issues a bearer token
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse login request", zap.Error(err))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user model.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		log.Warn("User not found", zap.String("email", email))
		prometheus.AuthErrorsCounter.Inc()
		// Same message for unknown user and bad password
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", email))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := h.jwtUtil.GenerateToken(user.Email, user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.AuthSuccessCounter.Inc()
	log.Info("User logged in", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}
