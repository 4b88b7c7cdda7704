package handler

import (
	"net/http"
	"strconv"

	"inventory-service/internal/apperr"
	"inventory-service/internal/middleware"
	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// accountID extracts the authenticated account id set by the auth middleware.
// A missing id means the route was wired without the middleware.
func accountID(c echo.Context) (uint, error) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		logger.FromContext(c).Error("Missing user_id in context")
		return 0, c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	return userID, nil
}

// pathID parses a numeric path parameter
func pathID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondError maps a domain error to an HTTP response. Unclassified errors
// surface as a generic internal error so store detail never leaks.
func respondError(c echo.Context, err error) error {
	log := logger.FromContext(c)

	kind, ok := apperr.KindOf(err)
	if !ok {
		log.Error("Unclassified error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	status := http.StatusInternalServerError
	switch kind {
	case apperr.Validation:
		status = http.StatusBadRequest
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.Conflict:
		status = http.StatusConflict
	case apperr.Integrity:
		log.Error("Integrity error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	log.Warn("Request failed", zap.Int("status", status), zap.Error(err))
	return c.JSON(status, echo.Map{"error": apperr.Message(err)})
}
