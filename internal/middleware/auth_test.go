package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory-service/pkg/config"
	"inventory-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
)

func newAuthTest(t *testing.T) (*echo.Echo, *jwtutil.JWTUtil) {
	t.Helper()
	util := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		userID, ok := UserIDFromContext(c)
		if !ok {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no identity"})
		}
		return c.JSON(http.StatusOK, echo.Map{"user_id": userID})
	}, AuthMiddleware(util))
	return e, util
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	e, util := newAuthTest(t)

	token, err := util.GenerateToken("user@example.com", 7)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestAuthMiddlewareRejections(t *testing.T) {
	e, _ := newAuthTest(t)

	otherToken, err := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "other-key", ExpirationHours: 1}).
		GenerateToken("user@example.com", 7)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"malformed", "Bearer"},
		{"garbage token", "Bearer not.a.token"},
		{"wrong key", "Bearer " + otherToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}
