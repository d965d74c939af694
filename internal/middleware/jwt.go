package middleware

import (
	"context"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"servicefinder/internal/common"
	"servicefinder/internal/services"
)

// JWTConfig builds the echo-jwt configuration for protected routes. Tokens go
// through full validation (signature and expiry); the subject email lands in
// the request context for handlers.
func JWTConfig(authSvc services.AuthService) echojwt.Config {
	return echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := authSvc.ValidateToken(auth)
			if err != nil {
				return nil, err
			}

			ctx := context.WithValue(c.Request().Context(), common.UserEmailKey, claims.Subject)
			c.SetRequest(c.Request().WithContext(ctx))

			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or missing token")
		},
	}
}
