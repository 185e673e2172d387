package jwtmiddleware

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// AdminTokens guards the admin group with header-carried service tokens.
// The token's kid header selects the signing secret from the keystore, and
// the token must carry role=admin.
func AdminTokens(keyStore map[string][]byte) echo.MiddlewareFunc {
	jwtMW := echojwt.WithConfig(echojwt.Config{
		SigningMethod: "HS256",
		ContextKey:    "adminToken",
		TokenLookup:   "header:Authorization:Bearer ",
		KeyFunc: func(token *jwt.Token) (interface{}, error) {
			kidVal, ok := token.Header["kid"].(string)
			if !ok {
				return nil, fmt.Errorf("token missing kid header")
			}
			secret, exists := keyStore[kidVal]
			if !exists {
				return nil, fmt.Errorf("unknown kid %s", kidVal)
			}
			return secret, nil
		},
	})

	requireAdminRole := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			t, ok := c.Get("adminToken").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing admin token")
			}
			claims, ok := t.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			if role, _ := claims["role"].(string); role != "admin" {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required")
			}
			if sub, ok := claims["sub"].(float64); ok {
				c.Set("userID", uint(sub))
			}
			c.Set("role", "admin")
			return next(c)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return jwtMW(requireAdminRole(next))
	}
}
