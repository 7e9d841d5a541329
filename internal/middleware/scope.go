package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireScope returns a middleware that enforces that the access token
// carries the given ability scope (e.g. "reservation.create"). Tokens
// are issued with an explicit ability list at login; a token lacking
// the scope is rejected with 403 regardless of who owns it. It assumes
// JWTAuth already stored the scopes slice in the context.
func RequireScope(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scopes, ok := c.Get("scopes").([]string)
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			for _, s := range scopes {
				if s == scope {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}
}
