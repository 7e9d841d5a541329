package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/argodnc/office-rental/internal/handler"    // import the handlers that implement business logic
	"github.com/argodnc/office-rental/internal/middleware" // import middleware for JWT authentication and ability scopes
	"github.com/argodnc/office-rental/internal/utils"      // import the scope constants shared with token issuance
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler. This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes and the authenticated
// profile endpoint. Unauthenticated operations live under /v1/auth, while
// protected endpoints live under /v1. Tokens are stateless scoped JWTs, so
// there is no refresh or logout route; clients simply discard the token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Group for operations that do not require an existing session.
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle user registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /v1/auth/login. The
	// body may carry an optional ability list to narrow the issued token.
	g.POST("/login", a.Login)

	// Group for routes that require a valid access token. All handlers
	// registered on this group execute the JWTAuth middleware first.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Register a GET endpoint at /v1/me that returns the authenticated user's information.
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints for office
// listings. Only approved, non-hidden offices are ever returned; no JWT or
// scope middleware applies here so guests can browse before signing up.
func RegisterPublic(e *echo.Echo, o *handler.OfficeHandler) {
	// Expose the paginated list of bookable offices.
	e.GET("/v1/offices", o.List)
	// Office details by id; unapproved or hidden listings respond 404.
	e.GET("/v1/offices/:id", o.Get)
}

// RegisterReservations registers the reservation endpoints for visitors and
// hosts. Every route requires a valid access token plus the matching ability
// scope; a token missing the scope gets 403 regardless of ownership.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, h *handler.HostReservationHandler, jwtSecret string) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))

	// Visitor-side reservations. Listing and fetching require the show
	// scope, booking the create scope and canceling the cancel scope.
	auth.GET("/reservations", r.List, middleware.RequireScope(utils.ScopeReservationShow))
	auth.GET("/reservations/:id", r.Get, middleware.RequireScope(utils.ScopeReservationShow))
	auth.POST("/reservations", r.Create, middleware.RequireScope(utils.ScopeReservationCreate))
	auth.DELETE("/reservations/:id", r.Cancel, middleware.RequireScope(utils.ScopeReservationCancel))

	// Host-side listing: reservations made against any office the caller
	// owns, optionally filtered down to a single visitor with ?user_id=.
	auth.GET("/host/reservations", h.List, middleware.RequireScope(utils.ScopeReservationShow))
}
