// Package router wires HTTP routes to their handlers and middleware.
// Unauthenticated routes (health, auth) are registered separately from
// the protected /v1 surface, which requires a valid staff JWT.
package router

import (
    "database/sql"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-backoffice/internal/handler"
    "github.com/iliyamo/hotel-backoffice/internal/middleware"
    "github.com/iliyamo/hotel-backoffice/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only the health check.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
    e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers the staff auth endpoints.  Register, login,
// refresh and logout live under /v1/auth without a JWT; /v1/me requires
// one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    g.POST("/refresh-access", a.RefreshAccess)
    // logout takes either a bearer token (revoke all sessions) or a
    // refresh_token body (revoke one), so it skips the JWT middleware
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole(model.RoleManager, model.RoleAgent))
    auth.GET("/me", a.Me)
}

// RegisterReservations registers the reservation surface.  Every route
// requires a staff JWT; both roles may work reservations except the
// destructive endpoints (hard delete, purge), which are manager-only.
// Extra middleware (rate limiting) applies to the whole group; the
// cache middleware is applied to the list and board reads only.
func RegisterReservations(e *echo.Echo, rh *handler.ReservationHandler, sh *handler.ReservationStatusHandler, jwtSecret string, cache echo.MiddlewareFunc, extra ...echo.MiddlewareFunc) {
    g := e.Group("/v1/reservations")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole(model.RoleManager, model.RoleAgent))
    for _, mw := range extra {
        g.Use(mw)
    }

    g.POST("", rh.Create)
    g.POST("/quote", rh.Quote)
    g.GET("/:id", rh.GetByID)
    g.PUT("/:id", rh.Update)
    if cache != nil {
        g.GET("", rh.List, cache)
        g.GET("/:id/board", rh.Board, cache)
    } else {
        g.GET("", rh.List)
        g.GET("/:id/board", rh.Board)
    }

    g.POST("/:id/approve", sh.Approve)
    g.POST("/:id/complete", sh.Complete)
    g.POST("/:id/cancel", sh.Cancel)
    g.POST("/:id/recover", sh.Recover)
    g.POST("/:id/archive", sh.Archive)
    g.POST("/cancel", sh.CancelMany)
    g.POST("/archive", sh.ArchiveMany)

    manager := middleware.RequireRole(model.RoleManager)
    g.DELETE("/:id", sh.HardDelete, manager)
    g.DELETE("", sh.Purge, manager)
}

// RegisterCatalog registers the destination/property/room/floor
// catalog.  Reads are open to both roles; every mutation is
// manager-only.
func RegisterCatalog(e *echo.Echo, rooms *handler.RoomHandler, floors *handler.FloorHandler, dests *handler.DestinationHandler, props *handler.PropertyHandler, jwtSecret string, cache echo.MiddlewareFunc, extra ...echo.MiddlewareFunc) {
    g := e.Group("/v1")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole(model.RoleManager, model.RoleAgent))
    for _, mw := range extra {
        g.Use(mw)
    }

    reads := []struct {
        path string
        h    echo.HandlerFunc
    }{
        {"/rooms", rooms.List},
        {"/rooms/:id", rooms.GetByID},
        {"/rooms/:id/board", rooms.Board},
        {"/floors/:id", floors.GetByID},
        {"/destinations", dests.List},
        {"/destinations/:id", dests.GetByID},
        {"/properties", props.List},
        {"/properties/:id", props.GetByID},
    }
    for _, r := range reads {
        if cache != nil {
            g.GET(r.path, r.h, cache)
        } else {
            g.GET(r.path, r.h)
        }
    }

    manager := middleware.RequireRole(model.RoleManager)
    g.POST("/rooms", rooms.Create, manager)
    g.PUT("/rooms/:id", rooms.Update, manager)
    g.DELETE("/rooms/:id", rooms.Delete, manager)
    g.POST("/floors", floors.Create, manager)
    g.PUT("/floors/:id", floors.Update, manager)
    g.DELETE("/floors/:id", floors.Delete, manager)
    g.POST("/destinations", dests.Create, manager)
    g.PUT("/destinations/:id", dests.Update, manager)
    g.DELETE("/destinations/:id", dests.Delete, manager)
    g.POST("/properties", props.Create, manager)
    g.PUT("/properties/:id", props.Update, manager)
    g.DELETE("/properties/:id", props.Delete, manager)
}
