package handler

import (
    "database/sql"
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health reports liveness plus database reachability.
func Health(db *sql.DB) echo.HandlerFunc {
    return func(c echo.Context) error {
        status := "ok"
        code := http.StatusOK
        if db != nil {
            if err := db.PingContext(c.Request().Context()); err != nil {
                status = "degraded"
                code = http.StatusServiceUnavailable
            }
        }
        return c.JSON(code, echo.Map{"status": status})
    }
}
