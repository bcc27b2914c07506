package middleware

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated staff user's id for cache and
// rate-limit keys.  JWTAuth stores the JWT "sub" claim, which decodes
// from JSON as a float64; anything unrecognised keys as "anon".
func currentUserID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return fmt.Sprintf("%.0f", v)
    case uint64:
        return fmt.Sprintf("%d", v)
    }
    return "anon"
}
