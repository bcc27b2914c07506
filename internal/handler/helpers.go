// Package handler contains the Echo HTTP handlers of the back office.
// Handlers bind and validate input, drive the booking core and the
// repositories, and translate domain errors into JSON responses.
package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-backoffice/internal/booking"
    "github.com/iliyamo/hotel-backoffice/internal/repository"
)

// getUserID extracts the authenticated staff user's id from the request
// context.  JWT numeric claims decode as float64; 0 means unknown.
func getUserID(c echo.Context) uint64 {
    switch v := c.Get("user_id").(type) {
    case float64:
        return uint64(v)
    case uint64:
        return v
    case string:
        if n, err := strconv.ParseUint(v, 10, 64); err == nil {
            return n
        }
    }
    return 0
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, errors.New("invalid id")
    }
    return id, nil
}

// queryUint parses an optional numeric query parameter, returning def
// when absent or malformed.
func queryUint(c echo.Context, name string, def uint32) uint32 {
    raw := c.QueryParam(name)
    if raw == "" {
        return def
    }
    n, err := strconv.ParseUint(raw, 10, 32)
    if err != nil {
        return def
    }
    return uint32(n)
}

// writeDomainError maps booking and repository errors onto HTTP
// responses.  Field-level validation failures come back as 400 with the
// offending field; lifecycle rule violations are 409 conflicts; gateway
// failures are 502 so clients can distinguish them from handler bugs.
func writeDomainError(c echo.Context, err error) error {
    var ve *booking.ValidationError
    if errors.As(err, &ve) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message, "field": ve.Field})
    }
    var re *booking.RemoteError
    if errors.As(err, &re) {
        c.Logger().Errorf("%v", re)
        // unwrap not-found so a vanished row reads as 404, not 502
        if errors.Is(re.Err, repository.ErrReservationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "persistence failed, please retry"})
    }
    switch {
    case errors.Is(err, booking.ErrNotFound), errors.Is(err, repository.ErrReservationNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    case errors.Is(err, repository.ErrRoomNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
    case errors.Is(err, repository.ErrFloorNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "floor not found"})
    case errors.Is(err, repository.ErrDestinationNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
    case errors.Is(err, repository.ErrPropertyNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
    case errors.Is(err, booking.ErrInvalidTransition):
        return c.JSON(http.StatusConflict, echo.Map{"error": "transition not allowed from current status"})
    case errors.Is(err, booking.ErrStatusMismatch):
        return c.JSON(http.StatusConflict, echo.Map{"error": "one or more reservations are not in the expected status"})
    case errors.Is(err, booking.ErrAssignmentIncomplete):
        return c.JSON(http.StatusConflict, echo.Map{"error": "room assignment does not match the requested rooms count"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "resource is referenced by live reservations"})
    }
    c.Logger().Errorf("unhandled error: %v", err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
