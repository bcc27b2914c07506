package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-backoffice/internal/model"
    "github.com/iliyamo/hotel-backoffice/internal/repository"
)

// DestinationHandler serves the destination catalog.
type DestinationHandler struct {
    Destinations *repository.DestinationRepo
}

// NewDestinationHandler constructs a DestinationHandler.
func NewDestinationHandler(d *repository.DestinationRepo) *DestinationHandler {
    return &DestinationHandler{Destinations: d}
}

type destinationReq struct {
    Name        string `json:"name"`
    Slug        string `json:"slug"`
    Country     string `json:"country"`
    Description string `json:"description"`
}

// List returns one page of destinations.
func (h *DestinationHandler) List(c echo.Context) error {
    page := queryUint(c, "page", 1)
    size := queryUint(c, "size", 20)
    items, err := h.Destinations.List(c.Request().Context(), page, size)
    if err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items, "page": page, "size": size})
}

// GetByID returns one destination.
func (h *DestinationHandler) GetByID(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    d, err := h.Destinations.GetByID(c.Request().Context(), id)
    if err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"destination": d})
}

// Create inserts a destination.  The slug is derived from the name when
// not supplied; a duplicate slug yields 409.
func (h *DestinationHandler) Create(c echo.Context) error {
    var req destinationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(req.Name) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
    }
    d := &model.Destination{
        Name:        req.Name,
        Slug:        req.Slug,
        Country:     req.Country,
        Description: req.Description,
    }
    if err := h.Destinations.Create(c.Request().Context(), d); err != nil {
        if err == repository.ErrConflict {
            return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
        }
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"destination": d})
}

// Update rewrites a destination.
func (h *DestinationHandler) Update(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req destinationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(req.Name) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
    }
    d := &model.Destination{
        ID:          id,
        Name:        req.Name,
        Slug:        req.Slug,
        Country:     req.Country,
        Description: req.Description,
    }
    if err := h.Destinations.Update(c.Request().Context(), d); err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"destination": d})
}

// Delete removes a destination.  Destinations with properties yield 409.
func (h *DestinationHandler) Delete(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.Destinations.Delete(c.Request().Context(), id); err != nil {
        return writeDomainError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
