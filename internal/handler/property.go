package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-backoffice/internal/model"
    "github.com/iliyamo/hotel-backoffice/internal/repository"
)

// PropertyHandler serves the property catalog.
type PropertyHandler struct {
    Properties *repository.PropertyRepo
}

// NewPropertyHandler constructs a PropertyHandler.
func NewPropertyHandler(p *repository.PropertyRepo) *PropertyHandler {
    return &PropertyHandler{Properties: p}
}

type propertyReq struct {
    DestinationID uint64 `json:"destination_id"`
    Name          string `json:"name"`
    Slug          string `json:"slug"`
    Address       string `json:"address"`
    Stars         uint8  `json:"stars"`
}

func (req *propertyReq) validate() (string, bool) {
    if req.DestinationID == 0 {
        return "destination_id required", false
    }
    if strings.TrimSpace(req.Name) == "" {
        return "name required", false
    }
    if req.Stars > 5 {
        return "stars must be between 0 and 5", false
    }
    return "", true
}

// List returns one page of properties within a destination.
func (h *PropertyHandler) List(c echo.Context) error {
    destID := uint64(queryUint(c, "destination_id", 0))
    if destID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "destination_id required"})
    }
    page := queryUint(c, "page", 1)
    size := queryUint(c, "size", 20)
    items, err := h.Properties.ListByDestination(c.Request().Context(), destID, page, size)
    if err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items, "page": page, "size": size})
}

// GetByID returns one property.
func (h *PropertyHandler) GetByID(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    p, err := h.Properties.GetByID(c.Request().Context(), id)
    if err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"property": p})
}

// Create inserts a property under an existing destination.
func (h *PropertyHandler) Create(c echo.Context) error {
    var req propertyReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg, ok := req.validate(); !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    p := &model.Property{
        DestinationID: req.DestinationID,
        Name:          req.Name,
        Slug:          req.Slug,
        Address:       req.Address,
        Stars:         req.Stars,
    }
    if err := h.Properties.Create(c.Request().Context(), p); err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"property": p})
}

// Update rewrites a property.
func (h *PropertyHandler) Update(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req propertyReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg, ok := req.validate(); !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    p := &model.Property{
        ID:            id,
        DestinationID: req.DestinationID,
        Name:          req.Name,
        Slug:          req.Slug,
        Address:       req.Address,
        Stars:         req.Stars,
    }
    if err := h.Properties.Update(c.Request().Context(), p); err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"property": p})
}

// Delete removes a property.  Properties with rooms yield 409.
func (h *PropertyHandler) Delete(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.Properties.Delete(c.Request().Context(), id); err != nil {
        return writeDomainError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
