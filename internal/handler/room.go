package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-backoffice/internal/model"
    "github.com/iliyamo/hotel-backoffice/internal/repository"
)

// RoomHandler serves the room-type catalog: the paginated picker list,
// full detail, manager CRUD and the raw occupancy board for new
// reservations.
type RoomHandler struct {
    Rooms  *repository.RoomRepo
    Floors *repository.FloorRepo
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(rooms *repository.RoomRepo, floors *repository.FloorRepo) *RoomHandler {
    return &RoomHandler{Rooms: rooms, Floors: floors}
}

// List returns one page of room summaries for the room-type picker.
func (h *RoomHandler) List(c echo.Context) error {
    page := queryUint(c, "page", 1)
    size := queryUint(c, "size", 20)
    items, err := h.Rooms.ListSummaries(c.Request().Context(), page, size)
    if err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items, "page": page, "size": size})
}

// GetByID returns one room type with its full service catalog.
func (h *RoomHandler) GetByID(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    room, err := h.Rooms.GetByID(c.Request().Context(), id)
    if err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"room": room})
}

// Board returns the occupancy board for a room type.  The optional
// exclude query names a reservation whose own assignment should show as
// available, for editing sessions that have not saved yet.
func (h *RoomHandler) Board(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    exclude := uint64(queryUint(c, "exclude", 0))
    board, err := h.Floors.BoardForRoom(c.Request().Context(), id, exclude)
    if err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"board": board})
}

type roomReq struct {
    PropertyID   uint64              `json:"property_id"`
    Name         string              `json:"name"`
    Capacity     model.Capacity      `json:"capacity"`
    Price        int64               `json:"price"`
    DefaultPrice int64               `json:"default_price"`
    Services     []model.RoomService `json:"services"`
}

func (req *roomReq) validate() (string, bool) {
    if req.Name == "" {
        return "name required", false
    }
    if req.Capacity.Adults == 0 {
        return "capacity.adults must be at least 1", false
    }
    if req.Price < 0 || req.DefaultPrice < 0 {
        return "prices must not be negative", false
    }
    for _, svc := range req.Services {
        if svc.Name == "" || svc.Price < 0 {
            return "each service needs a name and a non-negative price", false
        }
    }
    return "", true
}

// Create inserts a room type with its service catalog.
func (h *RoomHandler) Create(c echo.Context) error {
    var req roomReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg, ok := req.validate(); !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    room := &model.Room{
        PropertyID:   req.PropertyID,
        Name:         req.Name,
        Capacity:     req.Capacity,
        Price:        req.Price,
        DefaultPrice: req.DefaultPrice,
        Services:     req.Services,
    }
    if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"room": room})
}

// Update rewrites a room type and replaces its service catalog.
// Services passed back with their ids keep them so existing
// reservations stay linked.
func (h *RoomHandler) Update(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req roomReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg, ok := req.validate(); !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    room := &model.Room{
        ID:           id,
        PropertyID:   req.PropertyID,
        Name:         req.Name,
        Capacity:     req.Capacity,
        Price:        req.Price,
        DefaultPrice: req.DefaultPrice,
        Services:     req.Services,
    }
    if err := h.Rooms.Update(c.Request().Context(), room); err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"room": room})
}

// Delete removes a room type.  Rooms with live reservations yield 409.
func (h *RoomHandler) Delete(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
        return writeDomainError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
