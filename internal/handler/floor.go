package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-backoffice/internal/model"
    "github.com/iliyamo/hotel-backoffice/internal/repository"
)

// FloorHandler maintains floors and their room numbers.
type FloorHandler struct {
    Floors *repository.FloorRepo
}

// NewFloorHandler constructs a FloorHandler.
func NewFloorHandler(floors *repository.FloorRepo) *FloorHandler {
    return &FloorHandler{Floors: floors}
}

type floorReq struct {
    RoomID      uint64   `json:"room_id"`
    Range       string   `json:"range"`
    RoomNumbers []uint32 `json:"room_numbers"`
}

func (req *floorReq) slots() ([]model.RoomSlot, string) {
    if len(req.RoomNumbers) == 0 {
        return nil, "room_numbers required"
    }
    seen := make(map[uint32]bool, len(req.RoomNumbers))
    out := make([]model.RoomSlot, 0, len(req.RoomNumbers))
    for _, n := range req.RoomNumbers {
        if n == 0 {
            return nil, "room numbers must be positive"
        }
        if seen[n] {
            return nil, "duplicate room number"
        }
        seen[n] = true
        out = append(out, model.RoomSlot{Number: n})
    }
    return out, ""
}

// GetByID returns one floor with its raw room-number list.
func (h *FloorHandler) GetByID(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    f, err := h.Floors.GetByID(c.Request().Context(), id)
    if err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"floor": f})
}

// Create inserts a floor with its room numbers.
func (h *FloorHandler) Create(c echo.Context) error {
    var req floorReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.RoomID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id required"})
    }
    slots, msg := req.slots()
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    f := &model.Floor{RoomID: req.RoomID, Range: req.Range, Slots: slots}
    if err := h.Floors.Create(c.Request().Context(), f); err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"floor": f})
}

// Update rewrites a floor's label and room numbers.
func (h *FloorHandler) Update(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req floorReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    slots, msg := req.slots()
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    f := &model.Floor{ID: id, Range: req.Range, Slots: slots}
    if err := h.Floors.Update(c.Request().Context(), f); err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"floor": f})
}

// Delete removes a floor.  Floors referenced by a live assignment yield 409.
func (h *FloorHandler) Delete(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.Floors.Delete(c.Request().Context(), id); err != nil {
        return writeDomainError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
