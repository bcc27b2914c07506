package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-backoffice/internal/booking"
    "github.com/iliyamo/hotel-backoffice/internal/model"
    "github.com/iliyamo/hotel-backoffice/internal/repository"
)

// ReservationHandler serves the reservation CRUD surface: create, read,
// edit, list by status tab, the live price quote and the occupancy
// board for an editing session.
type ReservationHandler struct {
    Reservations *repository.ReservationRepo
    Rooms        *repository.RoomRepo
    Floors       *repository.FloorRepo
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(res *repository.ReservationRepo, rooms *repository.RoomRepo, floors *repository.FloorRepo) *ReservationHandler {
    return &ReservationHandler{Reservations: res, Rooms: rooms, Floors: floors}
}

type reservationReq struct {
    Person       model.Person        `json:"person"`
    Reserve      model.Reserve       `json:"reserve"`
    CheckedRooms []model.CheckedRoom `json:"checked_rooms"`
    Status       string              `json:"status"`
}

type reservationResp struct {
    Reservation *model.Reservation `json:"reservation"`
    Pricing     model.Pricing      `json:"pricing"`
    Nights      uint32             `json:"nights"`
}

func (h *ReservationHandler) respond(c echo.Context, status int, res *model.Reservation, room *model.Room) error {
    return c.JSON(status, reservationResp{
        Reservation: res,
        Pricing:     booking.Quote(res, room),
        Nights:      booking.Nights(res.Reserve.CheckIn, res.Reserve.CheckOut),
    })
}

// Create registers a new reservation.  It is born PENDING unless a
// manager submits it directly as APPROVED together with a complete,
// currently-available room assignment.
func (h *ReservationHandler) Create(c echo.Context) error {
    var req reservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx := c.Request().Context()

    room, err := h.Rooms.GetByID(ctx, req.Reserve.RoomID)
    if err != nil {
        if err == repository.ErrRoomNotFound {
            return writeDomainError(c, &booking.ValidationError{Field: "room_id", Message: "unknown room"})
        }
        return writeDomainError(c, err)
    }

    res := &model.Reservation{
        Person:  req.Person,
        Reserve: req.Reserve,
        Status:  model.StatusPending,
    }
    if err := booking.ValidateReservation(res, room); err != nil {
        return writeDomainError(c, err)
    }

    if s := model.NormalizeStatus(req.Status); s != "" && s != model.StatusPending {
        if s != model.StatusApproved {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "new reservations may only be PENDING or APPROVED", "field": "status"})
        }
        if role, _ := c.Get("role").(string); role != model.RoleManager {
            return c.JSON(http.StatusForbidden, echo.Map{"error": "only managers may create approved reservations"})
        }
        if err := h.pickRooms(c, res, req.CheckedRooms, 0); err != nil {
            return err
        }
        res.Status = model.StatusApproved
    }

    if err := h.Reservations.Create(ctx, res); err != nil {
        return writeDomainError(c, err)
    }
    return h.respond(c, http.StatusCreated, res, room)
}

// assignFromBoard replays requested picks through a tracker built from
// the current board, so unknown slots, slots held by another confirmed
// reservation and duplicate picks are all rejected before anything is
// persisted.  Every code path that accepts a client-submitted
// assignment (create, edit, approve, complete) goes through here.
func assignFromBoard(board *model.Board, roomsNumber uint32, picks []model.CheckedRoom) ([]model.CheckedRoom, error) {
    tracker := booking.NewTracker(*board, roomsNumber, nil)
    for _, cr := range picks {
        if err := tracker.Pick(cr.FloorID, cr.RoomNumber); err != nil {
            return nil, err
        }
    }
    if !tracker.Satisfied() {
        return nil, booking.ErrAssignmentIncomplete
    }
    return tracker.Assignments(), nil
}

// pickRooms loads the board and replays the requested assignment.  A
// non-nil return is already a written response.
func (h *ReservationHandler) pickRooms(c echo.Context, res *model.Reservation, rooms []model.CheckedRoom, excludeID uint64) error {
    board, err := h.Floors.BoardForRoom(c.Request().Context(), res.Reserve.RoomID, excludeID)
    if err != nil {
        return writeDomainError(c, err)
    }
    picked, err := assignFromBoard(board, res.Reserve.RoomsNumber, rooms)
    if err != nil {
        return writeDomainError(c, err)
    }
    res.CheckedRooms = picked
    return nil
}

// GetByID returns one reservation with its derived pricing.
func (h *ReservationHandler) GetByID(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx := c.Request().Context()
    res, err := h.Reservations.GetByID(ctx, id)
    if err != nil {
        return writeDomainError(c, err)
    }
    room, err := h.Rooms.GetByID(ctx, res.Reserve.RoomID)
    if err != nil && err != repository.ErrRoomNotFound {
        return writeDomainError(c, err)
    }
    // a deleted room type prices to zero instead of failing the read
    return h.respond(c, http.StatusOK, res, room)
}

// Update persists field edits to a PENDING or APPROVED reservation
// without changing its status.  A changed room assignment is replayed
// against the board first, excluding this reservation's own rooms.
func (h *ReservationHandler) Update(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req reservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx := c.Request().Context()

    current, err := h.Reservations.GetByID(ctx, id)
    if err != nil {
        return writeDomainError(c, err)
    }
    room, err := h.Rooms.GetByID(ctx, req.Reserve.RoomID)
    if err != nil {
        if err == repository.ErrRoomNotFound {
            return writeDomainError(c, &booking.ValidationError{Field: "room_id", Message: "unknown room"})
        }
        return writeDomainError(c, err)
    }

    edited := &model.Reservation{
        ID:      id,
        Person:  req.Person,
        Reserve: req.Reserve,
    }
    if err := booking.ValidateReservation(edited, room); err != nil {
        return writeDomainError(c, err)
    }
    if len(req.CheckedRooms) > 0 {
        if err := h.pickRooms(c, edited, req.CheckedRooms, id); err != nil {
            return err
        }
    } else {
        // an edit without picks keeps the stored assignment
        edited.CheckedRooms = current.CheckedRooms
    }

    store := booking.NewStore()
    store.Add(current)
    lc := booking.NewLifecycle(store, h.Reservations)
    if err := lc.SaveEdits(ctx, edited); err != nil {
        return writeDomainError(c, err)
    }
    saved, err := h.Reservations.GetByID(ctx, id)
    if err != nil {
        return writeDomainError(c, err)
    }
    return h.respond(c, http.StatusOK, saved, room)
}

type listResp struct {
    Items []reservationResp `json:"items"`
    Total uint32            `json:"total"`
    Page  uint32            `json:"page"`
    Size  uint32            `json:"size"`
}

// List returns one page of reservations for a status tab, optionally
// filtered by a guest-name/e-mail search and a check-in date range.
func (h *ReservationHandler) List(c echo.Context) error {
    status := model.NormalizeStatus(c.QueryParam("status"))
    if status == "" {
        status = model.StatusPending
    }
    filter := repository.ListFilter{Query: c.QueryParam("q")}
    if raw := c.QueryParam("from"); raw != "" {
        t, err := time.Parse("2006-01-02", raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD", "field": "from"})
        }
        filter.From = t
    }
    if raw := c.QueryParam("to"); raw != "" {
        t, err := time.Parse("2006-01-02", raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD", "field": "to"})
        }
        filter.To = t
    }
    page := queryUint(c, "page", 1)
    size := queryUint(c, "size", 20)

    ctx := c.Request().Context()
    items, total, err := h.Reservations.ListByStatus(ctx, status, filter, page, size)
    if err != nil {
        return writeDomainError(c, err)
    }

    roomCache := make(map[uint64]*model.Room)
    out := make([]reservationResp, 0, len(items))
    for _, res := range items {
        room, ok := roomCache[res.Reserve.RoomID]
        if !ok {
            room, err = h.Rooms.GetByID(ctx, res.Reserve.RoomID)
            if err != nil && err != repository.ErrRoomNotFound {
                return writeDomainError(c, err)
            }
            roomCache[res.Reserve.RoomID] = room
        }
        out = append(out, reservationResp{
            Reservation: res,
            Pricing:     booking.Quote(res, room),
            Nights:      booking.Nights(res.Reserve.CheckIn, res.Reserve.CheckOut),
        })
    }
    return c.JSON(http.StatusOK, listResp{Items: out, Total: total, Page: page, Size: size})
}

// Board returns the occupancy board for a reservation's room type with
// the reservation's own assignment excluded, so its rooms always show
// as available to the editing session.
func (h *ReservationHandler) Board(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx := c.Request().Context()
    res, err := h.Reservations.GetByID(ctx, id)
    if err != nil {
        return writeDomainError(c, err)
    }
    board, err := h.Floors.BoardForRoom(ctx, res.Reserve.RoomID, id)
    if err != nil {
        return writeDomainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "board":         board,
        "rooms_number":  res.Reserve.RoomsNumber,
        "checked_rooms": res.CheckedRooms,
    })
}

// Quote prices a draft reservation without persisting anything; the
// editing form calls it on every change to keep the price tile live.
func (h *ReservationHandler) Quote(c echo.Context) error {
    var req reservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx := c.Request().Context()
    res := &model.Reservation{Person: req.Person, Reserve: req.Reserve}

    var room *model.Room
    if req.Reserve.RoomID != 0 {
        var err error
        room, err = h.Rooms.GetByID(ctx, req.Reserve.RoomID)
        if err != nil && err != repository.ErrRoomNotFound {
            return writeDomainError(c, err)
        }
    }
    // an unfinished form quotes to zero rather than erroring
    return c.JSON(http.StatusOK, echo.Map{
        "pricing": booking.Quote(res, room),
        "nights":  booking.Nights(req.Reserve.CheckIn, req.Reserve.CheckOut),
    })
}
