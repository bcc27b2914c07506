package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-backoffice/internal/booking"
    "github.com/iliyamo/hotel-backoffice/internal/model"
    "github.com/iliyamo/hotel-backoffice/internal/queue"
    "github.com/iliyamo/hotel-backoffice/internal/repository"
    queuepub "github.com/iliyamo/hotel-backoffice/internal/service"
)

// reservationGateway is the persistence surface the status actions
// need: reads for hydration plus the booking gateway for writes.
// *repository.ReservationRepo satisfies it.
type reservationGateway interface {
    GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
    booking.Gateway
}

// roomCatalog resolves room types for validation and pricing.
type roomCatalog interface {
    GetByID(ctx context.Context, id uint64) (*model.Room, error)
}

// boardSource builds the occupancy board used to vet room assignments.
type boardSource interface {
    BoardForRoom(ctx context.Context, roomID, excludeReservation uint64) (*model.Board, error)
}

// ReservationStatusHandler drives the reservation lifecycle over HTTP:
// approve, complete, cancel, recover, archive, the bulk variants and
// the permanent deletes.  Every action loads the targeted reservations,
// replays the transition through the booking lifecycle (which persists
// through the repository) and, on success, publishes a status-changed
// event.  Publishing is best-effort and never fails the request.
type ReservationStatusHandler struct {
    Reservations reservationGateway
    Rooms        roomCatalog
    Floors       boardSource

    publish func(context.Context, queue.ReservationStatusChangedEvent) error
}

// NewReservationStatusHandler constructs a ReservationStatusHandler.
func NewReservationStatusHandler(res reservationGateway, rooms roomCatalog, floors boardSource) *ReservationStatusHandler {
    return &ReservationStatusHandler{
        Reservations: res,
        Rooms:        rooms,
        Floors:       floors,
        publish:      queuepub.PublishStatusChanged,
    }
}

// lifecycleFor loads the given reservations into a fresh working-set
// store and returns a lifecycle bound to it.  The HTTP layer is
// stateless; each request hydrates exactly the rows it acts on.
func (h *ReservationStatusHandler) lifecycleFor(ctx context.Context, ids ...uint64) (*booking.Lifecycle, error) {
    store := booking.NewStore()
    for _, id := range ids {
        res, err := h.Reservations.GetByID(ctx, id)
        if err != nil {
            if err == repository.ErrReservationNotFound {
                return nil, booking.ErrNotFound
            }
            return nil, err
        }
        store.Add(res)
    }
    return booking.NewLifecycle(store, h.Reservations), nil
}

// emitStatusChange publishes a status-changed event for one
// reservation.  Failures are logged by the publisher and ignored here.
func (h *ReservationStatusHandler) emitStatusChange(c echo.Context, res *model.Reservation, previous string) {
    var total int64
    if room, err := h.Rooms.GetByID(c.Request().Context(), res.Reserve.RoomID); err == nil {
        total = booking.Quote(res, room).Total
    }
    ev := queue.ReservationStatusChangedEvent{
        ReservationID:  res.ID,
        GuestName:      res.Person.FullName,
        PreviousStatus: previous,
        NewStatus:      res.Status,
        RoomID:         res.Reserve.RoomID,
        RoomsNumber:    res.Reserve.RoomsNumber,
        CheckIn:        res.Reserve.CheckIn.UTC().Format("2006-01-02"),
        CheckOut:       res.Reserve.CheckOut.UTC().Format("2006-01-02"),
        TotalAmount:    total,
        ChangedBy:      getUserID(c),
        ChangedAt:      time.Now().UTC().Format(time.RFC3339),
    }
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = h.publish(ctx, ev)
}

type approveReq struct {
    CheckedRooms []model.CheckedRoom `json:"checked_rooms"`
}

// Approve moves a PENDING reservation to APPROVED with the submitted
// room assignment.  The picks are replayed against the current board
// before anything is persisted, so a slot held by another confirmed
// reservation rejects the approval the same way it would reject a pick.
func (h *ReservationStatusHandler) Approve(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req approveReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    ctx := c.Request().Context()
    lc, err := h.lifecycleFor(ctx, id)
    if err != nil {
        return writeDomainError(c, err)
    }
    current, err := lc.Store().Get(id)
    if err != nil {
        return writeDomainError(c, err)
    }
    board, err := h.Floors.BoardForRoom(ctx, current.Reserve.RoomID, id)
    if err != nil {
        return writeDomainError(c, err)
    }
    rooms, err := assignFromBoard(board, current.Reserve.RoomsNumber, req.CheckedRooms)
    if err != nil {
        return writeDomainError(c, err)
    }
    res, err := lc.Approve(ctx, id, rooms)
    if err != nil {
        return writeDomainError(c, err)
    }
    h.emitStatusChange(c, res, model.StatusPending)
    return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// Complete moves an APPROVED reservation to COMPLETED, persisting any
// final edits the operator made in the completion form.  The request
// body is decoded over the stored values, so a partial payload edits
// the reservation rather than blanking it; the merged result passes the
// same field validation and board replay as the create and edit paths.
func (h *ReservationStatusHandler) Complete(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx := c.Request().Context()
    lc, err := h.lifecycleFor(ctx, id)
    if err != nil {
        return writeDomainError(c, err)
    }
    current, err := lc.Store().Get(id)
    if err != nil {
        return writeDomainError(c, err)
    }

    req := reservationReq{
        Person:       current.Person,
        Reserve:      current.Reserve,
        CheckedRooms: current.CheckedRooms,
    }
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    room, err := h.Rooms.GetByID(ctx, req.Reserve.RoomID)
    if err != nil {
        if err == repository.ErrRoomNotFound {
            return writeDomainError(c, &booking.ValidationError{Field: "room_id", Message: "unknown room"})
        }
        return writeDomainError(c, err)
    }
    edited := &model.Reservation{ID: id, Person: req.Person, Reserve: req.Reserve}
    if err := booking.ValidateReservation(edited, room); err != nil {
        return writeDomainError(c, err)
    }
    board, err := h.Floors.BoardForRoom(ctx, req.Reserve.RoomID, id)
    if err != nil {
        return writeDomainError(c, err)
    }
    if edited.CheckedRooms, err = assignFromBoard(board, req.Reserve.RoomsNumber, req.CheckedRooms); err != nil {
        return writeDomainError(c, err)
    }

    res, err := lc.Complete(ctx, edited)
    if err != nil {
        return writeDomainError(c, err)
    }
    h.emitStatusChange(c, res, model.StatusApproved)
    return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// transitionOne factors the status-only single-row actions.
func (h *ReservationStatusHandler) transitionOne(c echo.Context, previous string, act func(*booking.Lifecycle, context.Context, uint64) error) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx := c.Request().Context()
    lc, err := h.lifecycleFor(ctx, id)
    if err != nil {
        return writeDomainError(c, err)
    }
    if err := act(lc, ctx, id); err != nil {
        return writeDomainError(c, err)
    }
    res, err := lc.Store().Get(id)
    if err != nil {
        return writeDomainError(c, err)
    }
    h.emitStatusChange(c, res, previous)
    return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// Cancel moves a PENDING reservation to CANCELED.
func (h *ReservationStatusHandler) Cancel(c echo.Context) error {
    return h.transitionOne(c, model.StatusPending, (*booking.Lifecycle).Cancel)
}

// Recover moves a CANCELED reservation back to PENDING.
func (h *ReservationStatusHandler) Recover(c echo.Context) error {
    return h.transitionOne(c, model.StatusCanceled, (*booking.Lifecycle).Recover)
}

// Archive moves a CANCELED reservation to DELETED.
func (h *ReservationStatusHandler) Archive(c echo.Context) error {
    return h.transitionOne(c, model.StatusCanceled, (*booking.Lifecycle).Archive)
}

type bulkReq struct {
    IDs []uint64 `json:"ids"`
}

// transitionMany factors the bulk actions.  The whole batch either
// succeeds or is rejected; per-row events are published on success.
func (h *ReservationStatusHandler) transitionMany(c echo.Context, previous string, act func(*booking.Lifecycle, context.Context, []uint64) error) error {
    var req bulkReq
    if err := c.Bind(&req); err != nil || len(req.IDs) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids required"})
    }
    ctx := c.Request().Context()
    lc, err := h.lifecycleFor(ctx, req.IDs...)
    if err != nil {
        return writeDomainError(c, err)
    }
    if err := act(lc, ctx, req.IDs); err != nil {
        return writeDomainError(c, err)
    }
    for _, id := range req.IDs {
        if res, err := lc.Store().Get(id); err == nil {
            h.emitStatusChange(c, res, previous)
        }
    }
    return c.JSON(http.StatusOK, echo.Map{"updated": len(req.IDs)})
}

// CancelMany bulk-cancels PENDING reservations.
func (h *ReservationStatusHandler) CancelMany(c echo.Context) error {
    return h.transitionMany(c, model.StatusPending, (*booking.Lifecycle).CancelMany)
}

// ArchiveMany bulk-archives CANCELED reservations.
func (h *ReservationStatusHandler) ArchiveMany(c echo.Context) error {
    return h.transitionMany(c, model.StatusCanceled, (*booking.Lifecycle).ArchiveMany)
}

// HardDelete permanently removes a CANCELED or DELETED reservation.
func (h *ReservationStatusHandler) HardDelete(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx := c.Request().Context()
    lc, err := h.lifecycleFor(ctx, id)
    if err != nil {
        return writeDomainError(c, err)
    }
    if err := lc.HardDelete(ctx, id); err != nil {
        return writeDomainError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// Purge permanently removes every reservation in a removable status.
// The status comes from the query string, e.g. DELETE /v1/reservations?status=DELETED.
func (h *ReservationStatusHandler) Purge(c echo.Context) error {
    status := model.NormalizeStatus(c.QueryParam("status"))
    if status == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status required", "field": "status"})
    }
    if !model.Removable(status) {
        return c.JSON(http.StatusConflict, echo.Map{"error": "only CANCELED and DELETED reservations can be purged"})
    }
    if err := h.Reservations.DeleteAllWithStatus(c.Request().Context(), status); err != nil {
        return writeDomainError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
