package booking

import (
    "github.com/iliyamo/hotel-backoffice/internal/model"
)

// Tracker accumulates the concrete (floor, room number) picks an
// operator makes on the occupancy board for one reservation-editing
// session.  Picks are purely local; nothing is persisted until the
// surrounding action (approve, complete, save) writes the assignment
// set through the gateway.
//
// Rooms already reserved by the reservation being edited are passed in
// as own assignments and stay selectable even though the raw board
// marks them reserved, so editing a reservation never blocks on its own
// rooms.
type Tracker struct {
    roomID      uint64
    roomsNumber uint32
    slots       map[slotKey]bool // key -> reserved by another reservation
    picks       []model.CheckedRoom
}

type slotKey struct {
    floorID    uint64
    roomNumber uint32
}

// NewTracker builds a tracker from an occupancy board, the number of
// rooms the reservation requests and the reservation's own previously
// checked rooms (nil when creating a new reservation).  Own rooms are
// re-marked available and pre-picked so the session starts from the
// stored assignment.
func NewTracker(board model.Board, roomsNumber uint32, own []model.CheckedRoom) *Tracker {
    t := &Tracker{
        roomID:      board.RoomID,
        roomsNumber: roomsNumber,
        slots:       make(map[slotKey]bool),
    }
    for _, f := range board.Floors {
        for _, s := range f.Slots {
            t.slots[slotKey{f.ID, s.Number}] = s.Reserved
        }
    }
    for _, cr := range own {
        k := slotKey{cr.FloorID, cr.RoomNumber}
        if _, ok := t.slots[k]; ok {
            t.slots[k] = false
            t.picks = append(t.picks, cr)
        }
    }
    return t
}

// Pick adds a (floor, room number) pair to the assignment set.  It
// rejects unknown slots, slots reserved by another reservation and
// duplicate picks.
func (t *Tracker) Pick(floorID uint64, roomNumber uint32) error {
    k := slotKey{floorID, roomNumber}
    reserved, ok := t.slots[k]
    if !ok {
        return &ValidationError{Field: "checked_rooms", Message: "room not on the board"}
    }
    if reserved {
        return &ValidationError{Field: "checked_rooms", Message: "room already reserved"}
    }
    for _, p := range t.picks {
        if p.FloorID == floorID && p.RoomNumber == roomNumber {
            return &ValidationError{Field: "checked_rooms", Message: "room already picked"}
        }
    }
    t.picks = append(t.picks, model.CheckedRoom{FloorID: floorID, RoomNumber: roomNumber})
    return nil
}

// Unpick removes a pick by its (floor, room number) key.  Removing a
// pair that was never picked is a no-op.
func (t *Tracker) Unpick(floorID uint64, roomNumber uint32) {
    for i, p := range t.picks {
        if p.FloorID == floorID && p.RoomNumber == roomNumber {
            t.picks = append(t.picks[:i], t.picks[i+1:]...)
            return
        }
    }
}

// SetRoom switches the session to a different room type.  Board data is
// specific to one room type, so the entire assignment set is discarded;
// the caller must load the new board into a fresh tracker and also drop
// any selected extra services.
func (t *Tracker) SetRoom(roomID uint64) {
    if roomID == t.roomID {
        return
    }
    t.roomID = roomID
    t.slots = make(map[slotKey]bool)
    t.picks = nil
}

// Assignments returns a copy of the current picks.
func (t *Tracker) Assignments() []model.CheckedRoom {
    out := make([]model.CheckedRoom, len(t.picks))
    copy(out, t.picks)
    return out
}

// Satisfied reports whether exactly roomsNumber rooms have been picked.
// This boolean is the single gate the lifecycle applies before allowing
// approve and complete.
func (t *Tracker) Satisfied() bool {
    return t.roomsNumber > 0 && uint32(len(t.picks)) == t.roomsNumber
}
