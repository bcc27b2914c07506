package model

import "time"

// Person carries the guest contact details attached to a reservation.
// Only FullName, Gender, Email and Phone are mandatory; the address
// block and the free-form note are optional and stored as empty strings
// when absent.
type Person struct {
    FullName string `json:"full_name"`
    Gender   string `json:"gender"`
    Email    string `json:"email"`
    Phone    string `json:"phone"`
    Phone2   string `json:"phone2,omitempty"`
    Country  string `json:"country,omitempty"`
    State    string `json:"state,omitempty"`
    City     string `json:"city,omitempty"`
    Zipcode  string `json:"zipcode,omitempty"`
    Note     string `json:"note,omitempty"`
}

// SelectedService records one extra service chosen for a reservation and
// the number of guests it applies to.  The service must exist in the
// selected room's catalog and Guests must be at least 1.
type SelectedService struct {
    ServiceID uint64 `json:"service_id"`
    Guests    uint32 `json:"guests"`
}

// Reserve describes what is being booked: which room type, how many
// physical rooms, the stay window and the party size.
//
// Fields:
//  RoomID        – the room type being booked.
//  RoomsNumber   – count of physical rooms requested.
//  CheckIn       – arrival date (UTC midnight).
//  CheckOut      – departure date (UTC midnight).
//  StartHour     – time-of-day token such as "14:00"; opaque to the core.
//  Adults        – number of adults across all rooms.
//  Children      – number of children across all rooms.
//  ExtraServices – selected add-ons from the room's service catalog.
type Reserve struct {
    RoomID        uint64            `json:"room_id"`
    RoomsNumber   uint32            `json:"rooms_number"`
    CheckIn       time.Time         `json:"check_in"`
    CheckOut      time.Time         `json:"check_out"`
    StartHour     string            `json:"start_hour"`
    Adults        uint32            `json:"adults"`
    Children      uint32            `json:"children"`
    ExtraServices []SelectedService `json:"extra_services,omitempty"`
}

// CheckedRoom is one concrete physical room assignment: a floor and a
// room number on that floor.  A reservation needs exactly
// Reserve.RoomsNumber of these before it may be approved or completed.
type CheckedRoom struct {
    FloorID    uint64 `json:"floor_id"`
    RoomNumber uint32 `json:"room_number"`
}

// Pricing is the derived price breakdown for a reservation.  It is
// computed on demand from the room catalog and never treated as
// authoritative stored data.
type Pricing struct {
    Rooms         int64 `json:"rooms"`
    ExtraServices int64 `json:"extra_services"`
    Total         int64 `json:"total"`
}

// Reservation is the central entity: a booking request for one or more
// physical rooms over a date range, carrying guest details, optional
// extra services and, once rooms have been picked on the occupancy
// board, the concrete room assignments.
//
// Fields:
//  ID           – primary key identifier.
//  Person       – guest contact details.
//  Reserve      – what is being booked.
//  CheckedRooms – concrete (floor, room number) assignments; empty until
//                 rooms are picked on the board.
//  Status       – lifecycle state (PENDING, APPROVED, COMPLETED,
//                 CANCELED, DELETED).
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Reservation struct {
    ID           uint64        `json:"id"`
    Person       Person        `json:"person"`
    Reserve      Reserve       `json:"reserve"`
    CheckedRooms []CheckedRoom `json:"checked_rooms,omitempty"`
    Status       string        `json:"status"`
    CreatedAt    time.Time     `json:"created_at"`
    UpdatedAt    time.Time     `json:"updated_at"`
}

// AssignmentComplete reports whether the reservation has exactly as many
// checked rooms as it requests.  This is the single gate for the
// approve and complete transitions.
func (r *Reservation) AssignmentComplete() bool {
    return r.Reserve.RoomsNumber > 0 && uint32(len(r.CheckedRooms)) == r.Reserve.RoomsNumber
}

// Clone returns a deep copy of the reservation.  The store hands out
// clones so callers can never mutate collection state through a shared
// slice or pointer.
func (r *Reservation) Clone() *Reservation {
    cp := *r
    if r.Reserve.ExtraServices != nil {
        cp.Reserve.ExtraServices = make([]SelectedService, len(r.Reserve.ExtraServices))
        copy(cp.Reserve.ExtraServices, r.Reserve.ExtraServices)
    }
    if r.CheckedRooms != nil {
        cp.CheckedRooms = make([]CheckedRoom, len(r.CheckedRooms))
        copy(cp.CheckedRooms, r.CheckedRooms)
    }
    return &cp
}
