package model

// RoomSlot is one physical room number on a floor together with its
// availability on the occupancy board.  Reserved means a different
// confirmed reservation currently holds the slot.
type RoomSlot struct {
    Number   uint32 `json:"number"`
    Reserved bool   `json:"reserved"`
}

// Floor is one floor of a property, scoped to a single room type.  The
// Range label is display-only ("101-120").  Slots enumerate the room
// numbers on the floor.
type Floor struct {
    ID     uint64     `json:"id"`
    RoomID uint64     `json:"room_id"`
    Range  string     `json:"range"`
    Slots  []RoomSlot `json:"slots"`
}

// Board is the occupancy view for one room type: every floor with every
// room-number slot and its availability.  Handlers build it per request;
// the booking tracker consumes it in memory.
type Board struct {
    RoomID uint64  `json:"room_id"`
    Floors []Floor `json:"floors"`
}
