package model

import "time"

// RoomService is one entry in a room type's extra-service catalog, such
// as breakfast or airport pickup.  Price is per guest in whole DA.
type RoomService struct {
    ID    uint64 `json:"id"`
    Name  string `json:"name"`
    Price int64  `json:"price"`
}

// Capacity is the per-physical-room guest capacity of a room type.
type Capacity struct {
    Adults   uint32 `json:"adults"`
    Children uint32 `json:"children"`
}

// Room is a bookable room type.  The reservation core only reads rooms;
// managers maintain them through the catalog endpoints.
//
// Fields:
//  ID           – primary key identifier.
//  PropertyID   – the property this room type belongs to.
//  Name         – display name, e.g. "Double Deluxe".
//  Capacity     – adults/children capacity of one physical room.
//  Price        – nightly price in whole DA; 0 means "use DefaultPrice".
//  DefaultPrice – fallback nightly price in whole DA.
//  Services     – extra-service catalog scoped to this room type.
type Room struct {
    ID           uint64        `json:"id"`
    PropertyID   uint64        `json:"property_id"`
    Name         string        `json:"name"`
    Capacity     Capacity      `json:"capacity"`
    Price        int64         `json:"price"`
    DefaultPrice int64         `json:"default_price"`
    Services     []RoomService `json:"services,omitempty"`
    CreatedAt    time.Time     `json:"created_at"`
    UpdatedAt    time.Time     `json:"updated_at"`
}

// RoomSummary is the lightweight shape returned by the paginated room
// list used by the room-type picker.  It omits the service catalog and
// timestamps.
type RoomSummary struct {
    ID       uint64   `json:"id"`
    Name     string   `json:"name"`
    Capacity Capacity `json:"capacity"`
    Price    int64    `json:"price"`
}
