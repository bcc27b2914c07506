package model

import "time"

// Property is a hotel within a destination.  Rooms and floors hang off a
// property; reservations reference rooms only.
type Property struct {
    ID            uint64    `json:"id"`
    DestinationID uint64    `json:"destination_id"`
    Name          string    `json:"name"`
    Slug          string    `json:"slug"`
    Address       string    `json:"address,omitempty"`
    Stars         uint8     `json:"stars"`
    CreatedAt     time.Time `json:"created_at"`
    UpdatedAt     time.Time `json:"updated_at"`
}
