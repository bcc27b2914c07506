// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationStatusChangedEvent is published whenever a reservation
// moves through its lifecycle (approve, complete, cancel, recover,
// archive).  It carries enough context for downstream consumers to log
// or notify without querying the primary database.
type ReservationStatusChangedEvent struct {
    ReservationID  uint64 `json:"reservation_id"`
    GuestName      string `json:"guest_name"`
    PreviousStatus string `json:"previous_status"`
    NewStatus      string `json:"new_status"`
    RoomID         uint64 `json:"room_id"`
    RoomsNumber    uint32 `json:"rooms_number"`
    CheckIn        string `json:"check_in"`
    CheckOut       string `json:"check_out"`
    TotalAmount    int64  `json:"total_amount"`
    ChangedBy      uint64 `json:"changed_by"`
    ChangedAt      string `json:"changed_at"`
}
