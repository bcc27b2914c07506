package booking

import (
    "strings"

    "github.com/iliyamo/hotel-backoffice/internal/model"
)

// ValidatePerson checks the guest contact block.  Address fields and
// the note are optional.
func ValidatePerson(p model.Person) error {
    if strings.TrimSpace(p.FullName) == "" {
        return &ValidationError{Field: "full_name", Message: "required"}
    }
    if strings.TrimSpace(p.Email) == "" {
        return &ValidationError{Field: "email", Message: "required"}
    }
    if strings.TrimSpace(p.Phone) == "" {
        return &ValidationError{Field: "phone", Message: "required"}
    }
    return nil
}

// ValidateReserve checks the booking block against the selected room:
// dates present and ordered, capacity within room capacity × rooms
// count, every extra service present in the room catalog exactly once
// with at least one guest.
func ValidateReserve(rv model.Reserve, room *model.Room) error {
    if rv.RoomID == 0 {
        return &ValidationError{Field: "room_id", Message: "required"}
    }
    if room == nil || room.ID != rv.RoomID {
        return &ValidationError{Field: "room_id", Message: "unknown room"}
    }
    if rv.RoomsNumber == 0 {
        return &ValidationError{Field: "rooms_number", Message: "must be at least 1"}
    }
    if rv.CheckIn.IsZero() || rv.CheckOut.IsZero() {
        return &ValidationError{Field: "check_in", Message: "check-in and check-out are required"}
    }
    if Nights(rv.CheckIn, rv.CheckOut) == 0 {
        return &ValidationError{Field: "check_out", Message: "check-out must be after check-in"}
    }
    if rv.Adults == 0 {
        return &ValidationError{Field: "adults", Message: "must be at least 1"}
    }
    if rv.Adults > room.Capacity.Adults*rv.RoomsNumber {
        return &ValidationError{Field: "adults", Message: "exceeds room capacity"}
    }
    if rv.Children > room.Capacity.Children*rv.RoomsNumber {
        return &ValidationError{Field: "children", Message: "exceeds room capacity"}
    }
    catalog := make(map[uint64]bool, len(room.Services))
    for _, svc := range room.Services {
        catalog[svc.ID] = true
    }
    seen := make(map[uint64]bool, len(rv.ExtraServices))
    for _, sel := range rv.ExtraServices {
        if !catalog[sel.ServiceID] {
            return &ValidationError{Field: "extra_services", Message: "service not offered by this room"}
        }
        if seen[sel.ServiceID] {
            return &ValidationError{Field: "extra_services", Message: "duplicate service selection"}
        }
        seen[sel.ServiceID] = true
        if sel.Guests == 0 {
            return &ValidationError{Field: "extra_services", Message: "guests must be at least 1"}
        }
    }
    return nil
}

// ValidateReservation runs the person and reserve checks together, in
// form order.
func ValidateReservation(res *model.Reservation, room *model.Room) error {
    if err := ValidatePerson(res.Person); err != nil {
        return err
    }
    return ValidateReserve(res.Reserve, room)
}
