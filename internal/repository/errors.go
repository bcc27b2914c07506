// Package repository implements persistence over MySQL using raw SQL.
// This file defines sentinel errors reused across repositories so that
// handlers can map failure scenarios onto HTTP statuses with errors.Is.
package repository

import "errors"

// ErrReservationNotFound is returned when a reservation id does not
// exist.  Handlers translate it into a 404 that closes the editing view.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrRoomNotFound is returned when a room type id does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrFloorNotFound is returned when a floor id does not exist.
var ErrFloorNotFound = errors.New("floor not found")

// ErrDestinationNotFound is returned when a destination id does not exist.
var ErrDestinationNotFound = errors.New("destination not found")

// ErrPropertyNotFound is returned when a property id does not exist.
var ErrPropertyNotFound = errors.New("property not found")

// ErrConflict is returned when a delete or update cannot proceed
// because dependent records exist, such as removing a room type that
// still has live reservations.  Handlers translate this into a 409.
var ErrConflict = errors.New("conflict")
