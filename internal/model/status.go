// Package model defines the domain entities of the hotel back office:
// reservations, rooms, floors, destinations, properties and staff
// users, together with the reservation status machine.
package model

import "strings"

// Reservation lifecycle statuses.  DELETED is an archive state, not a
// hard removal; rows only leave the database through an explicit purge.
const (
    StatusPending   = "PENDING"
    StatusApproved  = "APPROVED"
    StatusCompleted = "COMPLETED"
    StatusCanceled  = "CANCELED"
    StatusDeleted   = "DELETED"
)

// transitions is the full status graph.  Absent entries are denied:
// COMPLETED and DELETED are terminal except through purge, and an
// APPROVED reservation cannot fall back to PENDING.
var transitions = map[string][]string{
    StatusPending:  {StatusApproved, StatusCanceled},
    StatusApproved: {StatusCompleted},
    StatusCanceled: {StatusPending, StatusDeleted},
}

// CanTransition reports whether the status graph defines an edge from
// one status to another.
func CanTransition(from, to string) bool {
    for _, next := range transitions[from] {
        if next == to {
            return true
        }
    }
    return false
}

// ValidStatus reports whether s is one of the five known statuses.
func ValidStatus(s string) bool {
    switch s {
    case StatusPending, StatusApproved, StatusCompleted, StatusCanceled, StatusDeleted:
        return true
    }
    return false
}

// NormalizeStatus upper-cases and trims a raw status string, returning
// the canonical constant or "" when the input is not a known status.
func NormalizeStatus(raw string) string {
    s := strings.ToUpper(strings.TrimSpace(raw))
    if ValidStatus(s) {
        return s
    }
    return ""
}

// Removable reports whether reservations in this status may be
// permanently deleted.  Everywhere else deletion is a reversible
// status change.
func Removable(status string) bool {
    return status == StatusDeleted || status == StatusCanceled
}
