package model

import "testing"

func TestCanTransition(t *testing.T) {
    allowed := []struct{ from, to string }{
        {StatusPending, StatusApproved},
        {StatusPending, StatusCanceled},
        {StatusApproved, StatusCompleted},
        {StatusCanceled, StatusPending},
        {StatusCanceled, StatusDeleted},
    }
    for _, tc := range allowed {
        if !CanTransition(tc.from, tc.to) {
            t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
        }
    }
    denied := []struct{ from, to string }{
        {StatusApproved, StatusPending}, // no approved -> pending path
        {StatusCompleted, StatusPending},
        {StatusCompleted, StatusApproved},
        {StatusDeleted, StatusPending},
        {StatusPending, StatusCompleted},
        {"BOGUS", StatusPending},
    }
    for _, tc := range denied {
        if CanTransition(tc.from, tc.to) {
            t.Errorf("%s -> %s should be denied", tc.from, tc.to)
        }
    }
}

func TestNormalizeStatus(t *testing.T) {
    if got := NormalizeStatus(" pending "); got != StatusPending {
        t.Errorf("NormalizeStatus = %q, want PENDING", got)
    }
    if got := NormalizeStatus("bogus"); got != "" {
        t.Errorf("NormalizeStatus of unknown = %q, want empty", got)
    }
}

func TestRemovable(t *testing.T) {
    if !Removable(StatusDeleted) || !Removable(StatusCanceled) {
        t.Error("DELETED and CANCELED must be removable")
    }
    for _, s := range []string{StatusPending, StatusApproved, StatusCompleted} {
        if Removable(s) {
            t.Errorf("%s must not be removable", s)
        }
    }
}

func TestAssignmentComplete(t *testing.T) {
    r := Reservation{Reserve: Reserve{RoomsNumber: 2}}
    if r.AssignmentComplete() {
        t.Error("complete with no checked rooms")
    }
    r.CheckedRooms = []CheckedRoom{{FloorID: 1, RoomNumber: 101}, {FloorID: 1, RoomNumber: 102}}
    if !r.AssignmentComplete() {
        t.Error("incomplete with rooms_number checked rooms")
    }
    r.Reserve.RoomsNumber = 0
    r.CheckedRooms = nil
    if r.AssignmentComplete() {
        t.Error("zero rooms_number must never be complete")
    }
}
