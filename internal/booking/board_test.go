package booking

import (
    "errors"
    "testing"

    "github.com/iliyamo/hotel-backoffice/internal/model"
)

func testBoard() model.Board {
    return model.Board{
        RoomID: 7,
        Floors: []model.Floor{
            {ID: 1, RoomID: 7, Range: "101-103", Slots: []model.RoomSlot{
                {Number: 101}, {Number: 102}, {Number: 103, Reserved: true},
            }},
            {ID: 2, RoomID: 7, Range: "201-202", Slots: []model.RoomSlot{
                {Number: 201}, {Number: 202},
            }},
        },
    }
}

func TestTrackerPickUnpick(t *testing.T) {
    tr := NewTracker(testBoard(), 2, nil)

    if err := tr.Pick(1, 101); err != nil {
        t.Fatalf("pick 101: %v", err)
    }
    if tr.Satisfied() {
        t.Fatal("satisfied with 1 of 2 picks")
    }
    if err := tr.Pick(2, 201); err != nil {
        t.Fatalf("pick 201: %v", err)
    }
    if !tr.Satisfied() {
        t.Fatal("not satisfied with 2 of 2 picks")
    }

    tr.Unpick(1, 101)
    if tr.Satisfied() {
        t.Fatal("satisfied after unpick")
    }
    if got := len(tr.Assignments()); got != 1 {
        t.Fatalf("assignments = %d, want 1", got)
    }
    // unpicking something never picked is a no-op
    tr.Unpick(9, 999)
    if got := len(tr.Assignments()); got != 1 {
        t.Fatalf("assignments after no-op unpick = %d, want 1", got)
    }
}

func TestTrackerRejections(t *testing.T) {
    tr := NewTracker(testBoard(), 2, nil)

    var verr *ValidationError
    if err := tr.Pick(1, 103); !errors.As(err, &verr) {
        t.Fatalf("picking a reserved slot should fail with a validation error, got %v", err)
    }
    if err := tr.Pick(1, 999); err == nil {
        t.Fatal("picking an unknown slot should fail")
    }
    if err := tr.Pick(1, 101); err != nil {
        t.Fatalf("pick 101: %v", err)
    }
    if err := tr.Pick(1, 101); err == nil {
        t.Fatal("duplicate pick should fail")
    }
}

// Rooms held by the reservation being edited are reselectable and
// pre-picked, so an edit session never blocks on its own assignment.
func TestTrackerOwnRoomsReselectable(t *testing.T) {
    board := testBoard()
    board.Floors[0].Slots[0].Reserved = true // 101 held by this reservation
    own := []model.CheckedRoom{{FloorID: 1, RoomNumber: 101}}

    tr := NewTracker(board, 2, own)
    if got := len(tr.Assignments()); got != 1 {
        t.Fatalf("own rooms not pre-picked: %d", got)
    }
    tr.Unpick(1, 101)
    if err := tr.Pick(1, 101); err != nil {
        t.Fatalf("own room not reselectable: %v", err)
    }
    // 103 is reserved by someone else and stays blocked
    if err := tr.Pick(1, 103); err == nil {
        t.Fatal("foreign reserved slot became pickable")
    }
}

func TestTrackerSetRoomClearsPicks(t *testing.T) {
    tr := NewTracker(testBoard(), 2, nil)
    if err := tr.Pick(1, 101); err != nil {
        t.Fatalf("pick: %v", err)
    }
    tr.SetRoom(8)
    if got := len(tr.Assignments()); got != 0 {
        t.Fatalf("assignments survived a room switch: %d", got)
    }
    // switching to the same room keeps the session
    tr2 := NewTracker(testBoard(), 2, nil)
    _ = tr2.Pick(1, 101)
    tr2.SetRoom(7)
    if got := len(tr2.Assignments()); got != 1 {
        t.Fatalf("same-room switch cleared picks: %d", got)
    }
}

func TestTrackerSatisfiedRequiresRoomsNumber(t *testing.T) {
    tr := NewTracker(testBoard(), 0, nil)
    if tr.Satisfied() {
        t.Fatal("a zero rooms_number must never satisfy the gate")
    }
}
