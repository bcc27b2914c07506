package booking

import (
    "context"
    "errors"
    "reflect"
    "testing"
    "time"

    "github.com/iliyamo/hotel-backoffice/internal/model"
)

// mockGateway implements Gateway for testing.  Each method records its
// call count and fails with the configured error when set.
type mockGateway struct {
    updateErr             error
    updateStatusErr       error
    updateManyErr         error
    updateCheckedErr      error
    deleteErr             error
    deleteAllErr          error
    updateCalls           int
    updateStatusCalls     int
    updateManyCalls       int
    updateCheckedCalls    int
    deleteCalls           int
    deleteAllCalls        int
}

func (m *mockGateway) Update(ctx context.Context, res *model.Reservation) error {
    m.updateCalls++
    return m.updateErr
}

func (m *mockGateway) UpdateStatus(ctx context.Context, id uint64, status string) error {
    m.updateStatusCalls++
    return m.updateStatusErr
}

func (m *mockGateway) UpdateManyStatuses(ctx context.Context, ids []uint64, status string) error {
    m.updateManyCalls++
    return m.updateManyErr
}

func (m *mockGateway) UpdateCheckedRooms(ctx context.Context, id uint64, rooms []model.CheckedRoom) error {
    m.updateCheckedCalls++
    return m.updateCheckedErr
}

func (m *mockGateway) Delete(ctx context.Context, id uint64) error {
    m.deleteCalls++
    return m.deleteErr
}

func (m *mockGateway) DeleteAllWithStatus(ctx context.Context, status string) error {
    m.deleteAllCalls++
    return m.deleteAllErr
}

var _ Gateway = (*mockGateway)(nil)

func pendingReservation(id uint64, roomsNumber uint32) *model.Reservation {
    return &model.Reservation{
        ID: id,
        Person: model.Person{
            FullName: "Amine Bensalem",
            Gender:   "male",
            Email:    "amine@example.com",
            Phone:    "+213550000000",
        },
        Reserve: model.Reserve{
            RoomID:      7,
            RoomsNumber: roomsNumber,
            CheckIn:     time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
            CheckOut:    time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC),
            StartHour:   "14:00",
            Adults:      2,
        },
        Status: model.StatusPending,
    }
}

func newLifecycle(gw *mockGateway, seed ...*model.Reservation) *Lifecycle {
    store := NewStore()
    for _, res := range seed {
        store.Add(res)
    }
    return NewLifecycle(store, gw)
}

func TestApprove(t *testing.T) {
    gw := &mockGateway{}
    l := newLifecycle(gw, pendingReservation(1, 2))

    rooms := []model.CheckedRoom{{FloorID: 1, RoomNumber: 101}, {FloorID: 2, RoomNumber: 201}}
    res, err := l.Approve(context.Background(), 1, rooms)
    if err != nil {
        t.Fatalf("approve: %v", err)
    }
    if res.Status != model.StatusApproved {
        t.Errorf("status = %s, want APPROVED", res.Status)
    }
    if len(res.CheckedRooms) != 2 {
        t.Errorf("checked rooms = %d, want 2", len(res.CheckedRooms))
    }
    if gw.updateCheckedCalls != 1 || gw.updateStatusCalls != 1 {
        t.Errorf("gateway calls = %d/%d, want 1/1", gw.updateCheckedCalls, gw.updateStatusCalls)
    }
}

// Approving with a short assignment must be rejected locally: no remote
// call, status stays PENDING.
func TestApproveIncompleteAssignment(t *testing.T) {
    gw := &mockGateway{}
    l := newLifecycle(gw, pendingReservation(1, 2))

    _, err := l.Approve(context.Background(), 1, []model.CheckedRoom{{FloorID: 1, RoomNumber: 101}})
    if !errors.Is(err, ErrAssignmentIncomplete) {
        t.Fatalf("err = %v, want ErrAssignmentIncomplete", err)
    }
    if gw.updateCheckedCalls != 0 && gw.updateStatusCalls != 0 {
        t.Error("remote call issued despite incomplete assignment")
    }
    res, _ := l.Store().Get(1)
    if res.Status != model.StatusPending {
        t.Errorf("status = %s, want PENDING", res.Status)
    }
}

// Transitions are checked against the current status before any remote
// call is made.
func TestApproveWrongSourceStatus(t *testing.T) {
    gw := &mockGateway{}
    completed := pendingReservation(1, 1)
    completed.Status = model.StatusCompleted
    l := newLifecycle(gw, completed)

    _, err := l.Approve(context.Background(), 1, []model.CheckedRoom{{FloorID: 1, RoomNumber: 101}})
    if !errors.Is(err, ErrInvalidTransition) {
        t.Fatalf("err = %v, want ErrInvalidTransition", err)
    }
    if gw.updateCheckedCalls != 0 || gw.updateStatusCalls != 0 {
        t.Error("remote call issued for an invalid transition")
    }
}

func TestApproveRemoteFailureLeavesStoreUntouched(t *testing.T) {
    gw := &mockGateway{updateStatusErr: errors.New("network down")}
    l := newLifecycle(gw, pendingReservation(1, 1))

    _, err := l.Approve(context.Background(), 1, []model.CheckedRoom{{FloorID: 1, RoomNumber: 101}})
    var rerr *RemoteError
    if !errors.As(err, &rerr) {
        t.Fatalf("err = %v, want RemoteError", err)
    }
    res, _ := l.Store().Get(1)
    if res.Status != model.StatusPending || len(res.CheckedRooms) != 0 {
        t.Errorf("local state mutated after remote failure: %+v", res)
    }
}

func TestComplete(t *testing.T) {
    gw := &mockGateway{}
    approved := pendingReservation(1, 1)
    approved.Status = model.StatusApproved
    approved.CheckedRooms = []model.CheckedRoom{{FloorID: 1, RoomNumber: 101}}
    l := newLifecycle(gw, approved)

    edited := approved.Clone()
    edited.Person.Note = "late arrival"
    res, err := l.Complete(context.Background(), edited)
    if err != nil {
        t.Fatalf("complete: %v", err)
    }
    if res.Status != model.StatusCompleted {
        t.Errorf("status = %s, want COMPLETED", res.Status)
    }
    if res.Person.Note != "late arrival" {
        t.Error("field edits were not persisted before completion")
    }
    if gw.updateCalls != 1 || gw.updateStatusCalls != 1 {
        t.Errorf("gateway calls = %d/%d, want 1/1", gw.updateCalls, gw.updateStatusCalls)
    }
}

// The completion gate re-applies against the edited values: an editor
// who reassigned down to fewer rooms than requested is rejected.
func TestCompleteReappliesAssignmentGate(t *testing.T) {
    gw := &mockGateway{}
    approved := pendingReservation(1, 2)
    approved.Status = model.StatusApproved
    approved.CheckedRooms = []model.CheckedRoom{{FloorID: 1, RoomNumber: 101}, {FloorID: 2, RoomNumber: 201}}
    l := newLifecycle(gw, approved)

    edited := approved.Clone()
    edited.CheckedRooms = edited.CheckedRooms[:1]
    if _, err := l.Complete(context.Background(), edited); !errors.Is(err, ErrAssignmentIncomplete) {
        t.Fatalf("err = %v, want ErrAssignmentIncomplete", err)
    }
    if gw.updateCalls != 0 {
        t.Error("remote call issued despite incomplete assignment")
    }
}

// A cancel followed by a recover is a status-only round trip: person
// and reserve fields come back identical.
func TestRecoverRoundTrip(t *testing.T) {
    gw := &mockGateway{}
    orig := pendingReservation(1, 2)
    orig.Reserve.ExtraServices = []model.SelectedService{{ServiceID: 3, Guests: 2}}
    l := newLifecycle(gw, orig)

    before, _ := l.Store().Get(1)
    if err := l.Cancel(context.Background(), 1); err != nil {
        t.Fatalf("cancel: %v", err)
    }
    if err := l.Recover(context.Background(), 1); err != nil {
        t.Fatalf("recover: %v", err)
    }
    after, _ := l.Store().Get(1)
    if after.Status != model.StatusPending {
        t.Fatalf("status = %s, want PENDING", after.Status)
    }
    if !reflect.DeepEqual(before.Person, after.Person) {
        t.Error("person fields changed across cancel/recover")
    }
    if !reflect.DeepEqual(before.Reserve, after.Reserve) {
        t.Error("reserve fields changed across cancel/recover")
    }
}

func TestCancelMany(t *testing.T) {
    gw := &mockGateway{}
    l := newLifecycle(gw, pendingReservation(1, 1), pendingReservation(2, 1))

    if err := l.CancelMany(context.Background(), []uint64{1, 2}); err != nil {
        t.Fatalf("cancel many: %v", err)
    }
    for _, id := range []uint64{1, 2} {
        res, _ := l.Store().Get(id)
        if res.Status != model.StatusCanceled {
            t.Errorf("id %d status = %s, want CANCELED", id, res.Status)
        }
    }
    if gw.updateManyCalls != 1 {
        t.Errorf("bulk calls = %d, want 1", gw.updateManyCalls)
    }
}

// A batch containing an id whose current status differs from the
// expected source state is rejected whole, before any remote call.
func TestBulkRejectsMixedStatuses(t *testing.T) {
    gw := &mockGateway{}
    other := pendingReservation(2, 1)
    other.Status = model.StatusApproved
    l := newLifecycle(gw, pendingReservation(1, 1), other)

    if err := l.CancelMany(context.Background(), []uint64{1, 2}); !errors.Is(err, ErrStatusMismatch) {
        t.Fatalf("err = %v, want ErrStatusMismatch", err)
    }
    if gw.updateManyCalls != 0 {
        t.Error("remote call issued for a mixed-status batch")
    }
    res, _ := l.Store().Get(1)
    if res.Status != model.StatusPending {
        t.Error("a record from the rejected batch was mutated")
    }
}

// A failing bulk remote call leaves every targeted record untouched:
// the batch is atomic from the caller's perspective.
func TestBulkAtomicOnRemoteFailure(t *testing.T) {
    gw := &mockGateway{updateManyErr: errors.New("gateway timeout")}
    a, b := pendingReservation(1, 1), pendingReservation(2, 1)
    l := newLifecycle(gw, a, b)

    before := []*model.Reservation{}
    for _, id := range []uint64{1, 2} {
        res, _ := l.Store().Get(id)
        before = append(before, res)
    }
    var rerr *RemoteError
    if err := l.CancelMany(context.Background(), []uint64{1, 2}); !errors.As(err, &rerr) {
        t.Fatalf("err = %v, want RemoteError", err)
    }
    for i, id := range []uint64{1, 2} {
        after, _ := l.Store().Get(id)
        if !reflect.DeepEqual(before[i], after) {
            t.Errorf("id %d mutated after failed bulk call", id)
        }
    }
}

func TestArchiveAndHardDelete(t *testing.T) {
    gw := &mockGateway{}
    canceled := pendingReservation(1, 1)
    canceled.Status = model.StatusCanceled
    l := newLifecycle(gw, canceled)

    if err := l.Archive(context.Background(), 1); err != nil {
        t.Fatalf("archive: %v", err)
    }
    res, _ := l.Store().Get(1)
    if res.Status != model.StatusDeleted {
        t.Fatalf("status = %s, want DELETED", res.Status)
    }
    if err := l.HardDelete(context.Background(), 1); err != nil {
        t.Fatalf("hard delete: %v", err)
    }
    if _, err := l.Store().Get(1); !errors.Is(err, ErrNotFound) {
        t.Error("record still present after hard delete")
    }
}

func TestHardDeleteRequiresRemovableStatus(t *testing.T) {
    gw := &mockGateway{}
    l := newLifecycle(gw, pendingReservation(1, 1))

    if err := l.HardDelete(context.Background(), 1); !errors.Is(err, ErrInvalidTransition) {
        t.Fatalf("err = %v, want ErrInvalidTransition", err)
    }
    if gw.deleteCalls != 0 {
        t.Error("remote delete issued for a PENDING reservation")
    }
}

func TestPurgeStatus(t *testing.T) {
    gw := &mockGateway{}
    a := pendingReservation(1, 1)
    a.Status = model.StatusDeleted
    b := pendingReservation(2, 1)
    l := newLifecycle(gw, a, b)

    if err := l.PurgeStatus(context.Background(), model.StatusDeleted); err != nil {
        t.Fatalf("purge: %v", err)
    }
    if _, err := l.Store().Get(1); !errors.Is(err, ErrNotFound) {
        t.Error("archived record survived the purge")
    }
    if _, err := l.Store().Get(2); err != nil {
        t.Error("pending record was purged")
    }
    if err := l.PurgeStatus(context.Background(), model.StatusPending); !errors.Is(err, ErrInvalidTransition) {
        t.Fatalf("purging PENDING must be rejected, got %v", err)
    }
}

// End to end: create with rooms_number=2, pick two rooms on the board,
// approve; then show the short-pick rejection path.
func TestApproveEndToEnd(t *testing.T) {
    gw := &mockGateway{}
    l := newLifecycle(gw, pendingReservation(1, 2))

    tr := NewTracker(testBoard(), 2, nil)
    if err := tr.Pick(1, 101); err != nil {
        t.Fatalf("pick: %v", err)
    }
    if err := tr.Pick(2, 201); err != nil {
        t.Fatalf("pick: %v", err)
    }
    if !tr.Satisfied() {
        t.Fatal("tracker not satisfied with 2 picks")
    }
    res, err := l.Approve(context.Background(), 1, tr.Assignments())
    if err != nil {
        t.Fatalf("approve: %v", err)
    }
    if res.Status != model.StatusApproved || len(res.CheckedRooms) != 2 {
        t.Fatalf("got %s with %d rooms, want APPROVED with 2", res.Status, len(res.CheckedRooms))
    }

    // a second reservation with only one pick must stay PENDING
    l.Store().Add(pendingReservation(2, 2))
    tr2 := NewTracker(testBoard(), 2, nil)
    if err := tr2.Pick(1, 102); err != nil {
        t.Fatalf("pick: %v", err)
    }
    if tr2.Satisfied() {
        t.Fatal("tracker satisfied with 1 of 2 picks")
    }
    calls := gw.updateStatusCalls
    if _, err := l.Approve(context.Background(), 2, tr2.Assignments()); !errors.Is(err, ErrAssignmentIncomplete) {
        t.Fatalf("err = %v, want ErrAssignmentIncomplete", err)
    }
    if gw.updateStatusCalls != calls {
        t.Error("remote call issued for the rejected approval")
    }
    res2, _ := l.Store().Get(2)
    if res2.Status != model.StatusPending {
        t.Errorf("status = %s, want PENDING", res2.Status)
    }
}

func TestSaveEdits(t *testing.T) {
    gw := &mockGateway{}
    l := newLifecycle(gw, pendingReservation(1, 1))

    res, _ := l.Store().Get(1)
    res.Person.City = "Oran"
    if err := l.SaveEdits(context.Background(), res); err != nil {
        t.Fatalf("save edits: %v", err)
    }
    got, _ := l.Store().Get(1)
    if got.Person.City != "Oran" {
        t.Error("edit not applied")
    }
    if got.Status != model.StatusPending {
        t.Error("save edits changed the status")
    }

    completed := pendingReservation(2, 1)
    completed.Status = model.StatusCompleted
    l.Store().Add(completed)
    if err := l.SaveEdits(context.Background(), completed); !errors.Is(err, ErrInvalidTransition) {
        t.Fatalf("editing a COMPLETED reservation must fail, got %v", err)
    }
}
