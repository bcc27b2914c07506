package booking

import (
    "context"

    "github.com/iliyamo/hotel-backoffice/internal/model"
)

// Gateway is the remote persistence surface the lifecycle drives.  The
// MySQL repository implements it in production; tests supply mocks.
// Every method is a single remote call that either fully succeeds or
// fully fails; the lifecycle never applies a local mutation before the
// corresponding gateway call has returned nil.
type Gateway interface {
    Update(ctx context.Context, res *model.Reservation) error
    UpdateStatus(ctx context.Context, id uint64, status string) error
    UpdateManyStatuses(ctx context.Context, ids []uint64, status string) error
    UpdateCheckedRooms(ctx context.Context, id uint64, rooms []model.CheckedRoom) error
    Delete(ctx context.Context, id uint64) error
    DeleteAllWithStatus(ctx context.Context, status string) error
}

// Lifecycle is the reservation status state machine.  It owns the
// transition rules of the back office: which statuses may move where,
// which transitions require a complete room assignment, and in what
// order field edits, assignments and status flips are persisted.
type Lifecycle struct {
    store *Store
    gw    Gateway
}

// NewLifecycle binds the state machine to a working-set store and a
// persistence gateway.
func NewLifecycle(store *Store, gw Gateway) *Lifecycle {
    return &Lifecycle{store: store, gw: gw}
}

// Store exposes the working-set store for read access by callers.
func (l *Lifecycle) Store() *Store { return l.store }

// guard loads a reservation and verifies the transition is defined from
// its current status.  It runs before any gateway call.
func (l *Lifecycle) guard(id uint64, to string) (*model.Reservation, error) {
    res, err := l.store.Get(id)
    if err != nil {
        return nil, err
    }
    if !model.CanTransition(res.Status, to) {
        return nil, ErrInvalidTransition
    }
    return res, nil
}

// Approve moves a PENDING reservation to APPROVED with the given room
// assignment.  The assignment must contain exactly rooms_number picks;
// otherwise the call is rejected locally with ErrAssignmentIncomplete
// and no remote call is made.  On success both the checked rooms and
// the status are persisted, then mirrored into the store.
func (l *Lifecycle) Approve(ctx context.Context, id uint64, rooms []model.CheckedRoom) (*model.Reservation, error) {
    res, err := l.guard(id, model.StatusApproved)
    if err != nil {
        return nil, err
    }
    if uint32(len(rooms)) != res.Reserve.RoomsNumber {
        return nil, ErrAssignmentIncomplete
    }
    if err := l.gw.UpdateCheckedRooms(ctx, id, rooms); err != nil {
        return nil, &RemoteError{Op: "update checked rooms", Err: err}
    }
    if err := l.gw.UpdateStatus(ctx, id, model.StatusApproved); err != nil {
        return nil, &RemoteError{Op: "update status", Err: err}
    }
    _ = l.store.ApplyCheckedRooms(id, rooms)
    _ = l.store.ApplyStatus(id, model.StatusApproved)
    return l.store.Get(id)
}

// Complete moves an APPROVED reservation to COMPLETED.  The editor may
// have changed person, reserve or assignment fields since approval, so
// the assignment gate re-applies against the edited values, not the
// stored ones.  Edits are persisted first, then the status flip; a
// failure at any step leaves the store untouched.
func (l *Lifecycle) Complete(ctx context.Context, edited *model.Reservation) (*model.Reservation, error) {
    res, err := l.guard(edited.ID, model.StatusCompleted)
    if err != nil {
        return nil, err
    }
    if !edited.AssignmentComplete() {
        return nil, ErrAssignmentIncomplete
    }
    edited = edited.Clone()
    edited.Status = res.Status
    if err := l.gw.Update(ctx, edited); err != nil {
        return nil, &RemoteError{Op: "update reservation", Err: err}
    }
    if err := l.gw.UpdateStatus(ctx, edited.ID, model.StatusCompleted); err != nil {
        return nil, &RemoteError{Op: "update status", Err: err}
    }
    edited.Status = model.StatusCompleted
    _ = l.store.Update(edited)
    return l.store.Get(edited.ID)
}

// Cancel moves a PENDING reservation to CANCELED.  No assignment
// precondition applies.
func (l *Lifecycle) Cancel(ctx context.Context, id uint64) error {
    return l.transition(ctx, id, model.StatusCanceled)
}

// Recover moves a CANCELED reservation back to PENDING.  It is a
// status-only mutation: person and reserve fields are untouched.
func (l *Lifecycle) Recover(ctx context.Context, id uint64) error {
    return l.transition(ctx, id, model.StatusPending)
}

// Archive moves a CANCELED reservation to DELETED.
func (l *Lifecycle) Archive(ctx context.Context, id uint64) error {
    return l.transition(ctx, id, model.StatusDeleted)
}

func (l *Lifecycle) transition(ctx context.Context, id uint64, to string) error {
    if _, err := l.guard(id, to); err != nil {
        return err
    }
    if err := l.gw.UpdateStatus(ctx, id, to); err != nil {
        return &RemoteError{Op: "update status", Err: err}
    }
    return l.store.ApplyStatus(id, to)
}

// CancelMany bulk-cancels PENDING reservations and ArchiveMany
// bulk-archives CANCELED ones.  Both share the bulk discipline below.
func (l *Lifecycle) CancelMany(ctx context.Context, ids []uint64) error {
    return l.transitionMany(ctx, ids, model.StatusPending, model.StatusCanceled)
}

// ArchiveMany bulk-archives CANCELED reservations into DELETED.
func (l *Lifecycle) ArchiveMany(ctx context.Context, ids []uint64) error {
    return l.transitionMany(ctx, ids, model.StatusCanceled, model.StatusDeleted)
}

// transitionMany applies one status change to a batch of ids.  Every id
// must exist and currently hold the expected source status; one
// mismatch rejects the whole batch before any remote call, because the
// UI's one-status-at-a-time selection rule is not trusted here.  The
// remote call is treated as atomic: the store is only touched after it
// reports success, so a failing batch leaves every local record
// unchanged.
func (l *Lifecycle) transitionMany(ctx context.Context, ids []uint64, from, to string) error {
    if len(ids) == 0 {
        return nil
    }
    for _, id := range ids {
        res, err := l.store.Get(id)
        if err != nil {
            return err
        }
        if res.Status != from {
            return ErrStatusMismatch
        }
    }
    if !model.CanTransition(from, to) {
        return ErrInvalidTransition
    }
    if err := l.gw.UpdateManyStatuses(ctx, ids, to); err != nil {
        return &RemoteError{Op: "bulk update status", Err: err}
    }
    l.store.ApplyStatusMany(ids, to)
    return nil
}

// HardDelete permanently removes a reservation.  Only CANCELED and
// DELETED reservations may be removed; everywhere else deletion is a
// reversible status change.
func (l *Lifecycle) HardDelete(ctx context.Context, id uint64) error {
    res, err := l.store.Get(id)
    if err != nil {
        return err
    }
    if !model.Removable(res.Status) {
        return ErrInvalidTransition
    }
    if err := l.gw.Delete(ctx, id); err != nil {
        return &RemoteError{Op: "delete", Err: err}
    }
    l.store.Remove(id)
    return nil
}

// PurgeStatus permanently removes every reservation in the given
// status.  Like HardDelete it only accepts the removable statuses.
func (l *Lifecycle) PurgeStatus(ctx context.Context, status string) error {
    if !model.Removable(status) {
        return ErrInvalidTransition
    }
    if err := l.gw.DeleteAllWithStatus(ctx, status); err != nil {
        return &RemoteError{Op: "bulk delete", Err: err}
    }
    for _, res := range l.store.ListByStatus(status) {
        l.store.Remove(res.ID)
    }
    return nil
}

// SaveEdits persists field edits to a PENDING or APPROVED reservation
// without changing its status.
func (l *Lifecycle) SaveEdits(ctx context.Context, edited *model.Reservation) error {
    res, err := l.store.Get(edited.ID)
    if err != nil {
        return err
    }
    if res.Status != model.StatusPending && res.Status != model.StatusApproved {
        return ErrInvalidTransition
    }
    edited = edited.Clone()
    edited.Status = res.Status
    if err := l.gw.Update(ctx, edited); err != nil {
        return &RemoteError{Op: "update reservation", Err: err}
    }
    return l.store.Update(edited)
}
