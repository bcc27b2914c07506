package booking

import (
    "sync"

    "github.com/iliyamo/hotel-backoffice/internal/model"
)

// Store is the process-wide working-set collection of reservations.
// Mutation happens only through the methods below; the lifecycle
// applies remote results to the store exactly once per confirmed
// action, and nothing outside this package writes fields directly.
type Store struct {
    mu   sync.Mutex
    byID map[uint64]*model.Reservation
}

// NewStore returns an empty store.
func NewStore() *Store {
    return &Store{byID: make(map[uint64]*model.Reservation)}
}

// Add inserts or replaces a reservation.  The store keeps its own clone.
func (s *Store) Add(res *model.Reservation) {
    if res == nil {
        return
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    s.byID[res.ID] = res.Clone()
}

// Get returns a clone of the reservation, or ErrNotFound.
func (s *Store) Get(id uint64) (*model.Reservation, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    res, ok := s.byID[id]
    if !ok {
        return nil, ErrNotFound
    }
    return res.Clone(), nil
}

// Remove deletes a reservation from the working set.  Removing an
// unknown id is a no-op.
func (s *Store) Remove(id uint64) {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.byID, id)
}

// Update replaces a stored reservation with the given snapshot.  It
// returns ErrNotFound when the id is not in the working set.
func (s *Store) Update(res *model.Reservation) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.byID[res.ID]; !ok {
        return ErrNotFound
    }
    s.byID[res.ID] = res.Clone()
    return nil
}

// ApplyStatus mutates a single reservation's status.  All other fields
// are untouched, which is what makes cancel → recover a lossless round
// trip.
func (s *Store) ApplyStatus(id uint64, status string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    res, ok := s.byID[id]
    if !ok {
        return ErrNotFound
    }
    res.Status = status
    return nil
}

// ApplyStatusMany mutates the status of every listed reservation.  The
// caller has already verified all ids exist and share the expected
// source status, so a missing id here is ignored rather than failed.
func (s *Store) ApplyStatusMany(ids []uint64, status string) {
    s.mu.Lock()
    defer s.mu.Unlock()
    for _, id := range ids {
        if res, ok := s.byID[id]; ok {
            res.Status = status
        }
    }
}

// ApplyCheckedRooms replaces a reservation's room assignments.
func (s *Store) ApplyCheckedRooms(id uint64, rooms []model.CheckedRoom) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    res, ok := s.byID[id]
    if !ok {
        return ErrNotFound
    }
    res.CheckedRooms = make([]model.CheckedRoom, len(rooms))
    copy(res.CheckedRooms, rooms)
    return nil
}

// ListByStatus returns clones of every reservation in the given status,
// in unspecified order.
func (s *Store) ListByStatus(status string) []*model.Reservation {
    s.mu.Lock()
    defer s.mu.Unlock()
    var out []*model.Reservation
    for _, res := range s.byID {
        if res.Status == status {
            out = append(out, res.Clone())
        }
    }
    return out
}

// Len reports the number of reservations in the working set.
func (s *Store) Len() int {
    s.mu.Lock()
    defer s.mu.Unlock()
    return len(s.byID)
}
