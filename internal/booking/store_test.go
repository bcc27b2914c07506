package booking

import (
    "errors"
    "testing"

    "github.com/iliyamo/hotel-backoffice/internal/model"
)

func TestStoreAddGetRemove(t *testing.T) {
    s := NewStore()
    s.Add(pendingReservation(1, 1))

    res, err := s.Get(1)
    if err != nil {
        t.Fatalf("get: %v", err)
    }
    // clones must isolate the store from caller mutation
    res.Person.FullName = "changed"
    again, _ := s.Get(1)
    if again.Person.FullName == "changed" {
        t.Error("store state mutated through a returned clone")
    }

    s.Remove(1)
    if _, err := s.Get(1); !errors.Is(err, ErrNotFound) {
        t.Error("record still present after remove")
    }
    if err := s.Update(pendingReservation(9, 1)); !errors.Is(err, ErrNotFound) {
        t.Error("update of unknown id should fail")
    }
}

func TestStoreListByStatus(t *testing.T) {
    s := NewStore()
    a := pendingReservation(1, 1)
    b := pendingReservation(2, 1)
    b.Status = model.StatusCanceled
    s.Add(a)
    s.Add(b)

    if got := len(s.ListByStatus(model.StatusPending)); got != 1 {
        t.Errorf("pending = %d, want 1", got)
    }
    if got := len(s.ListByStatus(model.StatusCanceled)); got != 1 {
        t.Errorf("canceled = %d, want 1", got)
    }
    if s.Len() != 2 {
        t.Errorf("len = %d, want 2", s.Len())
    }
}

func TestStoreApplyStatusMany(t *testing.T) {
    s := NewStore()
    s.Add(pendingReservation(1, 1))
    s.Add(pendingReservation(2, 1))
    s.ApplyStatusMany([]uint64{1, 2, 99}, model.StatusCanceled)
    for _, id := range []uint64{1, 2} {
        res, _ := s.Get(id)
        if res.Status != model.StatusCanceled {
            t.Errorf("id %d status = %s, want CANCELED", id, res.Status)
        }
    }
}
