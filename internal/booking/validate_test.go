package booking

import (
    "errors"
    "testing"
    "time"

    "github.com/iliyamo/hotel-backoffice/internal/model"
)

func validRoom() *model.Room {
    return &model.Room{
        ID:       7,
        Capacity: model.Capacity{Adults: 2, Children: 1},
        Services: []model.RoomService{{ID: 1, Name: "breakfast", Price: 500}},
    }
}

func validReserve() model.Reserve {
    return model.Reserve{
        RoomID:      7,
        RoomsNumber: 2,
        CheckIn:     time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
        CheckOut:    time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC),
        StartHour:   "14:00",
        Adults:      3,
        Children:    1,
    }
}

func fieldOf(t *testing.T, err error) string {
    t.Helper()
    var verr *ValidationError
    if !errors.As(err, &verr) {
        t.Fatalf("expected a validation error, got %v", err)
    }
    return verr.Field
}

func TestValidateReserveOK(t *testing.T) {
    if err := ValidateReserve(validReserve(), validRoom()); err != nil {
        t.Fatalf("valid reserve rejected: %v", err)
    }
}

func TestValidateReserveCapacity(t *testing.T) {
    rv := validReserve()
    rv.Adults = 5 // capacity is 2 per room × 2 rooms
    if got := fieldOf(t, ValidateReserve(rv, validRoom())); got != "adults" {
        t.Errorf("field = %s, want adults", got)
    }
    rv = validReserve()
    rv.Children = 3
    if got := fieldOf(t, ValidateReserve(rv, validRoom())); got != "children" {
        t.Errorf("field = %s, want children", got)
    }
}

func TestValidateReserveDates(t *testing.T) {
    rv := validReserve()
    rv.CheckOut = time.Time{}
    if got := fieldOf(t, ValidateReserve(rv, validRoom())); got != "check_in" {
        t.Errorf("field = %s, want check_in", got)
    }
    rv = validReserve()
    rv.CheckOut = rv.CheckIn
    if got := fieldOf(t, ValidateReserve(rv, validRoom())); got != "check_out" {
        t.Errorf("field = %s, want check_out", got)
    }
}

func TestValidateReserveExtraServices(t *testing.T) {
    rv := validReserve()
    rv.ExtraServices = []model.SelectedService{{ServiceID: 99, Guests: 1}}
    if got := fieldOf(t, ValidateReserve(rv, validRoom())); got != "extra_services" {
        t.Errorf("field = %s, want extra_services", got)
    }
    rv.ExtraServices = []model.SelectedService{
        {ServiceID: 1, Guests: 1},
        {ServiceID: 1, Guests: 2},
    }
    if err := ValidateReserve(rv, validRoom()); err == nil {
        t.Error("duplicate service selection accepted")
    }
    rv.ExtraServices = []model.SelectedService{{ServiceID: 1, Guests: 0}}
    if err := ValidateReserve(rv, validRoom()); err == nil {
        t.Error("zero guests accepted")
    }
}

func TestValidatePerson(t *testing.T) {
    p := model.Person{FullName: "Sara K", Gender: "female", Email: "s@example.com", Phone: "0550"}
    if err := ValidatePerson(p); err != nil {
        t.Fatalf("valid person rejected: %v", err)
    }
    p.Email = "  "
    if got := fieldOf(t, ValidatePerson(p)); got != "email" {
        t.Errorf("field = %s, want email", got)
    }
}
