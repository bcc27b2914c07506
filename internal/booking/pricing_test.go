package booking

import (
    "testing"
    "time"

    "github.com/iliyamo/hotel-backoffice/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
    in := date(2025, time.June, 10)
    cases := []struct {
        name string
        out  time.Time
        want uint32
    }{
        {"three nights", date(2025, time.June, 13), 3},
        {"one night", date(2025, time.June, 11), 1},
        {"same day", in, 0},
        {"checkout before checkin", date(2025, time.June, 9), 0},
        {"partial day rounds up", in.Add(36 * time.Hour), 2},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if got := Nights(in, tc.out); got != tc.want {
                t.Errorf("Nights = %d, want %d", got, tc.want)
            }
        })
    }
}

func TestNightsMissingDates(t *testing.T) {
    if got := Nights(time.Time{}, date(2025, time.June, 13)); got != 0 {
        t.Errorf("Nights with zero check-in = %d, want 0", got)
    }
    if got := Nights(date(2025, time.June, 10), time.Time{}); got != 0 {
        t.Errorf("Nights with zero check-out = %d, want 0", got)
    }
}

func TestRoomsPrice(t *testing.T) {
    in := date(2025, time.June, 10)
    out := date(2025, time.June, 13) // 3 nights

    if got := RoomsPrice(in, out, 1000, 800, 2); got != 6000 {
        t.Errorf("RoomsPrice = %d, want 6000", got)
    }
    // base price 0 falls back to the default price
    if got := RoomsPrice(in, out, 0, 800, 2); got != 4800 {
        t.Errorf("RoomsPrice with fallback = %d, want 4800", got)
    }
    // zero nights prices to zero, never errors
    if got := RoomsPrice(in, in, 1000, 800, 2); got != 0 {
        t.Errorf("RoomsPrice with zero nights = %d, want 0", got)
    }
    if got := RoomsPrice(time.Time{}, time.Time{}, 1000, 800, 2); got != 0 {
        t.Errorf("RoomsPrice with missing dates = %d, want 0", got)
    }
    if got := RoomsPrice(in, out, 1000, 800, 0); got != 0 {
        t.Errorf("RoomsPrice with zero rooms = %d, want 0", got)
    }
}

// The rooms subtotal must never decrease when the stay gets longer or
// more rooms are requested.
func TestRoomsPriceMonotonic(t *testing.T) {
    in := date(2025, time.June, 10)
    prev := int64(-1)
    for nights := 0; nights <= 10; nights++ {
        got := RoomsPrice(in, in.AddDate(0, 0, nights), 700, 0, 1)
        if got < prev {
            t.Fatalf("price decreased from %d to %d at %d nights", prev, got, nights)
        }
        prev = got
    }
    prev = -1
    out := date(2025, time.June, 12)
    for rooms := uint32(0); rooms <= 10; rooms++ {
        got := RoomsPrice(in, out, 700, 0, rooms)
        if got < prev {
            t.Fatalf("price decreased from %d to %d at %d rooms", prev, got, rooms)
        }
        prev = got
    }
}

func TestExtraServicesPrice(t *testing.T) {
    catalog := []model.RoomService{
        {ID: 1, Name: "breakfast", Price: 500},
        {ID: 2, Name: "pickup", Price: 300},
    }
    selected := []model.SelectedService{
        {ServiceID: 1, Guests: 2},
        {ServiceID: 2, Guests: 1},
    }
    if got := ExtraServicesPrice(selected, catalog); got != 1300 {
        t.Errorf("ExtraServicesPrice = %d, want 1300", got)
    }
}

func TestExtraServicesPriceUnknownService(t *testing.T) {
    catalog := []model.RoomService{{ID: 1, Price: 500}}
    selected := []model.SelectedService{{ServiceID: 99, Guests: 5}}
    if got := ExtraServicesPrice(selected, catalog); got != 0 {
        t.Errorf("unknown service id should contribute 0, got %d", got)
    }
}

func TestExtraServicesPriceEmpty(t *testing.T) {
    if got := ExtraServicesPrice(nil, nil); got != 0 {
        t.Errorf("ExtraServicesPrice(nil, nil) = %d, want 0", got)
    }
    if got := ExtraServicesPrice(nil, []model.RoomService{{ID: 1, Price: 500}}); got != 0 {
        t.Errorf("ExtraServicesPrice with no selection = %d, want 0", got)
    }
}

func TestQuote(t *testing.T) {
    room := &model.Room{
        ID:           7,
        Price:        1000,
        DefaultPrice: 800,
        Services:     []model.RoomService{{ID: 1, Price: 500}},
    }
    res := &model.Reservation{
        Reserve: model.Reserve{
            RoomID:        7,
            RoomsNumber:   2,
            CheckIn:       date(2025, time.June, 10),
            CheckOut:      date(2025, time.June, 13),
            ExtraServices: []model.SelectedService{{ServiceID: 1, Guests: 2}},
        },
    }
    p := Quote(res, room)
    if p.Rooms != 6000 || p.ExtraServices != 1000 || p.Total != 7000 {
        t.Errorf("Quote = %+v, want rooms 6000, extras 1000, total 7000", p)
    }
    if p := Quote(res, nil); p.Total != 0 {
        t.Errorf("Quote without a room should be zero, got %+v", p)
    }
}
