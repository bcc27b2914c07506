// Package booking holds the reservation core: the pricing calculators,
// the occupancy-board tracker, the status lifecycle and the in-memory
// working-set store.  Everything in this package is plain logic with no
// HTTP or SQL; persistence happens behind the Gateway interface.
package booking

import (
    "time"

    "github.com/iliyamo/hotel-backoffice/internal/model"
)

// Nights returns the number of nights between check-in and check-out,
// counting any partial day as a full night.  Missing dates or a
// check-out at or before check-in yield 0.
func Nights(checkIn, checkOut time.Time) uint32 {
    if checkIn.IsZero() || checkOut.IsZero() {
        return 0
    }
    d := checkOut.Sub(checkIn)
    if d <= 0 {
        return 0
    }
    nights := d / (24 * time.Hour)
    if d%(24*time.Hour) != 0 {
        nights++
    }
    return uint32(nights)
}

// RoomsPrice computes the rooms subtotal in whole DA: nightly price ×
// nights × rooms count.  When basePrice is not positive the default
// price is used instead.  Incomplete input (no nights, no rooms) prices
// to 0 rather than erroring, so a live price tile can render while the
// form is still being filled in.
func RoomsPrice(checkIn, checkOut time.Time, basePrice, defaultPrice int64, roomsCount uint32) int64 {
    nights := Nights(checkIn, checkOut)
    if nights == 0 || roomsCount == 0 {
        return 0
    }
    price := basePrice
    if price <= 0 {
        price = defaultPrice
    }
    if price <= 0 {
        return 0
    }
    return price * int64(nights) * int64(roomsCount)
}

// ExtraServicesPrice sums price × guests over the selected services,
// resolving each price from the room's catalog.  A selection whose
// service id is not in the catalog contributes 0.  Empty inputs price
// to 0.
func ExtraServicesPrice(selected []model.SelectedService, catalog []model.RoomService) int64 {
    if len(selected) == 0 || len(catalog) == 0 {
        return 0
    }
    prices := make(map[uint64]int64, len(catalog))
    for _, svc := range catalog {
        prices[svc.ID] = svc.Price
    }
    var total int64
    for _, sel := range selected {
        if p, ok := prices[sel.ServiceID]; ok {
            total += p * int64(sel.Guests)
        }
    }
    return total
}

// Quote computes the full derived price breakdown for a reservation
// against its room.  A nil room prices everything to 0.
func Quote(res *model.Reservation, room *model.Room) model.Pricing {
    if res == nil || room == nil {
        return model.Pricing{}
    }
    rooms := RoomsPrice(res.Reserve.CheckIn, res.Reserve.CheckOut, room.Price, room.DefaultPrice, res.Reserve.RoomsNumber)
    extras := ExtraServicesPrice(res.Reserve.ExtraServices, room.Services)
    return model.Pricing{
        Rooms:         rooms,
        ExtraServices: extras,
        Total:         rooms + extras,
    }
}
