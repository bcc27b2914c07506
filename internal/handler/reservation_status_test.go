package handler

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strconv"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-backoffice/internal/model"
    "github.com/iliyamo/hotel-backoffice/internal/queue"
    "github.com/iliyamo/hotel-backoffice/internal/repository"
)

// mockReservationStore keeps reservations in a map and counts writes,
// so tests can assert that rejected requests never reach persistence.
type mockReservationStore struct {
    byID map[uint64]*model.Reservation

    updateCalls  int
    statusCalls  int
    checkedCalls int
    lastChecked  []model.CheckedRoom
}

var _ reservationGateway = (*mockReservationStore)(nil)

func (m *mockReservationStore) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
    res, ok := m.byID[id]
    if !ok {
        return nil, repository.ErrReservationNotFound
    }
    return res.Clone(), nil
}

func (m *mockReservationStore) Update(_ context.Context, res *model.Reservation) error {
    m.updateCalls++
    stored, ok := m.byID[res.ID]
    if !ok {
        return repository.ErrReservationNotFound
    }
    cp := res.Clone()
    cp.Status = stored.Status
    m.byID[res.ID] = cp
    return nil
}

func (m *mockReservationStore) UpdateStatus(_ context.Context, id uint64, status string) error {
    m.statusCalls++
    res, ok := m.byID[id]
    if !ok {
        return repository.ErrReservationNotFound
    }
    res.Status = status
    return nil
}

func (m *mockReservationStore) UpdateManyStatuses(_ context.Context, ids []uint64, status string) error {
    for _, id := range ids {
        if res, ok := m.byID[id]; ok {
            res.Status = status
        }
    }
    return nil
}

func (m *mockReservationStore) UpdateCheckedRooms(_ context.Context, id uint64, rooms []model.CheckedRoom) error {
    m.checkedCalls++
    res, ok := m.byID[id]
    if !ok {
        return repository.ErrReservationNotFound
    }
    res.CheckedRooms = append([]model.CheckedRoom(nil), rooms...)
    m.lastChecked = res.CheckedRooms
    return nil
}

func (m *mockReservationStore) Delete(_ context.Context, id uint64) error {
    delete(m.byID, id)
    return nil
}

func (m *mockReservationStore) DeleteAllWithStatus(_ context.Context, status string) error {
    for id, res := range m.byID {
        if res.Status == status {
            delete(m.byID, id)
        }
    }
    return nil
}

type mockRoomCatalog struct{ room *model.Room }

var _ roomCatalog = (*mockRoomCatalog)(nil)

func (m *mockRoomCatalog) GetByID(_ context.Context, id uint64) (*model.Room, error) {
    if m.room == nil || m.room.ID != id {
        return nil, repository.ErrRoomNotFound
    }
    return m.room, nil
}

type mockBoardSource struct{ board *model.Board }

var _ boardSource = (*mockBoardSource)(nil)

func (m *mockBoardSource) BoardForRoom(_ context.Context, roomID, _ uint64) (*model.Board, error) {
    if m.board == nil || m.board.RoomID != roomID {
        return nil, repository.ErrRoomNotFound
    }
    return m.board, nil
}

// Fixtures: room type 5 with two floors; slot (1, 101) is held by
// another confirmed reservation, everything else is free.

func statusTestRoom() *model.Room {
    return &model.Room{
        ID:         5,
        PropertyID: 1,
        Name:       "Double Deluxe",
        Capacity:   model.Capacity{Adults: 2, Children: 2},
        Price:      1000,
        Services:   []model.RoomService{{ID: 9, Name: "Breakfast", Price: 300}},
    }
}

func statusTestBoard() *model.Board {
    return &model.Board{
        RoomID: 5,
        Floors: []model.Floor{
            {ID: 1, RoomID: 5, Range: "101-102", Slots: []model.RoomSlot{
                {Number: 101, Reserved: true},
                {Number: 102},
            }},
            {ID: 2, RoomID: 5, Range: "201-202", Slots: []model.RoomSlot{
                {Number: 201},
                {Number: 202},
            }},
        },
    }
}

func statusTestReservation(status string) *model.Reservation {
    res := &model.Reservation{
        ID: 7,
        Person: model.Person{
            FullName: "Amine Bensalem",
            Gender:   "M",
            Email:    "amine@example.com",
            Phone:    "0550000000",
        },
        Reserve: model.Reserve{
            RoomID:      5,
            RoomsNumber: 2,
            CheckIn:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
            CheckOut:    time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
            StartHour:   "14:00",
            Adults:      2,
        },
        Status: status,
    }
    if status == model.StatusApproved {
        res.CheckedRooms = []model.CheckedRoom{{FloorID: 1, RoomNumber: 102}, {FloorID: 2, RoomNumber: 201}}
    }
    return res
}

func newStatusHandler(res *model.Reservation) (*ReservationStatusHandler, *mockReservationStore) {
    store := &mockReservationStore{byID: map[uint64]*model.Reservation{res.ID: res}}
    h := &ReservationStatusHandler{
        Reservations: store,
        Rooms:        &mockRoomCatalog{room: statusTestRoom()},
        Floors:       &mockBoardSource{board: statusTestBoard()},
        publish:      func(context.Context, queue.ReservationStatusChangedEvent) error { return nil },
    }
    return h, store
}

func statusRequest(t *testing.T, id uint64, body string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    var req *http.Request
    if body == "" {
        req = httptest.NewRequest(http.MethodPost, "/", nil)
    } else {
        req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetParamNames("id")
    c.SetParamValues(strconv.FormatUint(id, 10))
    return c, rec
}

func TestApproveRejectsOccupiedSlot(t *testing.T) {
    h, store := newStatusHandler(statusTestReservation(model.StatusPending))
    c, rec := statusRequest(t, 7,
        `{"checked_rooms":[{"floor_id":1,"room_number":101},{"floor_id":2,"room_number":201}]}`)

    if err := h.Approve(c); err != nil {
        t.Fatalf("Approve returned %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Errorf("status = %d, want 400 for a slot held elsewhere", rec.Code)
    }
    if store.checkedCalls != 0 || store.statusCalls != 0 {
        t.Errorf("persistence reached: checked=%d status=%d, want 0/0", store.checkedCalls, store.statusCalls)
    }
    if store.byID[7].Status != model.StatusPending {
        t.Errorf("reservation status = %s, want PENDING untouched", store.byID[7].Status)
    }
}

func TestApproveAssignsFreeSlots(t *testing.T) {
    h, store := newStatusHandler(statusTestReservation(model.StatusPending))
    c, rec := statusRequest(t, 7,
        `{"checked_rooms":[{"floor_id":1,"room_number":102},{"floor_id":2,"room_number":201}]}`)

    if err := h.Approve(c); err != nil {
        t.Fatalf("Approve returned %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
    }
    if store.byID[7].Status != model.StatusApproved {
        t.Errorf("reservation status = %s, want APPROVED", store.byID[7].Status)
    }
    want := []model.CheckedRoom{{FloorID: 1, RoomNumber: 102}, {FloorID: 2, RoomNumber: 201}}
    if len(store.lastChecked) != len(want) {
        t.Fatalf("persisted %d checked rooms, want %d", len(store.lastChecked), len(want))
    }
    for i, cr := range want {
        if store.lastChecked[i] != cr {
            t.Errorf("checked[%d] = %+v, want %+v", i, store.lastChecked[i], cr)
        }
    }
}

func TestApproveRejectsShortAssignment(t *testing.T) {
    h, store := newStatusHandler(statusTestReservation(model.StatusPending))
    c, rec := statusRequest(t, 7, `{"checked_rooms":[{"floor_id":1,"room_number":102}]}`)

    if err := h.Approve(c); err != nil {
        t.Fatalf("Approve returned %v", err)
    }
    if rec.Code != http.StatusConflict {
        t.Errorf("status = %d, want 409 for fewer picks than rooms_number", rec.Code)
    }
    if store.checkedCalls != 0 {
        t.Errorf("checked rooms persisted %d times, want 0", store.checkedCalls)
    }
}

func TestCompleteRejectsCapacityExceedingEdit(t *testing.T) {
    h, store := newStatusHandler(statusTestReservation(model.StatusApproved))
    c, rec := statusRequest(t, 7, `{"reserve":{"adults":99}}`)

    if err := h.Complete(c); err != nil {
        t.Fatalf("Complete returned %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Errorf("status = %d, want 400 for adults over capacity", rec.Code)
    }
    var body map[string]any
    if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
        t.Fatalf("bad body: %v", err)
    }
    if body["field"] != "adults" {
        t.Errorf("field = %v, want adults", body["field"])
    }
    if store.updateCalls != 0 || store.statusCalls != 0 {
        t.Errorf("persistence reached: update=%d status=%d, want 0/0", store.updateCalls, store.statusCalls)
    }
    if store.byID[7].Status != model.StatusApproved {
        t.Errorf("reservation status = %s, want APPROVED untouched", store.byID[7].Status)
    }
}

func TestCompleteRejectsOffCatalogService(t *testing.T) {
    h, store := newStatusHandler(statusTestReservation(model.StatusApproved))
    c, rec := statusRequest(t, 7,
        `{"reserve":{"extra_services":[{"service_id":999,"guests":1}]}}`)

    if err := h.Complete(c); err != nil {
        t.Fatalf("Complete returned %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Errorf("status = %d, want 400 for a service outside the room catalog", rec.Code)
    }
    if store.updateCalls != 0 {
        t.Errorf("update persisted %d times, want 0", store.updateCalls)
    }
}

func TestCompleteEmptyBodyFlipsStatusOnly(t *testing.T) {
    h, store := newStatusHandler(statusTestReservation(model.StatusApproved))
    c, rec := statusRequest(t, 7, "")

    if err := h.Complete(c); err != nil {
        t.Fatalf("Complete returned %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
    }
    got := store.byID[7]
    if got.Status != model.StatusCompleted {
        t.Errorf("reservation status = %s, want COMPLETED", got.Status)
    }
    if got.Person.FullName != "Amine Bensalem" || got.Reserve.Adults != 2 {
        t.Errorf("stored fields changed on a status-only completion: %+v", got)
    }
    if len(got.CheckedRooms) != 2 {
        t.Errorf("assignment lost on completion: %v", got.CheckedRooms)
    }
}

func TestCompletePartialPayloadMergesOverStored(t *testing.T) {
    h, store := newStatusHandler(statusTestReservation(model.StatusApproved))
    c, rec := statusRequest(t, 7, `{"person":{"note":"late arrival"}}`)

    if err := h.Complete(c); err != nil {
        t.Fatalf("Complete returned %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
    }
    got := store.byID[7]
    if got.Person.Note != "late arrival" {
        t.Errorf("note = %q, want the submitted edit", got.Person.Note)
    }
    if got.Person.FullName != "Amine Bensalem" || got.Person.Email != "amine@example.com" {
        t.Errorf("absent fields blanked by partial payload: %+v", got.Person)
    }
    if got.Status != model.StatusCompleted {
        t.Errorf("reservation status = %s, want COMPLETED", got.Status)
    }
}

func TestCompleteRejectsSlotTakenSinceApproval(t *testing.T) {
    res := statusTestReservation(model.StatusApproved)
    res.CheckedRooms = []model.CheckedRoom{{FloorID: 1, RoomNumber: 101}, {FloorID: 2, RoomNumber: 201}}
    h, store := newStatusHandler(res)
    c, rec := statusRequest(t, 7, "")

    if err := h.Complete(c); err != nil {
        t.Fatalf("Complete returned %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Errorf("status = %d, want 400 when a held slot no longer shows available", rec.Code)
    }
    if store.updateCalls != 0 || store.statusCalls != 0 {
        t.Errorf("persistence reached: update=%d status=%d, want 0/0", store.updateCalls, store.statusCalls)
    }
}
