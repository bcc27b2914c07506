package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"

    "github.com/iliyamo/hotel-backoffice/internal/model"
)

// ReservationRepo provides CRUD operations for reservations, their
// selected extra services and their concrete room assignments.  The
// three tables (reservations, reservation_services, reservation_rooms)
// are always written together inside a transaction so a reservation can
// never be observed with a half-written service list or assignment set.
// All timestamps are stored in UTC.
//
// The non-Tx mutation methods satisfy the booking.Gateway interface and
// are the remote persistence surface the reservation lifecycle drives.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationCols = `id, full_name, gender, email, phone, phone2, country, state, city, zipcode, note,
room_id, rooms_number, check_in, check_out, start_hour, adults, children, status, created_at, updated_at`

// scanReservation scans one reservations row.  Optional text columns
// are nullable in the schema and collapse to empty strings.
func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
    var (
        res     model.Reservation
        phone2  sql.NullString
        country sql.NullString
        state   sql.NullString
        city    sql.NullString
        zipcode sql.NullString
        note    sql.NullString
    )
    err := row.Scan(
        &res.ID, &res.Person.FullName, &res.Person.Gender, &res.Person.Email, &res.Person.Phone,
        &phone2, &country, &state, &city, &zipcode, &note,
        &res.Reserve.RoomID, &res.Reserve.RoomsNumber, &res.Reserve.CheckIn, &res.Reserve.CheckOut,
        &res.Reserve.StartHour, &res.Reserve.Adults, &res.Reserve.Children,
        &res.Status, &res.CreatedAt, &res.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    res.Person.Phone2 = phone2.String
    res.Person.Country = country.String
    res.Person.State = state.String
    res.Person.City = city.String
    res.Person.Zipcode = zipcode.String
    res.Person.Note = note.String
    return &res, nil
}

// Create inserts a reservation together with its extra services and,
// when present, its checked rooms.  The generated id and timestamps are
// populated on the passed record.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    const q = `INSERT INTO reservations
(full_name, gender, email, phone, phone2, country, state, city, zipcode, note,
 room_id, rooms_number, check_in, check_out, start_hour, adults, children, status)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
    result, err := tx.ExecContext(ctx, q,
        res.Person.FullName, res.Person.Gender, res.Person.Email, res.Person.Phone,
        nullable(res.Person.Phone2), nullable(res.Person.Country), nullable(res.Person.State),
        nullable(res.Person.City), nullable(res.Person.Zipcode), nullable(res.Person.Note),
        res.Reserve.RoomID, res.Reserve.RoomsNumber, res.Reserve.CheckIn, res.Reserve.CheckOut,
        res.Reserve.StartHour, res.Reserve.Adults, res.Reserve.Children, res.Status,
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    if err := r.insertServicesTx(ctx, tx, res.ID, res.Reserve.ExtraServices); err != nil {
        return err
    }
    if err := r.replaceCheckedRoomsTx(ctx, tx, res.ID, res.CheckedRooms); err != nil {
        return err
    }
    // query back timestamps set by the database
    const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
    if err := tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// GetByID loads a full reservation: the row, its selected services and
// its checked rooms.  Returns ErrReservationNotFound for unknown ids.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
    res, err := scanReservation(r.db.QueryRowContext(ctx,
        `SELECT `+reservationCols+` FROM reservations WHERE id = ?`, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrReservationNotFound
        }
        return nil, err
    }
    if res.Reserve.ExtraServices, err = r.loadServices(ctx, id); err != nil {
        return nil, err
    }
    if res.CheckedRooms, err = r.loadCheckedRooms(ctx, id); err != nil {
        return nil, err
    }
    return res, nil
}

func (r *ReservationRepo) loadServices(ctx context.Context, id uint64) ([]model.SelectedService, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT service_id, guests FROM reservation_services WHERE reservation_id = ? ORDER BY service_id`, id)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.SelectedService
    for rows.Next() {
        var s model.SelectedService
        if err := rows.Scan(&s.ServiceID, &s.Guests); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

func (r *ReservationRepo) loadCheckedRooms(ctx context.Context, id uint64) ([]model.CheckedRoom, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT floor_id, room_number FROM reservation_rooms WHERE reservation_id = ? ORDER BY floor_id, room_number`, id)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.CheckedRoom
    for rows.Next() {
        var cr model.CheckedRoom
        if err := rows.Scan(&cr.FloorID, &cr.RoomNumber); err != nil {
            return nil, err
        }
        out = append(out, cr)
    }
    return out, rows.Err()
}

// ListFilter narrows ListByStatus.  Query matches against guest name
// and e-mail; the date pair filters on check-in within [From, To].
type ListFilter struct {
    Query string
    From  time.Time
    To    time.Time
}

// ListByStatus returns one page of reservations in the given status,
// newest first, plus the total count for that status and filter.
// Services and checked rooms are loaded per row; pages are small.
func (r *ReservationRepo) ListByStatus(ctx context.Context, status string, f ListFilter, page, size uint32) ([]*model.Reservation, uint32, error) {
    if page == 0 {
        page = 1
    }
    if size == 0 || size > 100 {
        size = 20
    }
    where := []string{"status = ?"}
    args := []any{status}
    if q := strings.TrimSpace(f.Query); q != "" {
        where = append(where, "(full_name LIKE ? OR email LIKE ?)")
        pat := "%" + q + "%"
        args = append(args, pat, pat)
    }
    if !f.From.IsZero() {
        where = append(where, "check_in >= ?")
        args = append(args, f.From)
    }
    if !f.To.IsZero() {
        where = append(where, "check_in <= ?")
        args = append(args, f.To)
    }
    cond := strings.Join(where, " AND ")

    var total uint32
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM reservations WHERE `+cond, args...).Scan(&total); err != nil {
        return nil, 0, err
    }
    listArgs := append(args, size, (page-1)*size)
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+reservationCols+` FROM reservations WHERE `+cond+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
        listArgs...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()
    var out []*model.Reservation
    for rows.Next() {
        res, err := scanReservation(rows)
        if err != nil {
            return nil, 0, err
        }
        out = append(out, res)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }
    for _, res := range out {
        if res.Reserve.ExtraServices, err = r.loadServices(ctx, res.ID); err != nil {
            return nil, 0, err
        }
        if res.CheckedRooms, err = r.loadCheckedRooms(ctx, res.ID); err != nil {
            return nil, 0, err
        }
    }
    return out, total, nil
}

// Update rewrites the person and reserve fields of a reservation and
// replaces its extra-service selection and checked rooms.  The status
// column is deliberately not touched; status changes go through
// UpdateStatus so the lifecycle stays the only writer of that column.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    const q = `UPDATE reservations SET
full_name=?, gender=?, email=?, phone=?, phone2=?, country=?, state=?, city=?, zipcode=?, note=?,
room_id=?, rooms_number=?, check_in=?, check_out=?, start_hour=?, adults=?, children=?
WHERE id = ?`
    result, err := tx.ExecContext(ctx, q,
        res.Person.FullName, res.Person.Gender, res.Person.Email, res.Person.Phone,
        nullable(res.Person.Phone2), nullable(res.Person.Country), nullable(res.Person.State),
        nullable(res.Person.City), nullable(res.Person.Zipcode), nullable(res.Person.Note),
        res.Reserve.RoomID, res.Reserve.RoomsNumber, res.Reserve.CheckIn, res.Reserve.CheckOut,
        res.Reserve.StartHour, res.Reserve.Adults, res.Reserve.Children,
        res.ID,
    )
    if err != nil {
        return err
    }
    if n, _ := result.RowsAffected(); n == 0 {
        // distinguish "no change" from "no row"
        var exists bool
        if err := tx.QueryRowContext(ctx,
            `SELECT EXISTS(SELECT 1 FROM reservations WHERE id = ?)`, res.ID).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ErrReservationNotFound
        }
    }
    if _, err := tx.ExecContext(ctx,
        `DELETE FROM reservation_services WHERE reservation_id = ?`, res.ID); err != nil {
        return err
    }
    if err := r.insertServicesTx(ctx, tx, res.ID, res.Reserve.ExtraServices); err != nil {
        return err
    }
    if err := r.replaceCheckedRoomsTx(ctx, tx, res.ID, res.CheckedRooms); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// UpdateStatus flips a single reservation's status.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
    result, err := r.db.ExecContext(ctx,
        `UPDATE reservations SET status = ? WHERE id = ?`, status, id)
    if err != nil {
        return err
    }
    if n, _ := result.RowsAffected(); n == 0 {
        var exists bool
        if err := r.db.QueryRowContext(ctx,
            `SELECT EXISTS(SELECT 1 FROM reservations WHERE id = ?)`, id).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ErrReservationNotFound
        }
    }
    return nil
}

// UpdateManyStatuses flips the status of a batch of reservations inside
// one transaction.  Either every row is updated or none: a missing id
// rolls the whole batch back so the caller never sees a half-applied
// bulk action.
func (r *ReservationRepo) UpdateManyStatuses(ctx context.Context, ids []uint64, status string) error {
    if len(ids) == 0 {
        return nil
    }
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
    args := make([]any, 0, len(ids)+1)
    args = append(args, status)
    for _, id := range ids {
        args = append(args, id)
    }
    if _, err := tx.ExecContext(ctx,
        `UPDATE reservations SET status = ? WHERE id IN (`+placeholders+`)`, args...); err != nil {
        return err
    }
    // RowsAffected under-reports here: MySQL counts changed rows, not
    // matched rows, so ids already in the target status would look
    // missing.  Count the matches instead.
    var matched uint32
    countArgs := args[1:]
    if err := tx.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM reservations WHERE id IN (`+placeholders+`)`, countArgs...).Scan(&matched); err != nil {
        return err
    }
    if matched != uint32(len(ids)) {
        return ErrReservationNotFound
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// UpdateCheckedRooms replaces the concrete room assignments of a
// reservation in one transaction.
func (r *ReservationRepo) UpdateCheckedRooms(ctx context.Context, id uint64, rooms []model.CheckedRoom) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    var exists bool
    if err := tx.QueryRowContext(ctx,
        `SELECT EXISTS(SELECT 1 FROM reservations WHERE id = ?)`, id).Scan(&exists); err != nil {
        return err
    }
    if !exists {
        return ErrReservationNotFound
    }
    if err := r.replaceCheckedRoomsTx(ctx, tx, id, rooms); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// Delete permanently removes a reservation and its dependent rows.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if _, err := tx.ExecContext(ctx, `DELETE FROM reservation_services WHERE reservation_id = ?`, id); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM reservation_rooms WHERE reservation_id = ?`, id); err != nil {
        return err
    }
    result, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := result.RowsAffected(); n == 0 {
        return ErrReservationNotFound
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// DeleteAllWithStatus permanently removes every reservation in the
// given status together with its dependent rows.
func (r *ReservationRepo) DeleteAllWithStatus(ctx context.Context, status string) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    const sub = `SELECT id FROM reservations WHERE status = ?`
    if _, err := tx.ExecContext(ctx,
        `DELETE FROM reservation_services WHERE reservation_id IN (`+sub+`)`, status); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx,
        `DELETE FROM reservation_rooms WHERE reservation_id IN (`+sub+`)`, status); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE status = ?`, status); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

func (r *ReservationRepo) insertServicesTx(ctx context.Context, tx *sql.Tx, id uint64, services []model.SelectedService) error {
    if len(services) == 0 {
        return nil
    }
    query := `INSERT INTO reservation_services (reservation_id, service_id, guests) VALUES `
    args := make([]any, 0, len(services)*3)
    for i, s := range services {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?)"
        args = append(args, id, s.ServiceID, s.Guests)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

func (r *ReservationRepo) replaceCheckedRoomsTx(ctx context.Context, tx *sql.Tx, id uint64, rooms []model.CheckedRoom) error {
    if _, err := tx.ExecContext(ctx, `DELETE FROM reservation_rooms WHERE reservation_id = ?`, id); err != nil {
        return err
    }
    if len(rooms) == 0 {
        return nil
    }
    query := `INSERT INTO reservation_rooms (reservation_id, floor_id, room_number) VALUES `
    args := make([]any, 0, len(rooms)*3)
    for i, cr := range rooms {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?)"
        args = append(args, id, cr.FloorID, cr.RoomNumber)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// nullable converts an empty string to NULL for optional text columns.
func nullable(s string) sql.NullString {
    return sql.NullString{String: s, Valid: s != ""}
}
