package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-backoffice/internal/model"
)

// FloorRepo maintains floors and their room-number slots and builds the
// occupancy board for a room type.  A slot is "reserved" on the board
// when some APPROVED or COMPLETED reservation other than the one being
// edited has it in its assignment set.
type FloorRepo struct {
    db *sql.DB
}

// NewFloorRepo returns a FloorRepo bound to the given database.
func NewFloorRepo(db *sql.DB) *FloorRepo { return &FloorRepo{db: db} }

// BoardForRoom assembles the occupancy board for a room type.  When
// excludeReservation is non-zero, rooms held by that reservation are
// reported available so an edit session never blocks on its own
// assignment.
func (r *FloorRepo) BoardForRoom(ctx context.Context, roomID, excludeReservation uint64) (*model.Board, error) {
    var exists bool
    if err := r.db.QueryRowContext(ctx,
        `SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)`, roomID).Scan(&exists); err != nil {
        return nil, err
    }
    if !exists {
        return nil, ErrRoomNotFound
    }
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, room_id, range_label FROM floors WHERE room_id = ? ORDER BY id`, roomID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    board := &model.Board{RoomID: roomID}
    for rows.Next() {
        var f model.Floor
        if err := rows.Scan(&f.ID, &f.RoomID, &f.Range); err != nil {
            return nil, err
        }
        board.Floors = append(board.Floors, f)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    for i := range board.Floors {
        if board.Floors[i].Slots, err = r.slotsForFloor(ctx, board.Floors[i].ID, excludeReservation); err != nil {
            return nil, err
        }
    }
    return board, nil
}

// slotsForFloor lists the room numbers of a floor and marks each one
// reserved when a confirmed reservation other than excludeReservation
// holds it.
func (r *FloorRepo) slotsForFloor(ctx context.Context, floorID, excludeReservation uint64) ([]model.RoomSlot, error) {
    const q = `SELECT fr.room_number,
EXISTS(
  SELECT 1 FROM reservation_rooms rr
  JOIN reservations res ON res.id = rr.reservation_id
  WHERE rr.floor_id = fr.floor_id AND rr.room_number = fr.room_number
    AND res.status IN (?, ?)
    AND rr.reservation_id <> ?
) AS reserved
FROM floor_rooms fr WHERE fr.floor_id = ? ORDER BY fr.room_number`
    rows, err := r.db.QueryContext(ctx, q,
        model.StatusApproved, model.StatusCompleted, excludeReservation, floorID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.RoomSlot
    for rows.Next() {
        var s model.RoomSlot
        if err := rows.Scan(&s.Number, &s.Reserved); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// GetByID loads one floor with its raw slot list (no availability).
func (r *FloorRepo) GetByID(ctx context.Context, id uint64) (*model.Floor, error) {
    var f model.Floor
    err := r.db.QueryRowContext(ctx,
        `SELECT id, room_id, range_label FROM floors WHERE id = ?`, id).Scan(&f.ID, &f.RoomID, &f.Range)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrFloorNotFound
        }
        return nil, err
    }
    rows, err := r.db.QueryContext(ctx,
        `SELECT room_number FROM floor_rooms WHERE floor_id = ? ORDER BY room_number`, id)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var s model.RoomSlot
        if err := rows.Scan(&s.Number); err != nil {
            return nil, err
        }
        f.Slots = append(f.Slots, s)
    }
    return &f, rows.Err()
}

// Create inserts a floor and its room numbers in one transaction.
func (r *FloorRepo) Create(ctx context.Context, f *model.Floor) error {
    var exists bool
    if err := r.db.QueryRowContext(ctx,
        `SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)`, f.RoomID).Scan(&exists); err != nil {
        return err
    }
    if !exists {
        return ErrRoomNotFound
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
    result, err := tx.ExecContext(ctx,
        `INSERT INTO floors (room_id, range_label) VALUES (?,?)`, f.RoomID, f.Range)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    f.ID = uint64(id)
    if err := insertFloorRoomsTx(ctx, tx, f.ID, f.Slots); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// Update rewrites a floor's label and replaces its room numbers.
func (r *FloorRepo) Update(ctx context.Context, f *model.Floor) error {
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
    result, err := tx.ExecContext(ctx,
        `UPDATE floors SET range_label = ? WHERE id = ?`, f.Range, f.ID)
    if err != nil {
        return err
    }
    if n, _ := result.RowsAffected(); n == 0 {
        var exists bool
        if err := tx.QueryRowContext(ctx,
            `SELECT EXISTS(SELECT 1 FROM floors WHERE id = ?)`, f.ID).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ErrFloorNotFound
        }
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM floor_rooms WHERE floor_id = ?`, f.ID); err != nil {
        return err
    }
    if err := insertFloorRoomsTx(ctx, tx, f.ID, f.Slots); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// Delete removes a floor and its room numbers.  Floors referenced by a
// live reservation's assignment cannot be removed.
func (r *FloorRepo) Delete(ctx context.Context, id uint64) error {
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
    var live uint32
    if err := tx.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM reservation_rooms rr
JOIN reservations res ON res.id = rr.reservation_id
WHERE rr.floor_id = ? AND res.status IN (?, ?)`,
        id, model.StatusApproved, model.StatusCompleted).Scan(&live); err != nil {
        return err
    }
    if live > 0 {
        return ErrConflict
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM floor_rooms WHERE floor_id = ?`, id); err != nil {
        return err
    }
    result, err := tx.ExecContext(ctx, `DELETE FROM floors WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := result.RowsAffected(); n == 0 {
        return ErrFloorNotFound
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

func insertFloorRoomsTx(ctx context.Context, tx *sql.Tx, floorID uint64, slots []model.RoomSlot) error {
    if len(slots) == 0 {
        return nil
    }
    query := `INSERT INTO floor_rooms (floor_id, room_number) VALUES `
    args := make([]any, 0, len(slots)*2)
    for i, s := range slots {
        if i > 0 {
            query += ","
        }
        query += "(?, ?)"
        args = append(args, floorID, s.Number)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}
