package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-backoffice/internal/model"
)

// RoomRepo provides CRUD operations for room types and their
// extra-service catalogs.  The reservation core only reads rooms;
// managers maintain them through the catalog endpoints.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// GetByID loads a room type together with its service catalog.
// Returns ErrRoomNotFound for unknown ids.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
    var room model.Room
    err := r.db.QueryRowContext(ctx,
        `SELECT id, property_id, name, adults, children, price, default_price, created_at, updated_at
FROM rooms WHERE id = ?`, id).Scan(
        &room.ID, &room.PropertyID, &room.Name, &room.Capacity.Adults, &room.Capacity.Children,
        &room.Price, &room.DefaultPrice, &room.CreatedAt, &room.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, name, price FROM room_services WHERE room_id = ? ORDER BY id`, id)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var svc model.RoomService
        if err := rows.Scan(&svc.ID, &svc.Name, &svc.Price); err != nil {
            return nil, err
        }
        room.Services = append(room.Services, svc)
    }
    return &room, rows.Err()
}

// ListSummaries returns one page of lightweight room summaries for the
// room-type picker, ordered by name.
func (r *RoomRepo) ListSummaries(ctx context.Context, page, size uint32) ([]model.RoomSummary, error) {
    if page == 0 {
        page = 1
    }
    if size == 0 || size > 100 {
        size = 20
    }
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, name, adults, children, price FROM rooms ORDER BY name LIMIT ? OFFSET ?`,
        size, (page-1)*size)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.RoomSummary, 0, size)
    for rows.Next() {
        var s model.RoomSummary
        if err := rows.Scan(&s.ID, &s.Name, &s.Capacity.Adults, &s.Capacity.Children, &s.Price); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// Create inserts a room type and its service catalog in one
// transaction, populating the generated ids.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
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
        `INSERT INTO rooms (property_id, name, adults, children, price, default_price) VALUES (?,?,?,?,?,?)`,
        room.PropertyID, room.Name, room.Capacity.Adults, room.Capacity.Children, room.Price, room.DefaultPrice)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    room.ID = uint64(id)
    for i := range room.Services {
        svcResult, err := tx.ExecContext(ctx,
            `INSERT INTO room_services (room_id, name, price) VALUES (?,?,?)`,
            room.ID, room.Services[i].Name, room.Services[i].Price)
        if err != nil {
            return err
        }
        svcID, err := svcResult.LastInsertId()
        if err != nil {
            return err
        }
        room.Services[i].ID = uint64(svcID)
    }
    if err := tx.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM rooms WHERE id = ?`, room.ID).Scan(&room.CreatedAt, &room.UpdatedAt); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// Update rewrites a room type and replaces its service catalog.
// Existing service rows referenced by reservations keep their ids when
// the caller passes them back with ids set; rows without an id are
// inserted fresh.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
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
        `UPDATE rooms SET property_id=?, name=?, adults=?, children=?, price=?, default_price=? WHERE id=?`,
        room.PropertyID, room.Name, room.Capacity.Adults, room.Capacity.Children,
        room.Price, room.DefaultPrice, room.ID)
    if err != nil {
        return err
    }
    if n, _ := result.RowsAffected(); n == 0 {
        var exists bool
        if err := tx.QueryRowContext(ctx,
            `SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)`, room.ID).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ErrRoomNotFound
        }
    }
    // drop services the caller no longer lists
    keep := make([]any, 0, len(room.Services)+1)
    keep = append(keep, room.ID)
    placeholders := ""
    for _, svc := range room.Services {
        if svc.ID != 0 {
            if placeholders != "" {
                placeholders += ","
            }
            placeholders += "?"
            keep = append(keep, svc.ID)
        }
    }
    del := `DELETE FROM room_services WHERE room_id = ?`
    if placeholders != "" {
        del += ` AND id NOT IN (` + placeholders + `)`
    }
    if _, err := tx.ExecContext(ctx, del, keep...); err != nil {
        return err
    }
    for i := range room.Services {
        svc := &room.Services[i]
        if svc.ID != 0 {
            if _, err := tx.ExecContext(ctx,
                `UPDATE room_services SET name=?, price=? WHERE id=? AND room_id=?`,
                svc.Name, svc.Price, svc.ID, room.ID); err != nil {
                return err
            }
            continue
        }
        svcResult, err := tx.ExecContext(ctx,
            `INSERT INTO room_services (room_id, name, price) VALUES (?,?,?)`,
            room.ID, svc.Name, svc.Price)
        if err != nil {
            return err
        }
        svcID, err := svcResult.LastInsertId()
        if err != nil {
            return err
        }
        svc.ID = uint64(svcID)
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// Delete removes a room type and its service catalog.  A room with
// live (non-deleted, non-canceled) reservations cannot be removed and
// yields ErrConflict.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
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
        `SELECT COUNT(*) FROM reservations WHERE room_id = ? AND status IN (?,?,?)`,
        id, model.StatusPending, model.StatusApproved, model.StatusCompleted).Scan(&live); err != nil {
        return err
    }
    if live > 0 {
        return ErrConflict
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM room_services WHERE room_id = ?`, id); err != nil {
        return err
    }
    result, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := result.RowsAffected(); n == 0 {
        return ErrRoomNotFound
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
