package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/hotel-backoffice/internal/model"
)

// PropertyRepo provides CRUD for hotel properties within destinations.
type PropertyRepo struct {
    db *sql.DB
}

// NewPropertyRepo returns a PropertyRepo bound to the given database.
func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{db: db} }

// Create inserts a property, deriving the slug from the name when the
// caller leaves it empty.  The destination must exist.
func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
    var exists bool
    if err := r.db.QueryRowContext(ctx,
        `SELECT EXISTS(SELECT 1 FROM destinations WHERE id = ?)`, p.DestinationID).Scan(&exists); err != nil {
        return err
    }
    if !exists {
        return ErrDestinationNotFound
    }
    if p.Slug == "" {
        p.Slug = Slugify(p.Name)
    }
    result, err := r.db.ExecContext(ctx,
        `INSERT INTO properties (destination_id, name, slug, address, stars) VALUES (?,?,?,?,?)`,
        p.DestinationID, p.Name, p.Slug, nullable(p.Address), p.Stars)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrConflict
        }
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM properties WHERE id = ?`, p.ID).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// GetByID fetches one property.
func (r *PropertyRepo) GetByID(ctx context.Context, id uint64) (*model.Property, error) {
    var (
        p    model.Property
        addr sql.NullString
    )
    err := r.db.QueryRowContext(ctx,
        `SELECT id, destination_id, name, slug, address, stars, created_at, updated_at
FROM properties WHERE id = ?`, id).Scan(
        &p.ID, &p.DestinationID, &p.Name, &p.Slug, &addr, &p.Stars, &p.CreatedAt, &p.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrPropertyNotFound
        }
        return nil, err
    }
    p.Address = addr.String
    return &p, nil
}

// ListByDestination returns one page of a destination's properties.
func (r *PropertyRepo) ListByDestination(ctx context.Context, destinationID uint64, page, size uint32) ([]model.Property, error) {
    if page == 0 {
        page = 1
    }
    if size == 0 || size > 100 {
        size = 20
    }
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, destination_id, name, slug, address, stars, created_at, updated_at
FROM properties WHERE destination_id = ? ORDER BY name LIMIT ? OFFSET ?`,
        destinationID, size, (page-1)*size)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Property
    for rows.Next() {
        var (
            p    model.Property
            addr sql.NullString
        )
        if err := rows.Scan(&p.ID, &p.DestinationID, &p.Name, &p.Slug, &addr, &p.Stars, &p.CreatedAt, &p.UpdatedAt); err != nil {
            return nil, err
        }
        p.Address = addr.String
        out = append(out, p)
    }
    return out, rows.Err()
}

// Update rewrites a property.
func (r *PropertyRepo) Update(ctx context.Context, p *model.Property) error {
    if p.Slug == "" {
        p.Slug = Slugify(p.Name)
    }
    result, err := r.db.ExecContext(ctx,
        `UPDATE properties SET destination_id=?, name=?, slug=?, address=?, stars=? WHERE id=?`,
        p.DestinationID, p.Name, p.Slug, nullable(p.Address), p.Stars, p.ID)
    if err != nil {
        return err
    }
    if n, _ := result.RowsAffected(); n == 0 {
        var exists bool
        if err := r.db.QueryRowContext(ctx,
            `SELECT EXISTS(SELECT 1 FROM properties WHERE id = ?)`, p.ID).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ErrPropertyNotFound
        }
    }
    return nil
}

// Delete removes a property.  Properties that still have room types
// yield ErrConflict.
func (r *PropertyRepo) Delete(ctx context.Context, id uint64) error {
    var dependents uint32
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM rooms WHERE property_id = ?`, id).Scan(&dependents); err != nil {
        return err
    }
    if dependents > 0 {
        return ErrConflict
    }
    result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := result.RowsAffected(); n == 0 {
        return ErrPropertyNotFound
    }
    return nil
}
