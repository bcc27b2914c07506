package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/hotel-backoffice/internal/model"
)

// DestinationRepo provides CRUD for destinations, the top level of the
// back-office catalog.
type DestinationRepo struct {
    db *sql.DB
}

// NewDestinationRepo returns a DestinationRepo bound to the given database.
func NewDestinationRepo(db *sql.DB) *DestinationRepo { return &DestinationRepo{db: db} }

// Slugify derives the SEO slug from a display name: lower case, spaces
// and runs of punctuation collapsed to single hyphens.
func Slugify(name string) string {
    var b strings.Builder
    lastHyphen := true // suppress a leading hyphen
    for _, r := range strings.ToLower(strings.TrimSpace(name)) {
        switch {
        case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
            b.WriteRune(r)
            lastHyphen = false
        default:
            if !lastHyphen {
                b.WriteByte('-')
                lastHyphen = true
            }
        }
    }
    return strings.TrimSuffix(b.String(), "-")
}

// Create inserts a destination, deriving the slug from the name when
// the caller leaves it empty.
func (r *DestinationRepo) Create(ctx context.Context, d *model.Destination) error {
    if d.Slug == "" {
        d.Slug = Slugify(d.Name)
    }
    result, err := r.db.ExecContext(ctx,
        `INSERT INTO destinations (name, slug, country, description) VALUES (?,?,?,?)`,
        d.Name, d.Slug, d.Country, nullable(d.Description))
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrConflict // duplicate slug
        }
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    d.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM destinations WHERE id = ?`, d.ID).Scan(&d.CreatedAt, &d.UpdatedAt)
}

// GetByID fetches one destination.
func (r *DestinationRepo) GetByID(ctx context.Context, id uint64) (*model.Destination, error) {
    var (
        d    model.Destination
        desc sql.NullString
    )
    err := r.db.QueryRowContext(ctx,
        `SELECT id, name, slug, country, description, created_at, updated_at FROM destinations WHERE id = ?`,
        id).Scan(&d.ID, &d.Name, &d.Slug, &d.Country, &desc, &d.CreatedAt, &d.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrDestinationNotFound
        }
        return nil, err
    }
    d.Description = desc.String
    return &d, nil
}

// List returns one page of destinations ordered by name.
func (r *DestinationRepo) List(ctx context.Context, page, size uint32) ([]model.Destination, error) {
    if page == 0 {
        page = 1
    }
    if size == 0 || size > 100 {
        size = 20
    }
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, name, slug, country, description, created_at, updated_at
FROM destinations ORDER BY name LIMIT ? OFFSET ?`, size, (page-1)*size)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Destination
    for rows.Next() {
        var (
            d    model.Destination
            desc sql.NullString
        )
        if err := rows.Scan(&d.ID, &d.Name, &d.Slug, &d.Country, &desc, &d.CreatedAt, &d.UpdatedAt); err != nil {
            return nil, err
        }
        d.Description = desc.String
        out = append(out, d)
    }
    return out, rows.Err()
}

// Update rewrites a destination, re-deriving the slug when empty.
func (r *DestinationRepo) Update(ctx context.Context, d *model.Destination) error {
    if d.Slug == "" {
        d.Slug = Slugify(d.Name)
    }
    result, err := r.db.ExecContext(ctx,
        `UPDATE destinations SET name=?, slug=?, country=?, description=? WHERE id=?`,
        d.Name, d.Slug, d.Country, nullable(d.Description), d.ID)
    if err != nil {
        return err
    }
    if n, _ := result.RowsAffected(); n == 0 {
        var exists bool
        if err := r.db.QueryRowContext(ctx,
            `SELECT EXISTS(SELECT 1 FROM destinations WHERE id = ?)`, d.ID).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ErrDestinationNotFound
        }
    }
    return nil
}

// Delete removes a destination.  Destinations that still have
// properties yield ErrConflict.
func (r *DestinationRepo) Delete(ctx context.Context, id uint64) error {
    var dependents uint32
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM properties WHERE destination_id = ?`, id).Scan(&dependents); err != nil {
        return err
    }
    if dependents > 0 {
        return ErrConflict
    }
    result, err := r.db.ExecContext(ctx, `DELETE FROM destinations WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := result.RowsAffected(); n == 0 {
        return ErrDestinationNotFound
    }
    return nil
}
