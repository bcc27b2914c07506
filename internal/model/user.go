package model

import "time"

// Staff roles.  Managers maintain the catalog and may create
// reservations directly in APPROVED; agents work the reservation desk.
const (
    RoleManager = "MANAGER"
    RoleAgent   = "AGENT"
)

// User is a back-office staff account.  Passwords are stored only as
// bcrypt hashes.
type User struct {
    ID           uint64    `json:"id"`
    Email        string    `json:"email"`
    PasswordHash string    `json:"-"`
    Role         string    `json:"role"`
    IsActive     bool      `json:"is_active"`
    CreatedAt    time.Time `json:"created_at"`
    UpdatedAt    time.Time `json:"updated_at"`
}
