package model

import "time"

// Destination is a travel destination grouping properties, maintained
// through the back-office catalog screens.  Slug is the SEO identifier
// derived from the name.
type Destination struct {
    ID          uint64    `json:"id"`
    Name        string    `json:"name"`
    Slug        string    `json:"slug"`
    Country     string    `json:"country"`
    Description string    `json:"description,omitempty"`
    CreatedAt   time.Time `json:"created_at"`
    UpdatedAt   time.Time `json:"updated_at"`
}
