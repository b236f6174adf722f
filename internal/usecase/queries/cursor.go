package queries

import (
	"reservas-admin/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

var ErrInvalidCursor = errs.New("invalid cursor")

// Cursor is the opaque resume marker of a paginated listing. After holds the
// id of the last record of the previous page.
type Cursor struct {
	After string `json:"after,omitempty"`
}

func (c *Cursor) AfterID() (uuid.UUID, error) {
	if c == nil || c.After == "" {
		return uuid.Nil, ErrInvalidCursor
	}
	id, err := uuid.Parse(c.After)
	if err != nil {
		return uuid.Nil, ErrInvalidCursor
	}
	return id, nil
}

func NewCursor(id uuid.UUID) *Cursor {
	return &Cursor{After: id.String()}
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
