package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("document not found")

// Fields holds a flat document. Supported value kinds are string, bool,
// int64, float64 and time.Time. Values must survive a JSON round trip, so
// readers have to accept the JSON-decoded kinds as well (float64 for any
// number, RFC3339 strings for timestamps).
type Fields map[string]any

type Document struct {
	ID     uuid.UUID
	Fields Fields
}

type Op string

const (
	OpEqual          Op = "=="
	OpGreaterOrEqual Op = ">="
	OpLessOrEqual    Op = "<="
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

type OrderBy struct {
	Field string
	Desc  bool

	// AsTimestamp orders the field as a timestamp instead of text. Date
	// fields round-trip through JSON as RFC3339 strings, so the store needs
	// to be told.
	AsTimestamp bool
}

// Query describes an ordered page request. Ordering is deterministic: ties on
// the order field break by document id, in the same direction.
type Query struct {
	Filters []Filter
	OrderBy OrderBy
	Limit   int

	// StartAfter resumes strictly after the given document in the
	// established order. The document must carry the order field.
	StartAfter *Document
}

// Store is the ordered document store contract the repository runs against.
// Every call is one atomic request-response round trip; there are no
// multi-document transactions.
type Store interface {
	Insert(ctx context.Context, collection string, fields Fields) (uuid.UUID, error)
	Get(ctx context.Context, collection string, id uuid.UUID) (Document, error)
	Update(ctx context.Context, collection string, id uuid.UUID, partial Fields) error
	Delete(ctx context.Context, collection string, id uuid.UUID) error
	Find(ctx context.Context, collection string, q Query) ([]Document, error)
}

// compareValues orders two field values of compatible kinds. Timestamps may
// appear either as time.Time or as their RFC3339 round-trip string.
func compareValues(a, b any) int {
	if at, aok := asTime(a); aok {
		if bt, bok := asTime(b); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}

	if af, aok := asNumber(a); aok {
		if bf, bok := asNumber(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			switch {
			case ab == bb:
				return 0
			case bb:
				return -1
			default:
				return 1
			}
		}
	}

	as, _ := a.(string)
	bs, _ := b.(string)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
