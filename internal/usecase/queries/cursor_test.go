//go:build unit

package queries_test

import (
	"testing"

	"reservas-admin/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorAfterID(t *testing.T) {
	t.Run("round-trips a uuid", func(t *testing.T) {
		id := uuid.New()
		got, err := queries.NewCursor(id).AfterID()
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("nil cursor is invalid", func(t *testing.T) {
		var c *queries.Cursor
		_, err := c.AfterID()
		assert.ErrorIs(t, err, queries.ErrInvalidCursor)
	})

	t.Run("empty cursor is invalid", func(t *testing.T) {
		_, err := (&queries.Cursor{}).AfterID()
		assert.ErrorIs(t, err, queries.ErrInvalidCursor)
	})

	t.Run("garbage cursor is invalid", func(t *testing.T) {
		_, err := (&queries.Cursor{After: "not-a-uuid"}).AfterID()
		assert.ErrorIs(t, err, queries.ErrInvalidCursor)
	})
}

func TestValidateLimit(t *testing.T) {
	cases := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero falls back to default", 0, queries.DefaultListLimit},
		{"negative falls back to default", -5, queries.DefaultListLimit},
		{"in-range value passes through", 50, 50},
		{"maximum is allowed", queries.MaxListLimit, queries.MaxListLimit},
		{"excess is clamped", queries.MaxListLimit + 1, queries.MaxListLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, queries.ValidateLimit(tc.limit))
		})
	}
}
