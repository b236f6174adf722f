//go:build unit

package reservation_test

import (
	"testing"

	"reservas-admin/internal/domain/reservation"
	"reservas-admin/internal/domain/unit"
	"reservas-admin/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name           string
	mutate         func(*builder.ReservationBuilder)
	violatedFields []string
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewReservationBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}

			actual, err := b.BuildDomain()
			if len(tc.violatedFields) == 0 {
				require.NoError(t, err)
				require.NotNil(t, actual)
				return
			}

			require.Error(t, err)
			var validationErr *reservation.ValidationError
			require.ErrorAs(t, err, &validationErr)

			fields := make([]string, len(validationErr.Violations))
			for i, v := range validationErr.Violations {
				fields[i] = v.Field
			}
			for _, expected := range tc.violatedFields {
				assert.Contains(t, fields, expected)
			}
			assert.Len(t, fields, len(tc.violatedFields))
		})
	}
}

func TestNewReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, uuid.Nil, actual.ID(), "id is assigned by the store, not the factory")
		assert.Equal(t, unit.TypeCabanaRio, actual.Unit())
		assert.Equal(t, 2, actual.Persons())
		assert.Equal(t, "María García", actual.Contact().FullName())
		assert.Equal(t, reservation.StatusConfirmed, actual.Status())
		assert.True(t, actual.CountsForAvailability())
	})

	t.Run("field validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:           "unknown unit",
				mutate:         func(b *builder.ReservationBuilder) { b.WithUnit("penthouse") },
				violatedFields: []string{"unit"},
			},
			{
				name:           "zero persons",
				mutate:         func(b *builder.ReservationBuilder) { b.WithPersons(0) },
				violatedFields: []string{"persons"},
			},
			{
				name:           "negative persons",
				mutate:         func(b *builder.ReservationBuilder) { b.WithPersons(-3) },
				violatedFields: []string{"persons"},
			},
			{
				name: "end date before start date",
				mutate: func(b *builder.ReservationBuilder) {
					b.WithStay(day(2026, 9, 14), day(2026, 9, 10))
				},
				violatedFields: []string{"endDate"},
			},
			{
				name:           "missing contact name",
				mutate:         func(b *builder.ReservationBuilder) { b.WithContact("", "García") },
				violatedFields: []string{"contactName"},
			},
			{
				name:           "whitespace contact last name",
				mutate:         func(b *builder.ReservationBuilder) { b.WithContact("María", "   ") },
				violatedFields: []string{"contactLastName"},
			},
			{
				name:           "invalid status",
				mutate:         func(b *builder.ReservationBuilder) { b.WithStatus("archived") },
				violatedFields: []string{"status"},
			},
			{
				name:           "invalid origin",
				mutate:         func(b *builder.ReservationBuilder) { b.WithOrigin("kiosk") },
				violatedFields: []string{"origin"},
			},
		})
	})

	t.Run("all violations are collected in one error", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "every field wrong at once",
				mutate: func(b *builder.ReservationBuilder) {
					b.WithUnit("nope").
						WithPersons(0).
						WithContact("", "").
						WithStatus("bogus").
						WithOrigin("bogus")
				},
				violatedFields: []string{"unit", "persons", "contactName", "contactLastName", "status", "origin"},
			},
		})
	})
}

func TestReservationCancel(t *testing.T) {
	t.Run("cancel flips status once", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.Cancel())
		assert.True(t, res.IsCancelled())
		assert.False(t, res.CountsForAvailability())
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.Cancel())
		assert.ErrorIs(t, res.Cancel(), reservation.ErrReservationCancelled)
	})
}
