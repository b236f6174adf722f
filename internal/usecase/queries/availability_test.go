//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"reservas-admin/internal/domain/unit"
	"reservas-admin/internal/infra/docstore"
	"reservas-admin/internal/infra/repository"
	"reservas-admin/internal/pkg/clock"
	"reservas-admin/internal/usecase/queries"
	"reservas-admin/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedReservation(t *testing.T, repo *repository.ReservationRepository, b *builder.ReservationBuilder) {
	t.Helper()
	res, err := b.BuildDomain()
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), res)
	require.NoError(t, err)
}

func TestAvailabilityIsAvailable(t *testing.T) {
	ctx := context.Background()

	newFixture := func(t *testing.T) (queries.AvailabilityQueries, *repository.ReservationRepository) {
		t.Helper()
		store := docstore.NewMemStore()
		repo := repository.NewReservationRepository(store, clock.NewMockClock(day(2026, 6, 1)))
		return queries.NewAvailabilityQueries(repo), repo
	}

	t.Run("free unit is available", func(t *testing.T) {
		availability, _ := newFixture(t)
		ok, err := availability.IsAvailable(ctx, unit.TypeCabanaRio, 2, day(2026, 6, 10), day(2026, 6, 15))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("occupied dates conflict", func(t *testing.T) {
		availability, repo := newFixture(t)
		seedReservation(t, repo, builder.NewReservationBuilder().
			WithUnit(unit.TypeCabanaRio).
			WithStay(day(2026, 6, 10), day(2026, 6, 15)))

		cases := []struct {
			name       string
			start, end time.Time
			available  bool
		}{
			{"identical stay", day(2026, 6, 10), day(2026, 6, 15), false},
			{"request inside the stay", day(2026, 6, 11), day(2026, 6, 13), false},
			{"request covering the stay", day(2026, 6, 1), day(2026, 6, 30), false},
			{"request starting on the checkout day", day(2026, 6, 15), day(2026, 6, 20), false},
			{"request ending on the checkin day", day(2026, 6, 5), day(2026, 6, 10), false},
			{"request the day after checkout", day(2026, 6, 16), day(2026, 6, 20), true},
			{"request the day before checkin", day(2026, 6, 5), day(2026, 6, 9), true},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ok, err := availability.IsAvailable(ctx, unit.TypeCabanaRio, 2, tc.start, tc.end)
				require.NoError(t, err)
				assert.Equal(t, tc.available, ok)
			})
		}
	})

	t.Run("other units do not block", func(t *testing.T) {
		availability, repo := newFixture(t)
		seedReservation(t, repo, builder.NewReservationBuilder().
			WithUnit(unit.TypeCabanaRio).
			WithStay(day(2026, 6, 10), day(2026, 6, 15)))

		ok, err := availability.IsAvailable(ctx, unit.TypeHabitacion1, 2, day(2026, 6, 10), day(2026, 6, 15))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("cancelled reservations do not block", func(t *testing.T) {
		availability, repo := newFixture(t)
		seedReservation(t, repo, builder.NewReservationBuilder().
			WithUnit(unit.TypeCabanaRio).
			WithStay(day(2026, 6, 10), day(2026, 6, 15)).
			AsCancelled())

		ok, err := availability.IsAvailable(ctx, unit.TypeCabanaRio, 2, day(2026, 6, 12), day(2026, 6, 14))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("pending reservations block like confirmed ones", func(t *testing.T) {
		availability, repo := newFixture(t)
		seedReservation(t, repo, builder.NewReservationBuilder().
			WithUnit(unit.TypeCabanaRio).
			WithStay(day(2026, 6, 10), day(2026, 6, 15)).
			WithStatus("pending"))

		ok, err := availability.IsAvailable(ctx, unit.TypeCabanaRio, 2, day(2026, 6, 12), day(2026, 6, 14))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalid range is an error", func(t *testing.T) {
		availability, _ := newFixture(t)
		_, err := availability.IsAvailable(ctx, unit.TypeCabanaRio, 2, day(2026, 6, 15), day(2026, 6, 10))
		assert.Error(t, err)
	})
}
