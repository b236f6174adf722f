package queries

import (
	"context"
	"time"

	"reservas-admin/internal/domain/reservation"
	"reservas-admin/internal/domain/unit"
)

type AvailabilityQueries interface {
	// IsAvailable reports whether the unit is free of conflicting,
	// non-cancelled reservations over [start, end]. The boundary is
	// inclusive: a stay ending on the requested start day conflicts.
	//
	// persons is reserved for future capacity rules and is not enforced.
	IsAvailable(ctx context.Context, unitType unit.Type, persons int, start, end time.Time) (bool, error)
}

type availabilityQueriesImpl struct {
	repo ReservationReadStore
}

func NewAvailabilityQueries(repo ReservationReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{repo: repo}
}

func (q *availabilityQueriesImpl) IsAvailable(ctx context.Context, unitType unit.Type, _ int, start, end time.Time) (bool, error) {
	requested, err := reservation.NewStayRange(start, end)
	if err != nil {
		return false, err
	}

	inRange, err := q.repo.FindInRange(ctx, start, end)
	if err != nil {
		return false, err
	}

	for _, res := range inRange {
		if res.Unit() != unitType {
			continue
		}
		if res.Stay().Overlaps(requested) {
			return false, nil
		}
	}
	return true, nil
}
