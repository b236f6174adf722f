package repository

import (
	"context"
	"errors"

	"time"

	"reservas-admin/internal/domain/reservation"
	"reservas-admin/internal/infra"
	"reservas-admin/internal/infra/docstore"
	"reservas-admin/internal/pkg/clock"

	"github.com/google/uuid"
)

const reservationsCollection = "reservations"

type ListOrder string

const (
	// OrderEndDateDesc is what the admin listing uses.
	OrderEndDateDesc ListOrder = "endDate_desc"
	// OrderStartDateDesc is what the booking calendar uses.
	OrderStartDateDesc ListOrder = "startDate_desc"
)

const DefaultPageSize = 20

type ListOptions struct {
	// IncludeHistory also returns stays that already ended.
	IncludeHistory bool
	PageSize       int
	// Cursor is the id of the last record of the previous page.
	Cursor *uuid.UUID
	Order  ListOrder
}

// ReservationRepository is the single shared repository for reservation
// documents; both the admin API and the public booking flow go through it.
// It is stateless: every read goes back to the store.
type ReservationRepository struct {
	store docstore.Store
	clock clock.Clock
}

func NewReservationRepository(store docstore.Store, clk clock.Clock) *ReservationRepository {
	return &ReservationRepository{
		store: store,
		clock: clk,
	}
}

// Create stores a new reservation with createdAt = updatedAt = now and
// returns the store-assigned id.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	now := r.clock.Now().UTC()
	fields := reservationToFields(res)
	fields[fieldCreatedAt] = now
	fields[fieldUpdatedAt] = now

	id, err := r.store.Insert(ctx, reservationsCollection, fields)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	doc, err := r.store.Get(ctx, reservationsCollection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return documentToReservation(doc)
}

// Update writes the merged state of the reservation and refreshes updatedAt.
// createdAt is never part of the partial, so it can never change.
func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	partial := reservationToFields(res)
	partial[fieldUpdatedAt] = r.clock.Now().UTC()

	err := r.store.Update(ctx, reservationsCollection, res.ID(), partial)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	return nil
}

// Delete removes the record permanently. Deleting a missing id is a no-op.
func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.store.Delete(ctx, reservationsCollection, id); err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	return nil
}

// List returns one page in the requested order, plus the id of the last
// record as the next cursor when the page is full. A short page is the
// definitive end-of-data signal; a returned cursor is not a promise of more
// data.
func (r *ReservationRepository) List(ctx context.Context, opts ListOptions) ([]*reservation.Reservation, *uuid.UUID, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	orderField := fieldEndDate
	if opts.Order == OrderStartDateDesc {
		orderField = fieldStartDate
	}

	q := docstore.Query{
		OrderBy: docstore.OrderBy{Field: orderField, Desc: true, AsTimestamp: true},
		Limit:   pageSize,
	}
	if !opts.IncludeHistory {
		q.Filters = append(q.Filters, docstore.Filter{
			Field: fieldEndDate,
			Op:    docstore.OpGreaterOrEqual,
			Value: r.clock.Now().UTC(),
		})
	}

	if opts.Cursor != nil {
		cursorDoc, err := r.store.Get(ctx, reservationsCollection, *opts.Cursor)
		switch {
		case errors.Is(err, docstore.ErrNotFound):
			// A stale cursor restarts from the first page, as the
			// original admin tool did.
		case err != nil:
			return nil, nil, infra.WrapRepoErr("failed to resolve list cursor", err)
		default:
			q.StartAfter = &cursorDoc
		}
	}

	docs, err := r.store.Find(ctx, reservationsCollection, q)
	if err != nil {
		return nil, nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	items := make([]*reservation.Reservation, len(docs))
	for i, doc := range docs {
		if items[i], err = documentToReservation(doc); err != nil {
			return nil, nil, infra.WrapRepoErr("failed to decode reservation", err)
		}
	}

	var next *uuid.UUID
	if len(items) == pageSize && pageSize > 0 {
		lastID := items[len(items)-1].ID()
		next = &lastID
	}
	return items, next, nil
}

// FindInRange returns every non-cancelled reservation whose stay intersects
// [start, end] inclusively. The store cannot combine an inequality with the
// two range filters in one request, so cancelled records are dropped by a
// local post-filter. This two-step shape is deliberate, not an optimization.
func (r *ReservationRepository) FindInRange(ctx context.Context, start, end time.Time) ([]*reservation.Reservation, error) {
	q := docstore.Query{
		Filters: []docstore.Filter{
			{Field: fieldStartDate, Op: docstore.OpLessOrEqual, Value: end.UTC()},
			{Field: fieldEndDate, Op: docstore.OpGreaterOrEqual, Value: start.UTC()},
		},
		OrderBy: docstore.OrderBy{Field: fieldStartDate, AsTimestamp: true},
	}

	docs, err := r.store.Find(ctx, reservationsCollection, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservations in range", err)
	}

	items := make([]*reservation.Reservation, 0, len(docs))
	for _, doc := range docs {
		res, err := documentToReservation(doc)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode reservation", err)
		}
		if !res.CountsForAvailability() {
			continue
		}
		items = append(items, res)
	}
	return items, nil
}
