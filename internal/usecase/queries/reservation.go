package queries

import (
	"context"
	"time"

	"reservas-admin/internal/domain/reservation"
	"reservas-admin/internal/infra"
	"reservas-admin/internal/infra/repository"
	"reservas-admin/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.New("reservation not found")

// Read model (DTO for read side)
type ReservationView struct {
	ID               uuid.UUID `json:"id"`
	Unit             string    `json:"unit"`
	Persons          int       `json:"persons"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	ContactName      string    `json:"contactName"`
	ContactLastName  string    `json:"contactLastName"`
	ContactEmail     *string   `json:"contactEmail,omitempty"`
	ContactPhone     *string   `json:"contactPhone,omitempty"`
	Reason           *string   `json:"reason,omitempty"`
	IncludeBreakfast bool      `json:"includeBreakfast"`
	IncludeLunch     bool      `json:"includeLunch"`
	NotifyUser       bool      `json:"notifyUser"`
	Status           string    `json:"status"`
	Origin           string    `json:"origin"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type ListParams struct {
	IncludeHistory bool
	PageSize       int
	Cursor         *Cursor
	Order          repository.ListOrder
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	List(ctx context.Context, opts repository.ListOptions) ([]*reservation.Reservation, *uuid.UUID, error)
	FindInRange(ctx context.Context, start, end time.Time) ([]*reservation.Reservation, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, params ListParams) ([]*ReservationView, *Cursor, error)
	ListInRange(ctx context.Context, start, end time.Time) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	repo ReservationReadStore
}

func NewReservationQueries(repo ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	res, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return ToReservationView(res), nil
}

func (q *reservationQueriesImpl) List(ctx context.Context, params ListParams) ([]*ReservationView, *Cursor, error) {
	opts := repository.ListOptions{
		IncludeHistory: params.IncludeHistory,
		PageSize:       ValidateLimit(params.PageSize),
		Order:          params.Order,
	}
	if params.Cursor != nil && params.Cursor.After != "" {
		afterID, err := params.Cursor.AfterID()
		if err != nil {
			return nil, nil, ErrInvalidCursor
		}
		opts.Cursor = &afterID
	}

	items, nextID, err := q.repo.List(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	views := make([]*ReservationView, len(items))
	for i, res := range items {
		views[i] = ToReservationView(res)
	}

	var next *Cursor
	if nextID != nil {
		next = NewCursor(*nextID)
	}
	return views, next, nil
}

func (q *reservationQueriesImpl) ListInRange(ctx context.Context, start, end time.Time) ([]*ReservationView, error) {
	items, err := q.repo.FindInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	views := make([]*ReservationView, len(items))
	for i, res := range items {
		views[i] = ToReservationView(res)
	}
	return views, nil
}

func ToReservationView(res *reservation.Reservation) *ReservationView {
	return &ReservationView{
		ID:               res.ID(),
		Unit:             res.Unit().String(),
		Persons:          res.Persons(),
		StartDate:        res.Stay().Start(),
		EndDate:          res.Stay().End(),
		ContactName:      res.Contact().Name(),
		ContactLastName:  res.Contact().LastName(),
		ContactEmail:     res.Contact().Email(),
		ContactPhone:     res.Contact().Phone(),
		Reason:           res.Reason(),
		IncludeBreakfast: res.IncludeBreakfast(),
		IncludeLunch:     res.IncludeLunch(),
		NotifyUser:       res.NotifyUser(),
		Status:           res.Status().String(),
		Origin:           res.Origin().String(),
		CreatedAt:        res.CreatedAt(),
		UpdatedAt:        res.UpdatedAt(),
	}
}
