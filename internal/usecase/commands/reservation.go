package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"reservas-admin/internal/domain/reservation"
	"reservas-admin/internal/domain/unit"
	"reservas-admin/internal/infra"
	"reservas-admin/internal/pkg/clock"
	"reservas-admin/internal/pkg/errs"
	"reservas-admin/internal/pkg/patch"
	"reservas-admin/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound  = errs.New("reservation not found")
	ErrDatesUnavailable     = errs.New("dates unavailable")
	ErrReservationCancelled = errs.New("reservation is cancelled")

	// Error markers for categorization
	ErrDomainValidationFailed  = errs.New("domain validation failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateReservationParams struct {
	Unit             unit.Type
	Persons          int
	StartDate        time.Time
	EndDate          time.Time
	ContactName      string
	ContactLastName  string
	ContactEmail     *string
	ContactPhone     *string
	Reason           *string
	IncludeBreakfast bool
	IncludeLunch     bool
	NotifyUser       bool
	Status           reservation.Status
	Origin           reservation.Origin
}

// UpdateReservationParams carries the merge patch of an update; nil means
// "leave unchanged".
type UpdateReservationParams struct {
	Unit             *unit.Type
	Persons          *int
	StartDate        *time.Time
	EndDate          *time.Time
	ContactName      *string
	ContactLastName  *string
	ContactEmail     *string
	ContactPhone     *string
	Reason           *string
	IncludeBreakfast *bool
	IncludeLunch     *bool
	NotifyUser       *bool
	Status           *reservation.Status
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, params CreateReservationParams) (uuid.UUID, error)
	UpdateReservation(ctx context.Context, id uuid.UUID, params UpdateReservationParams) (*queries.ReservationView, error)
	DeleteReservation(ctx context.Context, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	reservationRepo  ReservationRepository
	notificationRepo NotificationRepository
	availability     queries.AvailabilityQueries
	clock            clock.Clock
}

func NewReservationCommands(
	reservationRepo ReservationRepository,
	notificationRepo NotificationRepository,
	availability queries.AvailabilityQueries,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		reservationRepo:  reservationRepo,
		notificationRepo: notificationRepo,
		availability:     availability,
		clock:            clk,
	}
}

// CreateReservation gates the write on the availability check and then
// performs a single insert. The two store round trips are not one
// transaction: two concurrent creations for the same unit and dates can both
// pass the gate. The store contract offers no multi-document transaction to
// close that window.
func (c *reservationCommandsImpl) CreateReservation(ctx context.Context, params CreateReservationParams) (uuid.UUID, error) {
	res, err := reservation.NewReservation(reservation.NewReservationParams{
		Unit:             params.Unit,
		Persons:          params.Persons,
		StartDate:        params.StartDate,
		EndDate:          params.EndDate,
		Contact:          reservation.NewContact(params.ContactName, params.ContactLastName, params.ContactEmail, params.ContactPhone),
		Reason:           params.Reason,
		IncludeBreakfast: params.IncludeBreakfast,
		IncludeLunch:     params.IncludeLunch,
		NotifyUser:       params.NotifyUser,
		Status:           params.Status,
		Origin:           params.Origin,
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidationFailed)
	}

	available, err := c.availability.IsAvailable(ctx, res.Unit(), res.Persons(), res.Stay().Start(), res.Stay().End())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !available {
		return uuid.Nil, ErrDatesUnavailable
	}

	id, err := c.reservationRepo.Create(ctx, res)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	c.enqueueConfirmation(ctx, id, res)
	return id, nil
}

// enqueueConfirmation is best effort: a failed job insert must not undo a
// stored reservation.
func (c *reservationCommandsImpl) enqueueConfirmation(ctx context.Context, id uuid.UUID, res *reservation.Reservation) {
	if !res.NotifyUser() || res.Contact().Email() == nil {
		return
	}

	payload, err := json.Marshal(map[string]any{
		"reservationId": id,
		"email":         *res.Contact().Email(),
		"name":          res.Contact().FullName(),
		"unit":          res.Unit().String(),
		"startDate":     res.Stay().Start(),
		"endDate":       res.Stay().End(),
		"nights":        res.Stay().Nights(),
	})
	if err != nil {
		slog.Warn("failed to build confirmation payload", "reservation_id", id, "error", err)
		return
	}

	if err := c.notificationRepo.CreateJob(ctx, "email", "booking_confirmation", payload, c.clock.Now()); err != nil {
		slog.Warn("failed to enqueue booking confirmation", "reservation_id", id, "error", err)
	}
}

func (c *reservationCommandsImpl) UpdateReservation(ctx context.Context, id uuid.UUID, params UpdateReservationParams) (*queries.ReservationView, error) {
	existing, err := c.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Cancelled records only leave through delete. Cancellation itself is
	// a domain transition, not a plain field merge.
	if params.Status != nil && *params.Status == reservation.StatusCancelled {
		if cancelErr := existing.Cancel(); cancelErr != nil {
			return nil, ErrReservationCancelled
		}
	} else if existing.IsCancelled() {
		return nil, ErrReservationCancelled
	}

	contact := existing.Contact()
	merged, err := reservation.NewReservation(reservation.NewReservationParams{
		Unit:      patch.Coalesce(params.Unit, existing.Unit()),
		Persons:   patch.Coalesce(params.Persons, existing.Persons()),
		StartDate: patch.Coalesce(params.StartDate, existing.Stay().Start()),
		EndDate:   patch.Coalesce(params.EndDate, existing.Stay().End()),
		Contact: reservation.NewContact(
			patch.Coalesce(params.ContactName, contact.Name()),
			patch.Coalesce(params.ContactLastName, contact.LastName()),
			coalescePtr(params.ContactEmail, contact.Email()),
			coalescePtr(params.ContactPhone, contact.Phone()),
		),
		Reason:           coalescePtr(params.Reason, existing.Reason()),
		IncludeBreakfast: patch.Coalesce(params.IncludeBreakfast, existing.IncludeBreakfast()),
		IncludeLunch:     patch.Coalesce(params.IncludeLunch, existing.IncludeLunch()),
		NotifyUser:       patch.Coalesce(params.NotifyUser, existing.NotifyUser()),
		Status:           patch.Coalesce(params.Status, existing.Status()),
		Origin:           existing.Origin(),
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}

	final := reservation.Reconstruct(
		existing.ID(),
		merged.Unit(),
		merged.Persons(),
		merged.Stay(),
		merged.Contact(),
		merged.Reason(),
		merged.IncludeBreakfast(),
		merged.IncludeLunch(),
		merged.NotifyUser(),
		merged.Status(),
		merged.Origin(),
		existing.CreatedAt(),
		existing.UpdatedAt(),
	)

	if err := c.reservationRepo.Update(ctx, final); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	updated, err := c.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return queries.ToReservationView(updated), nil
}

// DeleteReservation removes the record permanently; a missing id is not an
// error.
func (c *reservationCommandsImpl) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	if err := c.reservationRepo.Delete(ctx, id); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func coalescePtr(patchVal *string, existing *string) *string {
	if patchVal != nil {
		return patchVal
	}
	return existing
}
