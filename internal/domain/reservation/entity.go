package reservation

import (
	"errors"
	"time"

	"reservas-admin/internal/domain/unit"

	"github.com/google/uuid"
)

var ErrReservationCancelled = errors.New("reservation is already cancelled")

type Reservation struct {
	id               uuid.UUID
	unit             unit.Type
	persons          int
	stay             StayRange
	contact          Contact
	reason           *string
	includeBreakfast bool
	includeLunch     bool
	notifyUser       bool
	status           Status
	origin           Origin
	createdAt        time.Time
	updatedAt        time.Time
}

type NewReservationParams struct {
	Unit             unit.Type
	Persons          int
	StartDate        time.Time
	EndDate          time.Time
	Contact          Contact
	Reason           *string
	IncludeBreakfast bool
	IncludeLunch     bool
	NotifyUser       bool
	Status           Status
	Origin           Origin
}

// NewReservation validates every field and reports all violations at once,
// not just the first one.
func NewReservation(p NewReservationParams) (*Reservation, error) {
	v := NewValidation()

	if !p.Unit.IsValid() {
		v.Add("unit", "unknown unit")
	}
	if p.Persons < 1 {
		v.Add("persons", "must be a positive integer")
	}
	if p.StartDate.IsZero() {
		v.Add("startDate", "required")
	}
	if p.EndDate.IsZero() {
		v.Add("endDate", "required")
	}

	var stay StayRange
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() {
		var err error
		if stay, err = NewStayRange(p.StartDate, p.EndDate); err != nil {
			v.Add("endDate", "must not be before start date")
		}
	}

	if p.Contact.Name() == "" {
		v.Add("contactName", "required")
	}
	if p.Contact.LastName() == "" {
		v.Add("contactLastName", "required")
	}
	if !p.Status.IsValid() {
		v.Add("status", "must be one of pending, confirmed, cancelled")
	}
	if !p.Origin.IsValid() {
		v.Add("origin", "must be public or admin")
	}

	if err := v.Err(); err != nil {
		return nil, err
	}

	// The id stays zero until the store assigns one.
	return &Reservation{
		unit:             p.Unit,
		persons:          p.Persons,
		stay:             stay,
		contact:          p.Contact,
		reason:           p.Reason,
		includeBreakfast: p.IncludeBreakfast,
		includeLunch:     p.IncludeLunch,
		notifyUser:       p.NotifyUser,
		status:           p.Status,
		origin:           p.Origin,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	unitType unit.Type,
	persons int,
	stay StayRange,
	contact Contact,
	reason *string,
	includeBreakfast, includeLunch, notifyUser bool,
	status Status,
	origin Origin,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:               id,
		unit:             unitType,
		persons:          persons,
		stay:             stay,
		contact:          contact,
		reason:           reason,
		includeBreakfast: includeBreakfast,
		includeLunch:     includeLunch,
		notifyUser:       notifyUser,
		status:           status,
		origin:           origin,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

// CountsForAvailability reports whether this record blocks other bookings.
func (r *Reservation) CountsForAvailability() bool {
	return r.status != StatusCancelled
}

// Cancel is one-directional: a cancelled reservation stays cancelled.
func (r *Reservation) Cancel() error {
	if r.status == StatusCancelled {
		return ErrReservationCancelled
	}
	r.status = StatusCancelled
	return nil
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) Unit() unit.Type        { return r.unit }
func (r *Reservation) Persons() int           { return r.persons }
func (r *Reservation) Stay() StayRange        { return r.stay }
func (r *Reservation) Contact() Contact       { return r.contact }
func (r *Reservation) Reason() *string        { return r.reason }
func (r *Reservation) IncludeBreakfast() bool { return r.includeBreakfast }
func (r *Reservation) IncludeLunch() bool     { return r.includeLunch }
func (r *Reservation) NotifyUser() bool       { return r.notifyUser }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) Origin() Origin         { return r.origin }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time   { return r.updatedAt }
