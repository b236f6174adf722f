//go:build unit || e2e

package builder

import (
	"time"

	domres "reservas-admin/internal/domain/reservation"
	"reservas-admin/internal/domain/unit"
	reqdto "reservas-admin/internal/handler/dto/request"
	"reservas-admin/internal/usecase/commands"
	"reservas-admin/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ReservationBuilder struct {
	ID               uuid.UUID
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
	Status           domres.Status
	Origin           domres.Origin
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	email := "guest@example.com"
	return &ReservationBuilder{
		ID:              uuid.New(),
		Unit:            unit.TypeCabanaRio,
		Persons:         2,
		StartDate:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		ContactName:     "María",
		ContactLastName: "García",
		ContactEmail:    &email,
		Status:          domres.StatusConfirmed,
		Origin:          domres.OriginAdmin,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *ReservationBuilder) BuildDomain() (*domres.Reservation, error) {
	return domres.NewReservation(domres.NewReservationParams{
		Unit:             b.Unit,
		Persons:          b.Persons,
		StartDate:        b.StartDate,
		EndDate:          b.EndDate,
		Contact:          domres.NewContact(b.ContactName, b.ContactLastName, b.ContactEmail, b.ContactPhone),
		Reason:           b.Reason,
		IncludeBreakfast: b.IncludeBreakfast,
		IncludeLunch:     b.IncludeLunch,
		NotifyUser:       b.NotifyUser,
		Status:           b.Status,
		Origin:           b.Origin,
	})
}

func (b *ReservationBuilder) BuildReconstructed() *domres.Reservation {
	stay, err := domres.NewStayRange(b.StartDate, b.EndDate)
	if err != nil {
		panic("builder holds an invalid stay range: " + err.Error())
	}
	return domres.Reconstruct(
		b.ID,
		b.Unit,
		b.Persons,
		stay,
		domres.NewContact(b.ContactName, b.ContactLastName, b.ContactEmail, b.ContactPhone),
		b.Reason,
		b.IncludeBreakfast, b.IncludeLunch, b.NotifyUser,
		b.Status,
		b.Origin,
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *ReservationBuilder) BuildCreateParams() commands.CreateReservationParams {
	return commands.CreateReservationParams{
		Unit:             b.Unit,
		Persons:          b.Persons,
		StartDate:        b.StartDate,
		EndDate:          b.EndDate,
		ContactName:      b.ContactName,
		ContactLastName:  b.ContactLastName,
		ContactEmail:     b.ContactEmail,
		ContactPhone:     b.ContactPhone,
		Reason:           b.Reason,
		IncludeBreakfast: b.IncludeBreakfast,
		IncludeLunch:     b.IncludeLunch,
		NotifyUser:       b.NotifyUser,
		Status:           b.Status,
		Origin:           b.Origin,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		Unit:             b.Unit.String(),
		Persons:          b.Persons,
		StartDate:        b.StartDate.Format(dateLayout),
		EndDate:          b.EndDate.Format(dateLayout),
		ContactName:      b.ContactName,
		ContactLastName:  b.ContactLastName,
		ContactEmail:     b.ContactEmail,
		ContactPhone:     b.ContactPhone,
		Reason:           b.Reason,
		IncludeBreakfast: b.IncludeBreakfast,
		IncludeLunch:     b.IncludeLunch,
		NotifyUser:       b.NotifyUser,
		Status:           b.Status.String(),
	}
}

func (b *ReservationBuilder) BuildUpdateRequestDTO() reqdto.UpdateReservationRequest {
	persons := b.Persons
	start := b.StartDate.Format(dateLayout)
	end := b.EndDate.Format(dateLayout)
	return reqdto.UpdateReservationRequest{
		Persons:   &persons,
		StartDate: &start,
		EndDate:   &end,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:               b.ID,
		Unit:             b.Unit.String(),
		Persons:          b.Persons,
		StartDate:        b.StartDate,
		EndDate:          b.EndDate,
		ContactName:      b.ContactName,
		ContactLastName:  b.ContactLastName,
		ContactEmail:     b.ContactEmail,
		ContactPhone:     b.ContactPhone,
		Reason:           b.Reason,
		IncludeBreakfast: b.IncludeBreakfast,
		IncludeLunch:     b.IncludeLunch,
		NotifyUser:       b.NotifyUser,
		Status:           b.Status.String(),
		Origin:           b.Origin.String(),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// Fluent builder methods
func (b *ReservationBuilder) WithID(id uuid.UUID) *ReservationBuilder {
	b.ID = id
	return b
}

func (b *ReservationBuilder) WithUnit(u unit.Type) *ReservationBuilder {
	b.Unit = u
	return b
}

func (b *ReservationBuilder) WithPersons(persons int) *ReservationBuilder {
	b.Persons = persons
	return b
}

func (b *ReservationBuilder) WithStay(start, end time.Time) *ReservationBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

func (b *ReservationBuilder) WithContact(name, lastName string) *ReservationBuilder {
	b.ContactName = name
	b.ContactLastName = lastName
	return b
}

func (b *ReservationBuilder) WithStatus(status domres.Status) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) WithOrigin(origin domres.Origin) *ReservationBuilder {
	b.Origin = origin
	return b
}

func (b *ReservationBuilder) WithNotifyUser(notify bool) *ReservationBuilder {
	b.NotifyUser = notify
	return b
}

func (b *ReservationBuilder) AsCancelled() *ReservationBuilder {
	b.Status = domres.StatusCancelled
	return b
}
