package request

import (
	"strings"
	"time"

	"reservas-admin/internal/domain/reservation"
	"reservas-admin/internal/domain/unit"
	"reservas-admin/internal/pkg/errs"
	"reservas-admin/internal/usecase/commands"
)

// Stay dates travel as plain calendar days, not instants.
const dateLayout = "2006-01-02"

var errBadDate = errs.New("dates must use the YYYY-MM-DD format")

type CreateReservationRequest struct {
	Unit             string  `json:"unit" binding:"required"`
	Persons          int     `json:"persons" binding:"required,min=1"`
	StartDate        string  `json:"startDate" binding:"required"`
	EndDate          string  `json:"endDate" binding:"required"`
	ContactName      string  `json:"contactName" binding:"required"`
	ContactLastName  string  `json:"contactLastName" binding:"required"`
	ContactEmail     *string `json:"contactEmail,omitempty"`
	ContactPhone     *string `json:"contactPhone,omitempty"`
	Reason           *string `json:"reason,omitempty"`
	IncludeBreakfast bool    `json:"includeBreakfast"`
	IncludeLunch     bool    `json:"includeLunch"`
	NotifyUser       bool    `json:"notifyUser"`
	Status           string  `json:"status,omitempty"`
}

func (r CreateReservationRequest) ToParams() (commands.CreateReservationParams, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return commands.CreateReservationParams{}, errs.Mark(err, errBadDate)
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return commands.CreateReservationParams{}, errs.Mark(err, errBadDate)
	}

	status := reservation.StatusConfirmed
	if r.Status != "" {
		status = reservation.Status(r.Status)
	}

	return commands.CreateReservationParams{
		Unit:             unit.Type(r.Unit),
		Persons:          r.Persons,
		StartDate:        start,
		EndDate:          end,
		ContactName:      strings.TrimSpace(r.ContactName),
		ContactLastName:  strings.TrimSpace(r.ContactLastName),
		ContactEmail:     trimmedPtr(r.ContactEmail),
		ContactPhone:     trimmedPtr(r.ContactPhone),
		Reason:           trimmedPtr(r.Reason),
		IncludeBreakfast: r.IncludeBreakfast,
		IncludeLunch:     r.IncludeLunch,
		NotifyUser:       r.NotifyUser,
		Status:           status,
		Origin:           reservation.OriginAdmin,
	}, nil
}

type UpdateReservationRequest struct {
	Unit             *string `json:"unit,omitempty"`
	Persons          *int    `json:"persons,omitempty"`
	StartDate        *string `json:"startDate,omitempty"`
	EndDate          *string `json:"endDate,omitempty"`
	ContactName      *string `json:"contactName,omitempty"`
	ContactLastName  *string `json:"contactLastName,omitempty"`
	ContactEmail     *string `json:"contactEmail,omitempty"`
	ContactPhone     *string `json:"contactPhone,omitempty"`
	Reason           *string `json:"reason,omitempty"`
	IncludeBreakfast *bool   `json:"includeBreakfast,omitempty"`
	IncludeLunch     *bool   `json:"includeLunch,omitempty"`
	NotifyUser       *bool   `json:"notifyUser,omitempty"`
	Status           *string `json:"status,omitempty"`
}

func (r UpdateReservationRequest) ToParams() (commands.UpdateReservationParams, error) {
	params := commands.UpdateReservationParams{
		Persons:          r.Persons,
		ContactName:      trimmedPtr(r.ContactName),
		ContactLastName:  trimmedPtr(r.ContactLastName),
		ContactEmail:     trimmedPtr(r.ContactEmail),
		ContactPhone:     trimmedPtr(r.ContactPhone),
		Reason:           trimmedPtr(r.Reason),
		IncludeBreakfast: r.IncludeBreakfast,
		IncludeLunch:     r.IncludeLunch,
		NotifyUser:       r.NotifyUser,
	}

	if r.Unit != nil {
		u := unit.Type(*r.Unit)
		params.Unit = &u
	}
	if r.StartDate != nil {
		start, err := time.Parse(dateLayout, *r.StartDate)
		if err != nil {
			return commands.UpdateReservationParams{}, errs.Mark(err, errBadDate)
		}
		params.StartDate = &start
	}
	if r.EndDate != nil {
		end, err := time.Parse(dateLayout, *r.EndDate)
		if err != nil {
			return commands.UpdateReservationParams{}, errs.Mark(err, errBadDate)
		}
		params.EndDate = &end
	}
	if r.Status != nil {
		s := reservation.Status(*r.Status)
		params.Status = &s
	}

	return params, nil
}

type ListReservationsQuery struct {
	History  bool   `form:"history"`
	PageSize int    `form:"page_size"`
	Cursor   string `form:"cursor"`
	Order    string `form:"order"`
}

// RangeQuery selects the calendar window for the range listing.
type RangeQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

func (q RangeQuery) ParseDates() (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, q.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Mark(err, errBadDate)
	}
	end, err = time.Parse(dateLayout, q.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Mark(err, errBadDate)
	}
	return start, end, nil
}

type AvailabilityQuery struct {
	Unit      string `form:"unit" binding:"required"`
	Persons   int    `form:"persons"`
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

func (q AvailabilityQuery) ParseDates() (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, q.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Mark(err, errBadDate)
	}
	end, err = time.Parse(dateLayout, q.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Mark(err, errBadDate)
	}
	return start, end, nil
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
