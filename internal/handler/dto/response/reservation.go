package response

import (
	"time"

	"reservas-admin/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
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

type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	NextCursor   *string                `json:"nextCursor,omitempty"`
}

type ReservationRangeResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

type CreateReservationResponse struct {
	ID uuid.UUID `json:"id"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	// Field sets are kept in lockstep; a copy failure here is a programming error.
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromReservationViews(views []*queries.ReservationView, next *queries.Cursor) *ReservationListResponse {
	items := make([]*ReservationResponse, 0, len(views))
	for _, v := range views {
		items = append(items, FromReservationView(v))
	}
	resp := &ReservationListResponse{Reservations: items}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}

func FromReservationRange(views []*queries.ReservationView) *ReservationRangeResponse {
	items := make([]*ReservationResponse, 0, len(views))
	for _, v := range views {
		items = append(items, FromReservationView(v))
	}
	return &ReservationRangeResponse{Reservations: items}
}
