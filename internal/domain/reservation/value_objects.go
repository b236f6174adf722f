package reservation

import (
	"errors"
	"strings"
	"time"
)

// StayRange is a closed date interval. A one-day stay has start == end.
type StayRange struct {
	start time.Time
	end   time.Time
}

func NewStayRange(start, end time.Time) (StayRange, error) {
	if start.IsZero() || end.IsZero() {
		return StayRange{}, errors.New("start date and end date are required")
	}

	if end.Before(start) {
		return StayRange{}, errors.New("end date must not be before start date")
	}

	return StayRange{
		start: start.UTC(),
		end:   end.UTC(),
	}, nil
}

func (r StayRange) Start() time.Time {
	return r.start
}

func (r StayRange) End() time.Time {
	return r.end
}

func (r StayRange) Nights() int {
	return int(r.end.Sub(r.start).Hours() / 24)
}

// Overlaps is the inclusive interval-intersection test. A stay ending on
// another stay's start day counts as an overlap.
func (r StayRange) Overlaps(other StayRange) bool {
	return !r.start.After(other.end) && !r.end.Before(other.start)
}

type Contact struct {
	name     string
	lastName string
	email    *string
	phone    *string
}

func NewContact(name, lastName string, email, phone *string) Contact {
	return Contact{
		name:     strings.TrimSpace(name),
		lastName: strings.TrimSpace(lastName),
		email:    trimPtr(email),
		phone:    trimPtr(phone),
	}
}

func (c Contact) Name() string     { return c.name }
func (c Contact) LastName() string { return c.lastName }
func (c Contact) Email() *string   { return c.email }
func (c Contact) Phone() *string   { return c.phone }

func (c Contact) FullName() string {
	return strings.TrimSpace(c.name + " " + c.lastName)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
