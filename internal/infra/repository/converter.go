package repository

import (
	"time"

	"reservas-admin/internal/domain/reservation"
	"reservas-admin/internal/domain/unit"
	"reservas-admin/internal/infra/docstore"
	"reservas-admin/internal/pkg/errs"
)

// Persisted field names of a reservation document.
const (
	fieldUnit             = "unit"
	fieldPersons          = "persons"
	fieldStartDate        = "startDate"
	fieldEndDate          = "endDate"
	fieldContactName      = "contactName"
	fieldContactLastName  = "contactLastName"
	fieldContactEmail     = "contactEmail"
	fieldContactPhone     = "contactPhone"
	fieldReason           = "reason"
	fieldIncludeBreakfast = "includeBreakfast"
	fieldIncludeLunch     = "includeLunch"
	fieldNotifyUser       = "notifyUser"
	fieldStatus           = "status"
	fieldOrigin           = "origin"
	fieldCreatedAt        = "createdAt"
	fieldUpdatedAt        = "updatedAt"
)

func reservationToFields(res *reservation.Reservation) docstore.Fields {
	fields := docstore.Fields{
		fieldUnit:             res.Unit().String(),
		fieldPersons:          int64(res.Persons()),
		fieldStartDate:        res.Stay().Start(),
		fieldEndDate:          res.Stay().End(),
		fieldContactName:      res.Contact().Name(),
		fieldContactLastName:  res.Contact().LastName(),
		fieldIncludeBreakfast: res.IncludeBreakfast(),
		fieldIncludeLunch:     res.IncludeLunch(),
		fieldNotifyUser:       res.NotifyUser(),
		fieldStatus:           res.Status().String(),
		fieldOrigin:           res.Origin().String(),
	}
	if email := res.Contact().Email(); email != nil {
		fields[fieldContactEmail] = *email
	}
	if phone := res.Contact().Phone(); phone != nil {
		fields[fieldContactPhone] = *phone
	}
	if reason := res.Reason(); reason != nil {
		fields[fieldReason] = *reason
	}
	return fields
}

func documentToReservation(doc docstore.Document) (*reservation.Reservation, error) {
	start, err := fieldTime(doc.Fields, fieldStartDate)
	if err != nil {
		return nil, err
	}
	end, err := fieldTime(doc.Fields, fieldEndDate)
	if err != nil {
		return nil, err
	}
	stay, err := reservation.NewStayRange(start, end)
	if err != nil {
		return nil, errs.Wrap(err, "stored reservation has an invalid stay range")
	}

	createdAt, err := fieldTime(doc.Fields, fieldCreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := fieldTime(doc.Fields, fieldUpdatedAt)
	if err != nil {
		return nil, err
	}

	contact := reservation.NewContact(
		fieldString(doc.Fields, fieldContactName),
		fieldString(doc.Fields, fieldContactLastName),
		fieldStringPtr(doc.Fields, fieldContactEmail),
		fieldStringPtr(doc.Fields, fieldContactPhone),
	)

	return reservation.Reconstruct(
		doc.ID,
		unit.Type(fieldString(doc.Fields, fieldUnit)),
		fieldInt(doc.Fields, fieldPersons),
		stay,
		contact,
		fieldStringPtr(doc.Fields, fieldReason),
		fieldBool(doc.Fields, fieldIncludeBreakfast),
		fieldBool(doc.Fields, fieldIncludeLunch),
		fieldBool(doc.Fields, fieldNotifyUser),
		reservation.Status(fieldString(doc.Fields, fieldStatus)),
		reservation.Origin(fieldString(doc.Fields, fieldOrigin)),
		createdAt,
		updatedAt,
	), nil
}

// Readers below tolerate the JSON round-trip kinds of the store (float64 for
// numbers, RFC3339 strings for timestamps).

func fieldString(fields docstore.Fields, name string) string {
	s, _ := fields[name].(string)
	return s
}

func fieldStringPtr(fields docstore.Fields, name string) *string {
	s, ok := fields[name].(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func fieldBool(fields docstore.Fields, name string) bool {
	b, _ := fields[name].(bool)
	return b
}

func fieldInt(fields docstore.Fields, name string) int {
	switch n := fields[name].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func fieldTime(fields docstore.Fields, name string) (time.Time, error) {
	switch t := fields[name].(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, errs.Wrap(err, "stored field is not a timestamp: "+name)
		}
		return parsed, nil
	default:
		return time.Time{}, errs.New("stored field is not a timestamp: " + name)
	}
}
