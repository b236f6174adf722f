package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

type Origin string

const (
	OriginPublic Origin = "public"
	OriginAdmin  Origin = "admin"
)

func (o Origin) String() string {
	return string(o)
}

func (o Origin) IsValid() bool {
	switch o {
	case OriginPublic, OriginAdmin:
		return true
	default:
		return false
	}
}
