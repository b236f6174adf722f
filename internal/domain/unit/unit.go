package unit

// Type identifies a bookable unit (cabin or room).
type Type string

const (
	TypeCabanaRio    Type = "cabana-rio"
	TypeCabanaBosque Type = "cabana-bosque"
	TypeHabitacion1  Type = "habitacion-1"
	TypeHabitacion2  Type = "habitacion-2"
)

type Unit struct {
	Type     Type
	Name     string
	Capacity int
}

// Capacity is informational for now; availability does not enforce it.
var catalog = map[Type]Unit{
	TypeCabanaRio:    {Type: TypeCabanaRio, Name: "Cabaña del Río", Capacity: 6},
	TypeCabanaBosque: {Type: TypeCabanaBosque, Name: "Cabaña del Bosque", Capacity: 4},
	TypeHabitacion1:  {Type: TypeHabitacion1, Name: "Habitación 1", Capacity: 2},
	TypeHabitacion2:  {Type: TypeHabitacion2, Name: "Habitación 2", Capacity: 2},
}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	_, ok := catalog[t]
	return ok
}

func Lookup(t Type) (Unit, bool) {
	u, ok := catalog[t]
	return u, ok
}

// ordered fixes the listing order; map iteration would shuffle it.
var ordered = []Type{TypeCabanaRio, TypeCabanaBosque, TypeHabitacion1, TypeHabitacion2}

func All() []Unit {
	units := make([]Unit, 0, len(ordered))
	for _, t := range ordered {
		units = append(units, catalog[t])
	}
	return units
}
