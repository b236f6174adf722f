package response

import (
	"reservas-admin/internal/domain/unit"
)

type UnitResponse struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type UnitListResponse struct {
	Units []UnitResponse `json:"units"`
}

func FromUnits(units []unit.Unit) *UnitListResponse {
	items := make([]UnitResponse, 0, len(units))
	for _, u := range units {
		items = append(items, UnitResponse{
			Type:     u.Type.String(),
			Name:     u.Name,
			Capacity: u.Capacity,
		})
	}
	return &UnitListResponse{Units: items}
}
