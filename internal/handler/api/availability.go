package api

import (
	"errors"
	"net/http"

	"reservas-admin/internal/domain/unit"
	reqdto "reservas-admin/internal/handler/dto/request"
	resdto "reservas-admin/internal/handler/dto/response"
	"reservas-admin/internal/handler/httperr"
	"reservas-admin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Check availability
// @Description Check whether a unit is free for the requested stay
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param unit query string true "Unit identifier"
// @Param persons query int false "Number of guests"
// @Param start_date query string true "Check-in day (YYYY-MM-DD)"
// @Param end_date query string true "Check-out day (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/availability [get]
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "unit, start_date and end_date are required", nil)
		return
	}

	u, ok := unit.Lookup(unit.Type(q.Unit))
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("unknown unit "+q.Unit), "Unknown unit", nil)
		return
	}

	start, end, err := q.ParseDates()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Dates must use the YYYY-MM-DD format", nil)
		return
	}

	if end.Before(start) {
		httperr.AbortWithError(c, http.StatusBadRequest,
			errors.New("end_date before start_date"), "end_date must not be before start_date", nil)
		return
	}

	available, err := h.availabilityQueries.IsAvailable(c.Request.Context(), u.Type, q.Persons, start, end)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{Available: available})
}

// @Summary List units
// @Description List the bookable units with their display names and capacities
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.UnitListResponse
// @Failure 401 {object} map[string]string
// @Router /admin/units [get]
func (h *AvailabilityHandler) ListUnits(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromUnits(unit.All()))
}
