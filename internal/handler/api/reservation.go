package api

import (
	"errors"
	"net/http"

	"reservas-admin/internal/domain/reservation"
	reqdto "reservas-admin/internal/handler/dto/request"
	resdto "reservas-admin/internal/handler/dto/response"
	"reservas-admin/internal/handler/httperr"
	"reservas-admin/internal/infra/repository"
	"reservas-admin/internal/usecase/commands"
	"reservas-admin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	reservationQueries queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

// @Summary Create reservation
// @Description Create a new reservation after checking unit availability
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 200 {object} resdto.CreateReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	params, err := req.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Dates must use the YYYY-MM-DD format", nil)
		return
	}

	id, err := h.reservationCommands.CreateReservation(c.Request.Context(), params)
	if err != nil {
		h.renderWriteError(c, err)
		return
	}

	// The admin UI only needs the assigned id back.
	c.JSON(http.StatusOK, resdto.CreateReservationResponse{ID: id})
}

// @Summary List reservations
// @Description List reservations ordered by stay date, newest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param history query bool false "Include reservations that already ended"
// @Param page_size query int false "Page size (default 20, max 200)"
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param order query string false "start_date or end_date (default end_date)"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	var q reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	params := queries.ListParams{
		IncludeHistory: q.History,
		PageSize:       q.PageSize,
		Order:          repository.OrderEndDateDesc,
	}
	if q.Order == "start_date" {
		params.Order = repository.OrderStartDateDesc
	}
	if q.Cursor != "" {
		params.Cursor = &queries.Cursor{After: q.Cursor}
	}

	views, next, err := h.reservationQueries.List(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidCursor):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationViews(views, next))
}

// @Summary Booking calendar
// @Description List all reservations whose stay overlaps the given date range
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "Range start (YYYY-MM-DD)"
// @Param end_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} resdto.ReservationRangeResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/calendar [get]
func (h *ReservationHandler) ListReservationsInRange(c *gin.Context) {
	var q reqdto.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "start_date and end_date are required", nil)
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

	views, err := h.reservationQueries.ListInRange(c.Request.Context(), start, end)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationRange(views))
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Update reservation
// @Description Apply a partial update to a reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Fields to change"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/reservations/{id} [patch]
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	params, err := req.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Dates must use the YYYY-MM-DD format", nil)
		return
	}

	view, err := h.reservationCommands.UpdateReservation(c.Request.Context(), id, params)
	if err != nil {
		h.renderWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Delete reservation
// @Description Delete a reservation; deleting an absent record succeeds
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.reservationCommands.DeleteReservation(c.Request.Context(), id); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReservationHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *ReservationHandler) renderWriteError(c *gin.Context, err error) {
	var validationErr *reservation.ValidationError
	switch {
	case errors.As(err, &validationErr):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", validationErr.Violations)
	case errors.Is(err, commands.ErrDatesUnavailable):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Las fechas seleccionadas no están disponibles", nil)
	case errors.Is(err, commands.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errors.Is(err, commands.ErrReservationCancelled):
		httperr.AbortWithError(c, http.StatusConflict, err, "Cancelled reservations cannot be modified", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
