//go:build unit

package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"reservas-admin/internal/domain/reservation"
	"reservas-admin/internal/handler/api"
	resdto "reservas-admin/internal/handler/dto/response"
	"reservas-admin/internal/pkg/errs"
	"reservas-admin/internal/usecase/commands"
	"reservas-admin/internal/usecase/queries"
	"reservas-admin/tests/common/builder"
	"reservas-admin/tests/common/httptest"
	"reservas-admin/tests/common/testutil"
	commandsmock "reservas-admin/tests/mock/commands"
	queriesmock "reservas-admin/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCommands     *commandsmock.MockReservationCommands
	mockQueries      *queriesmock.MockReservationQueries
	mockAvailability *queriesmock.MockAvailabilityQueries
	handler          *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/api/admin/reservations", s.handler.CreateReservation)
	s.router.GET("/api/admin/reservations", s.handler.ListReservations)
	s.router.GET("/api/admin/reservations/:id", s.handler.GetReservation)
	s.router.PATCH("/api/admin/reservations/:id", s.handler.UpdateReservation)
	s.router.DELETE("/api/admin/reservations/:id", s.handler.DeleteReservation)

	s.router.GET("/api/admin/calendar", s.handler.ListReservationsInRange)

	availabilityHandler := api.NewAvailabilityHandler(s.mockAvailability)
	s.router.GET("/api/admin/availability", availabilityHandler.CheckAvailability)
	s.router.GET("/api/admin/units", availabilityHandler.ListUnits)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/api/admin/reservations"
	reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()

	s.Run("success: returns 200 with the new id", func() {
		newID := uuid.New()
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			Return(newID, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var resp resdto.CreateReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(newID, resp.ID)
	})

	s.Run("occupied dates return 400", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrDatesUnavailable).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "no están disponibles")
	})

	s.Run("malformed date returns 400 before the usecase runs", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("startDate", "10/09/2026"))
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "YYYY-MM-DD")
	})

	s.Run("missing required field returns 400", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("contactName", nil))
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("validation failure lists every violated field", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, &reservation.ValidationError{Violations: []reservation.FieldViolation{
				{Field: "persons", Reason: "must be positive"},
				{Field: "endDate", Reason: "must not be before startDate"},
			}}).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		s.Equal(http.StatusBadRequest, w.Code)
		var resp struct {
			Error  string                       `json:"error"`
			Detail []reservation.FieldViolation `json:"detail"`
		}
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal("Validation failed", resp.Error)
		s.Require().Len(resp.Detail, 2)
		s.Equal("persons", resp.Detail[0].Field)
		s.Equal("endDate", resp.Detail[1].Field)
	})

	s.Run("store failure returns 500", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errs.New("write failed")).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *ReservationHandlerTestSuite) TestListReservations() {
	url := "/api/admin/reservations"

	s.Run("success: returns the page and next cursor", func() {
		views := []*queries.ReservationView{
			builder.NewReservationBuilder().BuildView(),
			builder.NewReservationBuilder().BuildView(),
		}
		next := queries.NewCursor(views[1].ID)
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			Return(views, next, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp.Reservations, 2)
		s.Require().NotNil(resp.NextCursor)
		s.Equal(views[1].ID.String(), *resp.NextCursor)
	})

	s.Run("last page omits the cursor", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			Return([]*queries.ReservationView{}, nil, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Empty(resp.Reservations)
		s.Nil(resp.NextCursor)
	})

	s.Run("invalid cursor returns 400", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?cursor=garbage", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid cursor")
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	s.Run("success", func() {
		view := builder.NewReservationBuilder().BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		url := fmt.Sprintf("/api/admin/reservations/%s", view.ID)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal(view.Unit, resp.Unit)
		s.Equal(view.ContactName, resp.ContactName)
	})

	s.Run("unknown id returns 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, queries.ErrReservationNotFound).Times(1)

		url := fmt.Sprintf("/api/admin/reservations/%s", id)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})

	s.Run("malformed id returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/reservations/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid reservation ID format")
	})
}

func (s *ReservationHandlerTestSuite) TestUpdateReservation() {
	s.Run("success", func() {
		view := builder.NewReservationBuilder().BuildView()
		s.mockCommands.EXPECT().UpdateReservation(gomock.Any(), view.ID, gomock.Any()).
			Return(view, nil).Times(1)

		url := fmt.Sprintf("/api/admin/reservations/%s", view.ID)
		body := map[string]any{"persons": 4}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "")

		var resp resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
	})

	s.Run("unknown id returns 404", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().UpdateReservation(gomock.Any(), id, gomock.Any()).
			Return(nil, commands.ErrReservationNotFound).Times(1)

		url := fmt.Sprintf("/api/admin/reservations/%s", id)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"persons": 4}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})

	s.Run("cancelled reservation returns 409", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().UpdateReservation(gomock.Any(), id, gomock.Any()).
			Return(nil, commands.ErrReservationCancelled).Times(1)

		url := fmt.Sprintf("/api/admin/reservations/%s", id)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"persons": 4}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Cancelled reservations cannot be modified")
	})
}

func (s *ReservationHandlerTestSuite) TestDeleteReservation() {
	s.Run("success returns 204", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().DeleteReservation(gomock.Any(), id).
			Return(nil).Times(1)

		url := fmt.Sprintf("/api/admin/reservations/%s", id)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("malformed id returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/admin/reservations/nope", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid reservation ID format")
	})
}

func (s *ReservationHandlerTestSuite) TestListReservationsInRange() {
	base := "/api/admin/calendar"

	s.Run("success: returns every overlapping reservation", func() {
		views := []*queries.ReservationView{
			builder.NewReservationBuilder().BuildView(),
			builder.NewReservationBuilder().BuildView(),
		}
		start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
		s.mockQueries.EXPECT().ListInRange(gomock.Any(), start, end).
			Return(views, nil).Times(1)

		url := base + "?start_date=2026-09-01&end_date=2026-09-30"
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.ReservationRangeResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp.Reservations, 2)
	})

	s.Run("missing parameters return 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?start_date=2026-09-01", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "required")
	})

	s.Run("malformed date returns 400", func() {
		url := base + "?start_date=01/09/2026&end_date=2026-09-30"
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "YYYY-MM-DD")
	})

	s.Run("reversed range returns 400", func() {
		url := base + "?start_date=2026-09-30&end_date=2026-09-01"
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "end_date must not be before start_date")
	})
}

func (s *ReservationHandlerTestSuite) TestListUnits() {
	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/units", nil, "")

	var resp resdto.UnitListResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Require().Len(resp.Units, 4)
	s.Equal("cabana-rio", resp.Units[0].Type)
	s.Equal("Cabaña del Río", resp.Units[0].Name)
	s.Equal(6, resp.Units[0].Capacity)
	s.Equal("habitacion-2", resp.Units[3].Type)
}

func (s *ReservationHandlerTestSuite) TestCheckAvailability() {
	base := "/api/admin/availability"

	s.Run("available dates", func() {
		s.mockAvailability.EXPECT().IsAvailable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil).Times(1)

		url := base + "?unit=cabana-rio&start_date=2026-09-10&end_date=2026-09-14"
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.True(resp.Available)
	})

	s.Run("occupied dates", func() {
		s.mockAvailability.EXPECT().IsAvailable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil).Times(1)

		url := base + "?unit=cabana-rio&start_date=2026-09-10&end_date=2026-09-14"
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.False(resp.Available)
	})

	s.Run("unknown unit returns 400", func() {
		url := base + "?unit=igloo&start_date=2026-09-10&end_date=2026-09-14"
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Unknown unit")
	})

	s.Run("missing parameters return 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?unit=cabana-rio", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "required")
	})

	s.Run("reversed range returns 400", func() {
		url := base + "?unit=cabana-rio&start_date=2026-09-14&end_date=2026-09-10"
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "end_date must not be before start_date")
	})
}
