//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"reservas-admin/internal/handler/api"
	resdto "reservas-admin/internal/handler/dto/response"
	"reservas-admin/internal/pkg/config"
	"reservas-admin/internal/pkg/cookie"
	"reservas-admin/internal/pkg/errs"
	"reservas-admin/internal/usecase/commands"
	"reservas-admin/tests/common/httptest"
	"reservas-admin/tests/common/testutil"
	commandsmock "reservas-admin/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, config.NewTestConfig())

	s.router.POST("/api/auth/login", s.handler.Login)
	s.router.POST("/api/auth/logout", s.handler.Logout)
	s.router.GET("/api/auth/me", func(c *gin.Context) {
		// Mock middleware behavior for /api/auth/me
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			c.Set("user_email", "admin@example.com")
			c.Set("user_role", commands.RoleAdmin)
		}
		s.handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/api/auth/login"
	reqBody := map[string]any{
		"email":    "admin@example.com",
		"password": "supersecret",
	}

	s.Run("success: returns 200 and sets the session cookie", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), "admin@example.com", "supersecret").
			Return("test-jwt-token", nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var resp resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("admin@example.com", resp.Email)
		s.Equal(commands.RoleAdmin, resp.Role)

		sessionCookie := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
		s.Require().NotNil(sessionCookie)
		s.Equal("test-jwt-token", sessionCookie.Value)
		s.True(sessionCookie.HttpOnly)
	})

	s.Run("wrong credentials return 401", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), "admin@example.com", "supersecret").
			Return("", commands.ErrInvalidCredentials).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("missing email returns 400", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("email", nil))
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("short password returns 400", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("password", "short"))
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("internal failure returns 500", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), "admin@example.com", "supersecret").
			Return("", errs.New("token signing failed")).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("clears the session cookie", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/logout", nil, "")
		s.Equal(http.StatusNoContent, w.Code)

		sessionCookie := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
		s.Require().NotNil(sessionCookie)
		s.Empty(sessionCookie.Value)
		s.Negative(sessionCookie.MaxAge)
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/api/auth/me"

	s.Run("returns the authenticated identity", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "some-token")

		var resp resdto.MeResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("admin@example.com", resp.Email)
		s.Equal(commands.RoleAdmin, resp.Role)
	})

	s.Run("unauthenticated request returns 401", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "User not authenticated")
	})
}
