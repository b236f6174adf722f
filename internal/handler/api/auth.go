package api

import (
	"errors"
	"net/http"

	reqdto "reservas-admin/internal/handler/dto/request"
	resdto "reservas-admin/internal/handler/dto/response"
	"reservas-admin/internal/handler/httperr"
	"reservas-admin/internal/handler/middleware"
	"reservas-admin/internal/pkg/config"
	"reservas-admin/internal/pkg/cookie"
	"reservas-admin/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	cookieCfg    config.CookieConfig
	jwtCfg       config.JWTConfig
}

func NewAuthHandler(authCommands commands.AuthCommands, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		cookieCfg:    cfg.Cookie,
		jwtCfg:       cfg.JWT,
	}
}

// @Summary Admin login
// @Description Login with the admin email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	token, err := h.authCommands.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	cookie.SetTokenCookie(c, h.cookieCfg, token, h.jwtCfg.Duration)

	c.JSON(http.StatusOK, resdto.LoginResponse{
		Email: req.Email,
		Role:  commands.RoleAdmin,
	})
}

// @Summary Admin logout
// @Description Clear the session cookie
// @Tags auth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearTokenCookie(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Current session
// @Description Return the authenticated admin identity
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.MeResponse
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("no session in context"), "User not authenticated", nil)
		return
	}

	role, _ := middleware.GetUserRole(c)
	c.JSON(http.StatusOK, resdto.MeResponse{
		Email: email,
		Role:  role,
	})
}
