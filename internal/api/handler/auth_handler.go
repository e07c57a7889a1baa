package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	adminHome   string
	home        string
	loginPath   string
}

// NewAuthHandler serves the login screen. Admins land on adminHome after
// logging in, every other role on home.
func NewAuthHandler(authService ports.AuthService, adminHome, home, loginPath string) *AuthHandler {
	return &AuthHandler{authService: authService, adminHome: adminHome, home: home, loginPath: loginPath}
}

func (h *AuthHandler) landing(user *domain.User) string {
	if user != nil && user.Role == domain.RoleAdmin {
		return h.adminHome
	}
	return h.home
}

// LoginPage renders the login screen, or sends an operator who already holds
// a session straight to their landing screen.
//
// @Summary      Login screen
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginView
// @Success      303
// @Router       /admin/login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if sess := h.authService.Current(c.Request().Context()); sess.Active() {
		return c.Redirect(http.StatusSeeOther, h.landing(sess.User))
	}
	return c.JSON(http.StatusOK, loginView{View: "login"})
}

// Login authenticates against the backend and stores the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      303
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sess, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, h.landing(sess.User))
}

// Logout drops the session.
//
// @Summary      Logout
// @Tags         auth
// @Success      303
// @Router       /admin/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, h.loginPath)
}

// Profile shows the logged-in operator. Any role may open it.
//
// @Summary      Operator profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  profileResponse
// @Success      303
// @Router       /admin/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{User: user})
}
