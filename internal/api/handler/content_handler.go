package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uyghurcoder/login-service/internal/core/ports"
)

// ContentHandler serves the authorization demo endpoints: one public,
// three role-gated content strings, and the admin user listing. The
// role requirements themselves live on the routes as RequireRoles
// middleware, not here.
type ContentHandler struct {
	users ports.UserRepository
}

func NewContentHandler(users ports.UserRepository) *ContentHandler {
	return &ContentHandler{users: users}
}

// AllAccess serves public content, no authentication required.
//
// @Summary      Public content
// @Tags         test
// @Produce      plain
// @Success      200  {string}  string
// @Router       /test/all [get]
func (h *ContentHandler) AllAccess(c echo.Context) error {
	return c.String(http.StatusOK, "Public Content")
}

// @Summary      Content for any authenticated role
// @Tags         test
// @Produce      plain
// @Success      200  {string}  string
// @Failure      403  {object}  map[string]string
// @Router       /test/user [get]
func (h *ContentHandler) UserAccess(c echo.Context) error {
	return c.String(http.StatusOK, "User Content")
}

// @Summary      Moderator content
// @Tags         test
// @Produce      plain
// @Success      200  {string}  string
// @Failure      403  {object}  map[string]string
// @Router       /test/mod [get]
func (h *ContentHandler) ModeratorAccess(c echo.Context) error {
	return c.String(http.StatusOK, "Moderator Board")
}

// @Summary      Admin content
// @Tags         test
// @Produce      plain
// @Success      200  {string}  string
// @Failure      403  {object}  map[string]string
// @Router       /test/admin [get]
func (h *ContentHandler) AdminAccess(c echo.Context) error {
	return c.String(http.StatusOK, "Admin Dashboard")
}

// AllUsers lists every credential record. Password hashes never
// serialize (json:"-" on the domain type).
//
// @Summary      List all users
// @Tags         test
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /test/admin/allUsers [get]
func (h *ContentHandler) AllUsers(c echo.Context) error {
	users, err := h.users.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
