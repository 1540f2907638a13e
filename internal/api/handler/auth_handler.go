package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uyghurcoder/login-service/internal/api/metrics"
	"github.com/uyghurcoder/login-service/internal/core/domain"
	"github.com/uyghurcoder/login-service/internal/core/ports"
)

// Cookie lifetime is fixed at 24h regardless of the token expiry; an
// outlived cookie simply carries an expired token the gate rejects.
const cookieMaxAge = 24 * 60 * 60

const cookiePath = "/api"

type AuthHandler struct {
	authService ports.AuthService
	cookieName  string
}

func NewAuthHandler(authService ports.AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{authService: authService, cookieName: cookieName}
}

type signupRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=20"`
	Email    string   `json:"email" validate:"required,email,max=50"`
	Password string   `json:"password" validate:"required,min=6,max=40"`
	Role     []string `json:"role"`
}

type signinRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userInfoResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// Signup registers a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details; role accepts \"admin\" and \"mod\""
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Error: invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Error: " + err.Error()})
	}

	_, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.Role)
	switch err {
	case nil:
	case domain.ErrUsernameTaken:
		metrics.SignupsTotal.WithLabelValues("duplicate_username").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Error: Username is already taken!"})
	case domain.ErrEmailTaken:
		metrics.SignupsTotal.WithLabelValues("duplicate_email").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Error: Email is already in use!"})
	default:
		return err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "User registered successfully!"})
}

// Signin authenticates a user and sets the token cookie.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  userInfoResponse
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Error: invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Error: " + err.Error()})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			metrics.SigninsTotal.WithLabelValues("bad_credentials").Inc()
		case domain.ErrTooManyAttempts:
			metrics.SigninsTotal.WithLabelValues("throttled").Inc()
		}
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     cookiePath,
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
	})

	metrics.SigninsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, userInfoResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
	})
}

// Signout clears the token cookie. No Max-Age on the cleared cookie:
// the browser drops it at session end and the gate treats the empty
// value as an absent token either way.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/signout [post]
func (h *AuthHandler) Signout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:  h.cookieName,
		Value: "",
		Path:  cookiePath,
	})
	return c.JSON(http.StatusOK, messageResponse{Message: "You have been signed out!"})
}
