package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/uyghurcoder/login-service/docs"
	"github.com/uyghurcoder/login-service/internal/api/handler"
	"github.com/uyghurcoder/login-service/internal/api/middleware"
	"github.com/uyghurcoder/login-service/internal/core/domain"
	"github.com/uyghurcoder/login-service/internal/core/ports"
)

// Deps carries everything the router wires together. Mongo and Redis
// are only used by the readiness probe; tests pass nil for both.
type Deps struct {
	Auth       ports.AuthService
	Tokens     ports.TokenIssuer
	Users      ports.UserRepository
	CookieName string
	Mongo      *mongo.Database
	Redis      *redis.Client
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// The authentication gate runs on every request, before any route
	// guard. It only attaches identity; guards do the rejecting.
	e.Use(middleware.Authenticate(d.Tokens, d.Users, d.CookieName, d.Log))

	authHandler := handler.NewAuthHandler(d.Auth, d.CookieName)
	contentHandler := handler.NewContentHandler(d.Users)

	apiGroup := e.Group("/api")

	// --- Auth routes ---
	apiGroup.POST("/auth/signup", authHandler.Signup)
	apiGroup.POST("/auth/signin", authHandler.Signin)
	apiGroup.POST("/auth/signout", authHandler.Signout)

	// --- Authorization demo routes ---
	test := apiGroup.Group("/test")
	test.GET("/all", contentHandler.AllAccess)
	test.GET("/user", contentHandler.UserAccess,
		middleware.RequireRoles(domain.RoleUser, domain.RoleModerator, domain.RoleAdmin))
	test.GET("/mod", contentHandler.ModeratorAccess,
		middleware.RequireRoles(domain.RoleModerator))
	test.GET("/admin", contentHandler.AdminAccess,
		middleware.RequireRoles(domain.RoleAdmin))
	test.GET("/admin/allUsers", contentHandler.AllUsers,
		middleware.RequireRoles(domain.RoleAdmin))

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness – is the process alive?
	if d.Mongo != nil && d.Redis != nil {
		readiness := handler.NewReadinessHandler(d.Mongo, d.Redis)
		e.GET("/health/ready", readiness.Readiness) // readiness – are dependencies up?
	}

	return e
}
