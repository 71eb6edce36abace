package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"patchwork/internal/auth"
	"patchwork/internal/handler"
	"patchwork/internal/model"
	"patchwork/internal/repository"
)

// Register wires routes and middleware. The route table below is the one
// place the method, path, auth policy and handler of every endpoint meet.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	projectHandler *handler.CatalogHandler[model.Project],
	fabricHandler *handler.CatalogHandler[model.Fabric],
	blockHandler *handler.CatalogHandler[model.Block],
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	authenticated := auth.Middleware(jwtService)
	ownerOrAdmin := auth.RequireOwnerOrAdmin("email")
	adminOnly := auth.RequireAdmin(users)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Open routes
	e.PUT("/login", authHandler.Login)
	e.PUT("/isLogged", authHandler.IsLogged)
	e.POST("/user/save", userHandler.Save)

	// Any authenticated identity
	logged := e.Group("", authenticated)
	logged.GET("/projects", projectHandler.List)
	logged.GET("/projects/:id", projectHandler.Get)
	logged.GET("/fabrics", fabricHandler.List)
	logged.GET("/blocks", blockHandler.List)
	logged.GET("/blocks/:id", blockHandler.Get)
	logged.POST("/user/save/project", userHandler.SaveProject)
	logged.DELETE("/user/projects/:sessionId", userHandler.DeleteProjectBySession)

	// Owner-or-admin over one user's resources
	owned := e.Group("/users/:email", authenticated, ownerOrAdmin)
	owned.GET("", userHandler.Get)
	owned.GET("/lastSession", userHandler.LastSession)
	owned.GET("/projects", userHandler.Projects)
	owned.GET("/projects/:sessionId", userHandler.ProjectBySession)

	mutate := e.Group("/user/:email", authenticated, ownerOrAdmin)
	mutate.PUT("/lastSession", userHandler.UpdateLastSession)
	mutate.PUT("/projects/:sessionId", userHandler.UpdateProjectSvg)

	// Admin-only catalog writes
	admin := e.Group("", authenticated, adminOnly)
	admin.POST("/project/save", projectHandler.Save)
	admin.PUT("/project/update", projectHandler.Update)
	admin.DELETE("/project/:id", projectHandler.Delete)
	admin.POST("/fabric/save", fabricHandler.Save)
	admin.PUT("/fabric/update", fabricHandler.Update)
	admin.DELETE("/fabric/:id", fabricHandler.Delete)
	admin.POST("/block/save", blockHandler.Save)
	admin.PUT("/block/update", blockHandler.Update)
	admin.DELETE("/block/:id", blockHandler.Delete)
	admin.DELETE("/user/:email", userHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
