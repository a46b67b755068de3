// Package router owns the routing table. main and the handler tests
// build the app through the same function so they cannot drift apart.
package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"gorm.io/gorm"

	"github.com/postboard/backend/internal/handlers"
	"github.com/postboard/backend/internal/middleware"
	"github.com/postboard/backend/pkg/logger"
	"github.com/postboard/backend/web"
)

func New(db *gorm.DB) *fiber.App {
	engine := html.NewFileSystem(http.FS(web.Templates()), ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/base",
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))

	auth := middleware.NewAuthMiddleware(db)
	postsHandler := handlers.NewPostsHandler(db)
	authHandler := handlers.NewAuthHandler(db)
	groupsHandler := handlers.NewGroupsHandler(db)
	usersHandler := handlers.NewUsersHandler(db)

	app.Get("/", auth.OptionalAuth, postsHandler.Index)
	app.Get("/group/:slug", auth.OptionalAuth, postsHandler.GroupPosts)
	app.Get("/profile/:username", auth.OptionalAuth, postsHandler.Profile)
	app.Get("/create", auth.RequireLogin, postsHandler.CreateForm)
	app.Post("/create", auth.RequireLogin, postsHandler.Create)
	app.Get("/posts/:id", auth.OptionalAuth, postsHandler.Detail)
	app.Get("/posts/:id/edit", auth.RequireLogin, postsHandler.EditForm)
	app.Post("/posts/:id/edit", auth.RequireLogin, postsHandler.Edit)

	authPages := app.Group("/auth", auth.OptionalAuth)
	authPages.Get("/signup", authHandler.SignupForm)
	authPages.Post("/signup", authHandler.Signup)
	authPages.Get("/login", authHandler.LoginForm)
	authPages.Post("/login", authHandler.Login)
	authPages.Get("/logout", authHandler.Logout)

	api := app.Group("/api")

	groupRoutes := api.Group("/groups", auth.RequireAuth, middleware.AdminOnly)
	groupRoutes.Post("/", groupsHandler.Create)
	groupRoutes.Get("/", groupsHandler.List)
	groupRoutes.Delete("/:id", groupsHandler.Delete)

	userRoutes := api.Group("/users", auth.RequireAuth, middleware.AdminOnly)
	userRoutes.Get("/", usersHandler.List)
	userRoutes.Delete("/:id", usersHandler.Delete)

	// Anything unmatched renders the 404 page instead of fiber's default body.
	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	if code >= fiber.StatusInternalServerError {
		logger.Error("request_failed", map[string]interface{}{
			"path":  c.Path(),
			"error": err.Error(),
		})
	}

	if strings.HasPrefix(c.Path(), "/api") {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	if renderErr := c.Status(code).Render("errors/error", fiber.Map{
		"Code":    code,
		"Message": err.Error(),
	}); renderErr != nil {
		return c.Status(code).SendString(err.Error())
	}
	return nil
}
