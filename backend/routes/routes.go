package routes

import (
	"historium/backend/config"
	"historium/backend/controllers"
	"historium/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Middleware
	authMiddleware := middleware.AuthMiddleware(db, cfg)
	optionalAuth := middleware.OptionalAuthMiddleware(db, cfg)
	moderMiddleware := middleware.ModerMiddleware()
	adminMiddleware := middleware.AdminMiddleware()

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/me", authMiddleware, authController.Me)

	// Pages routes
	pagesController := controllers.NewPagesController(db, cfg)
	pages := app.Group("/api/pages")
	pages.Get("/", pagesController.GetPages)
	pages.Get("/by-comments", pagesController.GetPagesByComments)
	pages.Get("/:id", optionalAuth, pagesController.GetPage)
	pages.Post("/", authMiddleware, adminMiddleware, pagesController.CreatePage)
	pages.Put("/:id", authMiddleware, adminMiddleware, pagesController.UpdatePage)
	pages.Delete("/:id", authMiddleware, adminMiddleware, pagesController.DeletePage)

	// Categories routes
	categoriesController := controllers.NewCategoriesController(db, cfg)
	app.Get("/api/categories", categoriesController.GetCategories)
	app.Get("/api/categories/:id", categoriesController.GetCategory)

	// Comments routes
	commentsController := controllers.NewCommentsController(db, cfg)
	comments := app.Group("/api/comments")
	comments.Get("/page/:pageId", optionalAuth, commentsController.GetPageComments)
	comments.Get("/all", authMiddleware, moderMiddleware, commentsController.GetAllComments)
	comments.Post("/", authMiddleware, commentsController.CreateComment)
	comments.Patch("/:id/approve", authMiddleware, moderMiddleware, commentsController.ApproveComment)
	comments.Delete("/:id", authMiddleware, moderMiddleware, commentsController.DeleteComment)

	// Tests routes
	testsController := controllers.NewTestsController(db, cfg)
	tests := app.Group("/api/tests", authMiddleware)
	tests.Get("/", testsController.GetTests)
	tests.Get("/:id", testsController.GetTest)
	tests.Post("/:id/submit", testsController.SubmitTest)
	tests.Get("/:id/results", testsController.GetTestResults)
	tests.Post("/", adminMiddleware, testsController.CreateTest)

	// Users routes (admin)
	usersController := controllers.NewUsersController(db, cfg)
	users := app.Group("/api/users", authMiddleware, adminMiddleware)
	users.Get("/all", usersController.GetAllUsers)
	users.Post("/:id", usersController.ToggleUser)
	users.Delete("/:id", usersController.DeleteUser)

	// Upload routes
	uploadController := controllers.NewUploadController(cfg)
	app.Post("/api/upload", authMiddleware, uploadController.UploadImage)
	app.Delete("/api/upload/:filename", authMiddleware, uploadController.DeleteImage)

	// Health check
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"message": "Server is running",
		})
	})
}
