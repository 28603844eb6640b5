package api

import (
	"admitrag/docs"
	"admitrag/internal/api/handlers"
	"admitrag/pkg/auth"
	"admitrag/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	ingestHandler *handlers.IngestHandler,
	chatHandler *handlers.ChatHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			} else {
				// Unhandled errors are logged in full but never echoed
				// back to the client
				appLogger.Error("Unhandled error", zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": message,
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Importing the docs package registers the swagger spec via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	v1 := app.Group("/api/v1")

	// Ingestion and chat are public; chat reads the Authorization header
	// itself for optional personalization
	v1.Post("/documents/ingest", ingestHandler.IngestDocument)
	v1.Post("/chat", chatHandler.Chat)

	// Listing requires a valid token
	v1.Get("/documents", middleware.AuthMiddleware(jwtManager, appLogger), ingestHandler.ListDocuments)

	return app
}
