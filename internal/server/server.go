package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"heroic/ats-platform/internal/config"
	"heroic/ats-platform/internal/handlers"
	"heroic/ats-platform/internal/services"
)

const allowedMethods = "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS"

// New builds the Fiber app with middleware and routes.
func New(cfg *config.Config, analyzer services.AnalyzerService) *fiber.App {
	responder := handlers.NewErrorResponder(cfg.Errors.ExposeDetails)

	app := fiber.New(fiber.Config{
		AppName:      "Heroic ATS Platform",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: responder.FiberErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	// Empty AllowHeaders makes the middleware echo the requested headers.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORS.AllowedOrigins, ","),
		AllowMethods:     allowedMethods,
		AllowHeaders:     "",
		AllowCredentials: true,
		ExposeHeaders:    "X-Session-ID",
	}))

	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, responder)
	memoryHandler := handlers.NewMemoryHandler(analyzer, responder)

	app.Get("/", handlers.HandleHealth)
	app.Post("/analyze_ats", analyzeHandler.HandleAnalyze)
	app.Post("/clear_memory", memoryHandler.HandleClearMemory)

	return app
}
