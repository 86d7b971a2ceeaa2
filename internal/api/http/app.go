package httpapi

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/i474232898/weather-energy-service/internal/weather"
)

const serviceName = "weather-energy-service"

// Options configures the Fiber app.
type Options struct {
	// CORSAllowOrigins is passed to the CORS middleware; empty means "*".
	CORSAllowOrigins string

	// AccessLog enables the request logging middleware.
	AccessLog bool

	// Logger receives handler errors; nil means slog.Default().
	Logger *slog.Logger
}

// NewApp builds the Fiber app with middleware, the central error handler
// and all API routes.
func NewApp(service *weather.Service, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          15 * time.Second,
		ErrorHandler:          ErrorHandler,
	})

	origins := opts.CORSAllowOrigins
	if origins == "" {
		origins = "*"
	}

	// Global middleware
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} ${path}?${queryParams}\n",
		}))
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,HEAD,OPTIONS",
	}))

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	RegisterRoutes(app, service, logger.With("component", "http"))

	return app
}

// ErrorHandler renders every error as {"error": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Centralized error response
	code := fiber.StatusInternalServerError
	message := "an unexpected error occurred"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
