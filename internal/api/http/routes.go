package httpapi

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-energy-service/internal/weather"
)

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, logger *slog.Logger) {
	app.Get("/forecast/", func(c *fiber.Ctx) error {
		loc, err := parseCoordinateQuery(c)
		if err != nil {
			return toHTTPError(c, logger, err)
		}

		resp, err := service.GetForecast(c.UserContext(), loc)
		if err != nil {
			return toHTTPError(c, logger, err)
		}

		return c.JSON(resp)
	})

	app.Get("/summary/", func(c *fiber.Ctx) error {
		loc, err := parseCoordinateQuery(c)
		if err != nil {
			return toHTTPError(c, logger, err)
		}

		resp, err := service.GetSummary(c.UserContext(), loc)
		if err != nil {
			return toHTTPError(c, logger, err)
		}

		return c.JSON(resp)
	})

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":          "ok",
			"service":         serviceName,
			"provider":        service.ProviderName(),
			"recent_failures": service.ProbeFailures(),
		}
		if probe, ok := service.LatestProbe(); ok {
			body["upstream"] = probe
		}
		return c.JSON(body)
	})
}

// parseCoordinateQuery reads latitude and longitude, distinguishing an absent
// parameter from an empty one.
func parseCoordinateQuery(c *fiber.Ctx) (weather.Coordinate, error) {
	return weather.ParseCoordinate(queryParam(c, "latitude"), queryParam(c, "longitude"))
}

func queryParam(c *fiber.Ctx, key string) *string {
	if !c.Context().QueryArgs().Has(key) {
		return nil
	}
	v := c.Query(key)
	return &v
}

// toHTTPError maps service errors to API status codes. Only fixed messages
// reach the client.
func toHTTPError(c *fiber.Ctx, logger *slog.Logger, err error) error {
	switch {
	case weather.IsClientError(err):
		return fiber.NewError(fiber.StatusBadRequest, weather.PublicError(err).Error())
	case errors.Is(err, weather.ErrUpstreamUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, weather.ErrUpstreamUnavailable.Error())
	case errors.Is(err, weather.ErrUpstreamError),
		errors.Is(err, weather.ErrUpstreamMalformed),
		errors.Is(err, weather.ErrInsufficientData):
		return fiber.NewError(fiber.StatusBadGateway, weather.PublicError(err).Error())
	}

	logger.Error("unexpected error handling request",
		"path", c.Path(),
		"request_id", c.Locals("requestid"),
		"error", err,
	)
	return fiber.NewError(fiber.StatusInternalServerError, "an unexpected error occurred")
}
