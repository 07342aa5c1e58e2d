package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/metar-relay/internal/relay"
	"github.com/i474232898/metar-relay/internal/station"
	"github.com/i474232898/metar-relay/internal/upstream"
)

var validate = validator.New()

// ErrorHandler shapes every handler failure into the JSON error envelope.
// Wire it into fiber.Config so no error can escape as a bare string.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"ok":    false,
		"error": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *relay.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/metar", func(c *fiber.Ctx) error {
		var req metarQuery
		req.Station = c.Query("station")

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, err := service.Report(c.Context(), req.Station)
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(reportResponse{
			OK:      true,
			Station: res.Station.String(),
			Metar:   res.Report,
			Cached:  res.Cached,
		})
	})
}

// mapServiceError translates pipeline failures onto HTTP statuses. The
// sentinel texts are served as-is; transport detail stays in the logs.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, station.ErrInvalidStation):
		return fiber.NewError(fiber.StatusBadRequest, station.ErrInvalidStation.Error())
	case errors.Is(err, upstream.ErrNoReport):
		return fiber.NewError(fiber.StatusNotFound, upstream.ErrNoReport.Error())
	case errors.Is(err, upstream.ErrUnusableContent):
		return fiber.NewError(fiber.StatusBadGateway, upstream.ErrUnusableContent.Error())
	case errors.Is(err, upstream.ErrFetchFailed):
		return fiber.NewError(fiber.StatusBadGateway, upstream.ErrFetchFailed.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch report")
	}
}

// metarQuery holds query parameters for the report endpoint.
type metarQuery struct {
	Station string `validate:"required"`
}

// reportResponse is the success envelope.
type reportResponse struct {
	OK      bool   `json:"ok"`
	Station string `json:"station"`
	Metar   string `json:"metar"`
	Cached  bool   `json:"cached"`
}
