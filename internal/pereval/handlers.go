package pereval

import (
	"errors"
	"strconv"

	"github.com/Kanny-Dzmitry/pereval-online-stazhirovka/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes wires the submission surface: POST and GET on the
// collection, GET and PATCH on a single record.
func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req SubmitRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status": fiber.StatusBadRequest, "message": err.Error(), "id": nil,
			})
		}

		pass, err := svc.Submit(c.Context(), req)
		if err != nil {
			var missing *MissingFieldsError
			var invalid *InvalidDataError
			if errors.As(err, &missing) || errors.As(err, &invalid) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"status": fiber.StatusBadRequest, "message": err.Error(), "id": nil,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status": fiber.StatusInternalServerError, "message": err.Error(), "id": nil,
			})
		}

		metrics.SubmissionsTotal.Inc()
		return c.JSON(fiber.Map{"status": fiber.StatusOK, "message": nil, "id": pass.ID})
	})

	r.Get("/", func(c *fiber.Ctx) error {
		email := c.Query("user__email")
		if email == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "user__email query parameter is required",
			})
		}
		passes, err := svc.ListByEmail(c.Context(), email)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		return c.JSON(passes)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": ErrNotFound.Error()})
		}
		pass, err := svc.GetByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		return c.JSON(pass)
	})

	r.Patch("/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"state": 0, "message": ErrNotFound.Error(),
			})
		}

		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"state": 0, "message": err.Error(),
			})
		}

		if err := svc.Update(c.Context(), id, req); err != nil {
			var notAllowed *EditNotAllowedError
			var forbidden *ForbiddenFieldChangeError
			switch {
			case errors.Is(err, ErrNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"state": 0, "message": err.Error(),
				})
			case errors.As(err, &notAllowed):
				metrics.GateRejectionsTotal.WithLabelValues("status").Inc()
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"state": 0, "message": err.Error(),
				})
			case errors.As(err, &forbidden):
				metrics.GateRejectionsTotal.WithLabelValues("submitter").Inc()
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"state": 0, "message": err.Error(),
				})
			default:
				metrics.UpdatesTotal.WithLabelValues("error").Inc()
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"state": 0, "message": err.Error(),
				})
			}
		}

		metrics.UpdatesTotal.WithLabelValues("ok").Inc()
		return c.JSON(fiber.Map{"state": 1, "message": nil})
	})
}
