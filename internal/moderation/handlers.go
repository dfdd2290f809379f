package moderation

import (
	"errors"
	"strconv"

	"github.com/Kanny-Dzmitry/pereval-online-stazhirovka/internal/pereval"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, middleware ...fiber.Handler) {
	for _, m := range middleware {
		r.Use(m)
	}

	r.Patch("/:id/status", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, pereval.ErrNotFound.Error())
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		next := pereval.Status(body.Status)
		if !next.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "unknown status "+body.Status)
		}

		updated, err := svc.SetStatus(c.Context(), id, next)
		if err != nil {
			var transition *TransitionError
			switch {
			case errors.Is(err, pereval.ErrNotFound):
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			case errors.As(err, &transition):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			default:
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}
		return c.JSON(fiber.Map{"id": id, "status": updated})
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, pereval.ErrNotFound.Error())
		}
		if err := svc.Delete(c.Context(), id); err != nil {
			if errors.Is(err, pereval.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
