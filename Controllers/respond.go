package Controllers

import (
	"errors"
	"log"

	"Hauler/Models"

	"github.com/gofiber/fiber/v2"
)

// respondError maps the Models error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a 500.
func respondError(c *fiber.Ctx, err error) error {
	var validation *Models.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Message})
	}
	var notFound *Models.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFound.Error()})
	}
	var conflict *Models.ConflictError
	if errors.As(err, &conflict) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": conflict.Message})
	}
	log.Println(err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
