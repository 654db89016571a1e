package Controllers

import (
	"regexp"
	"strconv"

	"Hauler/Models"
	"Hauler/Storage"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

var pinPattern = regexp.MustCompile(`^\d{4,6}$`)

// DriverController handles driver records and submission PINs.
type DriverController struct {
	Store Storage.Store
}

func NewDriverController(store Storage.Store) *DriverController {
	return &DriverController{Store: store}
}

func (dc *DriverController) GetDrivers(c *fiber.Ctx) error {
	drivers, err := dc.Store.ListDrivers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(drivers)
}

func (dc *DriverController) CreateDriver(c *fiber.Ctx) error {
	var input struct {
		Name           string  `json:"name"`
		Code           string  `json:"code"`
		DefaultPayRate float64 `json:"default_pay_rate"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Name == "" || input.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and code are required"})
	}

	driver := Models.Driver{
		Name:           input.Name,
		Code:           input.Code,
		DefaultPayRate: input.DefaultPayRate,
	}
	if err := dc.Store.CreateDriver(&driver); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(driver)
}

func (dc *DriverController) UpdateDriver(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid driver ID"})
	}
	current, err := dc.Store.FindDriverByID(uint(id))
	if err != nil {
		return respondError(c, err)
	}

	var input struct {
		Name           string  `json:"name"`
		Code           string  `json:"code"`
		DefaultPayRate float64 `json:"default_pay_rate"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Name == "" || input.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and code are required"})
	}

	current.Name = input.Name
	current.Code = input.Code
	current.DefaultPayRate = input.DefaultPayRate
	if err := dc.Store.UpdateDriver(current); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Driver Updated Successfully"})
}

// SetPIN sets the driver's ticket-submission PIN. The PIN must be 4 to 6
// digits; only the bcrypt hash is stored.
func (dc *DriverController) SetPIN(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid driver ID"})
	}
	var input struct {
		PIN string `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !pinPattern.MatchString(input.PIN) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "PIN must be 4 to 6 digits"})
	}

	driver, err := dc.Store.FindDriverByID(uint(id))
	if err != nil {
		return respondError(c, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.PIN), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, err)
	}
	driver.PinHash = hash
	if err := dc.Store.UpdateDriver(driver); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Driver PIN Updated Successfully"})
}

// DeleteDriver removes the driver and all of their tickets in one
// transaction.
func (dc *DriverController) DeleteDriver(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid driver ID"})
	}
	if err := dc.Store.DeleteDriver(uint(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Driver Deleted Successfully"})
}
