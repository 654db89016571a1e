package Controllers

import (
	"strconv"

	"Hauler/Models"
	"Hauler/Storage"

	"github.com/gofiber/fiber/v2"
)

// CustomerController handles customer records and default bill rates.
type CustomerController struct {
	Store Storage.Store
}

func NewCustomerController(store Storage.Store) *CustomerController {
	return &CustomerController{Store: store}
}

func (cc *CustomerController) GetCustomers(c *fiber.Ctx) error {
	customers, err := cc.Store.ListCustomers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customers)
}

func (cc *CustomerController) CreateCustomer(c *fiber.Ctx) error {
	var input struct {
		Name            string  `json:"name"`
		DefaultBillRate float64 `json:"default_bill_rate"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	customer := Models.Customer{
		Name:            input.Name,
		DefaultBillRate: input.DefaultBillRate,
	}
	if err := cc.Store.CreateCustomer(&customer); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

func (cc *CustomerController) UpdateCustomer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	var input struct {
		Name            string  `json:"name"`
		DefaultBillRate float64 `json:"default_bill_rate"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	customer := Models.Customer{Name: input.Name, DefaultBillRate: input.DefaultBillRate}
	customer.ID = uint(id)
	if err := cc.Store.UpdateCustomer(&customer); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer Updated Successfully"})
}

// UpdateRates applies a batch of default bill rate changes. The whole batch
// is one transaction; a single unknown customer id rolls everything back.
func (cc *CustomerController) UpdateRates(c *fiber.Ctx) error {
	var batch []Storage.CustomerRate
	if err := c.BodyParser(&batch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if len(batch) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "batch cannot be empty"})
	}
	if err := cc.Store.UpdateCustomerRates(batch); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Rates Updated Successfully",
		"count":   len(batch),
	})
}
