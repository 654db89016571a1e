package Controllers

import (
	"strconv"

	"Hauler/Billing"
	"Hauler/Models"
	"Hauler/Storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// TicketController handles ticket submission, listing and admin updates.
type TicketController struct {
	Store    Storage.Store
	Engine   *Billing.Engine
	validate *validator.Validate
}

func NewTicketController(store Storage.Store, engine *Billing.Engine) *TicketController {
	return &TicketController{
		Store:    store,
		Engine:   engine,
		validate: validator.New(),
	}
}

type submitTicketRequest struct {
	DriverID     uint    `json:"driver_id" validate:"required"`
	PIN          string  `json:"pin" validate:"required,numeric,min=4,max=6"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	Truck        string  `json:"truck"`
	JobType      string  `json:"job_type"`
	TicketNumber string  `json:"ticket_number" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"gte=0"`
	Customer     string  `json:"customer" validate:"required"`
}

// SubmitTicket creates a ticket on behalf of a driver. Rates are frozen at
// submission time from the current customer and driver defaults, and the
// status always starts Pending no matter what the payload says.
func (t *TicketController) SubmitTicket(c *fiber.Ctx) error {
	var req submitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := t.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	driver, err := t.Store.FindDriverByID(req.DriverID)
	if err != nil {
		return respondError(c, err)
	}
	if len(driver.PinHash) == 0 ||
		bcrypt.CompareHashAndPassword(driver.PinHash, []byte(req.PIN)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Incorrect driver PIN"})
	}

	billRate, payRate, err := t.Engine.ResolveTicketRates(req.Customer, req.DriverID)
	if err != nil {
		return respondError(c, err)
	}
	totalBill, totalPay := Billing.PriceTicket(req.Quantity, billRate, payRate)

	ticket := Models.Ticket{
		DriverID:     req.DriverID,
		Date:         req.Date,
		Truck:        req.Truck,
		JobType:      req.JobType,
		TicketNumber: req.TicketNumber,
		Quantity:     req.Quantity,
		Customer:     req.Customer,
		BillRate:     billRate,
		PayRate:      payRate,
		TotalBill:    totalBill,
		TotalPay:     totalPay,
		Status:       Models.StatusPending,
	}
	if err := t.Store.InsertTicket(&ticket); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Ticket Submitted Successfully",
		"ticket":  ticket,
	})
}

// GetTickets lists tickets filtered by the optional query criteria.
// GET /api/tickets?period=&customer=&driver=&status=&search=
func (t *TicketController) GetTickets(c *fiber.Ctx) error {
	rows, err := t.Engine.QueryTickets(Billing.TicketCriteria{
		Period:   c.Query("period"),
		Customer: c.Query("customer"),
		Driver:   c.Query("driver"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"tickets": rows,
		"count":   len(rows),
	})
}

// GetTicket retrieves a single ticket by id.
func (t *TicketController) GetTicket(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ticket ID"})
	}
	ticket, err := t.Store.FindTicketByID(uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ticket)
}

// UpdateTicket applies an admin field-level patch. Totals are re-derived by
// the engine from the union of current and patched values.
func (t *TicketController) UpdateTicket(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ticket ID"})
	}
	var patch Billing.TicketPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	ticket, err := t.Engine.ApplyTicketPatch(uint(id), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Ticket Updated Successfully",
		"ticket":  ticket,
	})
}

// DeleteTicket removes a ticket.
func (t *TicketController) DeleteTicket(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ticket ID"})
	}
	if err := t.Store.DeleteTicket(uint(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Ticket Deleted Successfully"})
}
