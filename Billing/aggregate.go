package Billing

import (
	"math"
	"regexp"
	"time"

	"Hauler/Models"
	"Hauler/Storage"
)

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// validateDateBound enforces the strict YYYY-MM-DD contract on period bounds
// before any storage access.
func validateDateBound(field, value string) error {
	if !dayPattern.MatchString(value) {
		return &Models.ValidationError{Message: field + " must be in YYYY-MM-DD format"}
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return &Models.ValidationError{Message: field + " is not a valid calendar day"}
	}
	return nil
}

// Round2 rounds a monetary value to cents, half away from zero. Aggregation
// keeps full precision; this applies exactly once, on the presented value.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Invoice is the customer-facing aggregation of approved tickets over a
// period. Subtotal, GST and Total carry full precision; the renderer rounds
// them for display and must not re-derive them.
type Invoice struct {
	Customer  Models.Customer     `json:"customer"`
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Tickets   []Storage.TicketRow `json:"tickets"`
	Subtotal  float64             `json:"subtotal"`
	GST       float64             `json:"gst"`
	Total     float64             `json:"total"`
}

// Settlement is the driver-facing aggregation of ticket pay over a period,
// independent of approval status.
type Settlement struct {
	Driver    Models.Driver       `json:"driver"`
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Tickets   []Storage.TicketRow `json:"tickets"`
	TotalPay  float64             `json:"total_pay"`
}

// BuildInvoice selects the customer's Approved tickets in [startDate,
// endDate] inclusive, chronologically, and sums their billing. An empty
// period is a valid zero invoice, not an error.
func (e *Engine) BuildInvoice(customerName, startDate, endDate string) (*Invoice, error) {
	if err := validateDateBound("start_date", startDate); err != nil {
		return nil, err
	}
	if err := validateDateBound("end_date", endDate); err != nil {
		return nil, err
	}

	customer, err := e.Store.FindCustomerByName(customerName)
	if err != nil {
		return nil, err
	}

	rows, err := e.Store.FindTicketsByFilter(Storage.TicketFilter{
		Customer:      customer.Name,
		Status:        Models.StatusApproved,
		DateFrom:      startDate,
		DateTo:        endDate,
		SortAscending: true,
	})
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		Customer:  *customer,
		StartDate: startDate,
		EndDate:   endDate,
		Tickets:   rows,
	}
	for _, row := range rows {
		inv.Subtotal += row.TotalBill
	}
	inv.GST = inv.Subtotal * GSTRate
	inv.Total = inv.Subtotal + inv.GST
	return inv, nil
}

// BuildSettlement selects all of the driver's tickets in [startDate,
// endDate] inclusive regardless of status, chronologically, and sums their
// pay.
func (e *Engine) BuildSettlement(driverID uint, startDate, endDate string) (*Settlement, error) {
	if err := validateDateBound("start_date", startDate); err != nil {
		return nil, err
	}
	if err := validateDateBound("end_date", endDate); err != nil {
		return nil, err
	}

	driver, err := e.Store.FindDriverByID(driverID)
	if err != nil {
		return nil, err
	}

	rows, err := e.Store.FindTicketsByFilter(Storage.TicketFilter{
		HasDriver:     true,
		DriverID:      driver.ID,
		DateFrom:      startDate,
		DateTo:        endDate,
		SortAscending: true,
	})
	if err != nil {
		return nil, err
	}

	stl := &Settlement{
		Driver:    *driver,
		StartDate: startDate,
		EndDate:   endDate,
		Tickets:   rows,
	}
	for _, row := range rows {
		stl.TotalPay += row.TotalPay
	}
	return stl, nil
}
