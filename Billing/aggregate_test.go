package Billing

import (
	"testing"

	"Hauler/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 17.53, Round2(17.5251))
	assert.Equal(t, 17.52, Round2(17.5249))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, -17.53, Round2(-17.5251))
	assert.Equal(t, -17.52, Round2(-17.5249))

	// The half-cent boundary as the billing pipeline actually produces it.
	// The literal 17.525 is not representable in float64 (it reads back as
	// 17.5249...), but runtime multiplication of subtotal by the rate lands
	// just above the midpoint and rounds up.
	subtotal := 350.50
	assert.Equal(t, 17.53, Round2(subtotal*GSTRate))
	assert.Equal(t, -17.53, Round2(-subtotal*GSTRate))
}

func TestBuildInvoiceTotals(t *testing.T) {
	engine, store := newTestEngine(t)
	customer := seedCustomer(t, store, "Acme Gravel", 100)
	driver := seedDriver(t, store, "Dale Hutchins", "D-01", 80)
	seedTicket(t, store, Models.Ticket{
		DriverID: driver.ID, Date: "2025-11-05", TicketNumber: "T-1",
		Customer: customer.Name, Quantity: 1, BillRate: 100.00, PayRate: 80,
		Status: Models.StatusApproved,
	})
	seedTicket(t, store, Models.Ticket{
		DriverID: driver.ID, Date: "2025-11-12", TicketNumber: "T-2",
		Customer: customer.Name, Quantity: 1, BillRate: 250.50, PayRate: 80,
		Status: Models.StatusApproved,
	})

	invoice, err := engine.BuildInvoice("Acme Gravel", "2025-11-01", "2025-11-30")
	require.NoError(t, err)
	require.Len(t, invoice.Tickets, 2)

	// Full precision internally, rounding only at presentation.
	assert.InDelta(t, 350.50, invoice.Subtotal, 1e-9)
	assert.InDelta(t, 17.525, invoice.GST, 1e-9)
	assert.InDelta(t, 368.025, invoice.Total, 1e-9)
	assert.Equal(t, 350.50, Round2(invoice.Subtotal))
	assert.Equal(t, 17.53, Round2(invoice.GST))
	assert.Equal(t, 368.03, Round2(invoice.Total))

	// Chronological ordering for presentation.
	assert.Equal(t, "T-1", invoice.Tickets[0].TicketNumber)
	assert.Equal(t, "T-2", invoice.Tickets[1].TicketNumber)

	// Stable across repeated runs.
	again, err := engine.BuildInvoice("Acme Gravel", "2025-11-01", "2025-11-30")
	require.NoError(t, err)
	assert.Equal(t, invoice.Subtotal, again.Subtotal)
	assert.Equal(t, invoice.GST, again.GST)
	assert.Equal(t, invoice.Total, again.Total)
}

func TestBuildInvoiceFiltersToApproved(t *testing.T) {
	engine, store := newTestEngine(t)
	customer := seedCustomer(t, store, "Acme Gravel", 100)
	driver := seedDriver(t, store, "Dale Hutchins", "D-01", 80)
	for _, status := range []string{Models.StatusPending, Models.StatusApproved, Models.StatusRejected} {
		seedTicket(t, store, Models.Ticket{
			DriverID: driver.ID, Date: "2025-11-05", TicketNumber: "T-" + status,
			Customer: customer.Name, Quantity: 1, BillRate: 100, PayRate: 80,
			Status: status,
		})
	}

	invoice, err := engine.BuildInvoice("Acme Gravel", "2025-11-01", "2025-11-30")
	require.NoError(t, err)

	// Only the Approved ticket bills.
	require.Len(t, invoice.Tickets, 1)
	assert.Equal(t, Models.StatusApproved, invoice.Tickets[0].Status)
	assert.InDelta(t, 100.0, invoice.Subtotal, 1e-9)
}

func TestBuildSettlementIncludesAllStatuses(t *testing.T) {
	engine, store := newTestEngine(t)
	driver := seedDriver(t, store, "Dale Hutchins", "D-01", 80)
	for _, status := range []string{Models.StatusPending, Models.StatusApproved, Models.StatusRejected} {
		seedTicket(t, store, Models.Ticket{
			DriverID: driver.ID, Date: "2025-11-05", TicketNumber: "T-" + status,
			Customer: "Acme Gravel", Quantity: 1, BillRate: 100, PayRate: 80,
			Status: status,
		})
	}

	settlement, err := engine.BuildSettlement(driver.ID, "2025-11-01", "2025-11-30")
	require.NoError(t, err)

	// A driver is paid for all submitted work regardless of approval.
	assert.Len(t, settlement.Tickets, 3)
	assert.InDelta(t, 240.0, settlement.TotalPay, 1e-9)
}

func TestBuildInvoiceEmptyPeriodIsValid(t *testing.T) {
	engine, store := newTestEngine(t)
	seedCustomer(t, store, "Acme Gravel", 100)

	invoice, err := engine.BuildInvoice("Acme Gravel", "2025-11-01", "2025-11-30")
	require.NoError(t, err)
	assert.Empty(t, invoice.Tickets)
	assert.Equal(t, 0.0, invoice.Subtotal)
	assert.Equal(t, 0.0, invoice.GST)
	assert.Equal(t, 0.0, invoice.Total)
}

func TestBuildInvoiceDateBoundsInclusive(t *testing.T) {
	engine, store := newTestEngine(t)
	customer := seedCustomer(t, store, "Acme Gravel", 100)
	driver := seedDriver(t, store, "Dale Hutchins", "D-01", 80)
	for _, date := range []string{"2025-10-31", "2025-11-01", "2025-11-30", "2025-12-01"} {
		seedTicket(t, store, Models.Ticket{
			DriverID: driver.ID, Date: date, TicketNumber: "T-" + date,
			Customer: customer.Name, Quantity: 1, BillRate: 100, PayRate: 80,
			Status: Models.StatusApproved,
		})
	}

	invoice, err := engine.BuildInvoice("Acme Gravel", "2025-11-01", "2025-11-30")
	require.NoError(t, err)
	require.Len(t, invoice.Tickets, 2)
	assert.Equal(t, "2025-11-01", invoice.Tickets[0].Date)
	assert.Equal(t, "2025-11-30", invoice.Tickets[1].Date)
}

func TestBuildInvoiceUnknownCustomer(t *testing.T) {
	engine, _ := newTestEngine(t)
	_, err := engine.BuildInvoice("Nobody Logistics", "2025-11-01", "2025-11-30")
	var notFound *Models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestBuildSettlementUnknownDriver(t *testing.T) {
	engine, _ := newTestEngine(t)
	_, err := engine.BuildSettlement(42, "2025-11-01", "2025-11-30")
	var notFound *Models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestAggregationRejectsMalformedDates(t *testing.T) {
	engine, store := newTestEngine(t)
	seedCustomer(t, store, "Acme Gravel", 100)
	driver := seedDriver(t, store, "Dale Hutchins", "D-01", 80)

	bad := []struct{ start, end string }{
		{"2025-11-1", "2025-11-30"},
		{"2025-11-01", "30-11-2025"},
		{"November 1", "2025-11-30"},
		{"2025-11-01", "2025-13-40"},
		{"", "2025-11-30"},
	}
	for _, tc := range bad {
		_, err := engine.BuildInvoice("Acme Gravel", tc.start, tc.end)
		var validation *Models.ValidationError
		assert.ErrorAs(t, err, &validation, "start %q end %q", tc.start, tc.end)

		_, err = engine.BuildSettlement(driver.ID, tc.start, tc.end)
		assert.ErrorAs(t, err, &validation, "start %q end %q", tc.start, tc.end)
	}
}
