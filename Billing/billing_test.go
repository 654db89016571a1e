package Billing

import (
	"testing"

	"Hauler/Models"
	"Hauler/Storage"

	"github.com/stretchr/testify/require"
)

// Test fixtures shared by the engine tests. Everything runs against the
// in-memory store so the engine's behavior is exercised without a database.

func newTestEngine(t *testing.T) (*Engine, *Storage.MemoryStore) {
	t.Helper()
	store := Storage.NewMemoryStore()
	return NewEngine(store), store
}

func seedCustomer(t *testing.T, store *Storage.MemoryStore, name string, billRate float64) *Models.Customer {
	t.Helper()
	c := &Models.Customer{Name: name, DefaultBillRate: billRate}
	require.NoError(t, store.CreateCustomer(c))
	return c
}

func seedDriver(t *testing.T, store *Storage.MemoryStore, name, code string, payRate float64) *Models.Driver {
	t.Helper()
	d := &Models.Driver{Name: name, Code: code, DefaultPayRate: payRate}
	require.NoError(t, store.CreateDriver(d))
	return d
}

func seedTicket(t *testing.T, store *Storage.MemoryStore, ticket Models.Ticket) *Models.Ticket {
	t.Helper()
	if ticket.Status == "" {
		ticket.Status = Models.StatusPending
	}
	ticket.TotalBill, ticket.TotalPay = PriceTicket(ticket.Quantity, ticket.BillRate, ticket.PayRate)
	require.NoError(t, store.InsertTicket(&ticket))
	return &ticket
}
