package Billing

import (
	"testing"

	"Hauler/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		token string
		month int
		year  int
		ok    bool
	}{
		{"2025-11", 11, 2025, true},
		{"2025-01", 1, 2025, true},
		{"November 2025", 11, 2025, true},
		{"november 2025", 11, 2025, true},
		{"January 2024", 1, 2024, true},
		{"", 0, 0, false},
		{"garbage", 0, 0, false},
		{"2025-13", 0, 0, false},
		{"Brumaire 2025", 0, 0, false},
		{"November", 0, 0, false},
		{"November 25", 0, 0, false},
	}
	for _, tc := range tests {
		month, year, ok := parsePeriod(tc.token)
		assert.Equal(t, tc.ok, ok, "token %q", tc.token)
		if tc.ok {
			assert.Equal(t, tc.month, month, "token %q", tc.token)
			assert.Equal(t, tc.year, year, "token %q", tc.token)
		}
	}
}

func TestQueryTicketsPeriodFormsAreEquivalent(t *testing.T) {
	engine, store := newTestEngine(t)
	driver := seedDriver(t, store, "Dale Hutchins", "D-01", 80)
	seedTicket(t, store, Models.Ticket{DriverID: driver.ID, Date: "2025-11-05", TicketNumber: "T-1", Customer: "Acme Gravel"})
	seedTicket(t, store, Models.Ticket{DriverID: driver.ID, Date: "2025-11-20", TicketNumber: "T-2", Customer: "Acme Gravel"})
	seedTicket(t, store, Models.Ticket{DriverID: driver.ID, Date: "2025-12-01", TicketNumber: "T-3", Customer: "Acme Gravel"})

	numeric, err := engine.QueryTickets(TicketCriteria{Period: "2025-11"})
	require.NoError(t, err)
	named, err := engine.QueryTickets(TicketCriteria{Period: "November 2025"})
	require.NoError(t, err)

	assert.Len(t, numeric, 2)
	assert.Equal(t, numeric, named)
}

func TestQueryTicketsMalformedPeriodIsIgnored(t *testing.T) {
	engine, store := newTestEngine(t)
	driver := seedDriver(t, store, "Dale Hutchins", "D-01", 80)
	seedTicket(t, store, Models.Ticket{DriverID: driver.ID, Date: "2025-11-05", TicketNumber: "T-1", Customer: "Acme Gravel"})
	seedTicket(t, store, Models.Ticket{DriverID: driver.ID, Date: "2025-12-01", TicketNumber: "T-2", Customer: "Acme Gravel"})

	// A period that fails to parse degrades to no period filter at all.
	unfiltered, err := engine.QueryTickets(TicketCriteria{})
	require.NoError(t, err)
	garbage, err := engine.QueryTickets(TicketCriteria{Period: "garbage"})
	require.NoError(t, err)

	assert.Equal(t, unfiltered, garbage)
	assert.Len(t, garbage, 2)
}

func TestQueryTicketsSentinels(t *testing.T) {
	engine, store := newTestEngine(t)
	dale := seedDriver(t, store, "Dale Hutchins", "D-01", 80)
	erin := seedDriver(t, store, "Erin Walsh", "D-02", 90)
	seedTicket(t, store, Models.Ticket{DriverID: dale.ID, Date: "2025-11-05", TicketNumber: "T-1", Customer: "Acme Gravel"})
	seedTicket(t, store, Models.Ticket{DriverID: erin.ID, Date: "2025-11-06", TicketNumber: "T-2", Customer: "Borealis Sand"})

	// "All" and blank both mean no filter.
	rows, err := engine.QueryTickets(TicketCriteria{Customer: "All", Driver: "All"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = engine.QueryTickets(TicketCriteria{Customer: "Acme Gravel"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "T-1", rows[0].TicketNumber)

	rows, err = engine.QueryTickets(TicketCriteria{Driver: "Erin Walsh"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "T-2", rows[0].TicketNumber)
	assert.Equal(t, "D-02", rows[0].DriverCode)

	// An unknown driver name matches nothing rather than erroring.
	rows, err = engine.QueryTickets(TicketCriteria{Driver: "Nobody"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestQueryTicketsStatusAndSearch(t *testing.T) {
	engine, store := newTestEngine(t)
	driver := seedDriver(t, store, "Dale Hutchins", "D-01", 80)
	seedTicket(t, store, Models.Ticket{DriverID: driver.ID, Date: "2025-11-05", TicketNumber: "GR-4401", Customer: "Acme Gravel", Status: Models.StatusApproved})
	seedTicket(t, store, Models.Ticket{DriverID: driver.ID, Date: "2025-11-06", TicketNumber: "SN-9001", Customer: "Acme Gravel"})

	rows, err := engine.QueryTickets(TicketCriteria{Status: Models.StatusApproved})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "GR-4401", rows[0].TicketNumber)

	// Search is a case-insensitive substring match on ticket number.
	rows, err = engine.QueryTickets(TicketCriteria{Search: "gr-44"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "GR-4401", rows[0].TicketNumber)
}

func TestQueryTicketsOrdering(t *testing.T) {
	engine, store := newTestEngine(t)
	driver := seedDriver(t, store, "Dale Hutchins", "D-01", 80)
	seedTicket(t, store, Models.Ticket{DriverID: driver.ID, Date: "2025-11-05", TicketNumber: "T-1", Customer: "Acme Gravel"})
	seedTicket(t, store, Models.Ticket{DriverID: driver.ID, Date: "2025-11-20", TicketNumber: "T-2", Customer: "Acme Gravel"})
	seedTicket(t, store, Models.Ticket{DriverID: driver.ID, Date: "2025-11-20", TicketNumber: "T-3", Customer: "Acme Gravel"})

	rows, err := engine.QueryTickets(TicketCriteria{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Date descending, creation time descending on ties.
	assert.Equal(t, "T-3", rows[0].TicketNumber)
	assert.Equal(t, "T-2", rows[1].TicketNumber)
	assert.Equal(t, "T-1", rows[2].TicketNumber)
}
