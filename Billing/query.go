package Billing

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"Hauler/Models"
	"Hauler/Storage"
)

// TicketCriteria is the heterogeneous set of optional list filters as they
// arrive from the caller. All fields combine with AND; blank and "All" are
// "no filter" sentinels.
type TicketCriteria struct {
	Period   string // "2025-11" or "November 2025"
	Customer string
	Driver   string // driver display name
	Status   string
	Search   string // substring of ticket_number, case-insensitive
}

// parsePeriod resolves a period token to a (month, year) pair. Both the
// numeric "YYYY-MM" form and the "MonthName YYYY" form are accepted.
// Anything that fails to resolve reports ok=false; callers treat that as
// "no period filter", never as an error.
func parsePeriod(token string) (month, year int, ok bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, 0, false
	}

	if t, err := time.Parse("2006-01", token); err == nil {
		return int(t.Month()), t.Year(), true
	}

	parts := strings.Fields(token)
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 1000 || year > 9999 {
		return 0, 0, false
	}
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(parts[0], m.String()) {
			return int(m), year, true
		}
	}
	return 0, 0, false
}

// QueryTickets compiles the criteria into a ticket filter and fetches the
// matching tickets, most recent activity first. A period token that does
// not parse degrades to no period filter by design.
func (e *Engine) QueryTickets(c TicketCriteria) ([]Storage.TicketRow, error) {
	var f Storage.TicketFilter

	if month, year, ok := parsePeriod(c.Period); ok {
		f.HasPeriod = true
		f.Month = month
		f.Year = year
	}

	if customer := strings.TrimSpace(c.Customer); customer != "" && customer != "All" {
		f.Customer = customer
	}

	if driverName := strings.TrimSpace(c.Driver); driverName != "" && driverName != "All" {
		// Filter by the driver's id; an unknown name keeps the filter set
		// with a zero id, which matches no tickets.
		f.HasDriver = true
		driver, err := e.Store.FindDriverByName(driverName)
		if err != nil {
			var notFound *Models.NotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		} else {
			f.DriverID = driver.ID
		}
	}

	if status := strings.TrimSpace(c.Status); status != "" {
		f.Status = status
	}

	if search := strings.TrimSpace(c.Search); search != "" {
		f.TicketNumberLike = search
	}

	return e.Store.FindTicketsByFilter(f)
}
