package Storage

import (
	"Hauler/Models"
)

// TicketFilter is the explicit set of filter clauses applied to the tickets
// table. Every field is optional; set fields combine with AND. The query
// builder in Billing is the only place that constructs one from raw user
// criteria, so any value that reaches a Store is already normalized.
type TicketFilter struct {
	// Month/Year restrict to a single calendar month when HasPeriod is set.
	HasPeriod bool
	Month     int
	Year      int

	// Customer is an exact match against the ticket's customer field.
	Customer string

	// DriverID restricts to one driver when HasDriver is set. A resolved
	// driver filter that matched no driver keeps HasDriver set with a zero
	// DriverID, which matches nothing.
	HasDriver bool
	DriverID  uint

	// Status is an exact match; empty means any status.
	Status string

	// TicketNumberLike is a case-insensitive substring match.
	TicketNumberLike string

	// DateFrom/DateTo are inclusive YYYY-MM-DD day bounds; empty means
	// unbounded.
	DateFrom string
	DateTo   string

	// SortAscending orders by date ascending (chronological, for invoice
	// and settlement presentation). The default ordering is date
	// descending with creation time descending as tie-break.
	SortAscending bool
}

// TicketRow is a ticket extended with the owning driver's display fields,
// the shape list and report views consume.
type TicketRow struct {
	Models.Ticket
	DriverName string `json:"driver_name"`
	DriverCode string `json:"driver_code"`
}

// CustomerRate is one row of a batch default-rate update.
type CustomerRate struct {
	ID   uint    `json:"id"`
	Rate float64 `json:"default_bill_rate"`
}

// Store is the storage client handed to every component at construction.
// Implementations must keep multi-step mutations all-or-nothing and surface
// failures through the Models error taxonomy.
type Store interface {
	// Customers
	CreateCustomer(c *Models.Customer) error
	UpdateCustomer(c *Models.Customer) error
	ListCustomers() ([]Models.Customer, error)
	FindCustomerByName(name string) (*Models.Customer, error)
	FindCustomersByName(names []string) ([]Models.Customer, error)
	// UpdateCustomerRates applies a batch of default bill rate changes in a
	// single transaction; one unknown id rolls back the whole batch.
	UpdateCustomerRates(batch []CustomerRate) error

	// Drivers
	CreateDriver(d *Models.Driver) error
	UpdateDriver(d *Models.Driver) error
	ListDrivers() ([]Models.Driver, error)
	FindDriverByID(id uint) (*Models.Driver, error)
	FindDriverByName(name string) (*Models.Driver, error)
	// DeleteDriver removes the driver and cascades to their tickets in one
	// transaction.
	DeleteDriver(id uint) error

	// Tickets
	InsertTicket(t *Models.Ticket) error
	FindTicketByID(id uint) (*Models.Ticket, error)
	FindTicketsByFilter(f TicketFilter) ([]TicketRow, error)
	// UpdateTicket runs fetch -> mutate -> persist as one transaction per
	// ticket. mutate receives the current row and edits it in place.
	UpdateTicket(id uint, mutate func(t *Models.Ticket) error) (*Models.Ticket, error)
	DeleteTicket(id uint) error

	// Users
	CreateUser(u *Models.User) error
	FindUserByEmail(email string) (*Models.User, error)
	FindUserByID(id uint) (*Models.User, error)
}
