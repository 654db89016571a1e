package Storage

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"Hauler/Models"
)

// MemoryStore holds all data in memory. It backs the engine tests and local
// runs without a database file, and mirrors GormStore's semantics, including
// all-or-nothing batch updates.
type MemoryStore struct {
	mu sync.RWMutex

	customers map[uint]*Models.Customer
	drivers   map[uint]*Models.Driver
	tickets   map[uint]*Models.Ticket
	users     map[uint]*Models.User

	customerCounter uint
	driverCounter   uint
	ticketCounter   uint
	userCounter     uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers: make(map[uint]*Models.Customer),
		drivers:   make(map[uint]*Models.Driver),
		tickets:   make(map[uint]*Models.Ticket),
		users:     make(map[uint]*Models.User),
	}
}

// Customers

func (m *MemoryStore) CreateCustomer(c *Models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.customers {
		if existing.Name == c.Name {
			return &Models.ConflictError{Message: "a customer with this name already exists"}
		}
	}
	m.customerCounter++
	c.ID = m.customerCounter
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	stored := *c
	m.customers[c.ID] = &stored
	return nil
}

func (m *MemoryStore) UpdateCustomer(c *Models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.customers[c.ID]
	if !exists {
		return &Models.NotFoundError{Entity: "customer", Key: strconv.Itoa(int(c.ID))}
	}
	for id, existing := range m.customers {
		if id != c.ID && existing.Name == c.Name {
			return &Models.ConflictError{Message: "a customer with this name already exists"}
		}
	}
	current.Name = c.Name
	current.DefaultBillRate = c.DefaultBillRate
	current.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) ListCustomers() ([]Models.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	customers := make([]Models.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		customers = append(customers, *c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].Name < customers[j].Name })
	return customers, nil
}

func (m *MemoryStore) FindCustomerByName(name string) (*Models.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.customers {
		if c.Name == name {
			found := *c
			return &found, nil
		}
	}
	return nil, &Models.NotFoundError{Entity: "customer", Key: name}
}

func (m *MemoryStore) FindCustomersByName(names []string) ([]Models.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var matches []Models.Customer
	for _, c := range m.customers {
		if wanted[c.Name] {
			matches = append(matches, *c)
		}
	}
	return matches, nil
}

func (m *MemoryStore) UpdateCustomerRates(batch []CustomerRate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate the whole batch before touching any row.
	for _, row := range batch {
		if _, exists := m.customers[row.ID]; !exists {
			return &Models.NotFoundError{Entity: "customer", Key: strconv.Itoa(int(row.ID))}
		}
	}
	for _, row := range batch {
		m.customers[row.ID].DefaultBillRate = row.Rate
		m.customers[row.ID].UpdatedAt = time.Now()
	}
	return nil
}

// Drivers

func (m *MemoryStore) CreateDriver(d *Models.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.drivers {
		if existing.Code == d.Code {
			return &Models.ConflictError{Message: "a driver with this code already exists"}
		}
	}
	m.driverCounter++
	d.ID = m.driverCounter
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()
	stored := *d
	m.drivers[d.ID] = &stored
	return nil
}

func (m *MemoryStore) UpdateDriver(d *Models.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.drivers[d.ID]
	if !exists {
		return &Models.NotFoundError{Entity: "driver", Key: strconv.Itoa(int(d.ID))}
	}
	for id, existing := range m.drivers {
		if id != d.ID && existing.Code == d.Code {
			return &Models.ConflictError{Message: "a driver with this code already exists"}
		}
	}
	current.Name = d.Name
	current.Code = d.Code
	current.DefaultPayRate = d.DefaultPayRate
	current.PinHash = d.PinHash
	current.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) ListDrivers() ([]Models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	drivers := make([]Models.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		drivers = append(drivers, *d)
	}
	sort.Slice(drivers, func(i, j int) bool { return drivers[i].Name < drivers[j].Name })
	return drivers, nil
}

func (m *MemoryStore) FindDriverByID(id uint) (*Models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, exists := m.drivers[id]
	if !exists {
		return nil, &Models.NotFoundError{Entity: "driver", Key: strconv.Itoa(int(id))}
	}
	found := *d
	return &found, nil
}

func (m *MemoryStore) FindDriverByName(name string) (*Models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, d := range m.drivers {
		if d.Name == name {
			found := *d
			return &found, nil
		}
	}
	return nil, &Models.NotFoundError{Entity: "driver", Key: name}
}

func (m *MemoryStore) DeleteDriver(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.drivers[id]; !exists {
		return &Models.NotFoundError{Entity: "driver", Key: strconv.Itoa(int(id))}
	}
	for ticketID, t := range m.tickets {
		if t.DriverID == id {
			delete(m.tickets, ticketID)
		}
	}
	delete(m.drivers, id)
	return nil
}

// Tickets

func (m *MemoryStore) InsertTicket(t *Models.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ticketCounter++
	t.ID = m.ticketCounter
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	stored := *t
	m.tickets[t.ID] = &stored
	return nil
}

func (m *MemoryStore) FindTicketByID(id uint) (*Models.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, exists := m.tickets[id]
	if !exists {
		return nil, &Models.NotFoundError{Entity: "ticket", Key: strconv.Itoa(int(id))}
	}
	found := *t
	return &found, nil
}

func (m *MemoryStore) FindTicketsByFilter(f TicketFilter) ([]TicketRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := ""
	if f.HasPeriod {
		prefix = fmt.Sprintf("%04d-%02d-", f.Year, f.Month)
	}
	search := strings.ToLower(f.TicketNumberLike)

	var rows []TicketRow
	for _, t := range m.tickets {
		if f.HasPeriod && !strings.HasPrefix(t.Date, prefix) {
			continue
		}
		if f.Customer != "" && t.Customer != f.Customer {
			continue
		}
		if f.HasDriver && t.DriverID != f.DriverID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.TicketNumber), search) {
			continue
		}
		if f.DateFrom != "" && t.Date < f.DateFrom {
			continue
		}
		if f.DateTo != "" && t.Date > f.DateTo {
			continue
		}
		row := TicketRow{Ticket: *t}
		if d, exists := m.drivers[t.DriverID]; exists {
			row.DriverName = d.Name
			row.DriverCode = d.Code
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if f.SortAscending {
			if rows[i].Date != rows[j].Date {
				return rows[i].Date < rows[j].Date
			}
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		if rows[i].Date != rows[j].Date {
			return rows[i].Date > rows[j].Date
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

func (m *MemoryStore) UpdateTicket(id uint, mutate func(t *Models.Ticket) error) (*Models.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.tickets[id]
	if !exists {
		return nil, &Models.NotFoundError{Entity: "ticket", Key: strconv.Itoa(int(id))}
	}
	// Mutate a copy so a failed mutate leaves the stored row untouched.
	updated := *current
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now()
	m.tickets[id] = &updated
	result := updated
	return &result, nil
}

func (m *MemoryStore) DeleteTicket(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tickets[id]; !exists {
		return &Models.NotFoundError{Entity: "ticket", Key: strconv.Itoa(int(id))}
	}
	delete(m.tickets, id)
	return nil
}

// Users

func (m *MemoryStore) CreateUser(u *Models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return &Models.ConflictError{Message: "a user with this email already exists"}
		}
	}
	m.userCounter++
	u.ID = m.userCounter
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	stored := *u
	m.users[u.ID] = &stored
	return nil
}

func (m *MemoryStore) FindUserByEmail(email string) (*Models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, &Models.NotFoundError{Entity: "user", Key: email}
}

func (m *MemoryStore) FindUserByID(id uint) (*Models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, exists := m.users[id]
	if !exists {
		return nil, &Models.NotFoundError{Entity: "user", Key: strconv.Itoa(int(id))}
	}
	found := *u
	return &found, nil
}
