package Storage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"Hauler/Models"

	"gorm.io/gorm"
)

// GormStore is the production Store backed by GORM.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func isDuplicate(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint") ||
		strings.Contains(err.Error(), "Duplicate entry")
}

// escapeLike neutralizes SQL LIKE wildcards in a user-supplied search term
// so it matches literally. Queries using the result must carry ESCAPE '\'.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// Customers

func (s *GormStore) CreateCustomer(c *Models.Customer) error {
	if err := s.DB.Create(c).Error; err != nil {
		if isDuplicate(err) {
			return &Models.ConflictError{Message: "a customer with this name already exists"}
		}
		return &Models.StorageError{Op: "create customer", Err: err}
	}
	return nil
}

func (s *GormStore) UpdateCustomer(c *Models.Customer) error {
	res := s.DB.Model(&Models.Customer{}).Where("id = ?", c.ID).
		Updates(map[string]interface{}{"name": c.Name, "default_bill_rate": c.DefaultBillRate})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return &Models.ConflictError{Message: "a customer with this name already exists"}
		}
		return &Models.StorageError{Op: "update customer", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &Models.NotFoundError{Entity: "customer", Key: strconv.Itoa(int(c.ID))}
	}
	return nil
}

func (s *GormStore) ListCustomers() ([]Models.Customer, error) {
	var customers []Models.Customer
	if err := s.DB.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, &Models.StorageError{Op: "list customers", Err: err}
	}
	return customers, nil
}

func (s *GormStore) FindCustomerByName(name string) (*Models.Customer, error) {
	var c Models.Customer
	if err := s.DB.Where("name = ?", name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &Models.NotFoundError{Entity: "customer", Key: name}
		}
		return nil, &Models.StorageError{Op: "find customer", Err: err}
	}
	return &c, nil
}

func (s *GormStore) FindCustomersByName(names []string) ([]Models.Customer, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var customers []Models.Customer
	if err := s.DB.Where("name IN ?", names).Find(&customers).Error; err != nil {
		return nil, &Models.StorageError{Op: "find customers", Err: err}
	}
	return customers, nil
}

func (s *GormStore) UpdateCustomerRates(batch []CustomerRate) error {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return &Models.StorageError{Op: "begin rate batch", Err: tx.Error}
	}
	for _, row := range batch {
		res := tx.Model(&Models.Customer{}).Where("id = ?", row.ID).
			Update("default_bill_rate", row.Rate)
		if res.Error != nil {
			tx.Rollback()
			return &Models.StorageError{Op: "update customer rate", Err: res.Error}
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			return &Models.NotFoundError{Entity: "customer", Key: strconv.Itoa(int(row.ID))}
		}
	}
	if err := tx.Commit().Error; err != nil {
		return &Models.StorageError{Op: "commit rate batch", Err: err}
	}
	return nil
}

// Drivers

func (s *GormStore) CreateDriver(d *Models.Driver) error {
	if err := s.DB.Create(d).Error; err != nil {
		if isDuplicate(err) {
			return &Models.ConflictError{Message: "a driver with this code already exists"}
		}
		return &Models.StorageError{Op: "create driver", Err: err}
	}
	return nil
}

func (s *GormStore) UpdateDriver(d *Models.Driver) error {
	res := s.DB.Model(&Models.Driver{}).Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"name":             d.Name,
			"code":             d.Code,
			"default_pay_rate": d.DefaultPayRate,
			"pin_hash":         d.PinHash,
		})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return &Models.ConflictError{Message: "a driver with this code already exists"}
		}
		return &Models.StorageError{Op: "update driver", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &Models.NotFoundError{Entity: "driver", Key: strconv.Itoa(int(d.ID))}
	}
	return nil
}

func (s *GormStore) ListDrivers() ([]Models.Driver, error) {
	var drivers []Models.Driver
	if err := s.DB.Order("name ASC").Find(&drivers).Error; err != nil {
		return nil, &Models.StorageError{Op: "list drivers", Err: err}
	}
	return drivers, nil
}

func (s *GormStore) FindDriverByID(id uint) (*Models.Driver, error) {
	var d Models.Driver
	if err := s.DB.First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &Models.NotFoundError{Entity: "driver", Key: strconv.Itoa(int(id))}
		}
		return nil, &Models.StorageError{Op: "find driver", Err: err}
	}
	return &d, nil
}

func (s *GormStore) FindDriverByName(name string) (*Models.Driver, error) {
	var d Models.Driver
	if err := s.DB.Where("name = ?", name).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &Models.NotFoundError{Entity: "driver", Key: name}
		}
		return nil, &Models.StorageError{Op: "find driver", Err: err}
	}
	return &d, nil
}

func (s *GormStore) DeleteDriver(id uint) error {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return &Models.StorageError{Op: "begin driver delete", Err: tx.Error}
	}
	var d Models.Driver
	if err := tx.First(&d, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Models.NotFoundError{Entity: "driver", Key: strconv.Itoa(int(id))}
		}
		return &Models.StorageError{Op: "find driver", Err: err}
	}
	if err := tx.Where("driver_id = ?", id).Delete(&Models.Ticket{}).Error; err != nil {
		tx.Rollback()
		return &Models.StorageError{Op: "delete driver tickets", Err: err}
	}
	if err := tx.Delete(&d).Error; err != nil {
		tx.Rollback()
		return &Models.StorageError{Op: "delete driver", Err: err}
	}
	if err := tx.Commit().Error; err != nil {
		return &Models.StorageError{Op: "commit driver delete", Err: err}
	}
	return nil
}

// Tickets

func (s *GormStore) InsertTicket(t *Models.Ticket) error {
	if err := s.DB.Create(t).Error; err != nil {
		return &Models.StorageError{Op: "insert ticket", Err: err}
	}
	return nil
}

func (s *GormStore) FindTicketByID(id uint) (*Models.Ticket, error) {
	var t Models.Ticket
	if err := s.DB.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &Models.NotFoundError{Entity: "ticket", Key: strconv.Itoa(int(id))}
		}
		return nil, &Models.StorageError{Op: "find ticket", Err: err}
	}
	return &t, nil
}

func (s *GormStore) FindTicketsByFilter(f TicketFilter) ([]TicketRow, error) {
	query := s.DB.Table("tickets").
		Select("tickets.*, drivers.name AS driver_name, drivers.code AS driver_code").
		Joins("LEFT JOIN drivers ON drivers.id = tickets.driver_id AND drivers.deleted_at IS NULL").
		Where("tickets.deleted_at IS NULL")

	if f.HasPeriod {
		query = query.Where("tickets.date LIKE ?", fmt.Sprintf("%04d-%02d-%%", f.Year, f.Month))
	}
	if f.Customer != "" {
		query = query.Where("tickets.customer = ?", f.Customer)
	}
	if f.HasDriver {
		query = query.Where("tickets.driver_id = ?", f.DriverID)
	}
	if f.Status != "" {
		query = query.Where("tickets.status = ?", f.Status)
	}
	if f.TicketNumberLike != "" {
		query = query.Where(`LOWER(tickets.ticket_number) LIKE ? ESCAPE '\'`,
			"%"+escapeLike(strings.ToLower(f.TicketNumberLike))+"%")
	}
	if f.DateFrom != "" {
		query = query.Where("tickets.date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		query = query.Where("tickets.date <= ?", f.DateTo)
	}

	if f.SortAscending {
		query = query.Order("tickets.date ASC, tickets.created_at ASC")
	} else {
		query = query.Order("tickets.date DESC, tickets.created_at DESC")
	}

	var rows []TicketRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, &Models.StorageError{Op: "query tickets", Err: err}
	}
	return rows, nil
}

func (s *GormStore) UpdateTicket(id uint, mutate func(t *Models.Ticket) error) (*Models.Ticket, error) {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, &Models.StorageError{Op: "begin ticket update", Err: tx.Error}
	}
	var t Models.Ticket
	if err := tx.First(&t, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &Models.NotFoundError{Entity: "ticket", Key: strconv.Itoa(int(id))}
		}
		return nil, &Models.StorageError{Op: "find ticket", Err: err}
	}
	if err := mutate(&t); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Save(&t).Error; err != nil {
		tx.Rollback()
		return nil, &Models.StorageError{Op: "save ticket", Err: err}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, &Models.StorageError{Op: "commit ticket update", Err: err}
	}
	return &t, nil
}

func (s *GormStore) DeleteTicket(id uint) error {
	res := s.DB.Delete(&Models.Ticket{}, id)
	if res.Error != nil {
		return &Models.StorageError{Op: "delete ticket", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &Models.NotFoundError{Entity: "ticket", Key: strconv.Itoa(int(id))}
	}
	return nil
}

// Users

func (s *GormStore) CreateUser(u *Models.User) error {
	if err := s.DB.Create(u).Error; err != nil {
		if isDuplicate(err) {
			return &Models.ConflictError{Message: "a user with this email already exists"}
		}
		return &Models.StorageError{Op: "create user", Err: err}
	}
	return nil
}

func (s *GormStore) FindUserByEmail(email string) (*Models.User, error) {
	var u Models.User
	if err := s.DB.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &Models.NotFoundError{Entity: "user", Key: email}
		}
		return nil, &Models.StorageError{Op: "find user", Err: err}
	}
	return &u, nil
}

func (s *GormStore) FindUserByID(id uint) (*Models.User, error) {
	var u Models.User
	if err := s.DB.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &Models.NotFoundError{Entity: "user", Key: strconv.Itoa(int(id))}
		}
		return nil, &Models.StorageError{Op: "find user", Err: err}
	}
	return &u, nil
}
