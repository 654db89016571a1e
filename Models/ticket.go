package Models

import (
	"gorm.io/gorm"
)

// Ticket statuses. A ticket starts as Pending and an admin can move it
// between any of the three states at any time.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// ValidStatus reports whether s is one of the three known ticket statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Ticket represents one unit of billable/payable driver work.
//
// Customer is a denormalized name string and may hold several comma-joined
// customer names on a single ticket. Tickets join to customers by name, not
// by id; rate resolution and invoice aggregation depend on exact string
// matching against this field.
type Ticket struct {
	gorm.Model
	DriverID uint   `json:"driver_id" gorm:"index"`
	Date     string `json:"date" gorm:"index"` // calendar day, YYYY-MM-DD

	Truck        string `json:"truck"`
	JobType      string `json:"job_type"`
	TicketNumber string `json:"ticket_number"`

	Quantity float64 `json:"quantity"`
	Customer string  `json:"customer"` // name or comma-joined list of names

	BillRate  float64 `json:"bill_rate"`
	PayRate   float64 `json:"pay_rate"`
	TotalBill float64 `json:"total_bill"` // always Quantity * BillRate
	TotalPay  float64 `json:"total_pay"`  // always Quantity * PayRate

	Status string `json:"status" gorm:"index;default:Pending"`
}

func (Ticket) TableName() string {
	return "tickets"
}
