package Models

import (
	"gorm.io/gorm"
)

// Customer is a billing counterparty. Tickets reference customers by Name
// (sometimes several names on one ticket), so Name is the join key and must
// stay unique.
type Customer struct {
	gorm.Model
	Name            string  `json:"name" gorm:"uniqueIndex;not null"`
	DefaultBillRate float64 `json:"default_bill_rate"`
}

// Driver is a pay counterparty. Tickets reference drivers by ID.
type Driver struct {
	gorm.Model
	Name           string  `json:"name"`
	Code           string  `json:"code" gorm:"uniqueIndex;not null"`
	DefaultPayRate float64 `json:"default_pay_rate"`
	PinHash        []byte  `json:"-"`
}
