package Models

import (
	"gorm.io/gorm"
)

// User is an admin/back-office account. Permission levels gate routes the
// same way across the API: 1 = read, 3 = manage rates and tickets,
// 4 = manage users.
type User struct {
	gorm.Model
	Name       string `json:"name"`
	Email      string `json:"email" gorm:"uniqueIndex;not null"`
	Password   []byte `json:"-"`
	Permission int    `json:"permission"`
}
