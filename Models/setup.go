package Models

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the database and migrates the schema. The returned handle is
// passed explicitly into the storage layer; there is no package-level
// connection.
func Connect(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Users, customers and drivers first, tickets reference drivers.
	if err := db.AutoMigrate(
		&User{},
		&Customer{},
		&Driver{},
	); err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Ticket{}); err != nil {
		return nil, err
	}

	return db, nil
}
