package main

import (
	"log"
	"os"

	"Hauler/CronJobs"
	"Hauler/FiberConfig"
	"Hauler/Models"
	"Hauler/Storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "database.db"
	}
	address := ":" + os.Getenv("PORT")
	if address == ":" {
		address = ":3001"
	}

	db, err := Models.Connect(dbPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	store := Storage.NewGormStore(db)

	auditor := CronJobs.NewTotalsAuditor(store, false)
	if err := auditor.Start(); err != nil {
		log.Println("Failed to start totals auditor:", err)
	}

	FiberConfig.FiberConfig(store, address)
}
