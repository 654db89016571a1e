package FiberConfig

import (
	"log"

	"Hauler/Billing"
	"Hauler/Controllers"
	"Hauler/Storage"
	"Hauler/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func SetupRoutes(app *fiber.App, store Storage.Store) {
	engine := Billing.NewEngine(store)

	authController := Controllers.NewAuthController(store)
	ticketController := Controllers.NewTicketController(store, engine)
	customerController := Controllers.NewCustomerController(store)
	driverController := Controllers.NewDriverController(store)
	reportController := Controllers.NewReportController(engine)

	api := app.Group("/api")

	// Session
	api.Post("/login", authController.Login)
	api.Post("/logout", authController.Logout)
	api.Post("/users", middleware.Verify(store, 4), authController.RegisterUser)

	// Ticket submission is driver-facing, authenticated by driver PIN in
	// the payload rather than an admin session.
	api.Post("/tickets", ticketController.SubmitTicket)

	// Admin ticket routes
	tickets := api.Group("/tickets", middleware.Verify(store, 1))
	tickets.Get("/", ticketController.GetTickets)
	tickets.Get("/:id", ticketController.GetTicket)
	tickets.Patch("/:id", middleware.Verify(store, 3), ticketController.UpdateTicket)
	tickets.Delete("/:id", middleware.Verify(store, 3), ticketController.DeleteTicket)

	// Customer routes
	customers := api.Group("/customers", middleware.Verify(store, 1))
	customers.Get("/", customerController.GetCustomers)
	customers.Post("/", middleware.Verify(store, 3), customerController.CreateCustomer)
	customers.Post("/rates", middleware.Verify(store, 3), customerController.UpdateRates)
	customers.Put("/:id", middleware.Verify(store, 3), customerController.UpdateCustomer)

	// Driver routes
	drivers := api.Group("/drivers", middleware.Verify(store, 1))
	drivers.Get("/", driverController.GetDrivers)
	drivers.Post("/", middleware.Verify(store, 3), driverController.CreateDriver)
	drivers.Put("/:id", middleware.Verify(store, 3), driverController.UpdateDriver)
	drivers.Put("/:id/pin", middleware.Verify(store, 3), driverController.SetPIN)
	drivers.Delete("/:id", middleware.Verify(store, 3), driverController.DeleteDriver)

	// Report routes
	reports := api.Group("/reports", middleware.Verify(store, 3))
	reports.Get("/invoice", reportController.GetInvoice)
	reports.Get("/invoice/export", reportController.ExportInvoice)
	reports.Get("/settlement", reportController.GetSettlement)
	reports.Get("/settlement/export", reportController.ExportSettlement)
}

func FiberConfig(store Storage.Store, address string) {
	log.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	SetupRoutes(app, store)

	if err := app.Listen(address); err != nil {
		log.Fatal(err)
	}
}
