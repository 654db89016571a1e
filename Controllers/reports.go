package Controllers

import (
	"fmt"
	"strconv"

	"Hauler/Billing"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ReportController serves invoice and settlement documents, as JSON for the
// UI and as Excel workbooks for download. Totals come straight from the
// billing engine; this layer only rounds them for presentation.
type ReportController struct {
	Engine *Billing.Engine
}

func NewReportController(engine *Billing.Engine) *ReportController {
	return &ReportController{Engine: engine}
}

// GetInvoice builds a customer invoice for a period.
// GET /api/reports/invoice?customer=&start_date=&end_date=
func (r *ReportController) GetInvoice(c *fiber.Ctx) error {
	invoice, err := r.Engine.BuildInvoice(c.Query("customer"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"customer":   invoice.Customer,
		"start_date": invoice.StartDate,
		"end_date":   invoice.EndDate,
		"tickets":    invoice.Tickets,
		"subtotal":   Billing.Round2(invoice.Subtotal),
		"gst":        Billing.Round2(invoice.GST),
		"total":      Billing.Round2(invoice.Total),
	})
}

// GetSettlement builds a driver settlement for a period.
// GET /api/reports/settlement?driver_id=&start_date=&end_date=
func (r *ReportController) GetSettlement(c *fiber.Ctx) error {
	driverID, err := strconv.Atoi(c.Query("driver_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid driver ID"})
	}
	settlement, err := r.Engine.BuildSettlement(uint(driverID), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"driver":     settlement.Driver,
		"start_date": settlement.StartDate,
		"end_date":   settlement.EndDate,
		"tickets":    settlement.Tickets,
		"total_pay":  Billing.Round2(settlement.TotalPay),
	})
}

// ExportInvoice renders an invoice as an Excel workbook. Unlike the JSON
// endpoint, a period with nothing to bill is refused rather than rendered
// as a blank document.
func (r *ReportController) ExportInvoice(c *fiber.Ctx) error {
	invoice, err := r.Engine.BuildInvoice(c.Query("customer"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, err)
	}
	if len(invoice.Tickets) == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "No billable tickets in the selected period",
		})
	}

	file := excelize.NewFile()
	defer file.Close()
	sheet := "Invoice"
	file.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Ticket No", "Driver", "Truck", "Job Type", "Quantity", "Bill Rate", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, h)
	}
	for i, row := range invoice.Tickets {
		file.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.Date)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row.TicketNumber)
		file.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), row.DriverName)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), row.Truck)
		file.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), row.JobType)
		file.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), row.Quantity)
		file.SetCellValue(sheet, fmt.Sprintf("G%d", i+2), Billing.Round2(row.BillRate))
		file.SetCellValue(sheet, fmt.Sprintf("H%d", i+2), Billing.Round2(row.TotalBill))
	}
	footer := len(invoice.Tickets) + 3
	file.SetCellValue(sheet, fmt.Sprintf("G%d", footer), "Subtotal")
	file.SetCellValue(sheet, fmt.Sprintf("H%d", footer), Billing.Round2(invoice.Subtotal))
	file.SetCellValue(sheet, fmt.Sprintf("G%d", footer+1), "GST (5%)")
	file.SetCellValue(sheet, fmt.Sprintf("H%d", footer+1), Billing.Round2(invoice.GST))
	file.SetCellValue(sheet, fmt.Sprintf("G%d", footer+2), "Total")
	file.SetCellValue(sheet, fmt.Sprintf("H%d", footer+2), Billing.Round2(invoice.Total))

	buf, err := file.WriteToBuffer()
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("Invoice %s %s to %s.xlsx",
		invoice.Customer.Name, invoice.StartDate, invoice.EndDate)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

// ExportSettlement renders a driver settlement as an Excel workbook.
func (r *ReportController) ExportSettlement(c *fiber.Ctx) error {
	driverID, err := strconv.Atoi(c.Query("driver_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid driver ID"})
	}
	settlement, err := r.Engine.BuildSettlement(uint(driverID), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, err)
	}

	file := excelize.NewFile()
	defer file.Close()
	sheet := "Settlement"
	file.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Ticket No", "Customer", "Truck", "Status", "Quantity", "Pay Rate", "Total Pay"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, h)
	}
	for i, row := range settlement.Tickets {
		file.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.Date)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row.TicketNumber)
		file.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), row.Customer)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), row.Truck)
		file.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), row.Status)
		file.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), row.Quantity)
		file.SetCellValue(sheet, fmt.Sprintf("G%d", i+2), Billing.Round2(row.PayRate))
		file.SetCellValue(sheet, fmt.Sprintf("H%d", i+2), Billing.Round2(row.TotalPay))
	}
	footer := len(settlement.Tickets) + 3
	file.SetCellValue(sheet, fmt.Sprintf("G%d", footer), "Total Pay")
	file.SetCellValue(sheet, fmt.Sprintf("H%d", footer), Billing.Round2(settlement.TotalPay))

	buf, err := file.WriteToBuffer()
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("Settlement %s %s to %s.xlsx",
		settlement.Driver.Name, settlement.StartDate, settlement.EndDate)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}
