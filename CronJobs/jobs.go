package CronJobs

import (
	"fmt"
	"log"
	"math"

	"Hauler/Billing"
	"Hauler/Models"
	"Hauler/Storage"

	"github.com/robfig/cron/v3"
)

// TotalsAuditor re-derives ticket totals on a schedule. Every write path
// keeps totals equal to quantity times rate, but rows edited outside the
// API (imports, manual fixes in the database) can drift; the nightly pass
// repairs them.
type TotalsAuditor struct {
	store          Storage.Store
	cronScheduler  *cron.Cron
	runImmediately bool
	jobID          cron.EntryID
}

func NewTotalsAuditor(store Storage.Store, runImmediately bool) *TotalsAuditor {
	return &TotalsAuditor{
		store:          store,
		cronScheduler:  cron.New(),
		runImmediately: runImmediately,
	}
}

// Start schedules the nightly audit at 3:00 AM.
func (a *TotalsAuditor) Start() error {
	var err error
	a.jobID, err = a.cronScheduler.AddFunc("0 3 * * *", func() {
		log.Println("Running scheduled ticket totals audit")
		a.runAudit()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	a.cronScheduler.Start()

	if a.runImmediately {
		a.runAudit()
	}
	return nil
}

// Stop terminates the scheduler.
func (a *TotalsAuditor) Stop() {
	a.cronScheduler.Stop()
}

func (a *TotalsAuditor) runAudit() {
	rows, err := a.store.FindTicketsByFilter(Storage.TicketFilter{})
	if err != nil {
		log.Println("Totals audit failed to fetch tickets:", err)
		return
	}

	repaired := 0
	for _, row := range rows {
		wantBill, wantPay := Billing.PriceTicket(row.Quantity, row.BillRate, row.PayRate)
		if math.Abs(row.TotalBill-wantBill) < 1e-9 && math.Abs(row.TotalPay-wantPay) < 1e-9 {
			continue
		}
		_, err := a.store.UpdateTicket(row.ID, func(t *Models.Ticket) error {
			t.TotalBill, t.TotalPay = Billing.PriceTicket(t.Quantity, t.BillRate, t.PayRate)
			return nil
		})
		if err != nil {
			log.Printf("Totals audit failed to repair ticket %d: %v", row.ID, err)
			continue
		}
		repaired++
	}

	if repaired > 0 {
		log.Printf("Totals audit repaired %d ticket(s)", repaired)
	} else {
		log.Println("Totals audit found no drift")
	}
}
