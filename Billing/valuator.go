package Billing

import (
	"fmt"

	"Hauler/Models"
)

// PriceTicket derives a ticket's monetary totals. Full precision is kept;
// rounding happens only when a value is presented.
func PriceTicket(quantity, billRate, payRate float64) (totalBill, totalPay float64) {
	return quantity * billRate, quantity * payRate
}

// TicketPatch is an admin's field-level ticket update. Nil fields keep the
// ticket's current value.
type TicketPatch struct {
	Quantity *float64 `json:"quantity"`
	BillRate *float64 `json:"bill_rate"`
	PayRate  *float64 `json:"pay_rate"`
	Status   *string  `json:"status"`
}

// Empty reports whether the patch carries no recognized field.
func (p TicketPatch) Empty() bool {
	return p.Quantity == nil && p.BillRate == nil && p.PayRate == nil && p.Status == nil
}

// ApplyTicketPatch applies a partial update to a stored ticket inside one
// storage transaction. Totals are re-derived from the union of current and
// patched values whenever quantity or either rate changes, so they can never
// drift out of sync with what is stored. Empty patches are rejected rather
// than silently accepted.
func (e *Engine) ApplyTicketPatch(id uint, patch TicketPatch) (*Models.Ticket, error) {
	if patch.Empty() {
		return nil, &Models.ValidationError{Message: "update must include at least one of quantity, bill_rate, pay_rate, status"}
	}
	if patch.Status != nil && !Models.ValidStatus(*patch.Status) {
		return nil, &Models.ValidationError{
			Message: fmt.Sprintf("status must be %s, %s or %s",
				Models.StatusPending, Models.StatusApproved, Models.StatusRejected),
		}
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return nil, &Models.ValidationError{Message: "quantity cannot be negative"}
	}

	return e.Store.UpdateTicket(id, func(t *Models.Ticket) error {
		if patch.Quantity != nil {
			t.Quantity = *patch.Quantity
		}
		if patch.BillRate != nil {
			t.BillRate = *patch.BillRate
		}
		if patch.PayRate != nil {
			t.PayRate = *patch.PayRate
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Quantity != nil || patch.BillRate != nil || patch.PayRate != nil {
			t.TotalBill, t.TotalPay = PriceTicket(t.Quantity, t.BillRate, t.PayRate)
		}
		return nil
	})
}
