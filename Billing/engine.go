package Billing

import (
	"Hauler/Storage"
)

// GSTRate is the fixed surcharge applied to invoice subtotals.
const GSTRate = 0.05

// Engine prices tickets and aggregates them into invoices and settlements.
// All reads and writes go through the injected store; the engine itself
// keeps no state between calls.
type Engine struct {
	Store Storage.Store
}

func NewEngine(store Storage.Store) *Engine {
	return &Engine{Store: store}
}
