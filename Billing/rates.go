package Billing

import (
	"strings"

	"Hauler/Models"
)

// ParseCustomerNames splits a raw comma-joined customer field into trimmed
// names, dropping empty segments. An empty result is a validation failure:
// every ticket must name at least one customer.
func ParseCustomerNames(raw string) ([]string, error) {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	if len(names) == 0 {
		return nil, &Models.ValidationError{Message: "ticket must name at least one customer"}
	}
	return names, nil
}

// ResolveRates picks the bill and pay rate for a new ticket. The pay rate is
// always the driver's default. The bill rate is the arithmetic mean of the
// matched customers' default bill rates; averaging (not summing) keeps a
// multi-customer ticket from inflating the bill. No match means a zero bill
// rate, left for an admin to correct later.
func ResolveRates(matched []Models.Customer, driverDefaultPayRate float64) (billRate, payRate float64) {
	payRate = driverDefaultPayRate
	if len(matched) == 0 {
		return 0, payRate
	}
	var sum float64
	for _, c := range matched {
		sum += c.DefaultBillRate
	}
	return sum / float64(len(matched)), payRate
}

// ResolveTicketRates looks up the driver and the named customers, then
// delegates to ResolveRates. rawCustomer is the ticket's comma-joined
// customer field as submitted.
func (e *Engine) ResolveTicketRates(rawCustomer string, driverID uint) (billRate, payRate float64, err error) {
	names, err := ParseCustomerNames(rawCustomer)
	if err != nil {
		return 0, 0, err
	}
	driver, err := e.Store.FindDriverByID(driverID)
	if err != nil {
		return 0, 0, err
	}
	matched, err := e.Store.FindCustomersByName(names)
	if err != nil {
		return 0, 0, err
	}
	billRate, payRate = ResolveRates(matched, driver.DefaultPayRate)
	return billRate, payRate, nil
}
