package barter

import "math"

// Leg is one side of a proposed trade: the rebel offering and what they offer.
type Leg struct {
	Rebel string  `json:"name"`
	Items []Entry `json:"items"`
}

// ValidLeg is a leg that passed validation. Items are merged by name, in
// order of first appearance, with zero totals dropped.
type ValidLeg struct {
	Rebel  string
	Items  []Entry
	Points int
}

// ValidateLeg resolves, merges and totals a leg against the owner's holdings.
// Entries are processed in order and the first failure aborts the whole leg:
// an unknown name fails before anything after it is looked at, and the stock
// check runs on the running merged total, so splitting a request across
// duplicate entries cannot exceed what the owner holds.
func ValidateLeg(rebel string, entries []Entry, holdings *Ledger, catalog Catalog) (ValidLeg, error) {
	out := ValidLeg{Rebel: rebel}
	totals := make(map[string]int, len(entries))
	order := make([]string, 0, len(entries))

	for _, e := range entries {
		points, ok := catalog.Points(e.Name)
		if !ok {
			return ValidLeg{}, UnknownItemType(e.Name)
		}
		if e.Quantity < 0 {
			return ValidLeg{}, InvalidQuantity(e.Name, e.Quantity)
		}
		if _, seen := totals[e.Name]; !seen {
			order = append(order, e.Name)
		}
		sum, ok := addQuantity(totals[e.Name], e.Quantity)
		if !ok {
			return ValidLeg{}, InvalidQuantity(e.Name, e.Quantity)
		}
		totals[e.Name] = sum
		if totals[e.Name] > holdings.Quantity(e.Name) {
			return ValidLeg{}, InsufficientOwnerStock(rebel, e.Name)
		}
		if points > 0 && e.Quantity > (math.MaxInt-out.Points)/points {
			return ValidLeg{}, InvalidQuantity(e.Name, e.Quantity)
		}
		out.Points += e.Quantity * points
	}

	out.Items = make([]Entry, 0, len(order))
	for _, name := range order {
		if q := totals[name]; q > 0 {
			out.Items = append(out.Items, Entry{Name: name, Quantity: q})
		}
	}
	return out, nil
}

// Merge sums duplicate entries by name, keeping first-appearance order.
// Negative quantities and totals that overflow int are rejected; zero
// totals are dropped.
func Merge(entries []Entry) ([]Entry, error) {
	totals := make(map[string]int, len(entries))
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Quantity < 0 {
			return nil, InvalidQuantity(e.Name, e.Quantity)
		}
		if _, seen := totals[e.Name]; !seen {
			order = append(order, e.Name)
		}
		sum, ok := addQuantity(totals[e.Name], e.Quantity)
		if !ok {
			return nil, InvalidQuantity(e.Name, e.Quantity)
		}
		totals[e.Name] = sum
	}
	out := make([]Entry, 0, len(order))
	for _, name := range order {
		if q := totals[name]; q > 0 {
			out = append(out, Entry{Name: name, Quantity: q})
		}
	}
	return out, nil
}

// addQuantity adds two non-negative quantities, reporting false on overflow.
func addQuantity(total, q int) (int, bool) {
	if q > math.MaxInt-total {
		return 0, false
	}
	return total + q, true
}
