package barter

import (
	"sort"

	"github.com/yungbote/forcebook-backend/internal/domain"
)

// Entry is one (item, quantity) pair as requested or held.
type Entry struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Ledger is an in-memory view of one rebel's holdings. It never stores a
// zero or negative quantity.
type Ledger struct {
	owner string
	qty   map[string]int
}

func NewLedger(owner string, entries ...Entry) *Ledger {
	l := &Ledger{owner: owner, qty: make(map[string]int, len(entries))}
	for _, e := range entries {
		if e.Quantity > 0 {
			l.qty[e.Name] += e.Quantity
		}
	}
	return l
}

// LedgerOf builds a ledger from persisted holdings.
func LedgerOf(owner string, items []domain.Item) *Ledger {
	l := &Ledger{owner: owner, qty: make(map[string]int, len(items))}
	for _, it := range items {
		if it.Quantity > 0 {
			l.qty[it.TemplateName] += it.Quantity
		}
	}
	return l
}

func (l *Ledger) Owner() string { return l.owner }

// Quantity returns 0 for items the owner does not hold.
func (l *Ledger) Quantity(item string) int {
	if l == nil {
		return 0
	}
	return l.qty[item]
}

// Debit removes qty units, dropping the holding when it reaches zero.
func (l *Ledger) Debit(item string, qty int) error {
	if qty < 0 {
		return InvalidQuantity(item, qty)
	}
	have := l.qty[item]
	if qty > have {
		return InsufficientOwnerStock(l.owner, item)
	}
	if have == qty {
		delete(l.qty, item)
		return nil
	}
	l.qty[item] = have - qty
	return nil
}

// Credit adds qty units; qty must be positive.
func (l *Ledger) Credit(item string, qty int) error {
	if qty <= 0 {
		return InvalidQuantity(item, qty)
	}
	l.qty[item] += qty
	return nil
}

func (l *Ledger) Clone() *Ledger {
	if l == nil {
		return nil
	}
	cp := &Ledger{owner: l.owner, qty: make(map[string]int, len(l.qty))}
	for k, v := range l.qty {
		cp.qty[k] = v
	}
	return cp
}

// Entries lists holdings sorted by item name.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, 0, len(l.qty))
	for name, q := range l.qty {
		out = append(out, Entry{Name: name, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Equal compares holdings, ignoring the owner.
func (l *Ledger) Equal(other *Ledger) bool {
	if l == nil || other == nil {
		return l == other
	}
	if len(l.qty) != len(other.qty) {
		return false
	}
	for k, v := range l.qty {
		if other.qty[k] != v {
			return false
		}
	}
	return true
}
