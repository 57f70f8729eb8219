package barter

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names a negotiation failure. Values are stable and reach API clients.
type Kind string

const (
	KindUnknownActor           Kind = "unknown_actor"
	KindUnknownItemType        Kind = "unknown_item_type"
	KindIneligibleParty        Kind = "ineligible_party"
	KindInsufficientOwnerStock Kind = "insufficient_owner_stock"
	KindPointMismatch          Kind = "point_mismatch"
	KindConcurrentModification Kind = "concurrent_modification"
	KindInvalidQuantity        Kind = "invalid_quantity"
	KindSelfNegotiation        Kind = "self_negotiation"
	KindDuplicateRebel         Kind = "duplicate_rebel"
)

// Failure is the typed rejection returned by every engine step. Only the
// fields relevant to Kind are set.
type Failure struct {
	Kind Kind

	Rebel        string
	Counterparty string
	Item         string
	Quantity     int

	PointsA int
	PointsB int
}

func (f *Failure) Error() string {
	if f == nil {
		return ""
	}
	switch f.Kind {
	case KindUnknownActor:
		return fmt.Sprintf("Unable to find rebel named %s.", f.Rebel)
	case KindUnknownItemType:
		return fmt.Sprintf("Unable to find item named %s.", f.Item)
	case KindIneligibleParty:
		return fmt.Sprintf("%s is a traitor, therefore banned from negotiating.", f.Rebel)
	case KindInsufficientOwnerStock:
		return fmt.Sprintf("%s does not have enough %s.", f.Rebel, f.Item)
	case KindPointMismatch:
		return fmt.Sprintf("Mismatching points: [%s:%d, %s:%d]", f.Rebel, f.PointsA, f.Counterparty, f.PointsB)
	case KindConcurrentModification:
		names := strings.TrimSpace(strings.Join(nonEmpty(f.Rebel, f.Counterparty), " and "))
		return fmt.Sprintf("Inventory of %s changed during negotiation, nothing was applied.", names)
	case KindInvalidQuantity:
		return fmt.Sprintf("Invalid quantity %d for item %s.", f.Quantity, f.Item)
	case KindSelfNegotiation:
		return fmt.Sprintf("%s cannot negotiate with themselves.", f.Rebel)
	case KindDuplicateRebel:
		return fmt.Sprintf("A rebel named %s already exists.", f.Rebel)
	default:
		return string(f.Kind)
	}
}

func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func UnknownActor(name string) *Failure {
	return &Failure{Kind: KindUnknownActor, Rebel: name}
}

func UnknownItemType(item string) *Failure {
	return &Failure{Kind: KindUnknownItemType, Item: item}
}

func IneligibleParty(name string) *Failure {
	return &Failure{Kind: KindIneligibleParty, Rebel: name}
}

func InsufficientOwnerStock(owner, item string) *Failure {
	return &Failure{Kind: KindInsufficientOwnerStock, Rebel: owner, Item: item}
}

func PointMismatch(rebelA string, pointsA int, rebelB string, pointsB int) *Failure {
	return &Failure{Kind: KindPointMismatch, Rebel: rebelA, Counterparty: rebelB, PointsA: pointsA, PointsB: pointsB}
}

func ConcurrentModification(rebelA, rebelB string) *Failure {
	return &Failure{Kind: KindConcurrentModification, Rebel: rebelA, Counterparty: rebelB}
}

func InvalidQuantity(item string, qty int) *Failure {
	return &Failure{Kind: KindInvalidQuantity, Item: item, Quantity: qty}
}

func SelfNegotiation(name string) *Failure {
	return &Failure{Kind: KindSelfNegotiation, Rebel: name}
}

func DuplicateRebel(name string) *Failure {
	return &Failure{Kind: KindDuplicateRebel, Rebel: name}
}

// AsFailure extracts a *Failure from err's chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) && f != nil {
		return f, true
	}
	return nil, false
}

// IsKind reports whether err carries a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	f, ok := AsFailure(err)
	return ok && f.Kind == kind
}
