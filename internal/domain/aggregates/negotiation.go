package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var NegotiationAggregateContract = Contract{
	Name:             "Rebels.NegotiationAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	SerializedBy:     "rebel name (both parties)",
	Notes:            "Validates a two-party barter against a snapshot, then moves items for both parties and appends the audit record in one transaction guarded by rebel versions.",
}

// NegotiationAggregate owns the barter invariants: no negative holdings,
// no traitor party, both inventories change together or not at all.
//
// Failures are *aggregates.Error wrapping a typed barter failure:
// CodeNotFound (unknown rebel or item), CodePreconditionFailed (traitor),
// CodeValidation (stock, points, quantities), CodeConflict (stale snapshot),
// CodeInternal.
type NegotiationAggregate interface {
	Aggregate

	Negotiate(ctx context.Context, in NegotiateInput) (NegotiateResult, error)
}

type TradeItem struct {
	Name     string
	Quantity int
}

type TradeLeg struct {
	Rebel string
	Items []TradeItem
}

type NegotiateInput struct {
	LegA        TradeLeg
	LegB        TradeLeg
	RequestedAt time.Time
}

type PartyInventory struct {
	Rebel     string
	Inventory []TradeItem
}

type NegotiateResult struct {
	RecordID uuid.UUID
	Points   int
	// Items actually moved after merging duplicates.
	GivenByA []TradeItem
	GivenByB []TradeItem
	A        PartyInventory
	B        PartyInventory
	At       time.Time
}
