package aggregates

import (
	"context"
	"time"
)

var TreasonAggregateContract = Contract{
	Name:             "Rebels.TreasonAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	SerializedBy:     "accused rebel name",
	Notes:            "Upserts the (accuser, accused) counter and bumps the accused rebel's version in one transaction so in-flight negotiations observe the change.",
}

// TreasonAggregate owns the accusation ledger.
//
// Failures: CodeValidation (missing names), CodeNotFound (unknown rebel),
// CodeInternal.
type TreasonAggregate interface {
	Aggregate

	Report(ctx context.Context, in ReportTreasonInput) (ReportTreasonResult, error)
}

type ReportTreasonInput struct {
	Accuser    string
	Accused    string
	ReportedAt time.Time
}

type ReportTreasonResult struct {
	Accuser string
	Accused string
	// PairCount is how many times Accuser has now reported Accused.
	PairCount int
	// TotalReports sums every accuser's count for Accused.
	TotalReports int
	Accusers     []string
	Traitor      bool
	// BecameTraitor is set when this report crossed the threshold.
	BecameTraitor bool
}
