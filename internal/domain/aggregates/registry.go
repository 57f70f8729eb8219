package aggregates

import (
	"context"
	"time"

	"github.com/yungbote/forcebook-backend/internal/domain/rebels"
)

var RegistryAggregateContract = Contract{
	Name:             "Rebels.RegistryAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	SerializedBy:     "rebel name",
	Notes:            "Creates a rebel with its starting inventory in one transaction and moves a rebel's base. Names are unique and immutable.",
}

// RegistryAggregate owns rebel identity: registration and relocation.
//
// Failures: CodeValidation (missing or malformed fields, negative quantity),
// CodeConflict (duplicate_rebel), CodeNotFound (unknown rebel or item),
// CodeInternal.
type RegistryAggregate interface {
	Aggregate

	Register(ctx context.Context, in RegisterInput) (RegisterResult, error)
	UpdateLocation(ctx context.Context, in UpdateLocationInput) (UpdateLocationResult, error)
}

type RegisterInput struct {
	Name      string
	Age       int
	Gender    rebels.Gender
	Location  rebels.Location
	Inventory []TradeItem
	At        time.Time
}

type RegisterResult struct {
	Rebel *rebels.Rebel
	// Inventory is the stored starting inventory after merging duplicates.
	Inventory []TradeItem
}

type UpdateLocationInput struct {
	Name     string
	Location rebels.Location
}

type UpdateLocationResult struct {
	Name     string
	Location rebels.Location
}
