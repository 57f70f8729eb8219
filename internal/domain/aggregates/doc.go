// Package aggregates defines the write boundaries of the rebel registry.
//
// Each aggregate owns one atomic mutation (a negotiation, a treason report)
// and the invariants that must hold across it. Implementations live in
// internal/data/aggregates.
package aggregates
