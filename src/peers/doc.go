// Package peers tracks the validators of the consensus network and their stake
// weights.
//
// The Registry is the denominator of every quorum decision taken by the
// hashgraph package: strongly-see, round increments and fame all compare a
// sum of validator weights against SuperMajority, the smallest weight strictly
// greater than two thirds of the total.
//
// The validator set is expected to be fixed before consensus begins. Admitting
// a validator later changes the supermajority retroactively, so the Registry
// can be sealed and records late registrations.
//
// A validators.json file in the data directory can provide the initial set:
//
//	[
//		{"id": 0, "weight": 1},
//		{"id": 1, "weight": 2}
//	]
package peers
