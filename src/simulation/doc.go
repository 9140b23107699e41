// Package simulation generates deterministic random Event sequences and feeds
// them to a consensus graph. It stands in for the gossip layer in tests and in
// the hgcore command.
package simulation
