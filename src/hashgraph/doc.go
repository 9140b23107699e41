// Package hashgraph implements the consensus core of a leaderless,
// gossip-based ledger in the Hashgraph family:
//
// http://www.swirlds.com/downloads/SWIRLDS-TR-2016-01.pdf
//
// Validators append Events to their own chains. An Event references a
// self-parent and, optionally, an other-parent created by someone else, so the
// Events form a DAG. From the DAG alone, without further communication, the
// core derives:
//
//   - the ancestry of every Event (AncestryIndex)
//   - the stake-weighted strongly-see relation (StronglySeeEvaluator)
//   - rounds and witnesses (RoundAssigner)
//   - the fame of witnesses by virtual voting (FameOracle)
//
// ConsensusGraph ties them together. Events are inserted one at a time, after
// their parents, and every derived value is computed at insertion, except fame
// which is re-evaluated when the next round gains witnesses.
//
// # Ids
//
// Events are addressed by EventIDs assigned sequentially by the EventStore.
// Resolving the hashes exchanged over the network into local ids is the job of
// the gossip layer, as is verifying signatures.
//
// # Scaling
//
// Ancestor sets are dense bit vectors, so memory grows quadratically with the
// number of Events. Pruning old rounds is not implemented.
package hashgraph
