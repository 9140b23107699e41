// Package journal captures the records accepted by a consensus graph, together
// with its validator registry, and rebuilds an identical graph from them.
//
// Two implementations are provided: InmemJournal, and BadgerJournal which
// persists to a Badger database with the layout
//
//	validator_%09d => canonical JSON of the validator at that position
//	late           => validators admitted after the registry was sealed, and when
//	record_%09d    => canonical JSON of the record with that id
package journal
