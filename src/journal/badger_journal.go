package journal

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger"
	cm "github.com/mosaicnetworks/hgcore/src/common"
	"github.com/mosaicnetworks/hgcore/src/hashgraph"
	"github.com/mosaicnetworks/hgcore/src/peers"
	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
)

const (
	validatorPrefix = "validator"
	recordPrefix    = "record"
	lateKey         = "late"
)

// BadgerJournal persists the journal in a Badger database. Records are keyed
// by their zero-padded id, so a prefix scan returns them in acceptance order.
type BadgerJournal struct {
	db     *badger.DB
	path   string
	next   hashgraph.EventID
	logger *logrus.Entry
}

// NewBadgerJournal opens the database in path, creating it if necessary. An
// existing journal is appended to.
func NewBadgerJournal(path string, logger *logrus.Entry) (*BadgerJournal, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	opts := badger.DefaultOptions(path).
		WithSyncWrites(false).
		WithTruncate(true).
		WithLogger(logger.WithField("ns", "badger"))

	handle, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	journal := &BadgerJournal{
		db:     handle,
		path:   path,
		logger: logger,
	}

	count, err := journal.dbCountRecords()
	if err != nil {
		handle.Close()
		return nil, err
	}
	journal.next = hashgraph.EventID(count + 1)

	logger.WithFields(logrus.Fields{
		"path":    path,
		"records": count,
	}).Debug("Opened journal")

	return journal, nil
}

/*******************************************************************************
Keys
*******************************************************************************/

func validatorKey(index int) []byte {
	return []byte(fmt.Sprintf("%s_%09d", validatorPrefix, index))
}

func recordKey(id hashgraph.EventID) []byte {
	return []byte(fmt.Sprintf("%s_%09d", recordPrefix, id))
}

func recordID(key []byte) (hashgraph.EventID, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(string(key), recordPrefix+"_"), 10, 64)
	return hashgraph.EventID(id), err
}

/*******************************************************************************
Implement the Journal interface
*******************************************************************************/

// SetValidators implements the Journal interface. It replaces the previously
// journaled validator set.
func (j *BadgerJournal) SetValidators(validators []peers.Validator, late []Admission) error {
	return j.db.Update(func(txn *badger.Txn) error {
		stale, err := prefixKeys(txn, []byte(validatorPrefix))
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}

		for i, v := range validators {
			val, err := v.Marshal()
			if err != nil {
				return err
			}
			//insert [validator_index] => [validator bytes]
			if err := txn.Set(validatorKey(i), val); err != nil {
				return err
			}
		}

		val, err := encode(late)
		if err != nil {
			return err
		}
		return txn.Set([]byte(lateKey), val)
	})
}

// Validators implements the Journal interface
func (j *BadgerJournal) Validators() ([]peers.Validator, []Admission, error) {
	validators := []peers.Validator{}
	late := []Admission{}

	err := j.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(validatorPrefix)

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var v peers.Validator
			if err := v.Unmarshal(val); err != nil {
				return err
			}
			validators = append(validators, v)
		}

		item, err := txn.Get([]byte(lateKey))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return decode(val, &late)
	})

	if err != nil {
		return nil, nil, err
	}

	return validators, late, nil
}

// Append implements the Journal interface. Ids must be appended in sequence,
// continuing any records already in the database.
func (j *BadgerJournal) Append(id hashgraph.EventID, rec hashgraph.EventRecord) error {
	if id != j.next {
		return cm.NewConsensusErr("BadgerJournal", cm.ReplayMismatch, id.String())
	}

	val, err := rec.Marshal()
	if err != nil {
		return err
	}

	tx := j.db.NewTransaction(true)
	defer tx.Discard()

	//insert [record_id] => [record bytes]
	if err := tx.Set(recordKey(id), val); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	j.next++

	return nil
}

// Record implements the Journal interface
func (j *BadgerJournal) Record(id hashgraph.EventID) (hashgraph.EventRecord, error) {
	var rec hashgraph.EventRecord

	err := j.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(id))
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return rec.Unmarshal(val)
	})

	return rec, mapError(err, "Record", string(recordKey(id)))
}

// Entries implements the Journal interface
func (j *BadgerJournal) Entries() ([]Entry, error) {
	res := []Entry{}

	err := j.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(recordPrefix)

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			id, err := recordID(item.Key())
			if err != nil {
				return err
			}

			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			var rec hashgraph.EventRecord
			if err := rec.Unmarshal(val); err != nil {
				return err
			}

			res = append(res, Entry{ID: id, Record: rec})
		}

		return nil
	})

	return res, err
}

// Len implements the Journal interface
func (j *BadgerJournal) Len() int {
	return int(j.next - 1)
}

// Close implements the Journal interface
func (j *BadgerJournal) Close() error {
	return j.db.Close()
}

// Path returns the directory of the database.
func (j *BadgerJournal) Path() string {
	return j.path
}

/*******************************************************************************
DB helpers
*******************************************************************************/

func (j *BadgerJournal) dbCountRecords() (int, error) {
	count := 0
	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte(recordPrefix)

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

func prefixKeys(txn *badger.Txn, prefix []byte) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	keys := [][]byte{}
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys, nil
}

func encode(v interface{}) ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

func decode(data []byte, v interface{}) error {
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(bytes.NewBuffer(data), jh)

	return dec.Decode(v)
}

func mapError(err error, name, key string) error {
	if err == badger.ErrKeyNotFound {
		return cm.NewConsensusErr(name, cm.KeyNotFound, key)
	}
	return err
}
