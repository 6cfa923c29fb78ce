package store

import (
	"context"
	"encoding/json"

	"github.com/dgraph-io/badger/v4"

	"github.com/chessroyale/core/chesstypes"
	"github.com/chessroyale/core/logging"
)

var log = logging.GetLog("store")

// nickKey/emailKey namespace the two unique indexes badger needs, since
// it is a flat key-value store with no secondary indexes of its own.
func nickKey(nick string) []byte   { return append([]byte("nick/"), nick...) }
func emailKey(email string) []byte { return append([]byte("email/"), email...) }

// BadgerStore is the embedded PlayerStore adapter cmd/chessroyale wires
// up by default: one badger database holding every account, keyed by
// both nick and email so each unique-field lookup is a single get.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (creating if absent) a badger database at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the underlying badger database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) FindByEmail(_ context.Context, email string) (Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey(email))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var nick []byte
		if nick, err = item.ValueCopy(nil); err != nil {
			return err
		}
		recordItem, err := txn.Get(nickKey(string(nick)))
		if err != nil {
			return err
		}
		return recordItem.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	return rec, err
}

func (s *BadgerStore) ExistsByNick(_ context.Context, nick string) (bool, error) {
	exists := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(nickKey(nick))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

func (s *BadgerStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	exists := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(emailKey(email))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

func (s *BadgerStore) Insert(_ context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(nickKey(rec.Nick), data); err != nil {
			return err
		}
		return txn.Set(emailKey(rec.Email), []byte(rec.Nick))
	})
}

func (s *BadgerStore) UpdateElo(_ context.Context, nick string, gameType chesstypes.GameType, elo int) error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(nickKey(nick))
		if err != nil {
			return err
		}
		var rec Record
		if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &rec) }); err != nil {
			return err
		}
		rec.Elo[gameType] = elo
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		log.Debugf("elo update: %s %s -> %d", nick, gameType, elo)
		return txn.Set(nickKey(nick), data)
	})
}
