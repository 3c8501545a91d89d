package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dgraph-io/badger/v3"
)

// BadgerStore is the default durable [Store]: a local Badger database that
// survives process restarts on the same device.
type BadgerStore struct {
	db     *badger.DB
	closed atomic.Bool
}

// BadgerOptions configures OpenBadger. Only knobs the session store actually
// needs are exposed; everything else stays at Badger defaults.
type BadgerOptions struct {
	Dir string
	// SyncWrites forces fsync per write. Session slots are written rarely, so
	// the durability is worth the latency; defaults to on.
	SyncWrites bool
	Logger     *slog.Logger
}

// OpenBadger opens (creating if needed) the session database at opts.Dir.
func OpenBadger(opts BadgerOptions) (*BadgerStore, error) {
	if opts.Dir == "" {
		return nil, errors.New("badger store: dir is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	badgerOpts := badger.DefaultOptions(opts.Dir)
	badgerOpts = badgerOpts.WithSyncWrites(opts.SyncWrites)
	badgerOpts = badgerOpts.WithLogger(&badgerSlogBridge{logger: logger})

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("badger store: open %s: %w", opts.Dir, err)
	}

	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Read(_ context.Context, slot string) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(slot))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("badger store: read %s: %w", slot, err)
	}
	return value, nil
}

func (s *BadgerStore) Write(ctx context.Context, slot string, data []byte) error {
	return s.WriteAll(ctx, map[string][]byte{slot: data})
}

func (s *BadgerStore) WriteAll(_ context.Context, values map[string][]byte) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		for slot, data := range values {
			if data == nil {
				if err := txn.Delete([]byte(slot)); err != nil {
					return err
				}
				continue
			}
			if err := txn.Set([]byte(slot), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("badger store: write: %w", err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

// badgerSlogBridge adapts Badger's printf-style logger to slog. Badger's
// internal chatter lands at debug except real errors.
type badgerSlogBridge struct {
	logger *slog.Logger
}

func (b *badgerSlogBridge) Errorf(format string, args ...interface{}) {
	b.logger.Error(fmt.Sprintf(format, args...), "component", "badger")
}

func (b *badgerSlogBridge) Warningf(format string, args ...interface{}) {
	b.logger.Warn(fmt.Sprintf(format, args...), "component", "badger")
}

func (b *badgerSlogBridge) Infof(format string, args ...interface{}) {
	b.logger.Debug(fmt.Sprintf(format, args...), "component", "badger")
}

func (b *badgerSlogBridge) Debugf(format string, args ...interface{}) {
	b.logger.Debug(fmt.Sprintf(format, args...), "component", "badger")
}
