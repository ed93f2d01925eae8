package badgerdb

import (
	"context"
	"time"

	ledgerdb "github.com/celer-network/go-ledger/db"
	"github.com/celer-network/go-ledger/log"
	"github.com/dgraph-io/badger/v2"
	"github.com/dgraph-io/badger/v2/options"
)

const (
	badgerDbDiscardRatio   = 0.5 // run gc when 50% of samples can be collected
	badgerDbGcInterval     = 10 * time.Minute
	badgerDbGcCheckPeriod  = 1 * time.Minute
	badgerDbGcSize         = 1 << 20 // 1 MB
	badgerValueLogFileSize = 1<<26 - 1
)

// Enforce database and transaction implements interfaces
var _ ledgerdb.DB = (*DB)(nil)

type DB struct {
	db         *badger.DB
	log        *extendedLog
	ctx        context.Context
	cancelFunc context.CancelFunc
	name       string
}

// NewDB opens the database in dir, creating it if needed, and starts value log GC.
func NewDB(dir string) (*DB, error) {
	logger := &extendedLog{Logger: log.NewLogger("db")}

	opts := badger.DefaultOptions(dir)
	// checkpoints are small and rarely read, keep memory use low
	opts.ValueLogLoadingMode = options.FileIO
	opts.TableLoadingMode = options.FileIO
	opts.ValueThreshold = 1024
	opts.ValueLogFileSize = badgerValueLogFileSize
	opts.Logger = logger

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	database := &DB{
		db:         bdb,
		log:        logger,
		ctx:        ctx,
		cancelFunc: cancelFunc,
		name:       dir,
	}
	go database.runBadgerGC()

	logger.Info().Str("dir", dir).Msg("Opened badger database")
	return database, nil
}

func (db *DB) runBadgerGC() {
	ticker := time.NewTicker(badgerDbGcCheckPeriod)
	defer ticker.Stop()

	lastGcT := time.Now()
	_, lastDbVlogSize := db.db.Size()
	for {
		select {
		case <-ticker.C:
			currentDblsmSize, currentDbVlogSize := db.db.Size()

			// run when the interval passed or the value log barely grew since the last run
			if time.Since(lastGcT) <= badgerDbGcInterval && lastDbVlogSize+badgerDbGcSize <= currentDbVlogSize {
				continue
			}
			startGcT := time.Now()
			db.log.Debug().Str("name", db.name).Int64("lsmSize", currentDblsmSize).Int64("vlogSize", currentDbVlogSize).Msg("Start to GC at badger")
			err := db.db.RunValueLogGC(badgerDbDiscardRatio)
			switch {
			case err == badger.ErrNoRewrite:
				db.log.Debug().Str("name", db.name).Msg("Nothing to GC at badger")
				lastDbVlogSize = currentDbVlogSize
			case err != nil:
				db.log.Error().Str("name", db.name).Err(err).Msg("Fail to GC at badger")
				lastDbVlogSize = currentDbVlogSize
			default:
				afterGcDblsmSize, afterGcDbVlogSize := db.db.Size()
				db.log.Debug().Str("name", db.name).Int64("lsmSize", afterGcDblsmSize).Int64("vlogSize", afterGcDbVlogSize).
					Dur("takenTime", time.Since(startGcT)).Msg("Finish to GC at badger")
				lastDbVlogSize = afterGcDbVlogSize
			}
			lastGcT = time.Now()

		case <-db.ctx.Done():
			return
		}
	}
}

func (db *DB) Type() string {
	return "badgerdb"
}

func (db *DB) Set(namespace []byte, key []byte, value []byte) error {
	key = ledgerdb.ConvNilToBytes(ledgerdb.PrependNamespace(namespace, key))
	value = ledgerdb.ConvNilToBytes(value)

	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (db *DB) Delete(namespace []byte, key []byte) error {
	key = ledgerdb.ConvNilToBytes(ledgerdb.PrependNamespace(namespace, key))

	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (db *DB) Get(namespace []byte, key []byte) ([]byte, bool, error) {
	key = ledgerdb.ConvNilToBytes(ledgerdb.PrependNamespace(namespace, key))

	var val []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (db *DB) Exist(namespace []byte, key []byte) (bool, error) {
	key = ledgerdb.ConvNilToBytes(ledgerdb.PrependNamespace(namespace, key))

	err := db.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close stops the GC goroutine and closes the database.
func (db *DB) Close() error {
	db.cancelFunc()
	return db.db.Close()
}

func (db *DB) NewTx() ledgerdb.Transaction {
	return &Transaction{
		writeStats: newWriteStats(),
		db:         db,
		tx:         db.db.NewTransaction(true),
	}
}

func (db *DB) NewBulk() ledgerdb.Bulk {
	return &Bulk{
		writeStats: newWriteStats(),
		db:         db,
		bulk:       db.db.NewWriteBatch(),
	}
}
