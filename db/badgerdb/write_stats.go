package badgerdb

import (
	"time"

	"github.com/celer-network/go-ledger/log"
)

const (
	slowWrite   = 100 * time.Millisecond
	slowBatch   = 500 * time.Millisecond
	callerDepth = 3
)

// writeStats tracks a pending write so slow commits can be reported with their size.
type writeStats struct {
	createT   time.Time
	setCount  uint
	delCount  uint
	keySize   uint64
	valueSize uint64
}

func newWriteStats() writeStats {
	return writeStats{createT: time.Now()}
}

func (s *writeStats) recordSet(key, value []byte) {
	s.setCount++
	s.keySize += uint64(len(key))
	s.valueSize += uint64(len(value))
}

func (s *writeStats) recordDelete() {
	s.delCount++
}

// timed runs write and warns when it, or the whole batch since creation, ran long.
func (s *writeStats) timed(db *DB, what string, write func() error) error {
	start := time.Now()
	err := write()
	end := time.Now()

	if end.Sub(start) > slowWrite || end.Sub(s.createT) > slowBatch {
		db.log.Warn().Str("name", db.name).Str("caller", log.SkipCaller(callerDepth)).
			Dur("prepareTime", start.Sub(s.createT)).Dur("writeTime", end.Sub(start)).
			Uint("setCount", s.setCount).Uint("delCount", s.delCount).
			Uint64("keySize", s.keySize).Uint64("valueSize", s.valueSize).
			Msgf("%s takes long time", what)
	}
	return err
}
