package badgerdb

import (
	"strings"

	"github.com/celer-network/go-ledger/log"
)

// extendedLog routes badger's internal messages into the module logger.
type extendedLog struct {
	*log.Logger
}

func (l *extendedLog) Errorf(f string, v ...interface{}) {
	l.Error().Msgf(strings.TrimSuffix(f, "\n"), v...)
}

func (l *extendedLog) Warningf(f string, v ...interface{}) {
	l.Warn().Msgf(strings.TrimSuffix(f, "\n"), v...)
}

func (l *extendedLog) Infof(f string, v ...interface{}) {
	// badger is chatty at info level
	l.Debug().Msgf(strings.TrimSuffix(f, "\n"), v...)
}

func (l *extendedLog) Debugf(f string, v ...interface{}) {
	l.Debug().Msgf(strings.TrimSuffix(f, "\n"), v...)
}
