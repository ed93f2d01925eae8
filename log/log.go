/*
Package log provides module loggers for the ledger, built on zerolog
(https://github.com/rs/zerolog).

The base logger reads an optional toml file, ledgerlog.toml in the working directory or the
file named by the LEDGER_LOGCONFIG environment variable. Every field is optional:

	# debug/info/warn/error/fatal/panic
	level = "info"

	# console, console_no_color or json
	formatter = "console"

	# print source file and line
	caller = false

	# time stamp format, see time/format.go
	timefieldformat = "15:04:05"

	# stdout, stderr or a file path
	out = "stderr"

	# per module overrides of level and out
	[statemachine]
	level = "debug"

	[db]
	level = "warn"
	out = "/var/log/ledger-db.log"

Command line tools may call Configure with an explicit path before creating any logger.
*/
package log

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	colorable "github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	confFilePathKey     = "LOGCONFIG"
	confEnvPrefix       = "LEDGER"
	defaultConfFileName = "ledgerlog"
)

var (
	logInitLock sync.Mutex
	isLogInit   = false
	viperConf   = viper.New()
	baseLogger  = zerolog.New(os.Stderr)
	baseLevel   = zerolog.InfoLevel
)

// Logger is a zerolog logger tagged with its module name.
type Logger struct {
	*zerolog.Logger
	name  string
	level zerolog.Level
}

// Configure loads the given config file and rebuilds the base logger. Loggers created
// before the call keep their old settings.
func Configure(path string) error {
	logInitLock.Lock()
	defer logInitLock.Unlock()

	if _, err := os.Stat(path); err != nil {
		return err
	}
	conf := viper.New()
	conf.SetConfigType("toml")
	conf.SetConfigFile(path)
	if err := conf.ReadInConfig(); err != nil {
		return err
	}
	viperConf = conf
	baseLogger = zerolog.New(os.Stderr)
	initLog()
	isLogInit = true
	return nil
}

// loadConfigFile reads ledgerlog.toml from the working directory, or the file named by
// LEDGER_LOGCONFIG. A missing file leaves every setting at its default.
func loadConfigFile() {
	viperConf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperConf.SetEnvPrefix(confEnvPrefix)
	viperConf.AutomaticEnv()

	viperConf.SetConfigType("toml")
	viperConf.SetConfigName(defaultConfFileName)
	viperConf.AddConfigPath(".")
	if path := viperConf.GetString(confFilePathKey); path != "" {
		viperConf.SetConfigFile(path)
		baseLogger.Info().Str("file", path).Msg("Init Logger using a configuration file")
	}

	if err := viperConf.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			baseLogger.Error().Err(err).Msg("Fail to read a logger's config file")
		}
	}
}

func parseLevel(level string, fallback zerolog.Level) zerolog.Level {
	if level == "" {
		return fallback
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		baseLogger.Warn().Err(err).Str("level", level).Msg("Fail to parse a log level, use info")
		return zerolog.InfoLevel
	}
	return parsed
}

func formatWriter(formatter string, out *os.File) io.Writer {
	switch strings.ToLower(formatter) {
	case "", "json":
		return out
	case "console":
		return zerolog.ConsoleWriter{Out: colorable.NewColorable(out), TimeFormat: zerolog.TimeFieldFormat}
	case "console_no_color":
		return zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: zerolog.TimeFieldFormat}
	}
	baseLogger.Warn().Str("formatter", formatter).Msg("Invalid Message Formatter. Only allowed; console/console_no_color/json")
	return out
}

// initLog builds the base logger from the top level settings.
func initLog() {
	// layouts as in time/format.go, e.g. "15:04:05" or time.RFC3339
	if format := viperConf.GetString("timefieldformat"); format != "" {
		zerolog.TimeFieldFormat = format
	}

	out := os.Stderr
	if name := viperConf.GetString("out"); name != "" {
		if o, err := getOutput(name); err == nil {
			out = o
		} else {
			baseLogger.Warn().Err(err).Str("outputName", name).Msg("failed to open output writer. set to base out instead")
		}
	}
	baseLogger = baseLogger.Output(formatWriter(viperConf.GetString("formatter"), out))

	if viperConf.GetBool("caller") {
		baseLogger = baseLogger.With().Caller().Logger()
	}

	baseLevel = parseLevel(viperConf.GetString("level"), zerolog.InfoLevel)
	baseLogger = baseLogger.With().Timestamp().Logger().Level(baseLevel)
}

func ensureInit() {
	if isLogInit {
		return
	}
	loadConfigFile()
	initLog()
	isLogInit = true
}

// NewLogger returns a logger tagged module=moduleName. A config section named after the
// module may override the level and the output of the base logger.
func NewLogger(moduleName string) *Logger {
	logInitLock.Lock()
	defer logInitLock.Unlock()
	ensureInit()

	zLogger := baseLogger.With().Str("module", moduleName).Logger()
	zLevel := baseLevel
	if sub := viperConf.Sub(moduleName); sub != nil {
		if name := sub.GetString("out"); name != "" {
			if out, err := getOutput(name); err == nil {
				zLogger = zLogger.Output(out)
			} else {
				baseLogger.Warn().Err(err).Str("outputName", name).Str("module", moduleName).Msg("failed to open output writer. set to base out instead")
			}
		}
		if level := sub.GetString("level"); level != "" {
			zLevel = parseLevel(level, baseLevel)
			zLogger = zLogger.Level(zLevel)
		}
	}

	return &Logger{
		Logger: &zLogger,
		name:   moduleName,
		level:  zLevel,
	}
}

// Default returns the base logger, without a module tag, for helpers that belong to no
// module.
func Default() *Logger {
	logInitLock.Lock()
	defer logInitLock.Unlock()
	ensureInit()

	return &Logger{
		Logger: &baseLogger,
		level:  baseLevel,
	}
}

// IsDebugEnabled lets callers skip building expensive debug fields.
func (logger *Logger) IsDebugEnabled() bool {
	return logger.level == zerolog.DebugLevel
}

func (logger *Logger) Level() string {
	return logger.level.String()
}

var errEmptyName = errors.New("empty output name")

// getOutput maps stdout and stderr to the process streams and anything else to a file
// opened for appending. Files are opened O_SYNC since several module loggers may share one.
func getOutput(outName string) (*os.File, error) {
	switch outName {
	case "":
		return nil, errEmptyName
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}
	return os.OpenFile(outName, os.O_WRONLY|os.O_CREATE|os.O_APPEND|os.O_SYNC, 0644)
}
