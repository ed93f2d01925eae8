package log

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const envConfigPath = confEnvPrefix + "_" + confFilePathKey

func resetLogger() {
	baseLogger = zerolog.New(os.Stderr)
	baseLevel = zerolog.InfoLevel
	viperConf = viper.New()
	isLogInit = false
}

// createConfigAndSetEnv writes text to a temp file and points LEDGER_LOGCONFIG at it.
// The returned func removes the file and unsets the variable.
func createConfigAndSetEnv(t *testing.T, text string) func() {
	resetLogger()
	conf, err := ioutil.TempFile("", "ledgerlog")
	require.NoError(t, err)
	_, err = conf.WriteString(text)
	require.NoError(t, err)
	require.NoError(t, conf.Close())

	require.NoError(t, os.Setenv(envConfigPath, conf.Name()))
	return func() {
		os.Unsetenv(envConfigPath)
		os.Remove(conf.Name())
	}
}

func tempLogFile(t *testing.T, prefix string) string {
	f, err := ioutil.TempFile("", prefix)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return filepath.ToSlash(f.Name())
}

func readLines(t *testing.T, path string) string {
	content, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestDefaultsWithoutConfigFile(t *testing.T) {
	resetLogger()
	os.Unsetenv(envConfigPath)

	logger := NewLogger("seed")
	assert.Equal(t, "info", logger.Level())
	assert.False(t, logger.IsDebugEnabled())
	assert.Equal(t, "info", Default().Level())
}

func TestConfigFromEnv(t *testing.T) {
	out := tempLogFile(t, "ledger_base")
	defer os.Remove(out)
	cleanup := createConfigAndSetEnv(t, fmt.Sprintf(`
level = "warn"
formatter = "json"
out = "%s"
`, out))
	defer cleanup()

	// Default reads the same file when it is the first logger asked for
	base := Default()
	assert.Equal(t, "warn", base.Level())
	base.Warn().Msg("signature check skipped")

	seedLog := NewLogger("seed")
	assert.Equal(t, "warn", seedLog.Level())
	seedLog.Info().Msg("epoch rotated")
	seedLog.Error().Msg("checkpoint failed")

	content := readLines(t, out)
	assert.Contains(t, content, "signature check skipped")
	assert.Contains(t, content, `"module":"seed"`)
	assert.Contains(t, content, "checkpoint failed")
	assert.NotContains(t, content, "epoch rotated")
}

func TestModuleSections(t *testing.T) {
	base := tempLogFile(t, "ledger_base")
	defer os.Remove(base)
	dbOut := tempLogFile(t, "ledger_db")
	defer os.Remove(dbOut)
	cleanup := createConfigAndSetEnv(t, fmt.Sprintf(`
level = "info"
formatter = "json"
out = "%s"

[statemachine]
level = "debug"

[seed]
level = "error"

[db]
level = "warn"
out = "%s"
`, base, dbOut))
	defer cleanup()

	sm := NewLogger("statemachine")
	assert.True(t, sm.IsDebugEnabled())
	sm.Debug().Msg("applied transfer")

	seedLog := NewLogger("seed")
	assert.Equal(t, "error", seedLog.Level())
	seedLog.Warn().Msg("seed warning")

	dbLog := NewLogger("db")
	assert.Equal(t, "warn", dbLog.Level())
	dbLog.Warn().Msg("slow flush")
	NewLogger("db").Warn().Msg("slow commit")

	other := NewLogger("ledgerctl")
	assert.Equal(t, "info", other.Level())
	other.Info().Msg("opened store")

	baseContent := readLines(t, base)
	assert.Contains(t, baseContent, "applied transfer")
	assert.Contains(t, baseContent, "opened store")
	assert.NotContains(t, baseContent, "seed warning")
	assert.NotContains(t, baseContent, "slow flush")

	dbContent := readLines(t, dbOut)
	assert.Contains(t, dbContent, "slow flush")
	assert.Contains(t, dbContent, "slow commit")
}

func TestModuleOutputFallsBackToBase(t *testing.T) {
	base := tempLogFile(t, "ledger_base")
	defer os.Remove(base)
	cleanup := createConfigAndSetEnv(t, fmt.Sprintf(`
formatter = "json"
out = "%s"

[db]
out = "/nonexistent/dir/db.log"
level = "loud"
`, base))
	defer cleanup()

	dbLog := NewLogger("db")
	assert.Equal(t, "info", dbLog.Level())
	dbLog.Info().Msg("opened badger")

	assert.Contains(t, readLines(t, base), "opened badger")
}

func TestFormatWriter(t *testing.T) {
	out := os.Stdout

	assert.Equal(t, out, formatWriter("", out))
	assert.Equal(t, out, formatWriter("JSON", out))
	assert.Equal(t, out, formatWriter("xml", out))

	w, ok := formatWriter("console", out).(zerolog.ConsoleWriter)
	require.True(t, ok)
	assert.False(t, w.NoColor)

	w, ok = formatWriter("console_no_color", out).(zerolog.ConsoleWriter)
	require.True(t, ok)
	assert.True(t, w.NoColor)
	assert.Equal(t, out, w.Out)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("", zerolog.ErrorLevel))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug", zerolog.ErrorLevel))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("loud", zerolog.ErrorLevel))
}

func TestGetOutput(t *testing.T) {
	_, err := getOutput("")
	assert.Equal(t, errEmptyName, err)

	out, err := getOutput("stdout")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, out)
	out, err = getOutput("stderr")
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, out)

	name := tempLogFile(t, "ledger_out")
	defer os.Remove(name)
	out, err = getOutput(name)
	require.NoError(t, err)
	assert.NoError(t, out.Close())

	_, err = getOutput("no/where/dir/nofile.log")
	assert.Error(t, err)
}

func TestSkipCaller(t *testing.T) {
	here := SkipCaller(1)
	assert.True(t, strings.Contains(here, "log_test.go:"), here)
	assert.Equal(t, "?", SkipCaller(1000))
}

func TestConfigure(t *testing.T) {
	resetLogger()
	os.Unsetenv(envConfigPath)

	out := tempLogFile(t, "test_configure")
	defer os.Remove(out)
	conf, err := ioutil.TempFile("", "test_configure_conf")
	require.NoError(t, err)
	defer os.Remove(conf.Name())
	_, err = conf.WriteString(fmt.Sprintf(`
level = "warn"
formatter = "json"
out = "%s"

[statemachine]
level = "debug"
`, out))
	require.NoError(t, err)
	require.NoError(t, conf.Close())

	require.NoError(t, Configure(conf.Name()))

	sm := NewLogger("statemachine")
	assert.True(t, sm.IsDebugEnabled())
	sm.Debug().Msg("applied")

	other := NewLogger("seed")
	assert.Equal(t, "warn", other.Level())
	other.Info().Msg("hidden")

	content := readLines(t, out)
	assert.Contains(t, content, `"module":"statemachine"`)
	assert.NotContains(t, content, "hidden")
}

func TestConfigureMissingFile(t *testing.T) {
	assert.Error(t, Configure("/nonexistent/ledgerlog.toml"))
}
