package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mosaicnetworks/hgcore/src/common"
	"github.com/mosaicnetworks/hgcore/src/hashgraph"
	"github.com/mosaicnetworks/hgcore/src/peers"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultBadgerFile is the default name of the folder containing the Badger
	// journal
	DefaultBadgerFile = "badger_db"

	// DefaultLogFile is the default name of the log file written by the hgcore
	// command when file logging is enabled.
	DefaultLogFile = "hgcore.log"
)

// Default configuration values.
const (
	DefaultLogLevel  = "debug"
	DefaultCacheSize = hashgraph.DefaultCacheSize
	DefaultStore     = false
)

// Config contains the configuration properties of a consensus core process.
type Config struct {
	// DataDir is the top-level directory containing the configuration file,
	// validators.json and the journal.
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// Store activates journaling of accepted events to a Badger database.
	Store bool `mapstructure:"store"`

	// DatabaseDir is the directory containing the journal files.
	DatabaseDir string `mapstructure:"db"`

	// CacheSize is the max number of items in the strongly-see cache.
	CacheSize int `mapstructure:"cache-size"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:     DefaultDataDir(),
		LogLevel:    DefaultLogLevel,
		Store:       DefaultStore,
		DatabaseDir: DefaultDatabaseDir(),
		CacheSize:   DefaultCacheSize,
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t, level)
	return config
}

// SetDataDir sets the top-level directory, and updates the database directory
// if it is currently set to the default value. If the database directory is
// not the default, the user has set it explicitly and it is left alone.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
	if c.DatabaseDir == DefaultDatabaseDir() {
		c.DatabaseDir = filepath.Join(dataDir, DefaultBadgerFile)
	}
}

// LogFile returns the full path of the log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, DefaultLogFile)
}

// Registry builds a validator registry from the validators.json file of the
// data directory. Without a file the registry starts empty and validators are
// registered as their first events arrive.
func (c *Config) Registry() (*peers.Registry, error) {
	validators, err := peers.NewJSONValidators(c.DataDir).Validators()
	if err != nil {
		return nil, err
	}
	return peers.NewRegistryFromSlice(validators), nil
}

// Logger returns a formatted logrus Entry, with prefix set to "hgcore".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)
	}
	return c.logger.WithField("prefix", "hgcore")
}

// BaseLogger returns the logger behind Logger, for attaching hooks.
func (c *Config) BaseLogger() *logrus.Logger {
	c.Logger()
	return c.logger
}

// DefaultDatabaseDir returns the default path for the badger database files.
func DefaultDatabaseDir() string {
	return filepath.Join(DefaultDataDir(), DefaultBadgerFile)
}

// DefaultDataDir return the default directory name for top-level hgcore config
// based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".HGCore")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "HGCore")
		} else {
			return filepath.Join(home, ".hgcore")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
