package commands

import (
	"os"

	"github.com/mosaicnetworks/hgcore/src/config"
	"github.com/mosaicnetworks/hgcore/src/simulation"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLIConfig contains configuration for the hgcore commands
type CLIConfig struct {
	Core       config.Config     `mapstructure:",squash"`
	Simulation simulation.Config `mapstructure:",squash"`
	LogToFile  bool              `mapstructure:"log-file"`
}

// NewDefaultCLIConfig creates a CLIConfig with default values
func NewDefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		Core:       *config.NewDefaultConfig(),
		Simulation: simulation.DefaultConfig(),
		LogToFile:  false,
	}
}

// addCommonFlags adds the flags shared by every command that builds a graph
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("datadir", _config.Core.DataDir, "Top-level directory for configuration and data")
	cmd.Flags().String("log", _config.Core.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().Bool("log-file", _config.LogToFile, "Also write logs to [datadir]/hgcore.log")
	cmd.Flags().String("db", _config.Core.DatabaseDir, "Journal database directory")
	cmd.Flags().Int("cache-size", _config.Core.CacheSize, "Number of items in the strongly-see cache")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	// If --datadir was explicitely set, but not --db, this will update the
	// default database dir to be inside the new datadir
	_config.Core.SetDataDir(_config.Core.DataDir)

	if _config.LogToFile {
		if err := addFileHook(_config.Core.BaseLogger()); err != nil {
			return err
		}
	}

	logFields := logrus.Fields{
		"hgcore.DataDir":     _config.Core.DataDir,
		"hgcore.LogLevel":    _config.Core.LogLevel,
		"hgcore.CacheSize":   _config.Core.CacheSize,
		"hgcore.Store":       _config.Core.Store,
		"Validators":         _config.Simulation.Validators,
		"Events":             _config.Simulation.Events,
		"OtherParentRate":    _config.Simulation.OtherParentRate,
		"Seed":               _config.Simulation.Seed,
		"LogToFile":          _config.LogToFile,
		"hgcore.DatabaseDir": _config.Core.DatabaseDir,
	}

	_config.Core.Logger().WithFields(logFields).Debug(cmd.Name())

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/hgcore.toml (.json, .yaml also work)
	viper.SetConfigName("hgcore")             // name of config file (without extension)
	viper.AddConfigPath(_config.Core.DataDir) // search root directory

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_config.Core.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.Core.Logger().Debugf("No config file found in: %s", _config.Core.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	return viper.Unmarshal(_config)
}

// addFileHook copies every log entry to the log file of the data directory.
func addFileHook(logger *logrus.Logger) error {
	if err := os.MkdirAll(_config.Core.DataDir, 0700); err != nil {
		return err
	}

	path := _config.Core.LogFile()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logger.Infof("Failed to open %s, using default stderr", path)
		return nil
	}
	f.Close()

	pathMap := lfshook.PathMap{}
	for _, l := range logrus.AllLevels {
		pathMap[l] = path
	}

	logger.Hooks.Add(lfshook.NewHook(
		pathMap,
		&logrus.TextFormatter{},
	))

	return nil
}
