// Package config defines the configuration of an hgcore process.
//
// The hgcore command fills a Config from flags and from an optional
// hgcore.toml (or .json, .yaml) file in the data directory, Config.DataDir.
// The data directory may also contain:
//
//	validators.json // (optional) the initial validators and their stake weights.
//	badger_db       // the journal, when Store is set.
//	hgcore.log      // the log file, when file logging is enabled.
package config
