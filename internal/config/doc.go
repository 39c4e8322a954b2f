// Package config loads, validates, and normalizes dashstitch
// configuration from TOML.
//
// Configuration is optional: every key has a default and a missing
// config file is not an error. Load resolution order is the --config
// flag, ~/.config/dashstitch/config.toml, then ./dashstitch.toml.
package config
