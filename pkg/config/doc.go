// Package config handles configuration management for gpm.
//
// Configuration is layered: built-in defaults, then the application config
// file (TOML or YAML), then GPM_* environment variables. Command-line flags
// are applied last by the CLI through WithOverrides. Development roots used
// for symlink installs may also come from a separate ordered YAML file.
//
// A loaded Config is never mutated; every component receives the values it
// needs from it.
package config
