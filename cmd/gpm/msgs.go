package gpm

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Install plugins and themes into a site"
	MsgInstallShort    = "Install packages and their dependencies"
	MsgGenConfigShort  = "Output the default configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgConfigWritten = "Wrote default configuration to %s\n"
	MsgVersionFormat = "gpm version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrLoadIndex    = "failed to load package index: %w"
	MsgErrConfigExists = "config file %s already exists"
	MsgErrWriteConfig  = "failed to write config: %w"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Config file (default is $XDG_CONFIG_HOME/gpm/gpm.toml)"
	MsgFlagAllYes      = "Assume yes (or the safest choice) instead of prompting"
	MsgFlagForce       = "Force re-fetching the package index"
	MsgFlagDestination = "Site root to install into (default is the current directory)"
	MsgFlagSymlinks    = "Symlink packages from development roots when available"
	MsgFlagNoSymlinks  = "Always download packages"
	MsgFlagIndex       = "Package index URL or local file"
	MsgFlagWrite       = "Write the config file instead of printing it"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
