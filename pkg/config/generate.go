package config

import (
	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# gpm configuration
#
# Values here are overridden by GPM_* environment variables
# (GPM_ASSUME_YES=true, GPM_PLATFORM__VERSION=1.7.0) and by command-line flags.
#
# symlinks: "ask" | "always" | "never"

`

// GenerateConfig renders the built-in defaults as a TOML document
func GenerateConfig() (string, error) {
	data, err := toml.Marshal(Defaults())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render default config")
	}
	return generatedHeader + string(data), nil
}
