package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfig(t *testing.T) {
	out, err := GenerateConfig()
	require.NoError(t, err)

	assert.Contains(t, out, "# gpm configuration")
	assert.Contains(t, out, "symlinks")

	var parsed Config
	require.NoError(t, toml.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, Defaults().Symlinks, parsed.Symlinks)
	assert.Equal(t, "grav", parsed.Platform.Name)
}
