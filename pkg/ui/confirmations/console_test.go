package confirmations

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y", true},
		{"Y\n", true},
		{" yes ", true},
		{"YES", true},
		{"", false},
		{"n", false},
		{"no", false},
		{"yep", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAnswer(tt.in), "answer %q", tt.in)
	}
}

func TestConsole_LineMode(t *testing.T) {
	in := strings.NewReader("y\nn\n")
	var out bytes.Buffer
	c := NewConsole(in, &out)

	got, err := c.Confirm("Install this package?")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = c.Confirm("Continue?")
	require.NoError(t, err)
	assert.False(t, got)

	assert.Equal(t, "Install this package? [y/N] Continue? [y/N] ", out.String())
}

func TestConsole_EOFDefaultsToNo(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(""), &out)

	got, err := c.Confirm("Overwrite?")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestConsole_LastLineWithoutNewline(t *testing.T) {
	c := NewConsole(strings.NewReader("yes"), &bytes.Buffer{})

	got, err := c.Confirm("Proceed?")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestAssumeYes(t *testing.T) {
	got, err := AssumeYes{}.Confirm("anything")
	require.NoError(t, err)
	assert.True(t, got)
}
