// Package styles defines the visual styling for gpm's terminal output.
//
// Styles use semantic names and adaptive colors that adjust to light and
// dark terminal themes. Style names double as tags in rendered templates:
//
//	<Success>installed</Success>
package styles

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold        bool   `yaml:"bold,omitempty"`
	Italic      bool   `yaml:"italic,omitempty"`
	Underline   bool   `yaml:"underline,omitempty"`
	Foreground  string `yaml:"foreground,omitempty"`
	Background  string `yaml:"background,omitempty"`
	PaddingLeft int    `yaml:"paddingLeft,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// StyleRegistry maps semantic names to lipgloss styles
var StyleRegistry map[string]lipgloss.Style

var colors map[string]lipgloss.AdaptiveColor

//go:embed styles.yaml
var embeddedStyles []byte

func init() {
	Reset()
	if os.Getenv("NO_COLOR") != "" {
		DisableColor()
	}
}

// Reset reloads the built-in styles
func Reset() {
	if err := LoadStylesFromData(embeddedStyles); err != nil {
		initDefaultStyles()
	}
}

// initDefaultStyles keeps rendering working with unstyled output
func initDefaultStyles() {
	colors = make(map[string]lipgloss.AdaptiveColor)
	StyleRegistry = make(map[string]lipgloss.Style)
	for _, name := range []string{"Header", "Success", "Error", "Warning", "Info", "Muted", "Bold"} {
		StyleRegistry[name] = lipgloss.NewStyle()
	}
}

// LoadStyles loads style configuration from a YAML file
func LoadStyles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read styles file %s: %w", path, err)
	}
	return LoadStylesFromData(data)
}

// LoadStylesFromData loads style configuration from byte data
func LoadStylesFromData(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse styles data: %w", err)
	}

	colors = make(map[string]lipgloss.AdaptiveColor)
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	StyleRegistry = make(map[string]lipgloss.Style)
	for name, def := range config.Styles {
		StyleRegistry[name] = buildStyle(def)
	}
	return nil
}

func buildStyle(def StyleDef) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if color, ok := colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := colors[def.Background]; ok {
		style = style.Background(color)
	}
	if def.PaddingLeft > 0 {
		style = style.PaddingLeft(def.PaddingLeft)
	}

	return style
}

// GetStyle safely retrieves a style from the registry
func GetStyle(name string) lipgloss.Style {
	if style, ok := StyleRegistry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Has reports whether name is a registered style
func Has(name string) bool {
	_, ok := StyleRegistry[name]
	return ok
}

// Render applies the named style to text
func Render(name, text string) string {
	return GetStyle(name).Render(text)
}

// DisableColor switches the default renderer to plain ASCII output.
// Used for non-terminal writers and when NO_COLOR is set.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
