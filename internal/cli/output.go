package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/gitrun/internal/errors"
)

// Semantic colors for text output. AdaptiveColor picks the variant for
// light or dark terminals.
//
//nolint:gochecknoglobals // Read-only palette
var (
	colorStaged   = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}
	colorUnstaged = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
	colorConflict = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}
	colorBranch   = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}
	colorMuted    = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}
)

// styles holds the lipgloss styles used by the text renderers.
type styles struct {
	staged   lipgloss.Style
	unstaged lipgloss.Style
	conflict lipgloss.Style
	branch   lipgloss.Style
	muted    lipgloss.Style
}

func newStyles() styles {
	return styles{
		staged:   lipgloss.NewStyle().Foreground(colorStaged),
		unstaged: lipgloss.NewStyle().Foreground(colorUnstaged),
		conflict: lipgloss.NewStyle().Foreground(colorConflict).Bold(true),
		branch:   lipgloss.NewStyle().Foreground(colorBranch).Bold(true),
		muted:    lipgloss.NewStyle().Foreground(colorMuted),
	}
}

// CheckNoColor disables styling when NO_COLOR is set or TERM=dumb.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport follows https://no-color.org/: NO_COLOR with any value,
// including empty, disables color, as does TERM=dumb.
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("%w: %q is not a structured format", errors.ErrInvalidOutputFormat, format)
	}
}
