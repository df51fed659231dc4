package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/gitrun/internal/config"
	"github.com/mrz1836/gitrun/internal/logging"
)

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect gitrun configuration",
	}
	cmd.AddCommand(newConfigShowCmd())
	root.AddCommand(cmd)
}

// newConfigShowCmd creates the 'config show' subcommand.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective gitrun configuration and where each value comes from:
  - default: built-in default value
  - global:  ~/.gitrun/config.yaml
  - project: .gitrun.yaml in the working directory
  - env:     GITRUN_* environment variable

Values of sensitive environment entries are masked.

Examples:
  gitrun config show
  gitrun config show -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault ConfigSource = "default"
	// SourceGlobal indicates the value came from global config.
	SourceGlobal ConfigSource = "global"
	// SourceProject indicates the value came from project config.
	SourceProject ConfigSource = "project"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
)

// ConfigValueWithSource represents a configuration value with its source.
type ConfigValueWithSource struct {
	Value  any          `json:"value" yaml:"value"`
	Source ConfigSource `json:"source" yaml:"source"`
}

// AnnotatedConfig is the effective configuration with a source per key.
type AnnotatedConfig struct {
	Git     map[string]ConfigValueWithSource `json:"git" yaml:"git"`
	Command map[string]ConfigValueWithSource `json:"command" yaml:"command"`
	Log     map[string]ConfigValueWithSource `json:"log" yaml:"log"`
}

// configSection lists the keys of one section in display order.
type configSection struct {
	name   string
	keys   []string
	values map[string]ConfigValueWithSource
}

func (a *AnnotatedConfig) sections() []configSection {
	return []configSection{
		{"git", []string{"binary", "global_args", "env", "unset_env"}, a.Git},
		{"command", []string{"timeout", "raise_on_error", "chomp", "normalize_encoding"}, a.Command},
		{"log", []string{"file_enabled"}, a.Log},
	}
}

type configShowStyles struct {
	header  lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	sources map[ConfigSource]lipgloss.Style
	dim     lipgloss.Style
}

func newConfigShowStyles() *configShowStyles {
	return &configShowStyles{
		header:  lipgloss.NewStyle().Bold(true).Foreground(colorBranch),
		section: lipgloss.NewStyle().Bold(true),
		key:     lipgloss.NewStyle().Foreground(colorBranch),
		sources: map[ConfigSource]lipgloss.Style{
			SourceEnv:     lipgloss.NewStyle().Foreground(colorUnstaged),
			SourceProject: lipgloss.NewStyle().Foreground(colorConflict),
			SourceGlobal:  lipgloss.NewStyle().Foreground(colorStaged),
			SourceDefault: lipgloss.NewStyle().Foreground(colorMuted),
		},
		dim: lipgloss.NewStyle().Foreground(colorMuted),
	}
}

func runConfigShow(ctx context.Context, w io.Writer) error {
	ec := GetExecutionContext(ctx)
	if ec == nil {
		return errNoExecutionContext
	}

	globalPath, _ := config.GlobalConfigPath()
	projectPath := config.ProjectConfigPath(ec.WorkDir)

	annotated := buildAnnotatedConfig(ec.Config, loadConfigFile(globalPath), loadConfigFile(projectPath))

	if ec.Output != OutputText {
		return writeStructured(w, ec.Output, annotated)
	}
	CheckNoColor()
	return renderAnnotatedConfig(w, annotated, globalPath, projectPath)
}

// buildAnnotatedConfig pairs every effective value with its source.
func buildAnnotatedConfig(cfg *config.Config, globalCfg, projectCfg configValues) *AnnotatedConfig {
	src := func(key string, value any) ConfigValueWithSource {
		return determineSource(key, value, globalCfg, projectCfg)
	}

	return &AnnotatedConfig{
		Git: map[string]ConfigValueWithSource{
			"binary":      src("git.binary", cfg.Git.Binary),
			"global_args": src("git.global_args", cfg.Git.GlobalArgs),
			"env":         src("git.env", maskEnv(cfg.Git.Env)),
			"unset_env":   src("git.unset_env", cfg.Git.UnsetEnv),
		},
		Command: map[string]ConfigValueWithSource{
			"timeout":            src("command.timeout", cfg.Command.Timeout.String()),
			"raise_on_error":     src("command.raise_on_error", cfg.Command.RaiseOnError),
			"chomp":              src("command.chomp", cfg.Command.Chomp),
			"normalize_encoding": src("command.normalize_encoding", cfg.Command.NormalizeEncoding),
		},
		Log: map[string]ConfigValueWithSource{
			"file_enabled": src("log.file_enabled", cfg.Log.FileEnabled),
		},
	}
}

// maskEnv redacts the values of sensitive NAME=value entries.
func maskEnv(entries []string) []string {
	out := make([]string, len(entries))
	for i, entry := range entries {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			out[i] = entry
			continue
		}
		out[i] = name + "=" + logging.SafeValue(name, value)
	}
	return out
}

// configValues holds the dotted keys present in one config file.
type configValues map[string]any

// loadConfigFile reads a YAML config file and flattens it to dotted keys.
// A missing or unreadable file yields nil.
func loadConfigFile(path string) configValues {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path) //#nosec G304 -- config file path
	if err != nil {
		return nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil
	}

	result := make(configValues)
	flatten("", raw, result)
	return result
}

func flatten(prefix string, m map[string]any, out configValues) {
	for k, v := range m {
		key := strings.ToLower(k)
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = v
	}
}

// determineSource reports which layer supplied key, checking layers from
// highest precedence down.
func determineSource(key string, value any, globalCfg, projectCfg configValues) ConfigValueWithSource {
	envKey := "GITRUN_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if _, ok := os.LookupEnv(envKey); ok {
		return ConfigValueWithSource{Value: value, Source: SourceEnv}
	}
	if _, ok := projectCfg[key]; ok {
		return ConfigValueWithSource{Value: value, Source: SourceProject}
	}
	if _, ok := globalCfg[key]; ok {
		return ConfigValueWithSource{Value: value, Source: SourceGlobal}
	}
	return ConfigValueWithSource{Value: value, Source: SourceDefault}
}

func renderAnnotatedConfig(w io.Writer, annotated *AnnotatedConfig, globalPath, projectPath string) error {
	styles := newConfigShowStyles()
	var b strings.Builder

	b.WriteString(styles.header.Render("Effective gitrun configuration") + "\n")
	b.WriteString(styles.dim.Render("Sources: ") +
		styles.sources[SourceEnv].Render("env") + " > " +
		styles.sources[SourceProject].Render("project") + " > " +
		styles.sources[SourceGlobal].Render("global") + " > " +
		styles.sources[SourceDefault].Render("default") + "\n\n")

	for _, section := range annotated.sections() {
		b.WriteString(styles.section.Render(section.name+":") + "\n")
		for _, key := range section.keys {
			vs := section.values[key]
			fmt.Fprintf(&b, "  %s: %s  %s\n",
				styles.key.Render(key),
				formatConfigValue(vs.Value),
				styles.sources[vs.Source].Render("# "+string(vs.Source)))
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.dim.Render("Configuration files:") + "\n")
	writeFileLine(&b, styles, "Global", globalPath)
	writeFileLine(&b, styles, "Project", projectPath)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeFileLine(b *strings.Builder, styles *configShowStyles, label, path string) {
	if path == "" {
		return
	}
	state := ""
	if _, err := os.Stat(path); err != nil {
		state = " (not found)"
	}
	b.WriteString(styles.dim.Render("  "+label+": "+path+state) + "\n")
}

// formatConfigValue converts a configuration value to a displayable string.
func formatConfigValue(value any) string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return "(not set)"
		}
		return v
	case []string:
		return "[" + strings.Join(v, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
