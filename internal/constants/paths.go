package constants

// Log file names.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.gitrun/logs/gitrun.log
	CLILogFileName = "gitrun.log"
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the global configuration file.
	// This file is located in the gitrun home directory.
	GlobalConfigName = "config.yaml"

	// ProjectConfigName is the name of the per-repository configuration file.
	// This file is located in the directory gitrun runs in.
	ProjectConfigName = ".gitrun.yaml"
)

// Environment variables applied to every git invocation.
// Git reads these to locate the repository; they are unset so the explicit
// -C argument always wins.
//
//nolint:gochecknoglobals // Read-only lookup table
var GitUnsetEnv = []string{
	"GIT_DIR",
	"GIT_WORK_TREE",
	"GIT_INDEX_FILE",
	"GIT_OBJECT_DIRECTORY",
	"GIT_NAMESPACE",
}

// GitEnv returns the variables forced on every git invocation: a stable
// locale and no interactive credential prompts.
func GitEnv() map[string]string {
	return map[string]string{
		"LC_ALL":              "C",
		"GIT_TERMINAL_PROMPT": "0",
	}
}

// GitGlobalArgs returns the arguments placed before every git subcommand.
func GitGlobalArgs() []string {
	return []string{"-c", "color.ui=false", "-c", "core.quotepath=false"}
}
