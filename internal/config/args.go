package config

import (
	"io"
	"strings"

	"github.com/kk-code-lab/thwack/internal/apperr"
	"github.com/spf13/pflag"
)

// Usage is printed for -h/--help.
const Usage = `thwack
Find a file and open it with an arbitrary command.

USAGE:
    thwack [OPTIONS] [--] [query]

ARGS:
    <query>                   The name of the file you'd like to find

OPTIONS:
    --exec <COMMAND>          Change the execution command from the default.
                              This is run when you hit the Enter on a path.
                              The default command is "notepad" on Windows, or "cat" on other platforms.
    --log-file <PATH>         Log what the program is doing to the specified PATH.
                              Log information is not output by default.
    --starting-point <PATH>   Change the starting point from the default (".").
    --status-line <TYPE>      Change the information on the status line.
                              The possible values are "absolute", "relative", and "none".
                              The default is "absolute".
    --no-gitignore            Do not skip files ignored by Git.
    --config <PATH>           Read preferences from PATH instead of
                              $XDG_CONFIG_HOME/thwack/config.yaml.
    -h, --help                Prints help information.
    -v, --version             Prints version info and exit.

ENVIRONMENT:
    THWACK_CONFIG, THWACK_EXEC, THWACK_STATUS_LINE, THWACK_LOG_FILE, THWACK_NO_GITIGNORE
`

// Invocation is the outcome of parsing the command line.
type Invocation struct {
	Preferences Preferences
	Help        bool
	Version     bool
}

// Parse builds the preferences for args (without the program name).
// Precedence from lowest to highest: defaults, config file, environment,
// command line.
func Parse(args []string, getenv func(string) string) (*Invocation, error) {
	var (
		exec          string
		startingPoint string
		logFile       string
		configPath    string
		status        StatusLine
		noGitignore   bool
		inv           Invocation
	)

	flagSet := pflag.NewFlagSet("thwack", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.Usage = func() {}
	flagSet.StringVar(&exec, "exec", "", "execution command")
	flagSet.StringVar(&startingPoint, "starting-point", "", "starting point")
	flagSet.StringVar(&logFile, "log-file", "", "log file")
	flagSet.StringVar(&configPath, "config", "", "config file")
	flagSet.Var(&status, "status-line", "status line type")
	flagSet.BoolVar(&noGitignore, "no-gitignore", false, "do not apply gitignore rules")
	flagSet.BoolVarP(&inv.Help, "help", "h", false, "print help")
	flagSet.BoolVarP(&inv.Version, "version", "v", false, "print version")

	if err := flagSet.Parse(args); err != nil {
		return nil, apperr.Args("%w", err)
	}
	if inv.Help || inv.Version {
		return &inv, nil
	}

	for _, name := range []string{"exec", "starting-point", "log-file", "config"} {
		if flag := flagSet.Lookup(name); flag.Changed && flag.Value.String() == "" {
			return nil, apperr.Args("%q needs a value. Empty string cannot be processed.", "--"+name)
		}
	}

	query, err := queryFromArgs(flagSet.Args(), flagSet.ArgsLenAtDash())
	if err != nil {
		return nil, err
	}

	prefs := Defaults()
	if err := loadConfigFile(configPath, getenv, &prefs); err != nil {
		return nil, err
	}
	if err := applyEnv(getenv, &prefs); err != nil {
		return nil, err
	}

	if flagSet.Changed("exec") {
		prefs.Exec = exec
	}
	if flagSet.Changed("starting-point") {
		prefs.StartingPoint = startingPoint
	}
	if flagSet.Changed("log-file") {
		prefs.LogFile = logFile
	}
	if flagSet.Changed("status-line") {
		prefs.StatusLine = status
	}
	if noGitignore {
		prefs.Gitignore = false
	}
	if prefs.PollInterval <= 0 {
		prefs.PollInterval = DefaultPollInterval
	}
	prefs.Query = query

	inv.Preferences = prefs
	return &inv, nil
}

// queryFromArgs accepts at most one positional query before "--"; every
// argument after "--" is joined with spaces and replaces it.
func queryFromArgs(positional []string, dashAt int) (string, error) {
	before := positional
	var after []string
	if dashAt >= 0 {
		before = positional[:dashAt]
		after = positional[dashAt:]
	}
	if len(before) > 1 {
		return "", apperr.Args("Illegal argument: %q", before[1])
	}
	if dashAt >= 0 {
		return strings.Join(after, " "), nil
	}
	if len(before) == 1 {
		return before[0], nil
	}
	return "", nil
}
