package cmd

import (
	"net/http"

	logger "github.com/goonidz/ghsecret/internal/logging"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrReported is returned by commands whose failure has already been
// printed. The caller only needs to exit non-zero.
var ErrReported = errors.New("command failed")

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// httpClient overrides the GitHub HTTP client. Nil uses the default.
	httpClient *http.Client
)

// AddCommands registers the persistent flags and every subcommand on root.
func AddCommands(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
	}

	root.AddCommand(publishCmd)
	root.AddCommand(keyCmd)
}

// ResetGlobalState resets flags and globals to their defaults for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	Logger = logger.Logger{}
	httpClient = nil
	for _, c := range []*cobra.Command{publishCmd, keyCmd} {
		resetFlags(c.Flags())
	}
}

func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	})
}
