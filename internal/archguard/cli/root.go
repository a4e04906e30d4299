package cli

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var logLevel string

// NewRootCmd builds the archguard command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "archguard",
		Short:         "Architecture guard for Server/Client component codebases",
		Long:          "archguard scans a source tree for component-boundary, data-fetching, naming, size, security, and dependency-policy violations, and serves the results over MCP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newTUICmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		hclog.L().Error(err.Error())
		os.Exit(1)
	}
}

// newLogger builds the process logger. Output goes to stderr so the stdio
// MCP transport keeps stdout to itself.
func newLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:        "archguard",
		Level:       hclog.LevelFromString(logLevel),
		Output:      os.Stderr,
		DisableTime: false,
	})
}
