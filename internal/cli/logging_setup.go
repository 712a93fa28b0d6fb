package cli

import (
	"github.com/spf13/cobra"

	"github.com/draycall/fbxbatch/internal/config"
	"github.com/draycall/fbxbatch/internal/logging"
)

// setupLogging configures the root logger from the config file and the
// --debug flag, stores it on the command context and returns the handle
// for cleanup.
func setupLogging(cmd *cobra.Command) logging.Result {
	loggingCfg := config.GetGlobal().Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	result := logging.New(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	ctx := logging.WithContext(cmd.Context(), result.Logger)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return result
}
