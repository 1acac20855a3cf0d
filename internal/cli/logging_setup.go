package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/namesearch/internal/config"
	"github.com/rshade/namesearch/internal/logging"
)

// setupLogging builds the logger from the loaded config (or the defaults
// when loading failed) and the --debug flag, and stores it with a trace id
// in the command context.
func setupLogging(cmd *cobra.Command, state *rootState) {
	loggingCfg := config.New().Logging
	if state.cfg != nil {
		loggingCfg = state.cfg.Logging
	}

	if state.debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	state.logs = &result

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)

	base := result.Logger.With().Str("trace_id", traceID).Logger()
	ctx = base.WithContext(ctx)
	cmd.SetContext(ctx)

	logger := logging.ComponentLogger(base, "cli")

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	if state.loadErr != nil {
		logger.Debug().Err(state.loadErr).Msg("configuration could not be loaded")
	}
}
