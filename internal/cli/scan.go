package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/namesearch/internal/config"
	"github.com/rshade/namesearch/internal/engine"
	"github.com/rshade/namesearch/internal/engine/cache"
	"github.com/rshade/namesearch/internal/ingest"
	"github.com/rshade/namesearch/internal/logging"
	"github.com/rshade/namesearch/internal/tui"
)

type scanFlags struct {
	source    string
	batchSize int
	timeout   time.Duration
	workers   int
	output    string
	noCache   bool
}

func newScanCmd(state *rootState) *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a corpus for the configured names",
		Long: `Reads the corpus, splits it into batches of --batch-size lines and scans the
batches concurrently. Each occurrence is reported as [lineOffset, charOffset]
where lineOffset is the first line of the batch and charOffset is the byte
offset within the batch's concatenated text.

If --timeout elapses first, the batches that finished are still reported,
marked incomplete, and the command exits with status 4.`,
		Example: `  namesearch scan --source http://norvig.com/big.txt
  cat corpus.txt | namesearch scan --source - --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd, state, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.source, "source", "", `corpus location: file path, http(s) URL or "-" for stdin`)
	f.IntVar(&flags.batchSize, "batch-size", 0, "lines per batch (overrides config)")
	f.DurationVar(&flags.timeout, "timeout", 0, "overall scan deadline, 0 disables it (overrides config)")
	f.IntVar(&flags.workers, "workers", 0, "concurrent batch scans, 0 = number of CPUs (overrides config)")
	f.StringVar(&flags.output, "output", "", "output format: text, json, ndjson or tui (overrides config)")
	f.BoolVar(&flags.noCache, "no-cache", false, "do not read or write the corpus cache")

	return cmd
}

func runScan(cmd *cobra.Command, state *rootState, flags scanFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	cfg, err := state.config()
	if err != nil {
		return err
	}
	applyScanFlags(cmd, cfg, flags)
	if err = cfg.Validate(); err != nil {
		return err
	}

	names, err := cfg.NameSet()
	if err != nil {
		return err
	}
	format, err := engine.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	src, err := ingest.Open(cfg.Source.Location, ingest.Options{
		HTTPTimeout: cfg.Source.Timeout,
		Store:       openStore(ctx, cfg, flags.noCache),
		Stdin:       cmd.InOrStdin(),
	})
	if err != nil {
		return err
	}

	opts := engine.Options{
		BatchSize: cfg.Scan.BatchSize,
		Workers:   cfg.Scan.Workers,
		Timeout:   cfg.Scan.Timeout,
		Names:     names,
	}

	log.Info().
		Str("source", src.Describe()).
		Int("batch_size", opts.BatchSize).
		Int("workers", opts.Workers).
		Dur("timeout", opts.Timeout).
		Str("output", string(format)).
		Msg("scan requested")

	if format == engine.OutputTUI {
		return runScanTUI(ctx, opts, src)
	}

	eng, err := engine.New(opts)
	if err != nil {
		return err
	}

	start := time.Now()
	result, runErr := eng.Run(ctx, src)
	if runErr != nil && result.Names.Len() == 0 {
		return runErr
	}

	if err = engine.RenderFormat(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if isTerminal(os.Stderr) {
		writeSummary(cmd.ErrOrStderr(), result, time.Since(start), true)
	}

	return runErr
}

func runScanTUI(ctx context.Context, opts engine.Options, src ingest.Source) error {
	_, err := tui.Run(ctx, func(ctx context.Context, onProgress engine.ProgressFunc) (engine.AggregatedResult, error) {
		o := opts
		o.OnProgress = onProgress
		eng, err := engine.New(o)
		if err != nil {
			return engine.AggregatedResult{}, err
		}
		return eng.Run(ctx, src)
	})
	if errors.Is(err, tui.ErrAborted) {
		return nil
	}
	return err
}

// applyScanFlags overrides cfg with the flags the user set explicitly.
func applyScanFlags(cmd *cobra.Command, cfg *config.Config, flags scanFlags) {
	f := cmd.Flags()
	if f.Changed("source") {
		cfg.Source.Location = flags.source
	}
	if f.Changed("batch-size") {
		cfg.Scan.BatchSize = flags.batchSize
	}
	if f.Changed("timeout") {
		cfg.Scan.Timeout = flags.timeout
	}
	if f.Changed("workers") {
		cfg.Scan.Workers = flags.workers
	}
	if f.Changed("output") {
		cfg.Output.Format = flags.output
	}
}

// openStore opens the corpus cache, or returns nil when caching is off or
// the cache directory is unusable.
func openStore(ctx context.Context, cfg *config.Config, noCache bool) *cache.FileStore {
	log := logging.FromContext(ctx)
	if noCache || !cfg.Cache.Enabled {
		return nil
	}

	store, err := cache.NewFileStore(cfg.Cache.Directory, true, cfg.Cache.TTLSeconds)
	if err != nil {
		log.Warn().Err(err).Str("directory", cfg.Cache.Directory).Msg("corpus cache disabled")
		return nil
	}
	if err = store.CleanupExpired(); err != nil {
		log.Debug().Err(err).Msg("cache cleanup failed")
	}

	log.Debug().
		Str("directory", store.Directory()).
		Str("ttl", cache.FormatDuration(time.Duration(cfg.Cache.TTLSeconds)*time.Second)).
		Msg("corpus cache enabled")
	return store
}

// writeSummary prints a one-line summary of r, styled for terminals.
func writeSummary(w io.Writer, r engine.AggregatedResult, elapsed time.Duration, styled bool) {
	line := fmt.Sprintf("%s occurrences of %d names in %d/%d batches (%s)",
		tui.FormatCount(r.Total()), r.Names.Len(), r.MergedBatches, r.TotalBatches,
		elapsed.Round(time.Millisecond))

	switch {
	case !styled:
	case r.Incomplete || len(r.Warnings) > 0:
		line = tui.WarningStyle.Render(line)
	default:
		line = tui.ValueStyle.Render(line)
	}
	_, _ = fmt.Fprintln(w, line)
}
