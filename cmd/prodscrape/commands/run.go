package commands

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

var (
	runConcurrency *int
	runOutDir      *string
)

func init() {
	runConcurrency = runCmd.Flags().Int("concurrency", 0, "Identifiers processed at once (overrides PRODSCRAPE_CONCURRENCY).")
	runOutDir = runCmd.Flags().String("out", "", "Output directory for the filesystem store (overrides PRODSCRAPE_OUTPUT_DIR).")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [identifier...]",
	Short: "Collects each identifier once and writes <id>.html and <id>.json.",
	Long: "Collects each identifier once and writes <id>.html and <id>.json.\n" +
		"Without arguments the identifiers come from PRODSCRAPE_IDS or the built-in defaults.\n" +
		"Per-identifier failures are logged and never change the exit status.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			cfg.Run.Identifiers = args
		}
		if *runConcurrency > 0 {
			cfg.Run.Concurrency = *runConcurrency
		}
		if *runOutDir != "" {
			cfg.Store.Dir = *runOutDir
		}

		p, err := buildPipeline(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer p.close()

		start := time.Now()
		results := p.scraper.Run(cmd.Context(), cfg.Run.Identifiers)

		var saved int
		for _, r := range results {
			if r.Saved {
				saved++
			}
		}
		slog.Info("scraping time",
			"seconds", time.Since(start).Seconds(),
			"identifiers", len(results),
			"saved", saved,
		)
		return nil
	},
}
