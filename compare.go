// ABOUTME: The compare command runs every sorting algorithm over the same input
// ABOUTME: Traces are generated concurrently on the worker pool and summarized in one table

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"algoviz/config"
	"algoviz/dataset"
	"algoviz/pool"
	"algoviz/sorting"
	"algoviz/trace"
)

// comparison summarizes one algorithm's trace over the shared input
type comparison struct {
	Algorithm   string        `json:"algorithm" yaml:"algorithm"`
	Name        string        `json:"name" yaml:"name"`
	Steps       int           `json:"steps" yaml:"steps"`
	Comparisons int           `json:"comparisons" yaml:"comparisons"`
	Swaps       int           `json:"swaps" yaml:"swaps"`
	Accesses    int           `json:"accesses" yaml:"accesses"`
	Playback    time.Duration `json:"playback_ns" yaml:"playback_ns"`
}

func newCompareCommand(opts *RootOptions) *cobra.Command {
	var (
		generate bool
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "compare [values...]",
		Short: "Compare every sorting algorithm on the same input",
		Long: `Run every sorting algorithm over the same array and print the step count,
final counters and the playback time at the configured speed.

Examples:
  algoviz compare 9 4 7 1 3
  algoviz compare --generate --seed 42 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()

			values, err := arrayInput(args, func() []int {
				return dataset.Generate(cfg.ArraySize, opts.rng())
			}, generate, dataset.Default())
			if err != nil {
				return err
			}

			rows := compareSorts(values, cfg, workers)

			return writeComparison(cmd.OutOrStdout(), values, rows, opts.Format)
		},
	}

	cmd.Flags().BoolVarP(&generate, "generate", "g", false, "compare on a random array of the configured size")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (default one per CPU)")

	return cmd
}

// compareSorts traces every algorithm over its own copy of values, in algorithm order
func compareSorts(values []int, cfg config.Config, workers int) []comparison {
	algs := sorting.Algorithms()

	p := pool.NewWorkerPool(workers, len(algs))
	defer p.Close()

	jobs := make([]func() comparison, len(algs))
	for i, alg := range algs {
		jobs[i] = func() comparison {
			tr, err := sorting.Run(alg, slices.Clone(values))
			if err != nil {
				// Algorithms() only lists known ids
				panic(err)
			}

			return summarize(alg, tr, cfg)
		}
	}

	rows := pool.Collect(p, jobs)
	debugf("[CLI] compared %d algorithms on %d values with %d workers", len(rows), len(values), p.Workers())

	return rows
}

func summarize(alg sorting.Algorithm, tr trace.Trace, cfg config.Config) comparison {
	var total time.Duration
	for _, s := range tr.Steps() {
		total += trace.Delay(s, cfg.BaseDelay(), cfg.Speed)
	}

	final := tr.Last().Stats

	return comparison{
		Algorithm:   string(alg),
		Name:        alg.Name(),
		Steps:       tr.Len(),
		Comparisons: final.Comparisons,
		Swaps:       final.Swaps,
		Accesses:    final.Accesses,
		Playback:    total,
	}
}

func writeComparison(w io.Writer, values []int, rows []comparison, format string) error {
	doc := struct {
		Input   []int        `json:"input" yaml:"input"`
		Results []comparison `json:"results" yaml:"results"`
	}{values, rows}

	switch format {
	case trace.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode comparison as json: %w", err)
		}

		return nil
	case trace.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode comparison as yaml: %w", err)
		}

		return enc.Close()
	default:
		if _, err := fmt.Fprintf(w, "Input: %v\n", values); err != nil {
			return err
		}

		renderComparison(w, rows)

		return nil
	}
}
