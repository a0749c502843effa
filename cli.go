// ABOUTME: Cobra command tree for non-interactive trace generation and the visualizer
// ABOUTME: Each command builds one trace and prints it, or plays it back in real time with --play

package main

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"algoviz/config"
	"algoviz/dataset"
	"algoviz/dispatch"
	"algoviz/pipeline"
	"algoviz/searching"
	"algoviz/sorting"
	"algoviz/trace"
	"algoviz/tree"
	"algoviz/tui"
)

// defaultRequests is the workload size of the dispatch command
const defaultRequests = 8

var errPlayFormat = errors.New("--play only supports text output")

// newRootCommand creates the root command with every subcommand attached
func newRootCommand() *cobra.Command {
	opts := &RootOptions{}

	var stopProfile func()

	cmd := &cobra.Command{
		Use:   "algoviz",
		Short: "Step through sorting, searching and tree algorithms",
		Long: `algoviz records every comparison, swap and visit an algorithm makes as
an ordered list of steps, then prints the trace or plays it back at a
configurable speed. Run "algoviz visual" for the interactive view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}

			if opts.Play && opts.Format != trace.FormatText {
				return errPlayFormat
			}

			if opts.Debug {
				if err := SetupDebugLog(debugLogFile); err != nil {
					return err
				}
			}

			if opts.CPUProfile != "" {
				stop, err := startCPUProfile(opts.CPUProfile)
				if err != nil {
					return err
				}

				stopProfile = stop
			}

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if stopProfile != nil {
				stopProfile()
			}

			if opts.MemProfile != "" {
				writeMemoryProfile(opts.MemProfile)
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ./algoviz.toml or ~/.config/algoviz/config.toml)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging to "+debugLogFile)
	flags.StringVarP(&opts.Format, "format", "f", trace.FormatText, "output format (text|json|yaml)")
	flags.BoolVarP(&opts.Play, "play", "p", false, "play the trace back step by step instead of printing it at once")
	flags.Float64Var(&opts.Speed, "speed", 0, "playback speed multiplier (default from config)")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random seed for generated arrays (default time based)")
	flags.StringVar(&opts.CPUProfile, "cpuprofile", "", "write cpu profile to file")
	flags.StringVar(&opts.MemProfile, "memprofile", "", "write memory profile to file")

	cmd.AddCommand(
		newSortCommand(opts),
		newSearchCommand(opts),
		newTreeCommand(opts),
		newDispatchCommand(opts),
		newPipelineCommand(opts),
		newCompareCommand(opts),
		newVisualCommand(opts),
	)

	return cmd
}

// emit prints tr in the selected format, or plays it back with --play
func emit(cmd *cobra.Command, opts *RootOptions, cfg config.Config, tr trace.Trace) error {
	debugf("[CLI] %s produced %d steps", tr.Algorithm(), tr.Len())

	if opts.Play {
		return playTrace(cmd.Context(), cmd.OutOrStdout(), tr, cfg)
	}

	return trace.Write(cmd.OutOrStdout(), tr, opts.Format)
}

// arrayInput picks the command's input array: explicit values win, then a
// generated array, then the fallback
func arrayInput(args []string, generate func() []int, useGenerated bool, fallback []int) ([]int, error) {
	if len(args) > 0 {
		values, err := dataset.ParseValues(strings.Join(args, " "))
		if err != nil {
			return nil, err
		}

		if len(values) == 0 {
			return nil, dataset.ErrEmpty
		}

		return values, nil
	}

	if useGenerated {
		return generate(), nil
	}

	return fallback, nil
}

func newSortCommand(opts *RootOptions) *cobra.Command {
	var (
		algorithm string
		generate  bool
	)

	cmd := &cobra.Command{
		Use:   "sort [values...]",
		Short: "Trace a sorting algorithm",
		Long: `Trace a sorting algorithm over the given values, a generated array, or the
default array [45 23 67 12 89 34 78 91 56 29].

Examples:
  algoviz sort -a quick 5 3 8 1
  algoviz sort -a heap --generate --seed 7
  algoviz sort -a merge --play --speed 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()

			alg, err := sorting.Parse(cmp.Or(algorithm, cfg.SortAlgorithm))
			if err != nil {
				return err
			}

			values, err := arrayInput(args, func() []int {
				return dataset.Generate(cfg.ArraySize, opts.rng())
			}, generate, dataset.Default())
			if err != nil {
				return err
			}

			tr, err := sorting.Run(alg, values)
			if err != nil {
				return err
			}

			return emit(cmd, opts, cfg, tr)
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "bubble|selection|insertion|quick|merge|heap (default from config)")
	cmd.Flags().BoolVarP(&generate, "generate", "g", false, "sort a random array of the configured size")

	return cmd
}

func newSearchCommand(opts *RootOptions) *cobra.Command {
	var (
		algorithm string
		generate  bool
	)

	cmd := &cobra.Command{
		Use:   "search <target> [values...]",
		Short: "Trace a search algorithm",
		Long: `Trace a linear or binary search for target. Without values the search runs
over the default sorted array [12 23 34 45 56 67 78 89 91 100].
Binary search expects sorted input and is not checked.

Examples:
  algoviz search -a binary 67
  algoviz search 7 4 9 7 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()

			alg, err := searching.Parse(cmp.Or(algorithm, cfg.SearchAlgorithm))
			if err != nil {
				return err
			}

			target, err := dataset.ParseValue(args[0])
			if err != nil {
				return err
			}

			values, err := arrayInput(args[1:], func() []int {
				return dataset.GenerateSorted(cfg.ArraySize, opts.rng())
			}, generate, dataset.DefaultSorted())
			if err != nil {
				return err
			}

			if alg == searching.Binary && !dataset.IsSorted(values) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: binary search over unsorted values")
			}

			tr, err := searching.Run(alg, values, target)
			if err != nil {
				return err
			}

			return emit(cmd, opts, cfg, tr)
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "linear|binary (default from config)")
	cmd.Flags().BoolVarP(&generate, "generate", "g", false, "search a random sorted array of the configured size")

	return cmd
}

// treeOps lists the tree command operations
var treeOps = []string{"insert", "delete", "search", "min", "max", "traverse"}

func newTreeCommand(opts *RootOptions) *cobra.Command {
	var (
		kind   string
		order  string
		values string
	)

	cmd := &cobra.Command{
		Use:   "tree <insert|delete|search|min|max|traverse> [value]",
		Short: "Trace a binary tree operation",
		Long: `Trace one operation on a binary tree. The tree starts as the sample tree
for its type unless --values lists the values to build it from.

Examples:
  algoviz tree insert 65
  algoviz tree delete 30 --values 50,30,70,20,40
  algoviz tree traverse --order bfs --type complete`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: treeOps,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()

			t, err := buildTree(cmp.Or(kind, cfg.TreeType), values)
			if err != nil {
				return err
			}

			tr, err := runTreeOp(t, args, cmp.Or(order, cfg.Traversal))
			if err != nil {
				return err
			}

			return emit(cmd, opts, cfg, tr)
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "", "bst|complete|generic (default from config)")
	cmd.Flags().StringVarP(&order, "order", "o", "", "inorder|preorder|postorder|bfs|dfs (default from config)")
	cmd.Flags().StringVar(&values, "values", "", "comma separated values to build the tree from")

	return cmd
}

func buildTree(kind, values string) (*tree.Tree, error) {
	typ, err := tree.ParseType(kind)
	if err != nil {
		return nil, err
	}

	if values == "" {
		return tree.Sample(typ), nil
	}

	vs, err := dataset.ParseValues(values)
	if err != nil {
		return nil, err
	}

	return tree.FromValues(typ, vs), nil
}

// runTreeOp dispatches args[0] to the matching tree runner
func runTreeOp(t *tree.Tree, args []string, order string) (trace.Trace, error) {
	op := strings.ToLower(args[0])

	value := func() (int, error) {
		if len(args) < 2 {
			return 0, fmt.Errorf("%s: %w", op, dataset.ErrMissingTarget)
		}

		return dataset.ParseValue(args[1])
	}

	switch op {
	case "insert":
		v, err := value()
		if err != nil {
			return trace.Trace{}, err
		}

		_, tr := tree.Insert(t, v)

		return tr, nil
	case "delete":
		v, err := value()
		if err != nil {
			return trace.Trace{}, err
		}

		_, tr, err := tree.Delete(t, v)

		return tr, err
	case "search":
		v, err := value()
		if err != nil {
			return trace.Trace{}, err
		}

		return tree.Search(t, v)
	case "min":
		return tree.FindMin(t)
	case "max":
		return tree.FindMax(t)
	case "traverse":
		o, err := tree.ParseOrder(order)
		if err != nil {
			return trace.Trace{}, err
		}

		tr, _, err := tree.Traverse(t, o)

		return tr, err
	default:
		return trace.Trace{}, fmt.Errorf("unknown tree operation %q: must be one of %v", args[0], treeOps)
	}
}

func newDispatchCommand(opts *RootOptions) *cobra.Command {
	var (
		policy   string
		servers  int
		requests int
	)

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Trace a load balancer distributing requests",
		Long: `Simulate requests arriving one per tick at a pool of servers and trace how
the policy assigns them. Each snapshot holds the per server queue depth.

Examples:
  algoviz dispatch --policy lc --servers 3 --requests 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()

			p, err := dispatch.ParsePolicy(cmp.Or(policy, cfg.DispatchPolicy))
			if err != nil {
				return err
			}

			n := cmp.Or(servers, cfg.Servers)
			if n < config.MinServers || n > config.MaxServers {
				return fmt.Errorf("servers must be between %d and %d", config.MinServers, config.MaxServers)
			}

			if requests < 1 {
				return fmt.Errorf("requests must be at least 1, got %d", requests)
			}

			tr, assigned, err := dispatch.Run(p, n, dispatch.Workload(requests))
			if err != nil {
				return err
			}

			debugf("[CLI] dispatch assignments: %v", assigned)

			return emit(cmd, opts, cfg, tr)
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "round-robin|least-connections (default from config)")
	cmd.Flags().IntVar(&servers, "servers", 0, "number of servers (default from config)")
	cmd.Flags().IntVar(&requests, "requests", defaultRequests, "number of simulated requests")

	return cmd
}

func newPipelineCommand(opts *RootOptions) *cobra.Command {
	var user string

	names := make([]string, 0, len(pipeline.Flows()))
	for _, f := range pipeline.Flows() {
		names = append(names, string(f))
	}

	cmd := &cobra.Command{
		Use:   "pipeline <flow>",
		Short: "Narrate a backend request flow stage by stage",
		Long: fmt.Sprintf(`Narrate a simulated request flow. Each stage is one step whose display
time follows the stage duration.

Flows: %s

Examples:
  algoviz pipeline login --user ada --play`, strings.Join(names, ", ")),
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()

			f, err := pipeline.ParseFlow(args[0])
			if err != nil {
				return err
			}

			tr, err := pipeline.Run(f, user)
			if err != nil {
				return err
			}

			return emit(cmd, opts, cfg, tr)
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user name shown in the narration")

	return cmd
}

func newVisualCommand(opts *RootOptions) *cobra.Command {
	var (
		domain string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "visual",
		Short: "Open the interactive terminal visualizer",
		Long: `Open the interactive visualizer. Settings are loaded from the config file,
saved on quit, and reloaded while running when the file changes on disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDomain(domain)
			if err != nil {
				return err
			}

			path := opts.configPath()
			cfg := opts.loadConfig()

			return tui.Run(tui.Options{Domain: d, Watch: watch}, tui.Dependencies{
				SharedConfig: config.NewSharedConfig(cfg),
				Rand:         opts.rng(),
				Debugf:       debugf,
				ConfigPath:   path,
			})
		},
	}

	cmd.Flags().StringVarP(&domain, "domain", "d", "sort", "view shown first (sort|search|tree)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", true, "reload the config file when it changes")

	return cmd
}

func parseDomain(s string) (tui.Domain, error) {
	switch strings.ToLower(s) {
	case "sort", "sorting":
		return tui.SortDomain, nil
	case "search", "searching":
		return tui.SearchDomain, nil
	case "tree":
		return tui.TreeDomain, nil
	default:
		return 0, fmt.Errorf("unknown domain %q: must be one of sort, search, tree", s)
	}
}
