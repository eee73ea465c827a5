// nonogram-batch validates and scores candidate colored grids: run a batch
// of candidate JSON files through the solver pipeline, then list or show
// the accepted puzzles it stored.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"svw.info/nonogram/internal/config"
	"svw.info/nonogram/internal/domain"
	"svw.info/nonogram/internal/infrastructure/storage"
	"svw.info/nonogram/internal/ports"
	"svw.info/nonogram/internal/scorer"
	"svw.info/nonogram/internal/solver"
	"svw.info/nonogram/internal/usecase"
	"svw.info/nonogram/internal/validator"
)

type app struct {
	cfgPath    string
	logLevel   string
	outDir     string
	solverKind string

	cfg    config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "nonogram-batch",
		Short:        "Validate and score colored-nonogram candidates",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "YAML config file (defaults apply when empty)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "debug|info|warn|error")
	root.PersistentFlags().StringVar(&a.outDir, "out", "./puzzles", "directory for accepted puzzles")
	root.PersistentFlags().StringVar(&a.solverKind, "solver", "engine",
		"solver to use: engine|brute (brute is for verification; it reports no solve trace, so scores skew low)")
	root.AddCommand(a.runCmd(), a.listCmd(), a.showCmd())
	return root
}

func (a *app) setup() error {
	lvl := slog.LevelInfo
	switch strings.ToLower(a.logLevel) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))

	a.cfg = config.Default()
	if a.cfgPath != "" {
		cfg, err := config.Load(a.cfgPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	return nil
}

func (a *app) newSolver() ports.Solver {
	switch strings.ToLower(strings.TrimSpace(a.solverKind)) {
	case "brute":
		return solver.NewBrute()
	default:
		return solver.New(solver.Options{Timeout: a.cfg.SolveTimeout(), MaxNodes: a.cfg.MaxNodes})
	}
}

func (a *app) pipeline() *usecase.Pipeline {
	v := validator.New(validator.Limits{
		MinColorDistance: a.cfg.MinColorDistance,
		MaxColors:        a.cfg.MaxColors,
		MaxRunsPerLine:   a.cfg.MaxRunsPerLine,
	})
	g := scorer.New(a.cfg.Weights, a.cfg.Tiers)
	st := storage.NewFS(a.outDir)
	return usecase.NewPipeline(v, a.newSolver(), g, st, a.cfg, a.logger)
}

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <dir|file>...",
		Short: "Run candidates through the validation and scoring pipeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cands, err := loadCandidates(args)
			if err != nil {
				return err
			}
			if strings.EqualFold(strings.TrimSpace(a.solverKind), "brute") {
				a.logger.Warn("brute solver reports no solve trace; difficulty scores will skew low")
			}
			a.logger.Info("batch start", "candidates", len(cands), "solver", a.solverKind,
				"timeout", a.cfg.SolveTimeout(), "out", a.outDir)
			start := time.Now()
			rep := a.pipeline().Batch(cmd.Context(), cands)
			a.logger.Info("batch done", "dur", time.Since(start).Round(time.Millisecond))
			fmt.Fprintln(cmd.OutOrStdout(), rep.Summary())
			// Rejections are outcomes, not failures; only internal errors
			// make the run itself fail.
			if rep.Errors > 0 {
				return fmt.Errorf("%d candidate(s) failed with internal errors", rep.Errors)
			}
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored puzzles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metas, err := storage.NewFS(a.outDir).List(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range metas {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%dx%d\t%s\n", m.ID, m.Width, m.Height, m.Tier)
			}
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one stored puzzle as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := storage.NewFS(a.outDir).Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		},
	}
}

// loadCandidates reads candidate JSON files; directory arguments are
// scanned non-recursively for *.json.
func loadCandidates(args []string) ([]*domain.Candidate, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		ents, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range ents {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	cands := make([]*domain.Candidate, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var c domain.Candidate
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse candidate %s: %w", path, err)
		}
		if c.ID == "" {
			c.ID = strings.TrimSuffix(filepath.Base(path), ".json")
		}
		if len(c.Cells) != c.Width*c.Height {
			return nil, fmt.Errorf("candidate %s: grid has %d cells, want %d", path, len(c.Cells), c.Width*c.Height)
		}
		cands = append(cands, &c)
	}
	return cands, nil
}
