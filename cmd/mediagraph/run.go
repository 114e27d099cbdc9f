package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mediagraph/mediagraph/internal/config"
	"github.com/mediagraph/mediagraph/internal/executor"
	"github.com/mediagraph/mediagraph/internal/handler"
	"github.com/mediagraph/mediagraph/internal/handlers"
	"github.com/mediagraph/mediagraph/internal/logger"
	"github.com/mediagraph/mediagraph/internal/registry"
)

type runFlags struct {
	runOnly      string
	continueFrom string
	reuse        []string
	envFile      string
}

func newRunCmd(root *rootFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <workflow.yaml>",
		Short: "Execute a workflow graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, args[0], root, flags)
		},
	}

	cmd.Flags().StringVar(&flags.runOnly, "run-only", "", "Run only the named node and its ancestors")
	cmd.Flags().StringVar(&flags.continueFrom, "continue-from", "", "Re-run from the named node, reusing ancestor results")
	cmd.Flags().StringArrayVar(&flags.reuse, "reuse", nil, "Cached result as node=value, repeatable (continue-from only)")
	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Load environment from this file instead of .env")

	return cmd
}

func runWorkflow(cmd *cobra.Command, path string, root *rootFlags, flags *runFlags) error {
	loadEnv(flags.envFile)

	log, err := newLogger(root)
	if err != nil {
		return err
	}

	doc, err := config.ParseFile(path)
	if err != nil {
		return err
	}

	exec, err := buildExecutor(log)
	if err != nil {
		return err
	}

	existing, err := parseReuse(flags.reuse)
	if err != nil {
		return err
	}

	printer := newStatusPrinter(cmd.OutOrStdout())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	summary, err := exec.Run(ctx, doc.Workflow(), executor.RunOptions{
		RunOnlyNodeID:      flags.runOnly,
		ContinueFromNodeID: flags.continueFrom,
		ExistingResults:    existing,
		Callbacks: executor.Callbacks{
			OnNodeStatus:   printer.status,
			OnProgress:     printer.progress,
			OnNodeComplete: printer.complete,
		},
	})
	if errors.Is(err, executor.ErrRunCancelled) {
		printer.cancelled()
		return err
	}
	if err != nil {
		return err
	}

	printer.summary(summary)
	return nil
}

func buildExecutor(log *logger.Logger) (*executor.Executor, error) {
	dispatch := handler.NewRegistry()

	var predictions *handlers.PredictionClient
	if baseURL := os.Getenv("PREDICTION_API_URL"); baseURL != "" {
		predictions = handlers.NewPredictionClient(baseURL, os.Getenv("PREDICTION_API_KEY"))
	}

	if err := handlers.RegisterBuiltins(dispatch, predictions); err != nil {
		return nil, err
	}

	return executor.New(registry.Builtin(), dispatch, log), nil
}

func newLogger(root *rootFlags) (*logger.Logger, error) {
	level := "warn"
	if root.verbose {
		level = "debug"
	}
	return logger.New(logger.Options{Level: level, HumanReadable: true})
}

// loadEnv loads prediction-service credentials. A missing default .env is
// not an error; an explicitly named file is expected to exist.
func loadEnv(envFile string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		return
	}
	_ = godotenv.Load()
}

func parseReuse(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	existing := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		node, value, ok := strings.Cut(pair, "=")
		if !ok || node == "" {
			return nil, fmt.Errorf("invalid --reuse %q, expected node=value", pair)
		}
		existing[node] = value
	}
	return existing, nil
}
