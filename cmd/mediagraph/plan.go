package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediagraph/mediagraph/internal/config"
	"github.com/mediagraph/mediagraph/internal/executor"
)

func newPlanCmd(root *rootFlags) *cobra.Command {
	var runOnly, continueFrom string

	cmd := &cobra.Command{
		Use:   "plan <workflow.yaml>",
		Short: "Show the execution levels without running anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(root)
			if err != nil {
				return err
			}

			doc, err := config.ParseFile(args[0])
			if err != nil {
				return err
			}

			exec, err := buildExecutor(log)
			if err != nil {
				return err
			}

			plan, err := exec.Plan(doc.Workflow(), executor.RunOptions{
				RunOnlyNodeID:      runOnly,
				ContinueFromNodeID: continueFrom,
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), plan.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&runOnly, "run-only", "", "Plan only the named node and its ancestors")
	cmd.Flags().StringVar(&continueFrom, "continue-from", "", "Plan from the named node onward")

	return cmd
}
