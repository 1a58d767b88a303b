package main

import (
	"fmt"

	"github.com/2beens/gymlog/internal/gymlog/planfile"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) planCmd() *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage the workout plan",
	}

	setCmd := &cobra.Command{
		Use:   "set <file>",
		Short: "Attach the workout plan from a TOML file, replacing the current one",
		Long: `Attach the workout plan from a TOML file, replacing the current one.

Plan file format:

  name = "Full Body"

  [exercises.bench_press]
  name = "Bench Press"
  sets = 3
  reps = 10
  initial_weight = 20.0
  progression = 2.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := planfile.Load(args[0])
			if err != nil {
				return err
			}
			user, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.svc.AttachWorkoutPlan(cmd.Context(), user, plan); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(a.out, "✓ workout plan [%s] attached (%d exercises)\n", plan.Name(), plan.Len())
			return nil
		},
	}

	var asToml bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current workout plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			plan, err := a.svc.WorkoutPlan(cmd.Context(), user)
			if err != nil {
				return err
			}
			if asToml {
				return planfile.Encode(a.out, plan)
			}
			printWorkoutPlan(a.out, plan)
			return nil
		},
	}
	showCmd.Flags().BoolVar(&asToml, "toml", false, "print the plan in the plan file format")

	planCmd.AddCommand(setCmd, showCmd)
	return planCmd
}

func formatWeight(w float64) string {
	return fmt.Sprintf("%g kg", w)
}
