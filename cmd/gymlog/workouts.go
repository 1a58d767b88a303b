package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next workout without logging it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			next, err := a.svc.PreviewNextWorkout(cmd.Context(), user)
			if err != nil {
				return err
			}
			printWorkout(a.out, next)
			return nil
		},
	}
}

func (a *app) logCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Log the next workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			logged, err := a.svc.LogNextWorkout(cmd.Context(), user)
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintln(a.out, "✓ workout logged")
			printWorkout(a.out, logged)
			return nil
		},
	}
}

func (a *app) historyCmd() *cobra.Command {
	var limit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List logged workouts, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			workouts, err := a.svc.History(cmd.Context(), user)
			if err != nil {
				return err
			}
			if len(workouts) == 0 {
				color.New(color.Faint).Fprintln(a.out, "no workouts logged yet")
				return nil
			}
			if limit > 0 && len(workouts) > limit {
				workouts = workouts[len(workouts)-limit:]
			}
			for _, w := range workouts {
				printWorkout(a.out, w)
			}
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 0, "only the last n workouts (0 for all)")
	return historyCmd
}
