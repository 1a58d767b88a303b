package main

import (
	"fmt"
	"io"
	"time"

	"github.com/2beens/gymlog/internal/gymlog"

	"github.com/fatih/color"
)

const dateFormat = "2006-01-02 15:04"

func printWorkout(w io.Writer, workout *gymlog.Workout) {
	date := "(no date)"
	if !workout.Date().IsZero() {
		date = workout.Date().In(time.Local).Format(dateFormat)
	}
	color.New(color.Bold).Fprintf(w, "%s\n", date)
	for _, key := range workout.Keys() {
		session, _ := workout.Session(key)
		fmt.Fprintf(w, "  %-24s %10s ", session.Name, formatWeight(session.Weight))
		color.New(color.Faint).Fprintf(w, "[%s]\n", key)
	}
}

func printWorkoutPlan(w io.Writer, plan *gymlog.WorkoutPlan) {
	color.New(color.Bold).Fprintf(w, "%s\n", plan.Name())
	for _, key := range plan.Keys() {
		ep, _ := plan.Exercise(key)
		fmt.Fprintf(w, "  %-24s %2dx%-3d start %-10s %+g kg ",
			ep.Name(), ep.Sets(), ep.Reps(), formatWeight(ep.InitialWeight()), ep.Progression())
		color.New(color.Faint).Fprintf(w, "[%s]\n", key)
	}
}
