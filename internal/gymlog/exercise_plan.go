package gymlog

import (
	"math"
	"strconv"
	"strings"
)

// ExercisePlan is the target configuration for a single exercise within a WorkoutPlan.
// Values are immutable once constructed, use NewExercisePlan or ParseExercisePlan.
type ExercisePlan struct {
	name          string
	sets          int
	reps          int
	initialWeight float64
	progression   float64
}

func NewExercisePlan(name string, sets, reps int, initialWeight, progression float64) (ExercisePlan, error) {
	if sets <= 0 {
		return ExercisePlan{}, &ValidationError{Field: "sets", Reason: "must be greater than 0"}
	}
	if reps <= 0 {
		return ExercisePlan{}, &ValidationError{Field: "reps", Reason: "must be greater than 0"}
	}
	if !isFinite(initialWeight) {
		return ExercisePlan{}, &ValidationError{Field: "initial weight", Reason: "must be a number"}
	}
	if !isFinite(progression) {
		return ExercisePlan{}, &ValidationError{Field: "progression", Reason: "must be a number"}
	}

	return ExercisePlan{
		name:          name,
		sets:          sets,
		reps:          reps,
		initialWeight: initialWeight,
		progression:   progression,
	}, nil
}

// ParseExercisePlan builds an ExercisePlan from text input, e.g. form values or CLI args.
func ParseExercisePlan(name, sets, reps, initialWeight, progression string) (ExercisePlan, error) {
	setsNum, err := strconv.Atoi(strings.TrimSpace(sets))
	if err != nil {
		return ExercisePlan{}, &ValidationError{Field: "sets", Reason: "must be a number"}
	}
	repsNum, err := strconv.Atoi(strings.TrimSpace(reps))
	if err != nil {
		return ExercisePlan{}, &ValidationError{Field: "reps", Reason: "must be a number"}
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(initialWeight), 64)
	if err != nil {
		return ExercisePlan{}, &ValidationError{Field: "initial weight", Reason: "must be a number"}
	}
	prog, err := strconv.ParseFloat(strings.TrimSpace(progression), 64)
	if err != nil {
		return ExercisePlan{}, &ValidationError{Field: "progression", Reason: "must be a number"}
	}
	return NewExercisePlan(name, setsNum, repsNum, weight, prog)
}

func (ep ExercisePlan) Name() string           { return ep.name }
func (ep ExercisePlan) Sets() int              { return ep.sets }
func (ep ExercisePlan) Reps() int              { return ep.reps }
func (ep ExercisePlan) InitialWeight() float64 { return ep.initialWeight }
func (ep ExercisePlan) Progression() float64   { return ep.progression }

func (ep ExercisePlan) Equal(other ExercisePlan) bool {
	return ep == other
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
