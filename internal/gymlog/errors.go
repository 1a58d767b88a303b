package gymlog

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrMissingWorkoutPlan = errors.New("gym log has no workout plan attached")
	ErrMissingExercise    = errors.New("exercise missing from prior workout")
)

// ValidationError is returned when an ExercisePlan is built from bad input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

// MissingExerciseError names the plan key that had no entry in the prior workout.
type MissingExerciseError struct {
	Key string
}

func (e *MissingExerciseError) Error() string {
	return fmt.Sprintf("exercise [%s] missing from prior workout", e.Key)
}

func (e *MissingExerciseError) Unwrap() error {
	return ErrMissingExercise
}
