package gymlog

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// MissingExercisePolicy decides what happens when the plan has an exercise
// the prior workout does not know about (e.g. it was added to the plan later).
type MissingExercisePolicy int

const (
	// FailOnMissingExercise aborts the derivation with a MissingExerciseError.
	FailOnMissingExercise MissingExercisePolicy = iota
	// RestartMissingExercise starts the exercise over from its initial weight.
	RestartMissingExercise
)

func (p MissingExercisePolicy) String() string {
	switch p {
	case FailOnMissingExercise:
		return "fail"
	case RestartMissingExercise:
		return "restart"
	default:
		return fmt.Sprintf("MissingExercisePolicy(%d)", int(p))
	}
}

func ParseMissingExercisePolicy(s string) (MissingExercisePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail", "error":
		return FailOnMissingExercise, nil
	case "restart", "initial", "initial_weight":
		return RestartMissingExercise, nil
	default:
		return FailOnMissingExercise, fmt.Errorf("unknown missing exercise policy: %s", s)
	}
}

// WorkoutPlan is a named set of exercise plans, keyed by exercise ID.
// The main job of a plan is to derive the next Workout.
type WorkoutPlan struct {
	id        int
	name      string
	exercises map[string]ExercisePlan
}

func NewWorkoutPlan(name string, exercises map[string]ExercisePlan) *WorkoutPlan {
	cloned := maps.Clone(exercises)
	if cloned == nil {
		cloned = map[string]ExercisePlan{}
	}
	return &WorkoutPlan{
		name:      name,
		exercises: cloned,
	}
}

// ID returns the persisted ID, 0 if the plan was never saved.
func (wp *WorkoutPlan) ID() int {
	return wp.id
}

func (wp *WorkoutPlan) SetID(id int) {
	wp.id = id
}

func (wp *WorkoutPlan) Name() string {
	return wp.name
}

func (wp *WorkoutPlan) Exercise(key string) (ExercisePlan, bool) {
	ep, ok := wp.exercises[key]
	return ep, ok
}

// Keys returns the exercise keys in sorted order.
func (wp *WorkoutPlan) Keys() []string {
	return slices.Sorted(maps.Keys(wp.exercises))
}

func (wp *WorkoutPlan) Exercises() map[string]ExercisePlan {
	return maps.Clone(wp.exercises)
}

func (wp *WorkoutPlan) Len() int {
	return len(wp.exercises)
}

// Equal compares name and exercise plans, the persisted ID is ignored.
func (wp *WorkoutPlan) Equal(other *WorkoutPlan) bool {
	if wp == nil || other == nil {
		return wp == other
	}
	return wp.name == other.name && maps.Equal(wp.exercises, other.exercises)
}

func (wp *WorkoutPlan) Clone() *WorkoutPlan {
	c := NewWorkoutPlan(wp.name, wp.exercises)
	c.id = wp.id
	return c
}

// CreateWorkout derives a new workout from the plan. Without a prior workout
// every exercise starts at its initial weight, otherwise the progression is
// added on top of the weight lifted in the prior workout.
func (wp *WorkoutPlan) CreateWorkout(prior *Workout, policy MissingExercisePolicy) (*Workout, error) {
	if prior == nil {
		return wp.createFirstWorkout(), nil
	}
	return wp.createWorkoutFromPrior(prior, policy)
}

func (wp *WorkoutPlan) createFirstWorkout() *Workout {
	sessions := make(map[string]ExerciseSession, len(wp.exercises))
	for key, ep := range wp.exercises {
		sessions[key] = ExerciseSession{
			Name:   ep.name,
			Weight: ep.initialWeight,
		}
	}
	return NewWorkout(sessions)
}

func (wp *WorkoutPlan) createWorkoutFromPrior(prior *Workout, policy MissingExercisePolicy) (*Workout, error) {
	sessions := make(map[string]ExerciseSession, len(wp.exercises))
	for _, key := range wp.Keys() {
		ep := wp.exercises[key]
		last, ok := prior.Session(key)
		if !ok {
			if policy != RestartMissingExercise {
				return nil, &MissingExerciseError{Key: key}
			}
			sessions[key] = ExerciseSession{Name: ep.name, Weight: ep.initialWeight}
			continue
		}
		sessions[key] = ExerciseSession{
			Name:   ep.name,
			Weight: last.Weight + ep.progression,
		}
	}
	return NewWorkout(sessions), nil
}
