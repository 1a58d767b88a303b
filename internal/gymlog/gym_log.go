package gymlog

import "slices"

// GymLog holds everything about a user's training: the workout plan they
// currently follow and the history of their workouts.
type GymLog struct {
	id       int
	userID   int
	plan     *WorkoutPlan
	workouts []*Workout
}

func NewGymLog(userID int) *GymLog {
	return &GymLog{
		userID: userID,
	}
}

// ID returns the persisted ID, 0 if the gym log was never saved.
func (gl *GymLog) ID() int {
	return gl.id
}

func (gl *GymLog) SetID(id int) {
	gl.id = id
}

func (gl *GymLog) UserID() int {
	return gl.userID
}

// AddWorkoutPlan attaches a copy of plan, replacing any plan attached before.
func (gl *GymLog) AddWorkoutPlan(plan *WorkoutPlan) {
	if plan == nil {
		gl.plan = nil
		return
	}
	gl.plan = plan.Clone()
}

// WorkoutPlan returns the attached plan, nil if there is none.
func (gl *GymLog) WorkoutPlan() *WorkoutPlan {
	return gl.plan
}

func (gl *GymLog) HasWorkoutPlan() bool {
	return gl.plan != nil
}

func (gl *GymLog) AddWorkout(workout *Workout) {
	gl.workouts = append(gl.workouts, workout)
}

// Workouts returns the history in insertion order.
func (gl *GymLog) Workouts() []*Workout {
	return slices.Clone(gl.workouts)
}

// LatestWorkout returns the workout with the most recent date.
func (gl *GymLog) LatestWorkout() (*Workout, bool) {
	if len(gl.workouts) == 0 {
		return nil, false
	}
	latest := gl.workouts[0]
	for _, w := range gl.workouts[1:] {
		if w.After(latest) {
			latest = w
		}
	}
	return latest, true
}

// CreateNextWorkout derives the next workout from the plan and the latest
// workout in history. The result is not added to the history.
func (gl *GymLog) CreateNextWorkout(policy MissingExercisePolicy) (*Workout, error) {
	if gl.plan == nil {
		return nil, ErrMissingWorkoutPlan
	}
	latest, ok := gl.LatestWorkout()
	if !ok {
		return gl.plan.CreateWorkout(nil, policy)
	}
	return gl.plan.CreateWorkout(latest, policy)
}

// Equal compares user and workout plan, history is not taken into account.
func (gl *GymLog) Equal(other *GymLog) bool {
	if gl == nil || other == nil {
		return gl == other
	}
	return gl.userID == other.userID && gl.plan.Equal(other.plan)
}
