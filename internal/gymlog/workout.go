package gymlog

import (
	"maps"
	"slices"
	"time"
)

// ExerciseSession is what was (or will be) lifted for one exercise in a single workout.
type ExerciseSession struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Workout is an immutable snapshot of one session.
// A zero date means the date is unknown, such workouts sort before any dated one.
type Workout struct {
	date     time.Time
	sessions map[string]ExerciseSession
}

func NewWorkout(sessions map[string]ExerciseSession) *Workout {
	return NewWorkoutAt(time.Now(), sessions)
}

// NewWorkoutAt is used when the date is known up front, i.e. when loading from storage.
func NewWorkoutAt(date time.Time, sessions map[string]ExerciseSession) *Workout {
	return &Workout{
		date:     date,
		sessions: maps.Clone(sessions),
	}
}

func (w *Workout) Date() time.Time {
	return w.date
}

func (w *Workout) Session(key string) (ExerciseSession, bool) {
	s, ok := w.sessions[key]
	return s, ok
}

// Keys returns the exercise keys in sorted order.
func (w *Workout) Keys() []string {
	return slices.Sorted(maps.Keys(w.sessions))
}

// Sessions returns a copy of the exercise sessions.
func (w *Workout) Sessions() map[string]ExerciseSession {
	sessions := maps.Clone(w.sessions)
	if sessions == nil {
		sessions = map[string]ExerciseSession{}
	}
	return sessions
}

// IsEqual compares the sessions only, dates are ignored.
func (w *Workout) IsEqual(other *Workout) bool {
	if other == nil {
		return false
	}
	return maps.Equal(w.sessions, other.sessions)
}

// After reports whether w happened more recently than other.
func (w *Workout) After(other *Workout) bool {
	if w.date.IsZero() {
		return false
	}
	if other == nil || other.date.IsZero() {
		return true
	}
	return w.date.After(other.date)
}
