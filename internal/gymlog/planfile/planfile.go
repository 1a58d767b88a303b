// Package planfile reads and writes workout plans as TOML documents:
//
//	name = "Full Body"
//
//	[exercises.bench_press]
//	name = "Bench Press"
//	sets = 3
//	reps = 10
//	initial_weight = 20.0
//	progression = 2.5
package planfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/2beens/gymlog/internal/gymlog"

	"github.com/BurntSushi/toml"
)

var ErrNoExercises = errors.New("plan file has no exercises")

type planDoc struct {
	Name      string                 `toml:"name"`
	Exercises map[string]exerciseDoc `toml:"exercises"`
}

type exerciseDoc struct {
	Name          string  `toml:"name"`
	Sets          int     `toml:"sets"`
	Reps          int     `toml:"reps"`
	InitialWeight float64 `toml:"initial_weight"`
	Progression   float64 `toml:"progression"`
}

func Load(path string) (*gymlog.WorkoutPlan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plan file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a plan document. Unknown keys are rejected, so a typo in a
// field name does not silently turn into a zero value.
func Decode(r io.Reader) (*gymlog.WorkoutPlan, error) {
	var doc planDoc
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode plan file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown keys in plan file: %s", strings.Join(keys, ", "))
	}

	name := strings.TrimSpace(doc.Name)
	if name == "" {
		return nil, &gymlog.ValidationError{Field: "name", Reason: "plan name must not be empty"}
	}
	if len(doc.Exercises) == 0 {
		return nil, ErrNoExercises
	}

	exercises := make(map[string]gymlog.ExercisePlan, len(doc.Exercises))
	for key, e := range doc.Exercises {
		epName := e.Name
		if epName == "" {
			epName = key
		}
		ep, err := gymlog.NewExercisePlan(epName, e.Sets, e.Reps, e.InitialWeight, e.Progression)
		if err != nil {
			return nil, fmt.Errorf("exercise [%s]: %w", key, err)
		}
		exercises[key] = ep
	}

	return gymlog.NewWorkoutPlan(name, exercises), nil
}

func Encode(w io.Writer, plan *gymlog.WorkoutPlan) error {
	doc := planDoc{
		Name:      plan.Name(),
		Exercises: make(map[string]exerciseDoc, plan.Len()),
	}
	for key, ep := range plan.Exercises() {
		doc.Exercises[key] = exerciseDoc{
			Name:          ep.Name(),
			Sets:          ep.Sets(),
			Reps:          ep.Reps(),
			InitialWeight: ep.InitialWeight(),
			Progression:   ep.Progression(),
		}
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return nil
}
