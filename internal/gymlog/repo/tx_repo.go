package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymlog/internal/gymlog"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

// txConn is what a storage backend has to provide so txRepo can run the
// gym log queries on top of it. Queries use $N placeholders, in order.
type txConn interface {
	exec(ctx context.Context, query string, args ...any) (int64, error)
	queryRow(ctx context.Context, query string, args ...any) rowScanner
	query(ctx context.Context, query string, args ...any) (resultRows, error)
	commit(ctx context.Context) error
	rollback(ctx context.Context) error

	isNoRows(err error) bool
	isUniqueViolation(err error) bool
	isForeignKeyViolation(err error) bool

	// timeArg converts a workout date to a query argument, zero time is NULL.
	timeArg(t time.Time) any
	// timeDest returns a scan destination and a func reading the scanned date.
	timeDest() (any, func() (time.Time, error))
}

type rowScanner interface {
	Scan(dest ...any) error
}

type resultRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// txRepo implements Repository on top of a single transaction.
type txRepo struct {
	conn     txConn
	backend  string
	hashCost int
}

var _ Repository = (*txRepo)(nil)

func (r *txRepo) spanName(op string) string {
	return "repo.gymlog." + r.backend + "." + op
}

func (r *txRepo) RegisterUser(ctx context.Context, user *gymlog.User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, r.spanName("registerUser"))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if user == nil || user.Username == "" {
		return &gymlog.ValidationError{Field: "username", Reason: "must not be empty"}
	}

	hash, err := pkg.HashPasswordWithCost(user.Password, r.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	var id int
	if err := r.conn.queryRow(ctx, `
		INSERT INTO "user" (username, password_hash) VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
		RETURNING id
	`, user.Username, hash).Scan(&id); err != nil {
		if r.conn.isNoRows(err) || r.conn.isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = id
	return nil
}

func (r *txRepo) LoginUser(ctx context.Context, user *gymlog.User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, r.spanName("loginUser"))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		id   int
		hash string
	)
	if err := r.conn.queryRow(ctx,
		`SELECT id, password_hash FROM "user" WHERE username = $1`,
		user.Username,
	).Scan(&id, &hash); err != nil {
		if r.conn.isNoRows(err) {
			return ErrIncorrectUsername
		}
		return fmt.Errorf("select user: %w", err)
	}

	if !pkg.CheckPasswordHash(user.Password, hash) {
		return ErrIncorrectPassword
	}

	user.ID = id
	return nil
}

// DeleteUser removes the user by username, the gym log and everything
// under it go with it.
func (r *txRepo) DeleteUser(ctx context.Context, user *gymlog.User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, r.spanName("deleteUser"))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	affected, err := r.conn.exec(ctx, `DELETE FROM "user" WHERE username = $1`, user.Username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *txRepo) GetUser(ctx context.Context, id int) (_ *gymlog.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, r.spanName("getUser"))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user := &gymlog.User{}
	if err := r.conn.queryRow(ctx,
		`SELECT id, username FROM "user" WHERE id = $1`, id,
	).Scan(&user.ID, &user.Username); err != nil {
		if r.conn.isNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

func (r *txRepo) SaveGymLog(ctx context.Context, gymLog *gymlog.GymLog) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, r.spanName("saveGymLog"))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var id int
	if err := r.conn.queryRow(ctx,
		`INSERT INTO gym_logs (user_id) VALUES ($1) RETURNING id`, gymLog.UserID(),
	).Scan(&id); err != nil {
		switch {
		case r.conn.isUniqueViolation(err):
			return ErrGymLogAlreadyExists
		case r.conn.isForeignKeyViolation(err):
			return ErrUserNotFound
		}
		return fmt.Errorf("insert gym log: %w", err)
	}
	gymLog.SetID(id)

	if plan := gymLog.WorkoutPlan(); plan != nil {
		if err := r.insertWorkoutPlan(ctx, gymLog.ID(), plan); err != nil {
			return err
		}
	}

	for _, w := range gymLog.Workouts() {
		if err := r.insertWorkout(ctx, gymLog.ID(), w); err != nil {
			return err
		}
	}

	return nil
}

func (r *txRepo) LoadGymLog(ctx context.Context, user *gymlog.User) (_ *gymlog.GymLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, r.spanName("loadGymLog"))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var id, userID int
	if err := r.conn.queryRow(ctx,
		`SELECT id, user_id FROM gym_logs WHERE user_id = $1`, user.ID,
	).Scan(&id, &userID); err != nil {
		if r.conn.isNoRows(err) {
			return nil, ErrUserHasNoGymLog
		}
		return nil, fmt.Errorf("select gym log: %w", err)
	}

	gymLog := gymlog.NewGymLog(userID)
	gymLog.SetID(id)

	plan, err := r.loadWorkoutPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		gymLog.AddWorkoutPlan(plan)
	}

	workouts, err := r.loadWorkouts(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, w := range workouts {
		gymLog.AddWorkout(w)
	}

	return gymLog, nil
}

// UpdateGymLog stores the current state of a saved gym log: its owner and
// its workout plan. A plan that was never stored is inserted, a stored one
// gets its exercise plans replaced. Without a plan, the stored one is removed.
func (r *txRepo) UpdateGymLog(ctx context.Context, gymLog *gymlog.GymLog, user *gymlog.User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, r.spanName("updateGymLog"))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	affected, err := r.conn.exec(ctx,
		`UPDATE gym_logs SET user_id = $1 WHERE id = $2`, user.ID, gymLog.ID(),
	)
	if err != nil {
		switch {
		case r.conn.isUniqueViolation(err):
			return ErrGymLogAlreadyExists
		case r.conn.isForeignKeyViolation(err):
			return ErrUserNotFound
		}
		return fmt.Errorf("update gym log: %w", err)
	}
	if affected == 0 {
		return ErrGymLogNotFound
	}

	plan := gymLog.WorkoutPlan()
	if plan == nil {
		if _, err := r.conn.exec(ctx, `DELETE FROM workout_plans WHERE gym_log_id = $1`, gymLog.ID()); err != nil {
			return fmt.Errorf("delete workout plan: %w", err)
		}
		return nil
	}

	var planID int
	err = r.conn.queryRow(ctx,
		`UPDATE workout_plans SET name = $1 WHERE gym_log_id = $2 RETURNING id`,
		plan.Name(), gymLog.ID(),
	).Scan(&planID)
	if err != nil {
		if r.conn.isNoRows(err) {
			return r.insertWorkoutPlan(ctx, gymLog.ID(), plan)
		}
		return fmt.Errorf("update workout plan: %w", err)
	}
	plan.SetID(planID)

	if _, err := r.conn.exec(ctx, `DELETE FROM exercise_plans WHERE workout_plan_id = $1`, planID); err != nil {
		return fmt.Errorf("delete exercise plans: %w", err)
	}
	return r.insertExercisePlans(ctx, plan)
}

func (r *txRepo) SaveWorkout(ctx context.Context, gymLog *gymlog.GymLog, workout *gymlog.Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, r.spanName("saveWorkout"))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if gymLog.ID() == 0 {
		return ErrGymLogNotFound
	}
	if workout == nil {
		return &gymlog.ValidationError{Field: "workout", Reason: "must not be nil"}
	}
	return r.insertWorkout(ctx, gymLog.ID(), workout)
}

func (r *txRepo) Commit(ctx context.Context) error {
	return r.conn.commit(ctx)
}

func (r *txRepo) Rollback(ctx context.Context) error {
	return r.conn.rollback(ctx)
}

func (r *txRepo) insertWorkoutPlan(ctx context.Context, gymLogID int, plan *gymlog.WorkoutPlan) error {
	var planID int
	if err := r.conn.queryRow(ctx,
		`INSERT INTO workout_plans (gym_log_id, name) VALUES ($1, $2) RETURNING id`,
		gymLogID, plan.Name(),
	).Scan(&planID); err != nil {
		return fmt.Errorf("insert workout plan: %w", err)
	}
	plan.SetID(planID)
	return r.insertExercisePlans(ctx, plan)
}

func (r *txRepo) insertExercisePlans(ctx context.Context, plan *gymlog.WorkoutPlan) error {
	for _, key := range plan.Keys() {
		ep, _ := plan.Exercise(key)
		if _, err := r.conn.exec(ctx, `
			INSERT INTO exercise_plans
				(workout_plan_id, exercise_key, name, sets, reps, initial_weight, progression)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, plan.ID(), key, ep.Name(), ep.Sets(), ep.Reps(), ep.InitialWeight(), ep.Progression()); err != nil {
			return fmt.Errorf("insert exercise plan [%s]: %w", key, err)
		}
	}
	return nil
}

func (r *txRepo) insertWorkout(ctx context.Context, gymLogID int, workout *gymlog.Workout) error {
	var workoutID int
	if err := r.conn.queryRow(ctx,
		`INSERT INTO workouts (gym_log_id, performed_at) VALUES ($1, $2) RETURNING id`,
		gymLogID, r.conn.timeArg(workout.Date()),
	).Scan(&workoutID); err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}

	for _, key := range workout.Keys() {
		session, _ := workout.Session(key)
		if _, err := r.conn.exec(ctx, `
			INSERT INTO workout_exercises (workout_id, exercise_key, name, weight)
			VALUES ($1, $2, $3, $4)
		`, workoutID, key, session.Name, session.Weight); err != nil {
			return fmt.Errorf("insert workout exercise [%s]: %w", key, err)
		}
	}
	return nil
}

// loadWorkoutPlan returns nil when the gym log has no plan attached.
func (r *txRepo) loadWorkoutPlan(ctx context.Context, gymLogID int) (*gymlog.WorkoutPlan, error) {
	var (
		planID int
		name   string
	)
	if err := r.conn.queryRow(ctx,
		`SELECT id, name FROM workout_plans WHERE gym_log_id = $1`, gymLogID,
	).Scan(&planID, &name); err != nil {
		if r.conn.isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select workout plan: %w", err)
	}

	rows, err := r.conn.query(ctx, `
		SELECT exercise_key, name, sets, reps, initial_weight, progression
		FROM exercise_plans
		WHERE workout_plan_id = $1
		ORDER BY exercise_key
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("select exercise plans: %w", err)
	}
	defer rows.Close()

	exercises := map[string]gymlog.ExercisePlan{}
	for rows.Next() {
		var (
			key, epName        string
			sets, reps         int
			weight, progression float64
		)
		if err := rows.Scan(&key, &epName, &sets, &reps, &weight, &progression); err != nil {
			return nil, fmt.Errorf("scan exercise plan: %w", err)
		}
		ep, err := gymlog.NewExercisePlan(epName, sets, reps, weight, progression)
		if err != nil {
			return nil, fmt.Errorf("stored exercise plan [%s]: %w", key, err)
		}
		exercises[key] = ep
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read exercise plans: %w", err)
	}

	plan := gymlog.NewWorkoutPlan(name, exercises)
	plan.SetID(planID)
	return plan, nil
}

// loadWorkouts returns the history in the order it was stored.
func (r *txRepo) loadWorkouts(ctx context.Context, gymLogID int) ([]*gymlog.Workout, error) {
	type storedWorkout struct {
		id       int
		date     time.Time
		sessions map[string]gymlog.ExerciseSession
	}

	rows, err := r.conn.query(ctx,
		`SELECT id, performed_at FROM workouts WHERE gym_log_id = $1 ORDER BY id`, gymLogID,
	)
	if err != nil {
		return nil, fmt.Errorf("select workouts: %w", err)
	}

	var stored []*storedWorkout
	byID := map[int]*storedWorkout{}
	for rows.Next() {
		dest, date := r.conn.timeDest()
		sw := &storedWorkout{sessions: map[string]gymlog.ExerciseSession{}}
		if err := rows.Scan(&sw.id, dest); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		if sw.date, err = date(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("workout [%d] date: %w", sw.id, err)
		}
		stored = append(stored, sw)
		byID[sw.id] = sw
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read workouts: %w", err)
	}

	if len(stored) == 0 {
		return nil, nil
	}

	// both queries run on one connection, the first result set has to be closed
	rows, err = r.conn.query(ctx, `
		SELECT we.workout_id, we.exercise_key, we.name, we.weight
		FROM workout_exercises we
		JOIN workouts w ON w.id = we.workout_id
		WHERE w.gym_log_id = $1
	`, gymLogID)
	if err != nil {
		return nil, fmt.Errorf("select workout exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			workoutID int
			key       string
			session   gymlog.ExerciseSession
		)
		if err := rows.Scan(&workoutID, &key, &session.Name, &session.Weight); err != nil {
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}
		sw, ok := byID[workoutID]
		if !ok {
			return nil, errors.New("workout exercise without a workout")
		}
		sw.sessions[key] = session
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read workout exercises: %w", err)
	}

	workouts := make([]*gymlog.Workout, 0, len(stored))
	for _, sw := range stored {
		workouts = append(workouts, gymlog.NewWorkoutAt(sw.date, sw.sessions))
	}
	return workouts, nil
}
