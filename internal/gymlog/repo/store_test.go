package repo

import (
	"context"
	"testing"
	"time"

	"github.com/2beens/gymlog/internal/gymlog"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore is satisfied by both PsqlStore and SqliteStore, the tests
// below run against each of them.
type testStore interface {
	Begin(ctx context.Context) (Repository, error)
	EnsureSchema(ctx context.Context) error
}

type storeTest struct {
	name string
	run  func(t *testing.T, store testStore)
}

var storeTests = []storeTest{
	{"RegisterAndLogin", testRegisterAndLogin},
	{"RegisterDuplicate", testRegisterDuplicate},
	{"RollbackDiscardsChanges", testRollbackDiscardsChanges},
	{"SaveAndLoadEmptyGymLog", testSaveAndLoadEmptyGymLog},
	{"SaveAndLoadGymLogWithPlan", testSaveAndLoadGymLogWithPlan},
	{"SaveGymLogErrors", testSaveGymLogErrors},
	{"LoadGymLogMissing", testLoadGymLogMissing},
	{"UpdateGymLog", testUpdateGymLog},
	{"SaveWorkoutAndHistory", testSaveWorkoutAndHistory},
	{"DeleteUserCascades", testDeleteUserCascades},
	{"GetUser", testGetUser},
}

// inTx runs fn in a fresh unit of work and commits it when fn passes.
func inTx(t *testing.T, store testStore, fn func(ctx context.Context, r Repository)) {
	t.Helper()
	ctx := context.Background()
	r, err := store.Begin(ctx)
	require.NoError(t, err)

	committed := false
	defer func() {
		if !committed {
			_ = r.Rollback(ctx)
		}
	}()

	fn(ctx, r)
	if t.Failed() {
		return
	}
	require.NoError(t, r.Commit(ctx))
	committed = true
}

// inFailingTx runs fn and always rolls back, for calls that are expected
// to fail (postgres aborts the transaction on a failed statement).
func inFailingTx(t *testing.T, store testStore, fn func(ctx context.Context, r Repository)) {
	t.Helper()
	ctx := context.Background()
	r, err := store.Begin(ctx)
	require.NoError(t, err)
	defer func() {
		_ = r.Rollback(ctx)
	}()
	fn(ctx, r)
}

func registerTestUser(t *testing.T, store testStore) *gymlog.User {
	t.Helper()
	user := gymlog.NewUser(gofakeit.Username()+gofakeit.DigitN(6), gofakeit.Password(true, true, true, false, false, 12))
	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.RegisterUser(ctx, user))
	})
	require.NotZero(t, user.ID)
	return user
}

func testWorkoutPlan(t *testing.T) *gymlog.WorkoutPlan {
	t.Helper()
	bench, err := gymlog.NewExercisePlan("Bench Press", 3, 10, 20, 5)
	require.NoError(t, err)
	squat, err := gymlog.NewExercisePlan("Squat", 4, 8, 30.5, 2.5)
	require.NoError(t, err)
	return gymlog.NewWorkoutPlan("Full Body", map[string]gymlog.ExercisePlan{
		"bench-press_1": bench,
		"Squat (back)":  squat,
	})
}

func testRegisterAndLogin(t *testing.T, store testStore) {
	user := gymlog.NewUser("alice", "pw1")
	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.RegisterUser(ctx, user))
	})
	assert.NotZero(t, user.ID)

	login := gymlog.NewUser("alice", "pw1")
	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.LoginUser(ctx, login))
	})
	assert.Equal(t, user.ID, login.ID)

	inFailingTx(t, store, func(ctx context.Context, r Repository) {
		err := r.LoginUser(ctx, gymlog.NewUser("alice", "wrong"))
		assert.ErrorIs(t, err, ErrIncorrectPassword)
	})
	inFailingTx(t, store, func(ctx context.Context, r Repository) {
		err := r.LoginUser(ctx, gymlog.NewUser("bob", "pw1"))
		assert.ErrorIs(t, err, ErrIncorrectUsername)
	})
}

func testRegisterDuplicate(t *testing.T, store testStore) {
	user := registerTestUser(t, store)

	inFailingTx(t, store, func(ctx context.Context, r Repository) {
		dup := gymlog.NewUser(user.Username, "something else")
		assert.ErrorIs(t, r.RegisterUser(ctx, dup), ErrUserAlreadyExists)
		assert.Zero(t, dup.ID)
	})

	inFailingTx(t, store, func(ctx context.Context, r Repository) {
		err := r.RegisterUser(ctx, gymlog.NewUser("", "pw"))
		assert.ErrorIs(t, err, gymlog.ErrInvalidArgument)
	})
}

func testRollbackDiscardsChanges(t *testing.T, store testStore) {
	ctx := context.Background()
	r, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, r.RegisterUser(ctx, gymlog.NewUser("carol", "pw")))
	require.NoError(t, r.Rollback(ctx))

	inFailingTx(t, store, func(ctx context.Context, r Repository) {
		assert.ErrorIs(t, r.LoginUser(ctx, gymlog.NewUser("carol", "pw")), ErrIncorrectUsername)
	})
}

func testSaveAndLoadEmptyGymLog(t *testing.T, store testStore) {
	user := gymlog.NewUser("alice", "pw1")
	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.RegisterUser(ctx, user))
		require.NoError(t, r.SaveGymLog(ctx, gymlog.NewGymLog(user.ID)))
	})

	inTx(t, store, func(ctx context.Context, r Repository) {
		loaded, err := r.LoadGymLog(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, user.ID, loaded.UserID())
		assert.NotZero(t, loaded.ID())
		assert.False(t, loaded.HasWorkoutPlan())
		assert.Empty(t, loaded.Workouts())
		assert.True(t, loaded.Equal(gymlog.NewGymLog(user.ID)))
	})
}

func testSaveAndLoadGymLogWithPlan(t *testing.T, store testStore) {
	user := registerTestUser(t, store)
	plan := testWorkoutPlan(t)

	gymLog := gymlog.NewGymLog(user.ID)
	gymLog.AddWorkoutPlan(plan)
	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.SaveGymLog(ctx, gymLog))
	})
	require.NotZero(t, gymLog.ID())
	require.NotZero(t, gymLog.WorkoutPlan().ID())

	inTx(t, store, func(ctx context.Context, r Repository) {
		loaded, err := r.LoadGymLog(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, gymLog.ID(), loaded.ID())
		require.True(t, loaded.HasWorkoutPlan())
		assert.Equal(t, gymLog.WorkoutPlan().ID(), loaded.WorkoutPlan().ID())
		assert.True(t, loaded.WorkoutPlan().Equal(plan))
		assert.Equal(t, []string{"Squat (back)", "bench-press_1"}, loaded.WorkoutPlan().Keys())
		assert.True(t, loaded.Equal(gymLog))
	})
}

func testSaveGymLogErrors(t *testing.T, store testStore) {
	user := registerTestUser(t, store)
	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.SaveGymLog(ctx, gymlog.NewGymLog(user.ID)))
	})

	inFailingTx(t, store, func(ctx context.Context, r Repository) {
		err := r.SaveGymLog(ctx, gymlog.NewGymLog(user.ID))
		assert.ErrorIs(t, err, ErrGymLogAlreadyExists)
	})
	inFailingTx(t, store, func(ctx context.Context, r Repository) {
		err := r.SaveGymLog(ctx, gymlog.NewGymLog(user.ID+1000))
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func testLoadGymLogMissing(t *testing.T, store testStore) {
	user := registerTestUser(t, store)
	inFailingTx(t, store, func(ctx context.Context, r Repository) {
		_, err := r.LoadGymLog(ctx, user)
		assert.ErrorIs(t, err, ErrUserHasNoGymLog)
	})
}

func testUpdateGymLog(t *testing.T, store testStore) {
	user := registerTestUser(t, store)
	gymLog := gymlog.NewGymLog(user.ID)
	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.SaveGymLog(ctx, gymLog))
	})

	// first plan gets inserted
	gymLog.AddWorkoutPlan(testWorkoutPlan(t))
	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.UpdateGymLog(ctx, gymLog, user))
	})
	firstPlanID := gymLog.WorkoutPlan().ID()
	require.NotZero(t, firstPlanID)

	// replacing the plan replaces its exercise plans
	deadlift, err := gymlog.NewExercisePlan("Deadlift", 1, 5, 100, 5)
	require.NoError(t, err)
	replacement := gymlog.NewWorkoutPlan("Pull Day", map[string]gymlog.ExercisePlan{"deadlift": deadlift})
	gymLog.AddWorkoutPlan(replacement)
	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.UpdateGymLog(ctx, gymLog, user))
	})

	inTx(t, store, func(ctx context.Context, r Repository) {
		loaded, err := r.LoadGymLog(ctx, user)
		require.NoError(t, err)
		assert.True(t, loaded.WorkoutPlan().Equal(replacement))
		assert.Equal(t, firstPlanID, loaded.WorkoutPlan().ID())
		assert.Equal(t, []string{"deadlift"}, loaded.WorkoutPlan().Keys())
	})

	gymLog.AddWorkoutPlan(nil)
	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.UpdateGymLog(ctx, gymLog, user))
	})
	inTx(t, store, func(ctx context.Context, r Repository) {
		loaded, err := r.LoadGymLog(ctx, user)
		require.NoError(t, err)
		assert.False(t, loaded.HasWorkoutPlan())
	})

	inFailingTx(t, store, func(ctx context.Context, r Repository) {
		err := r.UpdateGymLog(ctx, gymlog.NewGymLog(user.ID), user)
		assert.ErrorIs(t, err, ErrGymLogNotFound)
	})
}

func testSaveWorkoutAndHistory(t *testing.T, store testStore) {
	user := registerTestUser(t, store)
	gymLog := gymlog.NewGymLog(user.ID)
	gymLog.AddWorkoutPlan(testWorkoutPlan(t))
	undated := gymlog.NewWorkoutAt(time.Time{}, map[string]gymlog.ExerciseSession{
		"bench-press_1": {Name: "Bench Press", Weight: 10},
	})
	gymLog.AddWorkout(undated)
	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.SaveGymLog(ctx, gymLog))
	})

	first := gymlog.NewWorkoutAt(time.Now().Add(-48*time.Hour), map[string]gymlog.ExerciseSession{
		"bench-press_1": {Name: "Bench Press", Weight: 20},
		"Squat (back)":  {Name: "Squat", Weight: 30.5},
	})
	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.SaveWorkout(ctx, gymLog, first))
	})
	gymLog.AddWorkout(first)

	expectedNext, err := gymLog.CreateNextWorkout(gymlog.FailOnMissingExercise)
	require.NoError(t, err)

	inTx(t, store, func(ctx context.Context, r Repository) {
		loaded, err := r.LoadGymLog(ctx, user)
		require.NoError(t, err)

		history := loaded.Workouts()
		require.Len(t, history, 2)
		assert.True(t, history[0].Date().IsZero())
		assert.True(t, history[0].IsEqual(undated))
		assert.True(t, history[1].IsEqual(first))
		assert.WithinDuration(t, first.Date(), history[1].Date(), time.Millisecond)

		next, err := loaded.CreateNextWorkout(gymlog.FailOnMissingExercise)
		require.NoError(t, err)
		assert.True(t, next.IsEqual(expectedNext))
		squat, ok := next.Session("Squat (back)")
		require.True(t, ok)
		assert.Equal(t, 33.0, squat.Weight)
	})

	inFailingTx(t, store, func(ctx context.Context, r Repository) {
		assert.ErrorIs(t, r.SaveWorkout(ctx, gymlog.NewGymLog(user.ID), first), ErrGymLogNotFound)
	})
}

func testDeleteUserCascades(t *testing.T, store testStore) {
	user := registerTestUser(t, store)
	gymLog := gymlog.NewGymLog(user.ID)
	gymLog.AddWorkoutPlan(testWorkoutPlan(t))
	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.SaveGymLog(ctx, gymLog))
		w, err := gymLog.CreateNextWorkout(gymlog.FailOnMissingExercise)
		require.NoError(t, err)
		require.NoError(t, r.SaveWorkout(ctx, gymLog, w))
	})

	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.DeleteUser(ctx, user))
	})

	inFailingTx(t, store, func(ctx context.Context, r Repository) {
		_, err := r.LoadGymLog(ctx, user)
		assert.ErrorIs(t, err, ErrUserHasNoGymLog)
	})
	inFailingTx(t, store, func(ctx context.Context, r Repository) {
		_, err := r.GetUser(ctx, user.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
	inFailingTx(t, store, func(ctx context.Context, r Repository) {
		assert.ErrorIs(t, r.DeleteUser(ctx, user), ErrUserNotFound)
	})

	// username is free again
	inTx(t, store, func(ctx context.Context, r Repository) {
		require.NoError(t, r.RegisterUser(ctx, gymlog.NewUser(user.Username, "new password")))
	})
}

func testGetUser(t *testing.T, store testStore) {
	user := registerTestUser(t, store)
	inTx(t, store, func(ctx context.Context, r Repository) {
		got, err := r.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Username, got.Username)
		assert.Empty(t, got.Password)
	})
}
