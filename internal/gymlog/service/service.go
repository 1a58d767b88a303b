package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymlog/internal/gymlog"
	"github.com/2beens/gymlog/internal/gymlog/repo"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=service_test

// Store starts units of work, see repo.PsqlStore and repo.SqliteStore.
type Store interface {
	Begin(ctx context.Context) (repo.Repository, error)
}

// Request is the state of one unit of work: the repository bound to its
// transaction and the user it runs for (nil before authentication).
type Request struct {
	Repo repo.Repository
	User *gymlog.User
}

type Service struct {
	store          Store
	policy         gymlog.MissingExercisePolicy
	metricsManager *metrics.Manager
}

func NewService(store Store, policy gymlog.MissingExercisePolicy, metricsManager *metrics.Manager) *Service {
	return &Service{
		store:          store,
		policy:         policy,
		metricsManager: metricsManager,
	}
}

// inUnitOfWork runs fn with a fresh Request. The transaction is committed
// when fn succeeds and rolled back otherwise.
func (s *Service) inUnitOfWork(
	ctx context.Context,
	operation string,
	user *gymlog.User,
	fn func(ctx context.Context, req *Request) error,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymlog."+operation)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if user != nil {
		span.SetAttributes(attribute.String("user", user.Username))
	}

	start := time.Now()
	r, err := s.store.Begin(ctx)
	if err != nil {
		s.metricsManager.CounterUnitsOfWork.WithLabelValues(operation, "begin_failed").Inc()
		return fmt.Errorf("begin unit of work: %w", err)
	}

	defer func() {
		result := "commit"
		if err != nil {
			result = "rollback"
			if rbErr := r.Rollback(ctx); rbErr != nil {
				err = multierr.Append(err, fmt.Errorf("rollback: %w", rbErr))
			}
		} else if commitErr := r.Commit(ctx); commitErr != nil {
			result = "commit_failed"
			err = fmt.Errorf("commit: %w", commitErr)
		}
		s.metricsManager.CounterUnitsOfWork.WithLabelValues(operation, result).Inc()
		s.metricsManager.HistogramUnitOfWorkDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	return fn(ctx, &Request{Repo: r, User: user})
}

// RegisterUser registers the user and creates their (empty) gym log.
func (s *Service) RegisterUser(ctx context.Context, username, password string) (*gymlog.User, error) {
	user := gymlog.NewUser(username, password)
	err := s.inUnitOfWork(ctx, "registerUser", nil, func(ctx context.Context, req *Request) error {
		if err := req.Repo.RegisterUser(ctx, user); err != nil {
			return err
		}
		req.User = user
		return req.Repo.SaveGymLog(ctx, gymlog.NewGymLog(user.ID))
	})
	if err != nil {
		return nil, fmt.Errorf("register user [%s]: %w", username, err)
	}

	s.metricsManager.CounterUsersRegistered.Inc()
	log.Debugf("user [%s] registered with id [%d]", user.Username, user.ID)
	return user, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*gymlog.User, error) {
	user := gymlog.NewUser(username, password)
	err := s.inUnitOfWork(ctx, "login", nil, func(ctx context.Context, req *Request) error {
		return req.Repo.LoginUser(ctx, user)
	})
	s.metricsManager.CounterLogins.WithLabelValues(loginOutcome(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("login [%s]: %w", username, err)
	}
	return user, nil
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, repo.ErrIncorrectUsername):
		return "incorrect_username"
	case errors.Is(err, repo.ErrIncorrectPassword):
		return "incorrect_password"
	default:
		return "error"
	}
}

// DeleteUser removes the user and their gym log. The password has to match,
// deleting is done in the same unit of work as the credentials check.
func (s *Service) DeleteUser(ctx context.Context, username, password string) error {
	user := gymlog.NewUser(username, password)
	err := s.inUnitOfWork(ctx, "deleteUser", nil, func(ctx context.Context, req *Request) error {
		if err := req.Repo.LoginUser(ctx, user); err != nil {
			return err
		}
		req.User = user
		return req.Repo.DeleteUser(ctx, user)
	})
	if err != nil {
		return fmt.Errorf("delete user [%s]: %w", username, err)
	}
	log.Debugf("user [%s] deleted", username)
	return nil
}

// AttachWorkoutPlan sets plan as the user's workout plan, replacing the
// current one. A gym log is created if the user has none yet.
func (s *Service) AttachWorkoutPlan(ctx context.Context, user *gymlog.User, plan *gymlog.WorkoutPlan) error {
	if plan == nil {
		return &gymlog.ValidationError{Field: "workout plan", Reason: "must not be nil"}
	}

	err := s.inUnitOfWork(ctx, "attachWorkoutPlan", user, func(ctx context.Context, req *Request) error {
		gymLog, err := req.Repo.LoadGymLog(ctx, req.User)
		if errors.Is(err, repo.ErrUserHasNoGymLog) {
			gymLog = gymlog.NewGymLog(req.User.ID)
			gymLog.AddWorkoutPlan(plan)
			return req.Repo.SaveGymLog(ctx, gymLog)
		}
		if err != nil {
			return err
		}
		gymLog.AddWorkoutPlan(plan)
		return req.Repo.UpdateGymLog(ctx, gymLog, req.User)
	})
	if err != nil {
		return fmt.Errorf("attach workout plan [%s]: %w", plan.Name(), err)
	}

	s.metricsManager.CounterPlansAttached.Inc()
	return nil
}

func (s *Service) WorkoutPlan(ctx context.Context, user *gymlog.User) (*gymlog.WorkoutPlan, error) {
	var plan *gymlog.WorkoutPlan
	err := s.inUnitOfWork(ctx, "workoutPlan", user, func(ctx context.Context, req *Request) error {
		gymLog, err := req.Repo.LoadGymLog(ctx, req.User)
		if err != nil {
			return err
		}
		if !gymLog.HasWorkoutPlan() {
			return gymlog.ErrMissingWorkoutPlan
		}
		plan = gymLog.WorkoutPlan()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get workout plan: %w", err)
	}
	return plan, nil
}

// PreviewNextWorkout derives the next workout without storing it.
func (s *Service) PreviewNextWorkout(ctx context.Context, user *gymlog.User) (*gymlog.Workout, error) {
	var next *gymlog.Workout
	err := s.inUnitOfWork(ctx, "previewNextWorkout", user, func(ctx context.Context, req *Request) error {
		gymLog, err := req.Repo.LoadGymLog(ctx, req.User)
		if err != nil {
			return err
		}
		next, err = s.deriveNext(gymLog)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("preview next workout: %w", err)
	}
	return next, nil
}

// LogNextWorkout derives the next workout and appends it to the history.
func (s *Service) LogNextWorkout(ctx context.Context, user *gymlog.User) (*gymlog.Workout, error) {
	var next *gymlog.Workout
	err := s.inUnitOfWork(ctx, "logNextWorkout", user, func(ctx context.Context, req *Request) error {
		gymLog, err := req.Repo.LoadGymLog(ctx, req.User)
		if err != nil {
			return err
		}
		next, err = s.deriveNext(gymLog)
		if err != nil {
			return err
		}
		gymLog.AddWorkout(next)
		return req.Repo.SaveWorkout(ctx, gymLog, next)
	})
	if err != nil {
		return nil, fmt.Errorf("log next workout: %w", err)
	}

	s.metricsManager.CounterWorkoutsLogged.Inc()
	return next, nil
}

func (s *Service) deriveNext(gymLog *gymlog.GymLog) (*gymlog.Workout, error) {
	source := "plan"
	if _, ok := gymLog.LatestWorkout(); ok {
		source = "history"
	}
	next, err := gymLog.CreateNextWorkout(s.policy)
	if err != nil {
		return nil, err
	}
	s.metricsManager.CounterWorkoutsDerived.WithLabelValues(source).Inc()
	return next, nil
}

// History returns the user's workouts in the order they were logged.
func (s *Service) History(ctx context.Context, user *gymlog.User) ([]*gymlog.Workout, error) {
	var workouts []*gymlog.Workout
	err := s.inUnitOfWork(ctx, "history", user, func(ctx context.Context, req *Request) error {
		gymLog, err := req.Repo.LoadGymLog(ctx, req.User)
		if err != nil {
			return err
		}
		workouts = gymLog.Workouts()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	return workouts, nil
}
