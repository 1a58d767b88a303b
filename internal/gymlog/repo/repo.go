package repo

import (
	"context"
	"errors"

	"github.com/2beens/gymlog/internal/gymlog"
)

var (
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrIncorrectUsername   = errors.New("incorrect username")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserHasNoGymLog     = errors.New("user does not have a gym log")
	ErrGymLogAlreadyExists = errors.New("user already has a gym log")
	ErrGymLogNotFound      = errors.New("gym log not found")
)

//go:generate mockgen -source=$GOFILE -destination=../service/repo_mocks_test.go -package=service_test

// Repository is a unit of work over the gym log store. Every Repository is
// bound to one transaction: nothing is visible to others until Commit, and
// after Commit or Rollback the Repository must not be used again.
type Repository interface {
	// RegisterUser stores the user with a hash of its password and sets user.ID.
	RegisterUser(ctx context.Context, user *gymlog.User) error
	// LoginUser checks the user credentials and sets user.ID.
	LoginUser(ctx context.Context, user *gymlog.User) error
	DeleteUser(ctx context.Context, user *gymlog.User) error
	GetUser(ctx context.Context, id int) (*gymlog.User, error)

	// SaveGymLog stores a new gym log, its workout plan (with exercise plans)
	// and any workouts already in its history. IDs are set on the gym log and plan.
	SaveGymLog(ctx context.Context, gymLog *gymlog.GymLog) error
	LoadGymLog(ctx context.Context, user *gymlog.User) (*gymlog.GymLog, error)
	UpdateGymLog(ctx context.Context, gymLog *gymlog.GymLog, user *gymlog.User) error
	// SaveWorkout appends a single workout to the history of a stored gym log.
	SaveWorkout(ctx context.Context, gymLog *gymlog.GymLog, workout *gymlog.Workout) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
