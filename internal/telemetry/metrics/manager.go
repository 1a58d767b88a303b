package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterUsersRegistered prometheus.Counter
	CounterLogins          *prometheus.CounterVec
	CounterWorkoutsDerived *prometheus.CounterVec
	CounterWorkoutsLogged  prometheus.Counter
	CounterPlansAttached   prometheus.Counter
	CounterUnitsOfWork     *prometheus.CounterVec

	// histograms
	HistogramUnitOfWorkDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("gymlog", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("gymlog", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterUsersRegistered := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "users_registered",
		Help:      "The total number of registered users",
	})
	counterLogins := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "logins",
		Help:      "The total number of login attempts",
	}, []string{"outcome"})
	counterWorkoutsDerived := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_derived",
		Help:      "The total number of workouts derived from a workout plan",
	}, []string{"source"})
	counterWorkoutsLogged := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_logged",
		Help:      "The total number of workouts added to gym logs",
	})
	counterPlansAttached := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workout_plans_attached",
		Help:      "The total number of workout plans attached to gym logs",
	})
	counterUnitsOfWork := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "units_of_work",
		Help:      "The total number of units of work, by operation and result",
	}, []string{"operation", "result"})

	histogramUnitOfWorkDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "unit_of_work_duration_seconds",
		Help:      "Histogram of unit of work duration in seconds",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"operation"})

	return &Manager{
		CounterUsersRegistered:      counterUsersRegistered,
		CounterLogins:               counterLogins,
		CounterWorkoutsDerived:      counterWorkoutsDerived,
		CounterWorkoutsLogged:       counterWorkoutsLogged,
		CounterPlansAttached:        counterPlansAttached,
		CounterUnitsOfWork:          counterUnitsOfWork,
		HistogramUnitOfWorkDuration: histogramUnitOfWorkDuration,
	}
}
