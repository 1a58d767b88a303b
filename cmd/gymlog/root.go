package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/gymlog"
	"github.com/2beens/gymlog/internal/gymlog/service"
	"github.com/2beens/gymlog/internal/logging"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	serviceName       = "gymlog"
	metricsJobName    = "gymlog_cli"
	passwordEnvVarKey = "GYMLOG_PASSWORD"
)

// app holds everything a single CLI invocation sets up and tears down.
type app struct {
	out io.Writer

	env        string
	configPath string
	username   string
	password   string

	cfg      *config.Config
	store    gymLogStore
	svc      *service.Service
	registry *prometheus.Registry
	closers  []func()
}

func newApp(out io.Writer) *app {
	return &app{out: out}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gymlog",
		Short: "Progressive overload gym log",
		Long: `gymlog keeps a workout plan per user and derives the next workout from it:
every exercise starts at its initial weight and goes up by its progression
each time it is logged.

QUICK START:

  $ gymlog init-schema
  $ gymlog register -u alice -p secret
  $ gymlog plan set full_body.toml -u alice -p secret
  $ gymlog next -u alice -p secret      # preview the next workout
  $ gymlog log -u alice -p secret       # log it
  $ gymlog history -u alice -p secret

The password can also be passed through the ` + passwordEnvVarKey + ` env var.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return a.setup(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.env, "env", "development", "environment [dev | development | prod | production]")
	root.PersistentFlags().StringVar(&a.configPath, "config", "./config.toml", "path for the TOML config file")
	root.PersistentFlags().StringVarP(&a.username, "username", "u", "", "username")
	root.PersistentFlags().StringVarP(&a.password, "password", "p", "", "password (or "+passwordEnvVarKey+" env var)")

	root.AddCommand(
		a.initSchemaCmd(),
		a.registerCmd(),
		a.deleteUserCmd(),
		a.planCmd(),
		a.nextCmd(),
		a.logCmd(),
		a.historyCmd(),
	)
	return root
}

func (a *app) setup(ctx context.Context) error {
	cfg, err := config.Load(a.env, a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        cfg.SentryDSN,
		SentryServerName: serviceName,
	})
	log.Debugf("running in [%s] environment with [%s] storage", cfg.Environment, cfg.DBDriver)

	tracingShutdown, err := tracing.HoneycombSetup(cfg.TracingEnabled, serviceName)
	if err != nil {
		log.Errorf("honeycomb setup: %s", err)
	} else {
		a.closers = append(a.closers, tracingShutdown)
	}

	policy, err := gymlog.ParseMissingExercisePolicy(cfg.MissingExercisePolicy)
	if err != nil {
		return err
	}

	storeCollectors, err := a.openStore(ctx)
	if err != nil {
		return err
	}

	a.registry = metrics.SetupPrometheus(storeCollectors...)
	metricsManager := metrics.NewManager("gymlog", "cli", a.registry)
	a.svc = service.NewService(a.store, policy, metricsManager)
	return nil
}

// shutdown pushes metrics and releases everything setup acquired, in reverse order.
func (a *app) shutdown() {
	if a.cfg != nil && a.cfg.PushgatewayURL != "" && a.registry != nil {
		if err := metrics.PushToGateway(a.cfg.PushgatewayURL, metricsJobName, a.registry); err != nil {
			log.Errorf("push metrics: %s", err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *app) credentials() (string, string, error) {
	password := a.password
	if password == "" {
		password = os.Getenv(passwordEnvVarKey)
	}
	if a.username == "" || password == "" {
		return "", "", errors.New("username and password are required (--username, --password)")
	}
	return a.username, password, nil
}

// login authenticates the CLI user, every gym log command runs as that user.
func (a *app) login(ctx context.Context) (*gymlog.User, error) {
	username, password, err := a.credentials()
	if err != nil {
		return nil, err
	}
	return a.svc.Login(ctx, username, password)
}
