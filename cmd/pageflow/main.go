package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/browser"
	internalcli "github.com/storefront-qa/pageflow/internal/cli"
	"github.com/storefront-qa/pageflow/internal/config"
	"github.com/storefront-qa/pageflow/internal/database"
	"github.com/storefront-qa/pageflow/internal/repository"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the fixture storefront",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "templates",
				Usage: "directory holding the storefront templates",
				Value: "templates",
			},
		},
		Action: func(c *cli.Context) error {
			serverConfig, err := config.LoadServerConfig(os.Getenv)
			if err != nil {
				return err
			}

			deps, err := internalcli.BuildStorefront(serverConfig, c.String("templates"))
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the UI suites against the configured sites",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "suite",
				Usage: fmt.Sprintf("suite to run: %s, %s or %s", internalcli.SuiteAll, internalcli.SuiteStorefront, internalcli.SuiteRetail),
				Value: internalcli.SuiteAll,
			},
			&cli.BoolFlag{
				Name:  "persist",
				Usage: "record every attempt in PostgreSQL",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadSuiteConfig(os.Getenv)
			if err != nil {
				return fmt.Errorf("invalid suite configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			deps := internalcli.RunDependencies{
				Logger: logrus.StandardLogger(),
				Output: c.App.Writer,
			}

			if c.Bool("persist") {
				if err := database.Connect(ctx, os.Getenv); err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer database.Close()
				if err := database.RunMigrations(ctx); err != nil {
					return fmt.Errorf("failed to run database migrations: %w", err)
				}
				deps.Store = repository.NewAttemptRepository()
			}

			launcher, err := browser.Launch(cfg.Browser, deps.Logger)
			if err != nil {
				return fmt.Errorf("failed to launch browser: %w", err)
			}
			defer launcher.Close()
			deps.Factory = launcher

			_, err = internalcli.RunSuites(ctx, cfg, c.String("suite"), deps)
			if errors.Is(err, internalcli.ErrFailedScenarios) {
				return cli.Exit(err.Error(), 1)
			}
			return err
		},
	}
}

// MigrateCommand returns the migrate command
func MigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the attempt history tables",
		Action: func(c *cli.Context) error {
			ctx := c.Context
			if err := database.Connect(ctx, os.Getenv); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()
			logrus.Info("connected to database")

			return database.RunMigrations(ctx)
		},
	}
}

// configureLogging applies PAGEFLOW_LOG_LEVEL and PAGEFLOW_LOG_FORMAT
func configureLogging(getenv func(string) string) error {
	if lvl := getenv("PAGEFLOW_LOG_LEVEL"); lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("PAGEFLOW_LOG_LEVEL: %w", err)
		}
		logrus.SetLevel(level)
	}
	if getenv("PAGEFLOW_LOG_FORMAT") == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "pageflow",
		Usage:   "UI test suites for the storefront demo",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(),
			RunCommand(),
			MigrateCommand(),
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env file not found, using environment variables")
	}
	if err := configureLogging(os.Getenv); err != nil {
		logrus.Fatal(err)
	}

	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}
