// Copyright 2025 The Reclaimd Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// reclaimd reclaims stale preview deployments: versioned units superseded
// by the active version, and pull request units whose pull request closed.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reclaimd/reclaimd/internal/config"
	"github.com/reclaimd/reclaimd/internal/dns"
	"github.com/reclaimd/reclaimd/internal/github"
	"github.com/reclaimd/reclaimd/internal/oracle"
	"github.com/reclaimd/reclaimd/internal/provider"
	"github.com/reclaimd/reclaimd/internal/reclaim"
)

var (
	configPath  string
	dryRun      bool
	verbose     bool
	baseName    string
	zoneName    string
	repository  string
	environment string
)

var rootCmd = &cobra.Command{
	Use:   "reclaimd",
	Short: "Reclaims stale preview deployments and their DNS aliases",
	Long: `reclaimd enumerates a base stack's deployment units, decides per
unit whether it is safe to reclaim, and deletes superseded units along
with their DNS alias records. Anything it cannot positively account for
is kept.`,
	SilenceUsage: true,
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one reclamation sweep and exit",
}

var sweepVersionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Reclaim versioned units superseded by the active version",
	RunE:  runSweepVersions,
}

var sweepPullRequestsCmd = &cobra.Command{
	Use:   "prs",
	Short: "Reclaim pull request units whose pull request has closed",
	RunE:  runSweepPullRequests,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run both sweeps periodically until interrupted",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "reclaimd.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Log every decision but perform no destructive call")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&baseName, "base", "", "Override the configured base stack name")
	rootCmd.PersistentFlags().StringVar(&zoneName, "zone", "", "Override the configured DNS zone")
	rootCmd.PersistentFlags().StringVar(&repository, "repository", "", "Override the configured owner/name repository")
	rootCmd.PersistentFlags().StringVar(&environment, "environment", "", "Override the configured environment")

	sweepCmd.AddCommand(sweepVersionsCmd)
	sweepCmd.AddCommand(sweepPullRequestsCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the process logger: zap with ISO8601 timestamps,
// wrapped in logr so every package logs through the same interface.
func newLogger() (logr.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zapLogger, err := zapConfig.Build()
	if err != nil {
		return logr.Logger{}, fmt.Errorf("failed to build logger: %w", err)
	}
	return zapr.NewLogger(zapLogger), nil
}

// setup loads configuration and returns a signal-cancelled context
// carrying the logger. Ctrl-C or SIGTERM cancels the sweep cooperatively.
func setup() (context.Context, context.CancelFunc, *config.Config, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if baseName != "" {
		cfg.BaseName = baseName
	}
	if zoneName != "" {
		cfg.ZoneName = zoneName
	}
	if repository != "" {
		cfg.Repository = repository
	}
	if environment != "" {
		cfg.Environment = environment
	}

	ctx := logr.NewContext(context.Background(), logger)
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	return ctx, cancel, cfg, nil
}

// buildOrchestrator wires the provider adapters, the version oracle and
// optionally the pull request checker into an orchestrator.
func buildOrchestrator(cfg *config.Config, withReviews bool) (*reclaim.Orchestrator, error) {
	if cfg.ProviderURL == "" {
		return nil, fmt.Errorf("providerURL is required")
	}

	profile, err := cfg.Profile()
	if err != nil {
		return nil, err
	}

	var reviews reclaim.ReviewChecker
	if withReviews {
		if cfg.Repository == "" {
			return nil, fmt.Errorf("repository is required for pull request sweeps")
		}
		checker, err := github.NewReviewStateChecker(github.NewClient(cfg.GitHubToken), cfg.Repository)
		if err != nil {
			return nil, err
		}
		reviews = checker
	}

	client := provider.NewClient(cfg.ProviderURL, cfg.ProviderToken, nil)
	return reclaim.NewOrchestrator(
		client.Deployments(),
		dns.NewDirectory(client.DNS()),
		oracle.NewClient(nil),
		reviews,
		reclaim.Options{
			BaseName: cfg.BaseName,
			ZoneName: cfg.ZoneName,
			Profile:  profile,
			Cooldown: cfg.Cooldown(),
			DryRun:   dryRun,
		},
	), nil
}

func runSweepVersions(cmd *cobra.Command, args []string) error {
	ctx, cancel, cfg, err := setup()
	if err != nil {
		return err
	}
	defer cancel()

	orchestrator, err := buildOrchestrator(cfg, false)
	if err != nil {
		return err
	}
	_, err = orchestrator.SweepVersions(ctx)
	return err
}

func runSweepPullRequests(cmd *cobra.Command, args []string) error {
	ctx, cancel, cfg, err := setup()
	if err != nil {
		return err
	}
	defer cancel()

	orchestrator, err := buildOrchestrator(cfg, true)
	if err != nil {
		return err
	}
	_, err = orchestrator.SweepPullRequests(ctx)
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel, cfg, err := setup()
	if err != nil {
		return err
	}
	defer cancel()

	orchestrator, err := buildOrchestrator(cfg, true)
	if err != nil {
		return err
	}
	return reclaim.NewScheduler(orchestrator, cfg.SweepInterval()).Start(ctx)
}
