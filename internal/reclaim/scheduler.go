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

package reclaim

import (
	"context"
	"time"

	"github.com/go-logr/logr"
)

// Scheduler runs both reclamation sweeps periodically until its context
// is cancelled. A failed pass is logged and the scheduler continues to
// the next tick; transient provider trouble must not stop reclamation
// for good.
type Scheduler struct {
	orchestrator *Orchestrator
	interval     time.Duration
}

// NewScheduler creates a scheduler that sweeps every interval.
func NewScheduler(o *Orchestrator, interval time.Duration) *Scheduler {
	return &Scheduler{
		orchestrator: o,
		interval:     interval,
	}
}

// Start blocks, sweeping at the configured interval, and returns nil on
// graceful shutdown via context cancellation.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger := logr.FromContextOrDiscard(ctx)
	logger.Info("Starting reclamation scheduler", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping reclamation scheduler")
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs one version pass and one pull request pass back to back.
// The sweeps share the orchestrator's per-base-name guard, so they never
// interleave with each other or with an externally triggered run.
func (s *Scheduler) sweep(ctx context.Context) {
	logger := logr.FromContextOrDiscard(ctx)

	if _, err := s.orchestrator.SweepVersions(ctx); err != nil && ctx.Err() == nil {
		logger.Error(err, "Version sweep failed")
	}
	if _, err := s.orchestrator.SweepPullRequests(ctx); err != nil && ctx.Err() == nil {
		logger.Error(err, "Pull request sweep failed")
	}
}
