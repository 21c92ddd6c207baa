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

	"github.com/reclaimd/reclaimd/internal/dns"
	"github.com/reclaimd/reclaimd/internal/identity"
	"github.com/reclaimd/reclaimd/internal/oracle"
	"github.com/reclaimd/reclaimd/internal/policy"
	"github.com/reclaimd/reclaimd/internal/store"
)

// DefaultCooldown is the pause after each deletion. The provider
// rate-limits destructive calls per account; consecutive deletes without
// a pause tend to get throttled.
const DefaultCooldown = 10 * time.Second

// VersionOracle supplies the point-in-time active versions for a run.
type VersionOracle interface {
	Snapshot(ctx context.Context, profile oracle.EnvironmentProfile) policy.ActiveVersions
}

// ReviewChecker reports whether a pull request has been closed.
type ReviewChecker interface {
	IsClosed(ctx context.Context, pullRequestID string) bool
}

// Options configures an Orchestrator.
type Options struct {
	// BaseName is the stack name prefix all candidate units share
	BaseName string
	// ZoneName is the DNS zone holding alias records; empty disables
	// alias cleanup entirely
	ZoneName string
	// Profile locates the environment's status endpoints
	Profile oracle.EnvironmentProfile
	// Cooldown overrides DefaultCooldown when positive
	Cooldown time.Duration
	// DryRun logs every decision but performs no destructive call
	DryRun bool
}

// Summary is the outcome of one sweep.
type Summary struct {
	Examined int
	Deleted  int
	Kept     int
	Failed   int
}

// Orchestrator wires the enumerator, policy, review checker and alias
// directory into the two reclamation sweeps.
type Orchestrator struct {
	store      store.DeploymentStore
	enumerator *store.Enumerator
	aliases    *dns.Directory
	oracle     VersionOracle
	reviews    ReviewChecker
	opts       Options
	guard      *sweepGuard
	now        func() time.Time
}

// NewOrchestrator creates an orchestrator. The review checker may be nil
// when pull request sweeps are not used, and the oracle may be nil when
// version sweeps are not used.
func NewOrchestrator(s store.DeploymentStore, aliases *dns.Directory, versions VersionOracle, reviews ReviewChecker, opts Options) *Orchestrator {
	if opts.Cooldown <= 0 {
		opts.Cooldown = DefaultCooldown
	}
	return &Orchestrator{
		store:      s,
		enumerator: store.NewEnumerator(s),
		aliases:    aliases,
		oracle:     versions,
		reviews:    reviews,
		opts:       opts,
		guard:      newSweepGuard(),
		now:        time.Now,
	}
}

// SweepVersions reclaims versioned units superseded by the active
// version. The whole sweep is skipped when the active version has not
// yet settled past its embargo window, preserving an instant rollback
// path for fresh promotions.
func (o *Orchestrator) SweepVersions(ctx context.Context) (Summary, error) {
	logger := logr.FromContextOrDiscard(ctx).WithValues("sweep", "versions", "base", o.opts.BaseName)

	if err := o.guard.acquire(o.opts.BaseName); err != nil {
		return Summary{}, err
	}
	defer o.guard.release(o.opts.BaseName)

	active := o.oracle.Snapshot(ctx, o.opts.Profile)
	logger.Info("Fetched active versions", "baseVersion", active.Base, "sandboxVersion", active.Sandbox)

	units, err := o.enumerator.ListAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{Examined: len(units)}
	now := o.now()

	if settle := policy.Settled(units, o.opts.BaseName, active, now); !settle.Settled {
		logger.Info("Skipping version sweep", "reason", settle.Reason)
		summary.Kept = len(units)
		return summary, nil
	}

	index, err := o.aliases.BuildIndex(ctx, o.opts.ZoneName)
	if err != nil {
		return summary, err
	}

	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			logger.Info("Sweep cancelled", "remaining", summary.Examined-summary.Deleted-summary.Kept-summary.Failed)
			return summary, err
		}

		id := identity.Parse(unit.Name, o.opts.BaseName)
		decision := policy.Decide(id, unit.CreatedAt, now, active)
		if decision.Action == policy.Keep {
			logger.V(1).Info("Keeping deployment", "unit", unit.Name, "reason", decision.Reason)
			summary.Kept++
			continue
		}

		logger.Info("Reclaiming deployment", "unit", unit.Name, "reason", decision.Reason)
		if err := o.deleteUnit(ctx, index, unit.Name); err != nil {
			logger.Error(err, "Failed to reclaim deployment", "unit", unit.Name)
			summary.Failed++
			continue
		}
		summary.Deleted++
	}

	logger.Info("Version sweep complete",
		"examined", summary.Examined, "deleted", summary.Deleted,
		"kept", summary.Kept, "failed", summary.Failed)
	return summary, nil
}

// SweepPullRequests reclaims pull request units whose pull request has
// been closed. Version-based retention plays no part here; a closed PR
// is the only deletion signal, and any doubt about the PR's state keeps
// the unit.
func (o *Orchestrator) SweepPullRequests(ctx context.Context) (Summary, error) {
	logger := logr.FromContextOrDiscard(ctx).WithValues("sweep", "pull-requests", "base", o.opts.BaseName)

	if err := o.guard.acquire(o.opts.BaseName); err != nil {
		return Summary{}, err
	}
	defer o.guard.release(o.opts.BaseName)

	units, err := o.enumerator.ListAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{Examined: len(units)}

	index, err := o.aliases.BuildIndex(ctx, o.opts.ZoneName)
	if err != nil {
		return summary, err
	}

	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			logger.Info("Sweep cancelled", "remaining", summary.Examined-summary.Deleted-summary.Kept-summary.Failed)
			return summary, err
		}

		id := identity.Parse(unit.Name, o.opts.BaseName)
		if id.Kind != identity.KindPullRequest {
			logger.V(1).Info("Keeping deployment", "unit", unit.Name, "reason", "not a pull request unit")
			summary.Kept++
			continue
		}

		if !o.reviews.IsClosed(ctx, id.PullRequestID) {
			logger.Info("Keeping deployment", "unit", unit.Name, "reason", "pull request open or state unknown", "pr", id.PullRequestID)
			summary.Kept++
			continue
		}

		logger.Info("Reclaiming deployment", "unit", unit.Name, "reason", "pull request closed", "pr", id.PullRequestID)
		if err := o.deleteUnit(ctx, index, unit.Name); err != nil {
			logger.Error(err, "Failed to reclaim deployment", "unit", unit.Name)
			summary.Failed++
			continue
		}
		summary.Deleted++
	}

	logger.Info("Pull request sweep complete",
		"examined", summary.Examined, "deleted", summary.Deleted,
		"kept", summary.Kept, "failed", summary.Failed)
	return summary, nil
}

// deleteUnit deletes one deployment unit, waits out the cooldown, then
// removes its alias records. Deletion errors abort this unit only; alias
// cleanup failure after a successful store delete is reported the same
// way so the operator sees the orphaned records.
func (o *Orchestrator) deleteUnit(ctx context.Context, index *dns.AliasIndex, name string) error {
	logger := logr.FromContextOrDiscard(ctx)

	if o.opts.DryRun {
		logger.Info("Dry run, skipping deletion", "unit", name)
		return nil
	}

	if err := o.store.Delete(ctx, name); err != nil {
		return err
	}
	o.cooldown(ctx)
	return o.aliases.DeleteMatching(ctx, index, name)
}

// cooldown waits the configured pause between destructive calls. A
// cancelled context cuts the wait short; the cancellation itself is
// observed at the top of the sweep loop.
func (o *Orchestrator) cooldown(ctx context.Context) {
	timer := time.NewTimer(o.opts.Cooldown)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
