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

package policy

import (
	"fmt"
	"strings"
	"time"

	"github.com/reclaimd/reclaimd/internal/identity"
	"github.com/reclaimd/reclaimd/internal/store"
)

// EmbargoWindow is the period after creation during which a unit is never
// reclaimed, preserving rollback capability.
const EmbargoWindow = 24 * time.Hour

// Action is the outcome of a retention decision.
type Action string

const (
	// Keep retains the unit
	Keep Action = "keep"
	// Delete reclaims the unit
	Delete Action = "delete"
)

// Decision pairs an action with the reason it was taken.
type Decision struct {
	Action Action
	Reason string
}

// ActiveVersions is the point-in-time truth about which versions are live,
// fetched fresh at the start of every run. An empty value means the
// corresponding version is unknown, which always resolves to keeping.
type ActiveVersions struct {
	// Base is the version serving live traffic on the base path
	Base string
	// Sandbox is the version on the sandbox path; empty when the
	// environment has no sandbox concept or the sandbox lookup failed
	Sandbox string
}

// Decide applies the retention rules to one versioned deployment unit.
func Decide(id identity.Identity, createdAt, now time.Time, active ActiveVersions) Decision {
	if id.Kind == identity.KindUnrecognized {
		return Decision{Keep, "name not recognized"}
	}
	if id.Kind == identity.KindPullRequest {
		return Decision{Keep, "pull request unit, decided by review state"}
	}

	if age := now.Sub(createdAt); age < EmbargoWindow {
		return Decision{Keep, fmt.Sprintf("within embargo window (age %s)", age.Round(time.Minute))}
	}

	activeVersion := active.Base
	path := "base"
	if id.Sandbox {
		activeVersion = active.Sandbox
		path = "sandbox"
	}

	if activeVersion == "" {
		return Decision{Keep, fmt.Sprintf("active %s version unknown", path)}
	}
	if NormalizeVersion(id.Version) == NormalizeVersion(activeVersion) {
		return Decision{Keep, fmt.Sprintf("version %s is the active %s version", id.Version, path)}
	}
	return Decision{Delete, fmt.Sprintf("version %s superseded by active %s version %s", id.Version, path, activeVersion)}
}

// NormalizeVersion maps a version string into the form used in deployment
// unit names, replacing dots with hyphens. "v1.2.3" and "v1-2-3" compare
// equal after normalization.
func NormalizeVersion(v string) string {
	return strings.ReplaceAll(v, ".", "-")
}

// SettleResult reports whether the settling guard passed and why.
type SettleResult struct {
	Settled bool
	Reason  string
}

// Settled checks the global guard that precedes every version sweep: the
// non-sandbox unit whose version equals the currently active base version
// must itself be older than the embargo window. When no such unit exists,
// or it is still inside its embargo, the whole batch of version-based
// deletions is skipped for the run.
//
// Only non-sandbox units are inspected when locating the active unit;
// sandbox promotions settle independently.
func Settled(units []store.DeploymentUnit, baseName string, active ActiveVersions, now time.Time) SettleResult {
	if active.Base == "" {
		return SettleResult{false, "active base version unknown"}
	}
	want := NormalizeVersion(active.Base)

	for _, unit := range units {
		id := identity.Parse(unit.Name, baseName)
		if id.Kind != identity.KindVersioned || id.Sandbox {
			continue
		}
		if NormalizeVersion(id.Version) != want {
			continue
		}
		if age := now.Sub(unit.CreatedAt); age < EmbargoWindow {
			return SettleResult{false, fmt.Sprintf("active version %s deployed %s ago, still settling", active.Base, age.Round(time.Minute))}
		}
		return SettleResult{true, fmt.Sprintf("active version %s settled", active.Base)}
	}

	return SettleResult{false, fmt.Sprintf("no unit found for active version %s", active.Base)}
}
