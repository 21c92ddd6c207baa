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

// Package reclaim runs the reclamation sweeps that delete stale
// deployment units and clean up their DNS aliases.
//
// An Orchestrator exposes two entry points that may run on independent
// schedules:
//
//   - SweepVersions deletes versioned units superseded by the currently
//     active version, once that version has settled past its embargo.
//   - SweepPullRequests deletes units whose pull request has been closed.
//
// Each sweep re-derives all of its inputs from the external systems: it
// holds no state between runs, so truth is always as fresh as the run's
// first reads. Deletions are fully sequential with a cooldown between
// them; the provider rate-limits destructive calls, and serializing them
// is far cheaper than retrying throttled bursts. Cancellation is
// cooperative between deletions, never mid-deletion, and a cancelled run
// leaves unreached units untouched.
//
// Both entry points share a per-base-name guard so that overlapping
// sweeps of the same base name within one process are rejected rather
// than interleaved. Overlap across processes must be prevented by the
// operator's scheduler.
//
// A single failed deletion is logged and skipped, never fatal; a failed
// enumeration aborts the run before anything is deleted.
package reclaim
