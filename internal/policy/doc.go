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

// Package policy decides whether a versioned deployment unit is kept or
// reclaimed.
//
// The rules, evaluated in order:
//
//  1. Unrecognized identities are always kept.
//  2. Units younger than the 24 hour embargo window are always kept, so a
//     just-promoted deployment and anything still inside its rollback
//     window survive regardless of version state.
//  3. A versioned unit is compared against the active version for its
//     traffic path (sandbox or base). An unknown active version keeps the
//     unit; a matching version keeps it; anything else is superseded and
//     deleted.
//
// On top of the per-unit rules sits the settling guard: no version-based
// deletion happens in a run until the unit carrying the currently active
// base version has itself been deployed for longer than the embargo
// window. A freshly promoted version must settle before its predecessors
// are reclaimed, so an instant rollback path always exists.
//
// Pull request units are outside this policy's jurisdiction; they are
// gated by the review state checker instead.
//
// Every decision carries a human-readable reason so a run's log trail
// explains exactly why each unit was or was not reclaimed. Decisions are
// pure functions of their inputs; the package performs no I/O.
package policy
