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

// Package store defines the deployment store contract and the enumerator
// that produces the full current set of deployment units.
//
// The DeploymentStore interface models the provider's deployment API:
// token-based pagination for listing and an idempotent delete. The
// Enumerator drains the pagination and filters out units in a terminal
// state so the orchestrator only ever sees live candidates.
//
// A listing failure is surfaced as an error rather than a partial result.
// An incomplete view of the store must never be treated as the complete
// one, since a unit missing from a truncated listing could otherwise be
// mistaken for already deleted.
package store
