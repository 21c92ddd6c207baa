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

// Package oracle reads the currently live version of an environment from
// its status endpoint.
//
// Each environment exposes GET https://{domain}/{basePath}/_status whose
// JSON body nests the serving version under
// checks.healthcheck.outcome.versionNumber. Transient failures are
// retried with exponential backoff; non-2xx responses are not.
//
// Which environments have a sandbox traffic path is modeled explicitly by
// EnvironmentProfile rather than inferred from environment identifiers.
// Snapshot queries the base path and, for profiles with a sandbox, the
// sandbox path in a second independent call. Either lookup failing
// resolves to an unknown version, which downstream retention rules treat
// as "keep everything on that path" — a version snapshot is advisory,
// never a reason to delete.
package oracle
