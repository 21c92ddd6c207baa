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

// Package identity parses deployment unit names into structured identities.
//
// Deployment units are named after the base stack they belong to, suffixed
// with either a version token or a pull request marker:
//
//	api-v1-2-3              versioned
//	api-sandbox-v1-2-3      versioned, sandbox traffic path
//	api-pr-123              pull request
//	api-pr-123-sandbox      pull request, sandbox traffic path
//
// Anything that does not match one of these shapes, including a bare base
// name with no suffix, parses as unrecognized. Unrecognized units are never
// reclamation candidates; classifying conservatively here is what keeps the
// sweeper from ever touching a unit it does not fully understand.
//
// Parsing is pure and performs no I/O.
package identity
