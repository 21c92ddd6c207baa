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

// Package config loads the reclaimer's configuration from a YAML file
// with environment variable overrides.
//
// The file names the base stack, the DNS zone (optional; omitting it
// disables alias cleanup), the repository for pull request sweeps, and a
// table of environment profiles keyed by environment id. Secrets are
// never read from the file: the GitHub token comes from
// RECLAIMD_GITHUB_TOKEN (or GITHUB_TOKEN as a fallback).
package config
