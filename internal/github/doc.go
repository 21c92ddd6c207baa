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

// Package github answers one question for the reclaimer: is the pull
// request behind a deployment unit closed?
//
// The client wraps the GitHub REST API via google/go-github with retry
// and exponential backoff for transient failures (rate limits, 5xx).
// Authentication uses a bearer token with repo read scope.
//
// The ReviewStateChecker deliberately maps every failure mode to "not
// closed": a fetch error, an unparsable pull request id, or any state
// other than exactly "closed" all keep the deployment alive. A tracker
// outage must degrade to keeping open-PR deployments around a little
// longer, never to deleting them.
package github
