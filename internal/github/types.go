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

package github

import (
	"context"
	"time"
)

// Client is the contract for reading pull request state from GitHub.
type Client interface {
	// GetPullRequest retrieves metadata about a pull request
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error)
}

// PullRequest is the subset of pull request metadata the reclaimer uses.
type PullRequest struct {
	Number    int
	Title     string
	State     string // open, closed
	Merged    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	// StateOpen is the GitHub API state for an open pull request
	StateOpen = "open"
	// StateClosed is the GitHub API state for a closed or merged pull request
	StateClosed = "closed"
)
