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
	"fmt"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
)

// ReviewStateChecker reports whether the pull request behind a deployment
// unit has been closed.
type ReviewStateChecker struct {
	client Client
	owner  string
	repo   string
}

// NewReviewStateChecker creates a checker for the given repository,
// identified as "owner/name".
func NewReviewStateChecker(client Client, repository string) (*ReviewStateChecker, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("repository %q is not of the form owner/name", repository)
	}
	return &ReviewStateChecker{client: client, owner: owner, repo: repo}, nil
}

// IsClosed returns true only when the pull request exists and its state
// is exactly "closed". Every failure mode resolves to false: an outage of
// the review tracker must never read as permission to delete.
func (c *ReviewStateChecker) IsClosed(ctx context.Context, pullRequestID string) bool {
	logger := logr.FromContextOrDiscard(ctx)

	number, err := strconv.Atoi(pullRequestID)
	if err != nil {
		logger.Error(err, "Pull request id is not numeric", "id", pullRequestID)
		return false
	}

	pr, err := c.client.GetPullRequest(ctx, c.owner, c.repo, number)
	if err != nil {
		logger.Error(err, "Failed to fetch pull request state, keeping deployment",
			"repository", c.owner+"/"+c.repo, "number", number)
		return false
	}

	return pr.State == StateClosed
}
