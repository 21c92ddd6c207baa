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
	"math/rand"
	"net/http"
	"time"

	"github.com/google/go-github/v66/github"
)

// RetryConfig defines the retry behavior for GitHub API calls.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultRetryConfig returns the retry settings used by NewClient.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     30 * time.Second,
	}
}

// githubClient implements Client using go-github.
type githubClient struct {
	client *github.Client
	retry  RetryConfig
}

// NewClient creates a GitHub client authenticated with the given bearer
// token. An empty token yields an unauthenticated client, which is
// subject to much stricter rate limits.
func NewClient(token string) Client {
	gh := github.NewClient(nil)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	return &githubClient{
		client: gh,
		retry:  DefaultRetryConfig(),
	}
}

// GetPullRequest retrieves metadata about a pull request.
func (c *githubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	var pr *github.PullRequest

	err := c.withRetry(ctx, func() error {
		var err error
		pr, _, err = c.client.PullRequests.Get(ctx, owner, repo, number)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request %s/%s#%d: %w", owner, repo, number, err)
	}

	return &PullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		State:     pr.GetState(),
		Merged:    pr.GetMerged(),
		CreatedAt: pr.GetCreatedAt().Time,
		UpdatedAt: pr.GetUpdatedAt().Time,
	}, nil
}

// withRetry runs an operation, retrying transient failures with
// exponential backoff and jitter.
func (c *githubClient) withRetry(ctx context.Context, operation func() error) error {
	var lastErr error

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = operation()
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
		if attempt == c.retry.MaxRetries {
			return fmt.Errorf("operation failed after %d retries: %w", c.retry.MaxRetries, lastErr)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoffFor(attempt)):
		}
	}
}

// retryable reports whether an API error is worth retrying.
func retryable(err error) bool {
	ghErr, ok := err.(*github.ErrorResponse)
	if !ok || ghErr.Response == nil {
		return false
	}
	switch ghErr.Response.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	case http.StatusForbidden:
		// Primary rate limit exhaustion reports as 403
		return ghErr.Message == "API rate limit exceeded"
	}
	return false
}

// backoffFor returns the wait before the next attempt: exponential with
// +/-20% jitter, capped at MaxBackoff.
func (c *githubClient) backoffFor(attempt int) time.Duration {
	base := float64(c.retry.InitialBackoff) * float64(uint(1)<<uint(attempt))
	jitter := (rand.Float64() * 0.4) - 0.2
	backoff := time.Duration(base * (1 + jitter))
	if backoff > c.retry.MaxBackoff {
		backoff = c.retry.MaxBackoff
	}
	return backoff
}
