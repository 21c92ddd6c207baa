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

package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-logr/logr"

	"github.com/reclaimd/reclaimd/internal/policy"
)

// EnvironmentProfile describes where an environment's status endpoints
// live and whether it has a sandbox traffic path at all.
type EnvironmentProfile struct {
	// Domain serves base traffic
	Domain string
	// APIBasePath is the path prefix under which _status is exposed
	APIBasePath string
	// HasSandbox is true for environments with a sandbox traffic path
	HasSandbox bool
	// SandboxDomain serves sandbox traffic; only meaningful with HasSandbox
	SandboxDomain string
}

// Client fetches active versions from environment status endpoints.
type Client struct {
	httpClient      *http.Client
	scheme          string
	initialInterval time.Duration
	maxElapsed      time.Duration
}

// NewClient creates an oracle client. A nil httpClient falls back to a
// client with a 10 second timeout.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		httpClient:      httpClient,
		scheme:          "https",
		initialInterval: 500 * time.Millisecond,
		maxElapsed:      30 * time.Second,
	}
}

// statusResponse is the subset of the _status body we care about.
type statusResponse struct {
	Checks struct {
		Healthcheck struct {
			Outcome struct {
				VersionNumber string `json:"versionNumber"`
			} `json:"outcome"`
		} `json:"healthcheck"`
	} `json:"checks"`
}

// ActiveVersion fetches the version currently serving traffic on the
// given domain. Network errors and 5xx responses are retried with
// exponential backoff; any other non-2xx response fails immediately.
func (c *Client) ActiveVersion(ctx context.Context, domain, basePath string) (string, error) {
	url := fmt.Sprintf("%s://%s/%s/_status", c.scheme, domain, strings.Trim(basePath, "/"))

	var version string
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("status endpoint returned %d", resp.StatusCode)
		}
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return backoff.Permanent(fmt.Errorf("status endpoint returned %d", resp.StatusCode))
		}

		var status statusResponse
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode status body: %w", err))
		}
		version = status.Checks.Healthcheck.Outcome.VersionNumber
		if version == "" {
			return backoff.Permanent(fmt.Errorf("status body carries no version number"))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialInterval
	bo.MaxElapsedTime = c.maxElapsed
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("failed to fetch active version from %s: %w", url, err)
	}
	return version, nil
}

// Snapshot fetches the point-in-time active versions for the profile.
// A failed base lookup yields an unknown base version; a failed sandbox
// lookup yields an unknown sandbox version. Both are logged and neither
// aborts the caller's run.
func (c *Client) Snapshot(ctx context.Context, profile EnvironmentProfile) policy.ActiveVersions {
	logger := logr.FromContextOrDiscard(ctx)

	var active policy.ActiveVersions

	base, err := c.ActiveVersion(ctx, profile.Domain, profile.APIBasePath)
	if err != nil {
		logger.Error(err, "Failed to fetch active base version", "domain", profile.Domain)
	} else {
		active.Base = base
	}

	if profile.HasSandbox {
		sandbox, err := c.ActiveVersion(ctx, profile.SandboxDomain, profile.APIBasePath)
		if err != nil {
			logger.Error(err, "Failed to fetch active sandbox version", "domain", profile.SandboxDomain)
		} else {
			active.Sandbox = sandbox
		}
	}

	return active
}
