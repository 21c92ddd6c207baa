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

package provider

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/reclaimd/reclaimd/internal/store"
)

// DeploymentStore implements store.DeploymentStore over the provider API.
type DeploymentStore struct {
	client *Client
}

// Deployments returns the deployment store adapter for this client.
func (c *Client) Deployments() *DeploymentStore {
	return &DeploymentStore{client: c}
}

type deploymentResource struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type listDeploymentsResponse struct {
	Deployments   []deploymentResource `json:"deployments"`
	NextPageToken string               `json:"nextPageToken"`
}

// List returns one page of deployment units.
func (s *DeploymentStore) List(ctx context.Context, token string) ([]store.DeploymentUnit, string, error) {
	query := url.Values{}
	if token != "" {
		query.Set("pageToken", token)
	}

	var resp listDeploymentsResponse
	if err := s.client.do(ctx, http.MethodGet, "/v1/deployments", query, nil, &resp, false); err != nil {
		return nil, "", err
	}

	units := make([]store.DeploymentUnit, 0, len(resp.Deployments))
	for _, d := range resp.Deployments {
		units = append(units, store.DeploymentUnit{
			Name:      d.Name,
			Status:    mapStatus(d.Status),
			CreatedAt: d.CreatedAt,
		})
	}
	return units, resp.NextPageToken, nil
}

// Delete removes a deployment unit by name. A 404 from the provider is
// treated as success so repeated deletes stay idempotent.
func (s *DeploymentStore) Delete(ctx context.Context, name string) error {
	path := "/v1/deployments/" + url.PathEscape(name)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil, nil, true)
}

// mapStatus folds the provider's status vocabulary into the store's
// three-valued lifecycle.
func mapStatus(s string) store.Status {
	switch s {
	case "ACTIVE":
		return store.StatusActive
	case "DELETED", "DELETING":
		return store.StatusTerminal
	default:
		return store.StatusOther
	}
}
