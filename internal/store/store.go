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

package store

import (
	"context"
	"time"
)

// Status is the lifecycle state of a deployment unit as reported by the
// deployment store.
type Status string

const (
	// StatusActive indicates a unit that is deployed and serving
	StatusActive Status = "ACTIVE"
	// StatusTerminal indicates a unit that is deleted or being deleted
	StatusTerminal Status = "TERMINAL"
	// StatusOther covers every remaining provider state (in progress,
	// failed, review pending); such units are still visible candidates
	StatusOther Status = "OTHER"
)

// DeploymentUnit is one deployed, named infrastructure instance.
type DeploymentUnit struct {
	Name      string
	Status    Status
	CreatedAt time.Time
}

// DeploymentStore is the provider contract for listing and deleting
// deployment units.
type DeploymentStore interface {
	// List returns one page of units and the continuation token for the
	// next page. An empty token means the listing is exhausted.
	List(ctx context.Context, token string) (units []DeploymentUnit, next string, err error)
	// Delete removes a unit by name. Deleting a unit that no longer
	// exists is not an error.
	Delete(ctx context.Context, name string) error
}
