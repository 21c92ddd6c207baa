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
	"fmt"
)

// Enumerator drains the deployment store's pagination into a single
// sequence of non-terminal units.
type Enumerator struct {
	store DeploymentStore
}

// NewEnumerator creates an enumerator over the given store.
func NewEnumerator(s DeploymentStore) *Enumerator {
	return &Enumerator{store: s}
}

// ListAll pages through the store until the continuation token is
// exhausted and returns every unit that is not in a terminal state.
// Ordering is whatever the store returns; callers do not depend on it.
func (e *Enumerator) ListAll(ctx context.Context) ([]DeploymentUnit, error) {
	all := []DeploymentUnit{}
	token := ""

	for {
		units, next, err := e.store.List(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("failed to list deployment units: %w", err)
		}

		for _, unit := range units {
			if unit.Status == StatusTerminal {
				continue
			}
			all = append(all, unit)
		}

		if next == "" {
			return all, nil
		}
		token = next
	}
}
