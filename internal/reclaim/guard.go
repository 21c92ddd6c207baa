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

package reclaim

import (
	"errors"
	"sync"
)

// ErrSweepInProgress is returned when a sweep is requested for a base
// name that already has one running.
var ErrSweepInProgress = errors.New("a sweep is already in progress for this base name")

// sweepGuard serializes sweeps per base name. Two overlapping sweeps of
// the same base name could each decide to delete a unit between the
// other's enumeration and deletion, and race on conflicting alias record
// edits; the guard rejects the second sweep instead.
type sweepGuard struct {
	mu     sync.Mutex
	active map[string]bool
}

func newSweepGuard() *sweepGuard {
	return &sweepGuard{active: make(map[string]bool)}
}

func (g *sweepGuard) acquire(baseName string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active[baseName] {
		return ErrSweepInProgress
	}
	g.active[baseName] = true
	return nil
}

func (g *sweepGuard) release(baseName string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, baseName)
}
