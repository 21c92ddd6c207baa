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

package dns

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

// ErrZoneNotFound is returned by Provider.FindZone when no zone matches
// the requested name exactly.
var ErrZoneNotFound = errors.New("dns zone not found")

// RecordTypeCNAME is the only record type the directory indexes.
const RecordTypeCNAME = "CNAME"

// Record is one DNS record set in a zone.
type Record struct {
	Name string
	Type string
}

// Provider is the DNS directory contract.
type Provider interface {
	// FindZone resolves a zone by exact name, returning its id or
	// ErrZoneNotFound.
	FindZone(ctx context.Context, name string) (string, error)
	// ListRecords returns one page of record sets and the continuation
	// token for the next page. An empty token ends the listing.
	ListRecords(ctx context.Context, zoneID, token string) (records []Record, next string, err error)
	// DeleteRecords removes the given records in a single batched change.
	DeleteRecords(ctx context.Context, zoneID string, records []Record) error
}

// Directory builds and applies alias indexes against a Provider.
type Directory struct {
	provider Provider
}

// NewDirectory creates a directory over the given provider.
func NewDirectory(p Provider) *Directory {
	return &Directory{provider: p}
}

// AliasIndex is the in-memory view of a zone's CNAME records for one run.
// The zero value is an empty index against which every lookup misses and
// every delete is a no-op.
type AliasIndex struct {
	zoneID  string
	records []Record
}

// Matching returns every indexed record whose name contains the
// deployment unit's name.
func (idx *AliasIndex) Matching(deploymentName string) []Record {
	var matches []Record
	for _, record := range idx.records {
		if strings.Contains(record.Name, deploymentName) {
			matches = append(matches, record)
		}
	}
	return matches
}

// Len reports the number of indexed records.
func (idx *AliasIndex) Len() int {
	return len(idx.records)
}

// BuildIndex resolves the zone by name and pages all of its CNAME records
// into an index. An empty zone name or an unresolvable zone yields an
// empty index so that reclamation proceeds without alias cleanup; only a
// listing failure on a resolved zone is an error, since a partial record
// view must not drive deletions.
func (d *Directory) BuildIndex(ctx context.Context, zoneName string) (*AliasIndex, error) {
	logger := logr.FromContextOrDiscard(ctx)

	if zoneName == "" {
		logger.V(1).Info("No DNS zone configured, alias cleanup disabled")
		return &AliasIndex{}, nil
	}

	zoneID, err := d.provider.FindZone(ctx, zoneName)
	if err != nil {
		if errors.Is(err, ErrZoneNotFound) {
			logger.Info("DNS zone not found, alias cleanup disabled", "zone", zoneName)
			return &AliasIndex{}, nil
		}
		return nil, fmt.Errorf("failed to resolve DNS zone %q: %w", zoneName, err)
	}

	index := &AliasIndex{zoneID: zoneID}
	token := ""
	for {
		records, next, err := d.provider.ListRecords(ctx, zoneID, token)
		if err != nil {
			return nil, fmt.Errorf("failed to list records in zone %q: %w", zoneName, err)
		}
		for _, record := range records {
			if record.Type != RecordTypeCNAME {
				continue
			}
			index.records = append(index.records, record)
		}
		if next == "" {
			break
		}
		token = next
	}

	logger.V(1).Info("Built alias index", "zone", zoneName, "records", index.Len())
	return index, nil
}

// DeleteMatching removes every indexed record whose name contains the
// deployment unit's name in one batched change. With no zone id or no
// matching records this is a silent no-op.
func (d *Directory) DeleteMatching(ctx context.Context, index *AliasIndex, deploymentName string) error {
	logger := logr.FromContextOrDiscard(ctx)

	if index == nil || index.zoneID == "" {
		return nil
	}
	matches := index.Matching(deploymentName)
	if len(matches) == 0 {
		logger.V(1).Info("No alias records match deployment", "deployment", deploymentName)
		return nil
	}

	if err := d.provider.DeleteRecords(ctx, index.zoneID, matches); err != nil {
		return fmt.Errorf("failed to delete %d alias records for %q: %w", len(matches), deploymentName, err)
	}
	logger.Info("Deleted alias records", "deployment", deploymentName, "records", len(matches))
	return nil
}
