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
	"testing"
)

// fakeProvider serves a single zone with pre-canned record pages and
// records each batched delete it receives.
type fakeProvider struct {
	zoneName string
	zoneID   string
	pages    map[string]fakeRecordPage
	findErr  error
	listErr  error

	deleted [][]Record
}

type fakeRecordPage struct {
	records []Record
	next    string
}

func (f *fakeProvider) FindZone(_ context.Context, name string) (string, error) {
	if f.findErr != nil {
		return "", f.findErr
	}
	if name != f.zoneName {
		return "", ErrZoneNotFound
	}
	return f.zoneID, nil
}

func (f *fakeProvider) ListRecords(_ context.Context, zoneID, token string) ([]Record, string, error) {
	if f.listErr != nil {
		return nil, "", f.listErr
	}
	page := f.pages[token]
	return page.records, page.next, nil
}

func (f *fakeProvider) DeleteRecords(_ context.Context, zoneID string, records []Record) error {
	f.deleted = append(f.deleted, records)
	return nil
}

func TestBuildIndex_pages_and_keeps_only_cname_records(t *testing.T) {
	provider := &fakeProvider{
		zoneName: "preview.example.com",
		zoneID:   "Z123",
		pages: map[string]fakeRecordPage{
			"": {records: []Record{
				{Name: "api-v1-2-2.preview.example.com", Type: RecordTypeCNAME},
				{Name: "preview.example.com", Type: "NS"},
			}, next: "p2"},
			"p2": {records: []Record{
				{Name: "api-pr-123.preview.example.com", Type: RecordTypeCNAME},
				{Name: "preview.example.com", Type: "SOA"},
			}},
		},
	}

	index, err := NewDirectory(provider).BuildIndex(context.Background(), "preview.example.com")
	if err != nil {
		t.Fatalf("BuildIndex() returned error: %v", err)
	}
	if index.Len() != 2 {
		t.Errorf("index.Len() = %d, want 2 CNAME records", index.Len())
	}
}

func TestBuildIndex_returns_empty_index_when_zone_not_found(t *testing.T) {
	provider := &fakeProvider{zoneName: "other.example.com", zoneID: "Z999"}

	index, err := NewDirectory(provider).BuildIndex(context.Background(), "preview.example.com")
	if err != nil {
		t.Fatalf("BuildIndex() returned error: %v", err)
	}
	if index.Len() != 0 {
		t.Errorf("index.Len() = %d, want empty index for missing zone", index.Len())
	}

	// Deleting against the empty index must not reach the provider.
	err = NewDirectory(provider).DeleteMatching(context.Background(), index, "api-v1-2-2")
	if err != nil {
		t.Fatalf("DeleteMatching() returned error: %v", err)
	}
	if len(provider.deleted) != 0 {
		t.Errorf("DeleteMatching() issued %d deletions against a missing zone", len(provider.deleted))
	}
}

func TestBuildIndex_returns_empty_index_for_empty_zone_name(t *testing.T) {
	provider := &fakeProvider{zoneName: "preview.example.com", zoneID: "Z123"}

	index, err := NewDirectory(provider).BuildIndex(context.Background(), "")
	if err != nil {
		t.Fatalf("BuildIndex() returned error: %v", err)
	}
	if index.Len() != 0 {
		t.Errorf("index.Len() = %d, want 0", index.Len())
	}
}

func TestBuildIndex_propagates_record_listing_errors(t *testing.T) {
	listErr := errors.New("provider unreachable")
	provider := &fakeProvider{
		zoneName: "preview.example.com",
		zoneID:   "Z123",
		listErr:  listErr,
	}

	_, err := NewDirectory(provider).BuildIndex(context.Background(), "preview.example.com")
	if !errors.Is(err, listErr) {
		t.Errorf("BuildIndex() error = %v, want wrapped %v", err, listErr)
	}
}

func TestDeleteMatching_batches_all_matching_records(t *testing.T) {
	provider := &fakeProvider{
		zoneName: "preview.example.com",
		zoneID:   "Z123",
		pages: map[string]fakeRecordPage{
			"": {records: []Record{
				{Name: "api-pr-123.preview.example.com", Type: RecordTypeCNAME},
				{Name: "www.api-pr-123.preview.example.com", Type: RecordTypeCNAME},
				{Name: "api-pr-456.preview.example.com", Type: RecordTypeCNAME},
			}},
		},
	}
	directory := NewDirectory(provider)

	index, err := directory.BuildIndex(context.Background(), "preview.example.com")
	if err != nil {
		t.Fatalf("BuildIndex() returned error: %v", err)
	}

	if err := directory.DeleteMatching(context.Background(), index, "api-pr-123"); err != nil {
		t.Fatalf("DeleteMatching() returned error: %v", err)
	}

	if len(provider.deleted) != 1 {
		t.Fatalf("DeleteMatching() issued %d delete calls, want 1 batched call", len(provider.deleted))
	}
	if len(provider.deleted[0]) != 2 {
		t.Errorf("batched delete contained %d records, want 2", len(provider.deleted[0]))
	}
}

func TestDeleteMatching_is_a_noop_without_matches(t *testing.T) {
	provider := &fakeProvider{
		zoneName: "preview.example.com",
		zoneID:   "Z123",
		pages: map[string]fakeRecordPage{
			"": {records: []Record{
				{Name: "api-pr-456.preview.example.com", Type: RecordTypeCNAME},
			}},
		},
	}
	directory := NewDirectory(provider)

	index, err := directory.BuildIndex(context.Background(), "preview.example.com")
	if err != nil {
		t.Fatalf("BuildIndex() returned error: %v", err)
	}

	if err := directory.DeleteMatching(context.Background(), index, "api-pr-123"); err != nil {
		t.Fatalf("DeleteMatching() returned error: %v", err)
	}
	if len(provider.deleted) != 0 {
		t.Errorf("DeleteMatching() issued %d delete calls, want 0", len(provider.deleted))
	}
}
