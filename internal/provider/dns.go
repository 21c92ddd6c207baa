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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/reclaimd/reclaimd/internal/dns"
)

// DNSProvider implements dns.Provider over the provider API.
type DNSProvider struct {
	client *Client
}

// DNS returns the DNS provider adapter for this client.
func (c *Client) DNS() *DNSProvider {
	return &DNSProvider{client: c}
}

type zoneResource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type listZonesResponse struct {
	Zones []zoneResource `json:"zones"`
}

type recordResource struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type listRecordsResponse struct {
	Records       []recordResource `json:"records"`
	NextPageToken string           `json:"nextPageToken"`
}

type batchDeleteRecordsRequest struct {
	Records []recordResource `json:"records"`
}

// FindZone resolves a zone by exact name.
func (p *DNSProvider) FindZone(ctx context.Context, name string) (string, error) {
	query := url.Values{}
	query.Set("name", name)

	var resp listZonesResponse
	if err := p.client.do(ctx, http.MethodGet, "/v1/zones", query, nil, &resp, false); err != nil {
		return "", err
	}
	for _, zone := range resp.Zones {
		if zone.Name == name {
			return zone.ID, nil
		}
	}
	return "", dns.ErrZoneNotFound
}

// ListRecords returns one page of record sets in a zone.
func (p *DNSProvider) ListRecords(ctx context.Context, zoneID, token string) ([]dns.Record, string, error) {
	query := url.Values{}
	if token != "" {
		query.Set("pageToken", token)
	}
	path := fmt.Sprintf("/v1/zones/%s/records", url.PathEscape(zoneID))

	var resp listRecordsResponse
	if err := p.client.do(ctx, http.MethodGet, path, query, nil, &resp, false); err != nil {
		return nil, "", err
	}

	records := make([]dns.Record, 0, len(resp.Records))
	for _, r := range resp.Records {
		records = append(records, dns.Record{Name: r.Name, Type: r.Type})
	}
	return records, resp.NextPageToken, nil
}

// DeleteRecords removes the given records in a single batched change.
func (p *DNSProvider) DeleteRecords(ctx context.Context, zoneID string, records []dns.Record) error {
	req := batchDeleteRecordsRequest{Records: make([]recordResource, 0, len(records))}
	for _, r := range records {
		req.Records = append(req.Records, recordResource{Name: r.Name, Type: r.Type})
	}
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/v1/zones/%s/records:batchDelete", url.PathEscape(zoneID))
	return p.client.do(ctx, http.MethodPost, path, nil, bytes.NewReader(body), nil, false)
}
