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
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/reclaimd/reclaimd/internal/dns"
	"github.com/reclaimd/reclaimd/internal/oracle"
	"github.com/reclaimd/reclaimd/internal/policy"
	"github.com/reclaimd/reclaimd/internal/store"
)

// memStore is an in-memory deployment store. Deletes are recorded and
// idempotent: deleting a name the store no longer has succeeds.
type memStore struct {
	mu        sync.Mutex
	units     []store.DeploymentUnit
	deleted   []string
	deleteErr map[string]error
	listErr   error
}

func (m *memStore) List(context.Context, string) ([]store.DeploymentUnit, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, "", m.listErr
	}
	return append([]store.DeploymentUnit(nil), m.units...), "", nil
}

func (m *memStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.deleteErr[name]; err != nil {
		return err
	}
	m.deleted = append(m.deleted, name)
	for i, unit := range m.units {
		if unit.Name == name {
			m.units = append(m.units[:i], m.units[i+1:]...)
			break
		}
	}
	return nil
}

// stubDNS serves one zone's records and records batched deletes.
type stubDNS struct {
	zoneName string
	records  []dns.Record
	deleted  [][]dns.Record
}

func (s *stubDNS) FindZone(_ context.Context, name string) (string, error) {
	if name != s.zoneName || s.zoneName == "" {
		return "", dns.ErrZoneNotFound
	}
	return "Z1", nil
}

func (s *stubDNS) ListRecords(context.Context, string, string) ([]dns.Record, string, error) {
	return s.records, "", nil
}

func (s *stubDNS) DeleteRecords(_ context.Context, _ string, records []dns.Record) error {
	s.deleted = append(s.deleted, records)
	return nil
}

type stubOracle struct {
	active policy.ActiveVersions
}

func (s *stubOracle) Snapshot(context.Context, oracle.EnvironmentProfile) policy.ActiveVersions {
	return s.active
}

type stubReviews struct {
	closed map[string]bool
}

func (s *stubReviews) IsClosed(_ context.Context, id string) bool {
	return s.closed[id]
}

var _ = Describe("Orchestrator", func() {
	var (
		now      time.Time
		deployed *memStore
		zone     *stubDNS
		versions *stubOracle
		reviews  *stubReviews
		opts     Options
	)

	unit := func(name string, age time.Duration) store.DeploymentUnit {
		return store.DeploymentUnit{Name: name, Status: store.StatusActive, CreatedAt: now.Add(-age)}
	}

	cname := func(name string) dns.Record {
		return dns.Record{Name: name, Type: dns.RecordTypeCNAME}
	}

	newOrchestrator := func() *Orchestrator {
		o := NewOrchestrator(deployed, dns.NewDirectory(zone), versions, reviews, opts)
		o.now = func() time.Time { return now }
		return o
	}

	BeforeEach(func() {
		now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		deployed = &memStore{}
		zone = &stubDNS{zoneName: "preview.example.com"}
		versions = &stubOracle{}
		reviews = &stubReviews{closed: map[string]bool{}}
		opts = Options{
			BaseName: "api",
			ZoneName: "preview.example.com",
			Cooldown: time.Millisecond,
		}
	})

	Describe("SweepVersions", func() {
		It("deletes superseded units and keeps the active version", func() {
			deployed.units = []store.DeploymentUnit{
				unit("api-v1-2-3", 48*time.Hour),
				unit("api-v1-2-2", 48*time.Hour),
			}
			versions.active = policy.ActiveVersions{Base: "v1.2.3"}
			zone.records = []dns.Record{
				cname("api-v1-2-2.preview.example.com"),
				cname("api-v1-2-3.preview.example.com"),
			}

			summary, err := newOrchestrator().SweepVersions(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Deleted).To(Equal(1))
			Expect(summary.Kept).To(Equal(1))
			Expect(deployed.deleted).To(ConsistOf("api-v1-2-2"))
			Expect(zone.deleted).To(HaveLen(1))
			Expect(zone.deleted[0]).To(ConsistOf(cname("api-v1-2-2.preview.example.com")))
		})

		It("deletes nothing while the active version is still settling", func() {
			deployed.units = []store.DeploymentUnit{
				unit("api-v1-2-3", time.Hour),
				unit("api-v1-2-2", 48*time.Hour),
			}
			versions.active = policy.ActiveVersions{Base: "v1.2.3"}

			summary, err := newOrchestrator().SweepVersions(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Deleted).To(BeZero())
			Expect(deployed.deleted).To(BeEmpty())
		})

		It("keeps sandbox units when the sandbox version is unknown but still sweeps base units", func() {
			deployed.units = []store.DeploymentUnit{
				unit("api-v1-2-3", 48*time.Hour),
				unit("api-v1-2-2", 48*time.Hour),
				unit("api-sandbox-v1-2-2", 48*time.Hour),
			}
			// Sandbox lookup failed upstream: only the base version is known.
			versions.active = policy.ActiveVersions{Base: "v1.2.3"}

			summary, err := newOrchestrator().SweepVersions(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(deployed.deleted).To(ConsistOf("api-v1-2-2"))
			Expect(summary.Kept).To(Equal(2))
		})

		It("never deletes units with unrecognized names", func() {
			deployed.units = []store.DeploymentUnit{
				unit("api-v1-2-3", 48*time.Hour),
				unit("api", 400*24*time.Hour),
				unit("api-canary-experiment!", 400*24*time.Hour),
			}
			versions.active = policy.ActiveVersions{Base: "v1.2.3"}

			_, err := newOrchestrator().SweepVersions(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(deployed.deleted).To(BeEmpty())
		})

		It("proceeds without alias cleanup when no zone is configured", func() {
			deployed.units = []store.DeploymentUnit{
				unit("api-v1-2-3", 48*time.Hour),
				unit("api-v1-2-2", 48*time.Hour),
			}
			versions.active = policy.ActiveVersions{Base: "v1.2.3"}
			opts.ZoneName = ""

			summary, err := newOrchestrator().SweepVersions(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Deleted).To(Equal(1))
			Expect(deployed.deleted).To(ConsistOf("api-v1-2-2"))
			Expect(zone.deleted).To(BeEmpty())
		})

		It("proceeds without alias cleanup when the zone does not exist", func() {
			deployed.units = []store.DeploymentUnit{
				unit("api-v1-2-3", 48*time.Hour),
				unit("api-v1-2-2", 48*time.Hour),
			}
			versions.active = policy.ActiveVersions{Base: "v1.2.3"}
			opts.ZoneName = "missing.example.com"

			summary, err := newOrchestrator().SweepVersions(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Deleted).To(Equal(1))
			Expect(zone.deleted).To(BeEmpty())
		})

		It("aborts before deleting anything when enumeration fails", func() {
			deployed.listErr = errors.New("provider unreachable")
			versions.active = policy.ActiveVersions{Base: "v1.2.3"}

			_, err := newOrchestrator().SweepVersions(context.Background())
			Expect(err).To(HaveOccurred())
			Expect(deployed.deleted).To(BeEmpty())
		})

		It("continues past a failed deletion", func() {
			deployed.units = []store.DeploymentUnit{
				unit("api-v1-2-3", 48*time.Hour),
				unit("api-v1-2-1", 48*time.Hour),
				unit("api-v1-2-2", 48*time.Hour),
			}
			deployed.deleteErr = map[string]error{"api-v1-2-1": errors.New("stuck")}
			versions.active = policy.ActiveVersions{Base: "v1.2.3"}

			summary, err := newOrchestrator().SweepVersions(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Failed).To(Equal(1))
			Expect(summary.Deleted).To(Equal(1))
			Expect(deployed.deleted).To(ConsistOf("api-v1-2-2"))
		})

		It("performs no destructive calls in dry run mode", func() {
			deployed.units = []store.DeploymentUnit{
				unit("api-v1-2-3", 48*time.Hour),
				unit("api-v1-2-2", 48*time.Hour),
			}
			versions.active = policy.ActiveVersions{Base: "v1.2.3"}
			zone.records = []dns.Record{cname("api-v1-2-2.preview.example.com")}
			opts.DryRun = true

			summary, err := newOrchestrator().SweepVersions(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Deleted).To(Equal(1))
			Expect(deployed.deleted).To(BeEmpty())
			Expect(zone.deleted).To(BeEmpty())
		})

		It("stops between deletions when the context is cancelled", func() {
			deployed.units = []store.DeploymentUnit{
				unit("api-v1-2-3", 48*time.Hour),
				unit("api-v1-2-2", 48*time.Hour),
			}
			versions.active = policy.ActiveVersions{Base: "v1.2.3"}

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := newOrchestrator().SweepVersions(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(deployed.deleted).To(BeEmpty())
		})

		It("rejects a sweep while another one holds the base name", func() {
			orchestrator := newOrchestrator()
			Expect(orchestrator.guard.acquire("api")).To(Succeed())
			defer orchestrator.guard.release("api")

			_, err := orchestrator.SweepVersions(context.Background())
			Expect(err).To(MatchError(ErrSweepInProgress))
		})
	})

	Describe("SweepPullRequests", func() {
		It("deletes units whose pull request is closed, aliases included", func() {
			deployed.units = []store.DeploymentUnit{
				unit("api-pr-123", 48*time.Hour),
				unit("api-pr-456", 48*time.Hour),
			}
			reviews.closed = map[string]bool{"123": true}
			zone.records = []dns.Record{
				cname("api-pr-123.preview.example.com"),
				cname("api-pr-456.preview.example.com"),
			}

			summary, err := newOrchestrator().SweepPullRequests(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Deleted).To(Equal(1))
			Expect(summary.Kept).To(Equal(1))
			Expect(deployed.deleted).To(ConsistOf("api-pr-123"))
			Expect(zone.deleted).To(HaveLen(1))
			Expect(zone.deleted[0]).To(ConsistOf(cname("api-pr-123.preview.example.com")))
		})

		It("keeps units whose pull request state is unknown", func() {
			deployed.units = []store.DeploymentUnit{unit("api-pr-789", 48*time.Hour)}
			// "789" absent from the map models a failed tracker lookup.

			summary, err := newOrchestrator().SweepPullRequests(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Kept).To(Equal(1))
			Expect(deployed.deleted).To(BeEmpty())
		})

		It("ignores versioned units entirely", func() {
			deployed.units = []store.DeploymentUnit{
				unit("api-v1-2-2", 48*time.Hour),
				unit("api-pr-123", 48*time.Hour),
			}
			reviews.closed = map[string]bool{"123": true}

			_, err := newOrchestrator().SweepPullRequests(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(deployed.deleted).To(ConsistOf("api-pr-123"))
		})

		It("deletes sandbox pull request variants alongside their base unit", func() {
			deployed.units = []store.DeploymentUnit{
				unit("api-pr-123", 48*time.Hour),
				unit("api-pr-123-sandbox", 48*time.Hour),
			}
			reviews.closed = map[string]bool{"123": true}

			summary, err := newOrchestrator().SweepPullRequests(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Deleted).To(Equal(2))
			Expect(deployed.deleted).To(ConsistOf("api-pr-123", "api-pr-123-sandbox"))
		})
	})

	Describe("idempotent deletion", func() {
		It("treats deleting an already-gone unit as success", func() {
			Expect(deployed.Delete(context.Background(), "api-v0-0-0")).To(Succeed())
		})
	})
})
