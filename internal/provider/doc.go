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

// Package provider adapts the cloud provider's REST API to the store and
// dns contracts.
//
// One bearer-authenticated Client backs both adapters. Listings use the
// provider's pageToken/nextPageToken pagination; deployment deletion
// treats 404 as success, matching the store contract's idempotency
// requirement. Authentication is assumed pre-configured; the token is
// handed in, never discovered.
package provider
