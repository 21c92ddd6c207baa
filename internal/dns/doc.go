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

// Package dns maintains the alias records that point at deployment units.
//
// Each reclamation run builds one AliasIndex: the configured zone is
// resolved by exact name and all of its CNAME records are paged into
// memory, queryable by substring of record name. Alias records relate to
// deployment units by containment — a record belongs to a unit when the
// unit's name appears anywhere in the record's name.
//
// Cleanup is deliberately forgiving. A missing zone, an empty zone name,
// or a unit with no matching records all degrade to a silent no-op:
// deployment deletion proceeds without alias cleanup rather than the
// other way around. Matching records for one unit are removed in a
// single batched change.
package dns
