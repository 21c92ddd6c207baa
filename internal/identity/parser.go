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

package identity

import (
	"regexp"
	"strings"
)

// Kind classifies how a deployment unit name was recognized.
type Kind string

const (
	// KindVersioned indicates a unit deployed for a specific version
	KindVersioned Kind = "versioned"
	// KindPullRequest indicates a unit deployed for a pull request
	KindPullRequest Kind = "pull-request"
	// KindUnrecognized indicates a name that matched no known shape
	KindUnrecognized Kind = "unrecognized"
)

// Identity is the structured form of a deployment unit name.
// Exactly one of Version and PullRequestID is set when Kind is not
// KindUnrecognized.
type Identity struct {
	BaseName      string
	Kind          Kind
	Version       string
	PullRequestID string
	Sandbox       bool
}

var (
	// Pull request suffixes must be checked before the generic version
	// pattern: a version token starting with "pr-" is never a version.
	pullRequestPattern = regexp.MustCompile(`^pr-(\d+)(-sandbox)?$`)
	versionPattern     = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

// Parse derives the identity of a deployment unit name relative to the
// configured base name. The base name is matched as a literal,
// case-sensitive prefix.
func Parse(name, baseName string) Identity {
	unrecognized := Identity{BaseName: baseName, Kind: KindUnrecognized}

	if baseName == "" || !strings.HasPrefix(name, baseName+"-") {
		return unrecognized
	}
	suffix := strings.TrimPrefix(name, baseName+"-")

	if m := pullRequestPattern.FindStringSubmatch(suffix); m != nil {
		return Identity{
			BaseName:      baseName,
			Kind:          KindPullRequest,
			PullRequestID: m[1],
			Sandbox:       m[2] != "",
		}
	}

	sandbox := false
	if rest, ok := strings.CutPrefix(suffix, "sandbox-"); ok {
		sandbox = true
		suffix = rest
	}

	// A "pr-" token that did not match the pull request shape above must
	// not fall through to the version shape.
	if strings.HasPrefix(suffix, "pr-") {
		return unrecognized
	}
	if !versionPattern.MatchString(suffix) {
		return unrecognized
	}

	return Identity{
		BaseName: baseName,
		Kind:     KindVersioned,
		Version:  suffix,
		Sandbox:  sandbox,
	}
}
