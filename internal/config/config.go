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

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/reclaimd/reclaimd/internal/oracle"
)

// Environment describes one deployable environment's status endpoints.
type Environment struct {
	Domain        string `yaml:"domain"`
	APIBasePath   string `yaml:"apiBasePath"`
	HasSandbox    bool   `yaml:"hasSandbox"`
	SandboxDomain string `yaml:"sandboxDomain"`
}

// Config is the reclaimer's full configuration surface.
type Config struct {
	// BaseName is the stack name prefix shared by all candidate units
	BaseName string `yaml:"baseName"`
	// ProviderURL is the base URL of the deployment provider API
	ProviderURL string `yaml:"providerURL"`
	// ZoneName is the DNS zone for alias cleanup; empty disables it
	ZoneName string `yaml:"zoneName"`
	// Repository is the owner/name repository for pull request sweeps
	Repository string `yaml:"repository"`
	// Environment selects the profile from Environments
	Environment string `yaml:"environment"`
	// CooldownSeconds overrides the pause between deletions
	CooldownSeconds int `yaml:"cooldownSeconds"`
	// SweepIntervalMinutes sets the scheduler interval in serve mode
	SweepIntervalMinutes int `yaml:"sweepIntervalMinutes"`
	// Environments maps environment ids to their profiles
	Environments map[string]Environment `yaml:"environments"`

	// GitHubToken is read from the environment, never from the file
	GitHubToken string `yaml:"-"`
	// ProviderToken is read from the environment, never from the file
	ProviderToken string `yaml:"-"`
}

// Load reads a config file, applies environment variable overrides and
// validates the result.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.BaseName = getEnvDefault("RECLAIMD_BASE_NAME", cfg.BaseName)
	cfg.ZoneName = getEnvDefault("RECLAIMD_ZONE_NAME", cfg.ZoneName)
	cfg.Repository = getEnvDefault("RECLAIMD_REPOSITORY", cfg.Repository)
	cfg.Environment = getEnvDefault("RECLAIMD_ENVIRONMENT", cfg.Environment)
	cfg.ProviderURL = getEnvDefault("RECLAIMD_PROVIDER_URL", cfg.ProviderURL)
	cfg.GitHubToken = getEnvDefault("RECLAIMD_GITHUB_TOKEN", os.Getenv("GITHUB_TOKEN"))
	cfg.ProviderToken = os.Getenv("RECLAIMD_PROVIDER_TOKEN")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.BaseName == "" {
		return fmt.Errorf("baseName is required")
	}
	if c.Environment != "" {
		if _, ok := c.Environments[c.Environment]; !ok {
			return fmt.Errorf("environment %q has no profile under environments", c.Environment)
		}
	}
	return nil
}

// Profile resolves the selected environment into an oracle profile.
func (c *Config) Profile() (oracle.EnvironmentProfile, error) {
	env, ok := c.Environments[c.Environment]
	if !ok {
		return oracle.EnvironmentProfile{}, fmt.Errorf("environment %q has no profile under environments", c.Environment)
	}
	return oracle.EnvironmentProfile{
		Domain:        env.Domain,
		APIBasePath:   env.APIBasePath,
		HasSandbox:    env.HasSandbox,
		SandboxDomain: env.SandboxDomain,
	}, nil
}

// Cooldown returns the configured pause between deletions, or zero when
// unset so the orchestrator applies its default.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

// SweepInterval returns the scheduler interval, defaulting to an hour.
func (c *Config) SweepInterval() time.Duration {
	if c.SweepIntervalMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.SweepIntervalMinutes) * time.Minute
}

// getEnvDefault is a convenience function for handling env vars.
func getEnvDefault(key, defVal string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defVal
	}
	return val
}
