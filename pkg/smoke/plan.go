// ringside
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package smoke

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/caas-team/ringside/internal/helper"
	"github.com/caas-team/ringside/internal/logger"
)

// Plan is an ordered sequence of checks. The order is significant:
// the runner executes the checks front to back and stops at the
// first failure.
type Plan struct {
	Checks []Check `yaml:"checks"`
}

// Validate checks that every check in the plan is executable
func (p *Plan) Validate() error {
	if len(p.Checks) == 0 {
		return fmt.Errorf("%w: plan has no checks", ErrInvalidPlan)
	}
	seen := map[string]bool{}
	for i := range p.Checks {
		c := &p.Checks[i]
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate check name %q", ErrInvalidPlan, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// DefaultPlan returns the built-in smoke sequence against the gym API.
// The add-boxer check ships skipped: repeating it against a gym that
// already contains the boxer fails with a duplicate entry, so it only
// runs from plans whose target is known to be clean.
func DefaultPlan() Plan {
	return Plan{
		Checks: []Check{
			{
				Name:      "health",
				Method:    http.MethodGet,
				Path:      "/health",
				OnSuccess: "Service is healthy.",
				OnFailure: "Health check failed.",
			},
			{
				Name:      "db-check",
				Method:    http.MethodGet,
				Path:      "/db-check",
				OnSuccess: "Database connection is healthy.",
				OnFailure: "Database check failed.",
			},
			{
				Name:   "add-boxer",
				Method: http.MethodPost,
				Path:   "/add-boxer",
				Body: map[string]any{
					"name":   "wiwiwi",
					"weight": 180,
					"height": 185,
					"reach":  76.5,
					"age":    28,
				},
				OnSuccess: "Boxer added successfully.",
				OnFailure: "Failed to add boxer.",
				Skip:      "adding the same boxer twice fails with a duplicate entry; run only against a cleared gym",
			},
			{
				Name:      "get-boxer-by-name",
				Method:    http.MethodGet,
				Path:      "/get-boxer-by-name/wiwiwi",
				OnSuccess: "Boxer retrieved successfully by name.",
				OnFailure: "Failed to get boxer by name.",
			},
			{
				Name:      "get-leaderboard-wins",
				Method:    http.MethodGet,
				Path:      "/leaderboard",
				OnSuccess: "Leaderboard retrieved successfully (sorted by wins). An empty leaderboard is fine.",
				OnFailure: "Failed to get leaderboard sorted by wins.",
			},
			{
				Name:      "get-leaderboard-win-pct",
				Method:    http.MethodGet,
				Path:      "/leaderboard",
				Query:     map[string]string{"sort": "win_pct"},
				OnSuccess: "Leaderboard retrieved successfully (sorted by win percentage). An empty leaderboard is fine.",
				OnFailure: "Failed to get leaderboard sorted by win percentage.",
			},
			{
				Name:      "clear-boxers",
				Method:    http.MethodPost,
				Path:      "/clear-boxers",
				OnSuccess: "Boxers cleared successfully.",
				OnFailure: "Failed to clear boxers.",
			},
			{
				Name:      "get-boxers",
				Method:    http.MethodGet,
				Path:      "/get-boxers",
				OnSuccess: "Boxers retrieved successfully.",
				OnFailure: "Failed to get boxers.",
			},
		},
	}
}

// planFile is the shape of a plan file on disk. The checks are kept
// untyped here and decoded individually so a broken entry can be
// reported with its index.
type planFile struct {
	Checks []map[string]any `yaml:"checks"`
}

// LoadPlan reads a plan from a YAML file
func LoadPlan(ctx context.Context, path string) (Plan, error) {
	log := logger.FromContext(ctx)
	log.Info("Reading plan from file", "file", path)

	var plan Plan
	b, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read plan file", "path", path, "error", err)
		return plan, fmt.Errorf("failed to read plan file: %w", err)
	}

	var pf planFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		log.Error("Failed to parse plan file", "error", err)
		return plan, fmt.Errorf("failed to parse plan file: %w", err)
	}

	for i, raw := range pf.Checks {
		check, err := helper.Decode[Check](raw)
		if err != nil {
			log.Error("Failed to decode check", "index", i, "error", err)
			return plan, fmt.Errorf("failed to decode check %d: %w", i, err)
		}
		plan.Checks = append(plan.Checks, check)
	}

	if err := plan.Validate(); err != nil {
		return plan, err
	}
	return plan, nil
}
