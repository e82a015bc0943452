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

package config

import (
	"time"

	"github.com/caas-team/ringside/internal/helper"
)

// Config holds the full runtime configuration of a smoke run.
// It is built once from the CLI flags and passed down explicitly;
// nothing reads it from ambient state.
type Config struct {
	// Target is the configuration of the gym API under test
	Target TargetConfig
	// EchoJSON enables pretty-printing of response bodies for successful checks
	EchoJSON bool
	// PlanPath is the path to a YAML plan file. If empty, the
	// built-in default plan is used.
	PlanPath string
}

// TargetConfig is the configuration of the gym API the checks run against
type TargetConfig struct {
	// BaseURL is the base url of the gym API, e.g. http://localhost:5002/api
	BaseURL string
	// Timeout is the timeout of a single http request
	Timeout time.Duration
	// RetryCfg configures per-check retries. A count of zero
	// keeps the run strictly fail-fast.
	RetryCfg helper.RetryConfig
}

// NewConfig creates a new Config
func NewConfig() *Config {
	return &Config{}
}

// SetBaseURL sets the base url of the gym API
func (c *Config) SetBaseURL(url string) {
	c.Target.BaseURL = url
}

// SetEchoJSON enables or disables response body echoing
func (c *Config) SetEchoJSON(echo bool) {
	c.EchoJSON = echo
}

// SetTimeout sets the http request timeout
// timeout in seconds
func (c *Config) SetTimeout(timeout int) {
	c.Target.Timeout = time.Duration(timeout) * time.Second
}

// SetRetryCount sets the per-check retry count
func (c *Config) SetRetryCount(count int) {
	c.Target.RetryCfg.Count = count
}

// SetRetryDelay sets the initial delay between per-check retries
// retryDelay in seconds
func (c *Config) SetRetryDelay(retryDelay int) {
	c.Target.RetryCfg.Delay = time.Duration(retryDelay) * time.Second
}

// SetPlanPath sets the path of the plan file
func (c *Config) SetPlanPath(path string) {
	c.PlanPath = path
}
