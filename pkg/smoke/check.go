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
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Check is one named request against the gym API together with the
// messages to print for its outcome. A check passes when the response
// decodes into an envelope whose status is "success"; everything else,
// including transport errors and malformed bodies, fails the check.
type Check struct {
	// Name identifies the check in output and plan files
	Name string `yaml:"name" mapstructure:"name"`
	// Method is the HTTP method of the request (GET, POST or DELETE)
	Method string `yaml:"method" mapstructure:"method"`
	// Path is the request path relative to the base url
	Path string `yaml:"path" mapstructure:"path"`
	// Query holds optional query parameters
	Query map[string]string `yaml:"query,omitempty" mapstructure:"query"`
	// Body is an optional JSON request payload
	Body map[string]any `yaml:"body,omitempty" mapstructure:"body"`
	// OnSuccess is the line printed when the check passes
	OnSuccess string `yaml:"onSuccess,omitempty" mapstructure:"onSuccess"`
	// OnFailure is the line printed when the check fails
	OnFailure string `yaml:"onFailure,omitempty" mapstructure:"onFailure"`
	// Skip documents why the check is not executed. A non-empty value
	// excludes the check from the run but keeps it in the plan, e.g.
	// a mutating check whose precondition the target cannot guarantee.
	Skip string `yaml:"skip,omitempty" mapstructure:"skip"`
}

// Validate checks that the check is executable
func (c *Check) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: check has no name", ErrInvalidPlan)
	}
	switch c.Method {
	case http.MethodGet, http.MethodPost, http.MethodDelete:
	default:
		return fmt.Errorf("%w: check %q has unsupported method %q", ErrInvalidPlan, c.Name, c.Method)
	}
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("%w: check %q has a path not starting with /", ErrInvalidPlan, c.Name)
	}
	return nil
}

// successMessage returns the line to print when the check passes
func (c *Check) successMessage() string {
	if c.OnSuccess != "" {
		return c.OnSuccess
	}
	return fmt.Sprintf("Check %q passed.", c.Name)
}

// failureMessage returns the line to print when the check fails
func (c *Check) failureMessage() string {
	if c.OnFailure != "" {
		return c.OnFailure
	}
	return fmt.Sprintf("Check %q failed.", c.Name)
}

// queryValues converts the query map to url.Values
func (c *Check) queryValues() url.Values {
	if len(c.Query) == 0 {
		return nil
	}
	q := url.Values{}
	for k, v := range c.Query {
		q.Set(k, v)
	}
	return q
}

// payload returns the request body, or nil if the check has none
func (c *Check) payload() any {
	if len(c.Body) == 0 {
		return nil
	}
	return c.Body
}
