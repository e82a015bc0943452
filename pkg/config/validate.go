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
	"context"
	"errors"
	"net/url"
	"os"

	"github.com/caas-team/ringside/internal/logger"
)

// maxRetryCount bounds the per-check retries so a broken target
// cannot stall the whole run for minutes
const maxRetryCount = 5

// Validate validates the config
func (c *Config) Validate(ctx context.Context, fm *RunFlagsNameMapping) error {
	log := logger.FromContext(ctx)

	var errs []error
	if u, err := url.ParseRequestURI(c.Target.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		log.Error("The base url is not a valid url", fm.BaseURL, c.Target.BaseURL)
		errs = append(errs, ErrInvalidBaseURL)
	}

	if c.Target.Timeout <= 0 {
		log.Error("The timeout must be a positive duration", fm.Timeout, c.Target.Timeout.String())
		errs = append(errs, ErrInvalidTimeout)
	}

	if c.Target.RetryCfg.Count < 0 || c.Target.RetryCfg.Count > maxRetryCount {
		log.Error("The retry count must be between 0 and 5", fm.RetryCount, c.Target.RetryCfg.Count)
		errs = append(errs, ErrInvalidRetryCount)
	}

	if c.PlanPath != "" {
		if _, err := os.Stat(c.PlanPath); err != nil {
			log.Error("The plan file does not exist", fm.Plan, c.PlanPath)
			errs = append(errs, ErrInvalidPlanPath)
		}
	}

	return errors.Join(errs...)
}
