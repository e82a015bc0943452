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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/caas-team/ringside/internal/helper"
	"github.com/caas-team/ringside/internal/logger"
	"github.com/caas-team/ringside/pkg/config"
	"github.com/caas-team/ringside/pkg/gym"
)

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	skipColor = color.New(color.FgYellow)
)

// Runner executes a plan strictly in order, one request in flight at a
// time, and aborts on the first check that does not produce a success
// envelope. There is no distinction between a transport error and an
// error envelope; both fail the run.
type Runner struct {
	cfg    *config.Config
	client *gym.Client
	out    io.Writer
}

// New creates a new runner writing its result lines to out
func New(ctx context.Context, cfg *config.Config, out io.Writer) *Runner {
	return &Runner{
		cfg:    cfg,
		client: gym.New(ctx, cfg.Target),
		out:    out,
	}
}

// Run executes the plan. It returns nil when every check passed and an
// [ErrCheckFailed] for the first check that did not.
func (r *Runner) Run(ctx context.Context, plan Plan) error {
	log := logger.FromContext(ctx)
	if err := plan.Validate(); err != nil {
		return err
	}

	log.Info("Starting smoke run", "checks", len(plan.Checks), "target", r.cfg.Target.BaseURL)
	for i := range plan.Checks {
		check := &plan.Checks[i]
		if check.Skip != "" {
			log.Info("Skipping check", "check", check.Name, "reason", check.Skip)
			skipColor.Fprintf(r.out, "Skipping check %q: %s\n", check.Name, check.Skip)
			continue
		}

		if err := r.runCheck(ctx, check); err != nil {
			failColor.Fprintln(r.out, check.failureMessage())
			return err
		}
		passColor.Fprintln(r.out, check.successMessage())
	}

	log.Info("All checks passed")
	return nil
}

// runCheck executes a single check, honoring the configured retry
// behavior. The default retry count of zero means one attempt.
func (r *Runner) runCheck(ctx context.Context, check *Check) error {
	log := logger.FromContext(ctx).With("check", check.Name)
	log.Debug("Running check", "method", check.Method, "path", check.Path)

	var resp *gym.Response
	attempt := helper.Retry(func(ctx context.Context) error {
		var err error
		resp, err = r.client.Do(ctx, check.Method, check.Path, check.queryValues(), check.payload())
		if err != nil {
			return err
		}
		if !resp.Envelope.Ok() {
			return ErrCheckFailed{Check: check.Name, Reason: r.failureReason(resp)}
		}
		return nil
	}, r.cfg.Target.RetryCfg)

	if err := attempt(ctx); err != nil {
		log.Error("Check failed", "error", err)
		var failed ErrCheckFailed
		if errors.As(err, &failed) {
			return failed
		}
		return ErrCheckFailed{Check: check.Name, Reason: err.Error()}
	}

	log.Debug("Check passed")
	if r.cfg.EchoJSON {
		r.echo(ctx, resp.Raw)
	}
	return nil
}

// failureReason describes an error envelope for the failure message
func (r *Runner) failureReason(resp *gym.Response) string {
	if resp.Envelope.Message != "" {
		return fmt.Sprintf("response status is %q: %s", resp.Envelope.Status, resp.Envelope.Message)
	}
	return fmt.Sprintf("response status is %q", resp.Envelope.Status)
}

// echo pretty-prints the raw response body of a successful check
func (r *Runner) echo(ctx context.Context, raw []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		// Raw is known to be valid JSON at this point, but do not
		// fail a passed check over its presentation.
		logger.FromContext(ctx).Warn("Could not indent response body", "error", err)
		buf.Write(raw)
	}
	fmt.Fprintln(r.out, buf.String())
}
