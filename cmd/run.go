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

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caas-team/ringside/internal/logger"
	"github.com/caas-team/ringside/pkg/config"
	"github.com/caas-team/ringside/pkg/smoke"
)

// NewCmdRun creates a new run command
func NewCmdRun() *cobra.Command {
	flagMapping := config.RunFlagsNameMapping{
		BaseURL:    "base-url",
		EchoJSON:   "echo-json",
		Timeout:    "timeout",
		RetryCount: "retry-count",
		RetryDelay: "retry-delay",
		Plan:       "plan",
	}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the smoke checks",
		Long: "Runs the smoke-check sequence against the gym API. " +
			"The first check without a success response aborts the run with exit code 1.",
		SilenceUsage: true,
		RunE:         run(&flagMapping),
	}

	NewFlag(flagMapping.BaseURL, flagMapping.BaseURL).String().
		Bind(cmd, "http://localhost:5002/api", "The base url of the gym API")
	NewFlag(flagMapping.EchoJSON, flagMapping.EchoJSON).Bool().
		Bind(cmd, false, "Pretty-print the response body of every passed check")
	NewFlag(flagMapping.Timeout, flagMapping.Timeout).Int().
		Bind(cmd, 5, "The timeout for a single http request in seconds")
	NewFlag(flagMapping.RetryCount, flagMapping.RetryCount).Int().
		Bind(cmd, 0, "Amount of retries for a failed check; 0 keeps the run strictly fail-fast")
	NewFlag(flagMapping.RetryDelay, flagMapping.RetryDelay).Int().
		Bind(cmd, 1, "The initial delay between check retries in seconds")
	NewFlag(flagMapping.Plan, flagMapping.Plan).String().
		Bind(cmd, "", "Path to a YAML plan file; the built-in plan is used when unset")

	return cmd
}

// run is the entry point of the run command
func run(fm *config.RunFlagsNameMapping) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := logger.NewContextWithLogger(cmd.Context())
		defer cancel()
		log := logger.FromContext(ctx)

		cfg := config.NewConfig()
		cfg.SetBaseURL(viper.GetString(fm.BaseURL))
		cfg.SetEchoJSON(viper.GetBool(fm.EchoJSON))
		cfg.SetTimeout(viper.GetInt(fm.Timeout))
		cfg.SetRetryCount(viper.GetInt(fm.RetryCount))
		cfg.SetRetryDelay(viper.GetInt(fm.RetryDelay))
		cfg.SetPlanPath(viper.GetString(fm.Plan))

		if err := cfg.Validate(ctx, fm); err != nil {
			log.Error("Error while validating the config", "error", err)
			return err
		}

		plan := smoke.DefaultPlan()
		if cfg.PlanPath != "" {
			var err error
			plan, err = smoke.LoadPlan(ctx, cfg.PlanPath)
			if err != nil {
				log.Error("Error while loading the plan", "error", err)
				return err
			}
		}

		runner := smoke.New(ctx, cfg, os.Stdout)
		return runner.Run(ctx, plan)
	}
}
