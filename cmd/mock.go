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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/caas-team/ringside/internal/apimock"
	"github.com/caas-team/ringside/internal/logger"
)

// NewCmdMock creates a new mock command
func NewCmdMock() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve an in-memory mock of the gym API",
		Long: "Serves an in-memory imitation of the gym API for developing smoke plans locally.\n" +
			"All state is lost when the process exits.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := logger.NewContextWithLogger(cmd.Context())
			defer cancel()

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return apimock.New().Serve(ctx, address)
		},
	}

	cmd.PersistentFlags().StringVar(&address, "address", ":5002", "The address the mock gym API listens on")

	return cmd
}
