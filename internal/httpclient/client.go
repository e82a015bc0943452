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

package httpclient

import (
	"context"
	"net/http"

	"github.com/caas-team/ringside/internal/logger"
)

type client struct{}

// IntoContext embeds the provided http.Client into the given context and returns the modified context.
// Tests use this to route requests of the gym client through a mocked transport.
func IntoContext(ctx context.Context, c *http.Client) context.Context {
	return context.WithValue(ctx, client{}, c)
}

// Lookup extracts the http.Client from the provided context.
// The second return value reports whether the context carried one.
func Lookup(ctx context.Context) (*http.Client, bool) {
	if ctx != nil {
		if c, ok := ctx.Value(client{}).(*http.Client); ok {
			return c, true
		}
	}

	logger.FromContext(ctx).Debug("No http.Client found in context")
	return nil, false
}
