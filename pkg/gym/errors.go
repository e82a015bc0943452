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

package gym

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedEnvelope is returned when a response body cannot be
	// decoded into the expected envelope
	ErrMalformedEnvelope = errors.New("malformed response envelope")
	// ErrInvalidWeight is returned when a weight is below the gym minimum
	ErrInvalidWeight = errors.New("invalid weight")
)

// ErrStatus is returned by the typed client methods when the gym API
// responds with an error envelope
type ErrStatus struct {
	Endpoint string
	Message  string
}

func (e ErrStatus) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("endpoint %q responded with an error status", e.Endpoint)
	}
	return fmt.Sprintf("endpoint %q responded with an error status: %s", e.Endpoint, e.Message)
}
