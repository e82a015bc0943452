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

import "errors"

var (
	// ErrInvalidBaseURL is returned when the base url is not a valid url
	ErrInvalidBaseURL = errors.New("invalid base url")
	// ErrInvalidTimeout is returned when the timeout is not positive
	ErrInvalidTimeout = errors.New("invalid timeout")
	// ErrInvalidRetryCount is returned when the retry count is out of range
	ErrInvalidRetryCount = errors.New("invalid retry count")
	// ErrInvalidPlanPath is returned when the plan file does not exist
	ErrInvalidPlanPath = errors.New("invalid plan file path")
)
