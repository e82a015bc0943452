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
	"errors"
	"fmt"
)

// ErrInvalidPlan is returned when a plan or one of its checks is not executable
var ErrInvalidPlan = errors.New("invalid plan")

// ErrCheckFailed is returned by the runner when a check does not produce
// a success envelope. The first failed check aborts the whole run.
type ErrCheckFailed struct {
	// Check is the name of the failed check
	Check string
	// Reason describes what went wrong
	Reason string
}

func (e ErrCheckFailed) Error() string {
	return fmt.Sprintf("check %q failed: %s", e.Check, e.Reason)
}
