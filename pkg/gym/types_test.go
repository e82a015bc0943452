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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Status
		wantErr bool
	}{
		{
			name: "success envelope",
			body: `{"status": "success"}`,
			want: StatusSuccess,
		},
		{
			name: "error envelope with message",
			body: `{"status": "error", "message": "db down"}`,
			want: StatusError,
		},
		{
			name: "success envelope with payload",
			body: `{"status": "success", "boxers": [{"id": 1, "name": "wiwiwi"}]}`,
			want: StatusSuccess,
		},
		{
			name:    "not json",
			body:    `<html>502 Bad Gateway</html>`,
			wantErr: true,
		},
		{
			name:    "empty body",
			body:    ``,
			wantErr: true,
		},
		{
			name:    "json without status",
			body:    `{"response": "OKAY"}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := ParseEnvelope([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedEnvelope)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, env.Status)
		})
	}
}

func TestWeightClassFor(t *testing.T) {
	tests := []struct {
		name    string
		weight  int
		want    WeightClass
		wantErr bool
	}{
		{name: "heavyweight boundary", weight: 203, want: Heavyweight},
		{name: "heavyweight", weight: 250, want: Heavyweight},
		{name: "middleweight boundary", weight: 166, want: Middleweight},
		{name: "middleweight upper", weight: 202, want: Middleweight},
		{name: "lightweight boundary", weight: 133, want: Lightweight},
		{name: "featherweight boundary", weight: 125, want: Featherweight},
		{name: "below minimum", weight: 124, wantErr: true},
		{name: "zero", weight: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeightClassFor(tt.weight)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidWeight)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
