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
	"encoding/json"
	"fmt"
)

// Status is the outcome reported by the gym API in its response envelope
type Status string

const (
	// StatusSuccess marks a successful response
	StatusSuccess Status = "success"
	// StatusError marks a failed response
	StatusError Status = "error"
)

// Envelope is the JSON envelope every gym API endpoint responds with.
// Only Status is guaranteed to be present; the remaining fields depend
// on the endpoint that produced the response.
type Envelope struct {
	Status      Status             `json:"status"`
	Message     string             `json:"message,omitempty"`
	Boxer       *Boxer             `json:"boxer,omitempty"`
	Boxers      []Boxer            `json:"boxers,omitempty"`
	Leaderboard []LeaderboardEntry `json:"leaderboard,omitempty"`
	Winner      string             `json:"winner,omitempty"`
}

// Ok reports whether the envelope carries the success status
func (e *Envelope) Ok() bool {
	return e.Status == StatusSuccess
}

// ParseEnvelope decodes a raw response body into an [Envelope].
// A body that is not valid JSON or misses the status field entirely
// is reported as [ErrMalformedEnvelope]; callers treat this the same
// way as an explicit error status.
func ParseEnvelope(body []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}
	if e.Status == "" {
		return nil, fmt.Errorf("%w: missing status field", ErrMalformedEnvelope)
	}
	return &e, nil
}

// Boxer is a boxer registered in the gym
type Boxer struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Weight      int         `json:"weight"`
	Height      int         `json:"height"`
	Reach       float64     `json:"reach"`
	Age         int         `json:"age"`
	WeightClass WeightClass `json:"weight_class,omitempty"`
}

// NewBoxer is the payload of the add-boxer endpoint
type NewBoxer struct {
	Name   string  `json:"name"`
	Weight int     `json:"weight"`
	Height int     `json:"height"`
	Reach  float64 `json:"reach"`
	Age    int     `json:"age"`
}

// LeaderboardEntry is one row of the gym leaderboard,
// a boxer enriched with their fight record
type LeaderboardEntry struct {
	Boxer
	Fights int     `json:"fights"`
	Wins   int     `json:"wins"`
	WinPct float64 `json:"win_pct"`
}

// LeaderboardSort selects the leaderboard ordering
type LeaderboardSort string

const (
	// SortByWins orders the leaderboard by total wins, descending
	SortByWins LeaderboardSort = "wins"
	// SortByWinPct orders the leaderboard by win percentage, descending
	SortByWinPct LeaderboardSort = "win_pct"
)

// WeightClass is the weight class a boxer fights in
type WeightClass string

const (
	Heavyweight   WeightClass = "HEAVYWEIGHT"
	Middleweight  WeightClass = "MIDDLEWEIGHT"
	Lightweight   WeightClass = "LIGHTWEIGHT"
	Featherweight WeightClass = "FEATHERWEIGHT"
)

// minimumWeight is the lowest weight the gym accepts
const minimumWeight = 125

// WeightClassFor returns the weight class for the given weight in lbs
func WeightClassFor(weight int) (WeightClass, error) {
	switch {
	case weight >= 203:
		return Heavyweight, nil
	case weight >= 166:
		return Middleweight, nil
	case weight >= 133:
		return Lightweight, nil
	case weight >= minimumWeight:
		return Featherweight, nil
	default:
		return "", fmt.Errorf("%w: %d is below the minimum of %d", ErrInvalidWeight, weight, minimumWeight)
	}
}
