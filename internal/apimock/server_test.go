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

package apimock

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/ringside/pkg/config"
	"github.com/caas-team/ringside/pkg/gym"
)

// newTestClient serves the mock and returns a gym client pointed at it
func newTestClient(t *testing.T, s *Server) *gym.Client {
	t.Helper()
	srv := httptest.NewServer(s.Router(context.Background()))
	t.Cleanup(srv.Close)
	return gym.New(context.Background(), config.TargetConfig{
		BaseURL: srv.URL + "/api",
		Timeout: 5 * time.Second,
	})
}

func validBoxer(name string) gym.NewBoxer {
	return gym.NewBoxer{Name: name, Weight: 180, Height: 185, Reach: 76.5, Age: 28}
}

func TestServer_health(t *testing.T) {
	client := newTestClient(t, New())
	ctx := context.Background()

	resp, err := client.Health(ctx)
	require.NoError(t, err)
	assert.True(t, resp.Ok())

	resp, err = client.DBCheck(ctx)
	require.NoError(t, err)
	assert.True(t, resp.Ok())
}

func TestServer_addBoxer(t *testing.T) {
	tests := []struct {
		name    string
		boxer   gym.NewBoxer
		wantErr string
	}{
		{
			name:  "valid boxer",
			boxer: validBoxer("wiwiwi"),
		},
		{
			name:    "weight below minimum",
			boxer:   gym.NewBoxer{Name: "feather", Weight: 124, Height: 170, Reach: 70, Age: 25},
			wantErr: "Invalid weight",
		},
		{
			name:    "zero height",
			boxer:   gym.NewBoxer{Name: "flat", Weight: 150, Height: 0, Reach: 70, Age: 25},
			wantErr: "Invalid height",
		},
		{
			name:    "negative reach",
			boxer:   gym.NewBoxer{Name: "short", Weight: 150, Height: 170, Reach: -1, Age: 25},
			wantErr: "Invalid reach",
		},
		{
			name:    "too young",
			boxer:   gym.NewBoxer{Name: "kid", Weight: 150, Height: 170, Reach: 70, Age: 17},
			wantErr: "Invalid age",
		},
		{
			name:    "too old",
			boxer:   gym.NewBoxer{Name: "veteran", Weight: 150, Height: 170, Reach: 70, Age: 41},
			wantErr: "Invalid age",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, New())

			_, err := client.AddBoxer(context.Background(), tt.boxer)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			var serr gym.ErrStatus
			require.True(t, errors.As(err, &serr))
			assert.Contains(t, serr.Message, tt.wantErr)
		})
	}
}

func TestServer_addBoxer_duplicate(t *testing.T) {
	client := newTestClient(t, New())
	ctx := context.Background()

	_, err := client.AddBoxer(ctx, validBoxer("wiwiwi"))
	require.NoError(t, err)

	_, err = client.AddBoxer(ctx, validBoxer("wiwiwi"))
	var serr gym.ErrStatus
	require.True(t, errors.As(err, &serr))
	assert.Contains(t, serr.Message, "already exists")
}

func TestServer_getBoxer(t *testing.T) {
	client := newTestClient(t, New())
	ctx := context.Background()

	_, err := client.AddBoxer(ctx, validBoxer("wiwiwi"))
	require.NoError(t, err)

	byName, err := client.GetBoxerByName(ctx, "wiwiwi")
	require.NoError(t, err)
	require.NotNil(t, byName.Boxer)
	assert.Equal(t, "wiwiwi", byName.Boxer.Name)
	assert.Equal(t, gym.Middleweight, byName.Boxer.WeightClass)

	byID, err := client.GetBoxerByID(ctx, byName.Boxer.ID)
	require.NoError(t, err)
	require.NotNil(t, byID.Boxer)
	assert.Equal(t, byName.Boxer.ID, byID.Boxer.ID)

	_, err = client.GetBoxerByName(ctx, "nobody")
	var serr gym.ErrStatus
	require.True(t, errors.As(err, &serr))
	assert.Contains(t, serr.Message, "not found")
}

func TestServer_deleteBoxer(t *testing.T) {
	client := newTestClient(t, New())
	ctx := context.Background()

	_, err := client.AddBoxer(ctx, validBoxer("wiwiwi"))
	require.NoError(t, err)

	resp, err := client.GetBoxerByName(ctx, "wiwiwi")
	require.NoError(t, err)

	_, err = client.DeleteBoxer(ctx, resp.Boxer.ID)
	require.NoError(t, err)

	_, err = client.GetBoxerByName(ctx, "wiwiwi")
	require.Error(t, err)

	_, err = client.DeleteBoxer(ctx, resp.Boxer.ID)
	require.Error(t, err)
}

func TestServer_clearAndList(t *testing.T) {
	client := newTestClient(t, New())
	ctx := context.Background()

	_, err := client.AddBoxer(ctx, validBoxer("one"))
	require.NoError(t, err)
	_, err = client.AddBoxer(ctx, validBoxer("two"))
	require.NoError(t, err)

	resp, err := client.GetBoxers(ctx)
	require.NoError(t, err)
	assert.Len(t, resp.Boxers, 2)

	_, err = client.ClearBoxers(ctx)
	require.NoError(t, err)

	resp, err = client.GetBoxers(ctx)
	require.NoError(t, err)
	assert.Empty(t, resp.Boxers)
}

func TestServer_leaderboard(t *testing.T) {
	s := New()
	client := newTestClient(t, s)
	ctx := context.Background()

	// Empty leaderboard is a success, not an error.
	resp, err := client.Leaderboard(ctx, gym.SortByWins)
	require.NoError(t, err)
	assert.True(t, resp.Ok())
	assert.Empty(t, resp.Leaderboard)

	// An unknown sort parameter is rejected.
	_, err = client.Leaderboard(ctx, "height")
	require.Error(t, err)

	_, err = client.AddBoxer(ctx, validBoxer("champ"))
	require.NoError(t, err)
	_, err = client.AddBoxer(ctx, validBoxer("challenger"))
	require.NoError(t, err)
	_, err = client.AddBoxer(ctx, validBoxer("benchwarmer"))
	require.NoError(t, err)

	// champ 2/2 wins, challenger 1/2 wins, benchwarmer never fights.
	s.mu.Lock()
	s.boxers[0].Fights, s.boxers[0].Wins = 2, 2
	s.boxers[1].Fights, s.boxers[1].Wins = 2, 1
	s.mu.Unlock()

	resp, err = client.Leaderboard(ctx, gym.SortByWins)
	require.NoError(t, err)
	require.Len(t, resp.Leaderboard, 2)
	assert.Equal(t, "champ", resp.Leaderboard[0].Name)
	assert.Equal(t, 100.0, resp.Leaderboard[0].WinPct)
	assert.Equal(t, "challenger", resp.Leaderboard[1].Name)
	assert.Equal(t, 50.0, resp.Leaderboard[1].WinPct)

	resp, err = client.Leaderboard(ctx, gym.SortByWinPct)
	require.NoError(t, err)
	require.Len(t, resp.Leaderboard, 2)
	assert.Equal(t, "champ", resp.Leaderboard[0].Name)
}

func TestServer_ring(t *testing.T) {
	s := New()
	// Force the first boxer in the ring to win.
	s.randFn = func() float64 { return 0 }
	client := newTestClient(t, s)
	ctx := context.Background()

	// A fight needs two boxers.
	_, err := client.Fight(ctx)
	require.Error(t, err)

	_, err = client.AddBoxer(ctx, validBoxer("one"))
	require.NoError(t, err)
	_, err = client.AddBoxer(ctx, validBoxer("two"))
	require.NoError(t, err)
	_, err = client.AddBoxer(ctx, validBoxer("three"))
	require.NoError(t, err)

	_, err = client.EnterRing(ctx, "one")
	require.NoError(t, err)
	_, err = client.EnterRing(ctx, "two")
	require.NoError(t, err)

	// Ring holds two boxers at most.
	_, err = client.EnterRing(ctx, "three")
	require.Error(t, err)

	resp, err := client.GetRing(ctx)
	require.NoError(t, err)
	assert.Len(t, resp.Boxers, 2)

	fight, err := client.Fight(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one", fight.Winner)

	// The fight clears the ring and updates the record.
	resp, err = client.GetRing(ctx)
	require.NoError(t, err)
	assert.Empty(t, resp.Boxers)

	board, err := client.Leaderboard(ctx, gym.SortByWins)
	require.NoError(t, err)
	require.Len(t, board.Leaderboard, 2)
	assert.Equal(t, "one", board.Leaderboard[0].Name)
	assert.Equal(t, 1, board.Leaderboard[0].Wins)

	_, err = client.ClearRing(ctx)
	require.NoError(t, err)
}

func TestServer_enterRing_unknownBoxer(t *testing.T) {
	client := newTestClient(t, New())

	_, err := client.EnterRing(context.Background(), "ghost")
	var serr gym.ErrStatus
	require.True(t, errors.As(err, &serr))
	assert.Contains(t, serr.Message, "not found")
}

func TestServer_emptyCollectionsSerializeAsArrays(t *testing.T) {
	srv := httptest.NewServer(New().Router(context.Background()))
	t.Cleanup(srv.Close)

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "leaderboard",
			path: "/api/leaderboard",
			want: `"leaderboard":[]`,
		},
		{
			name: "get boxers",
			path: "/api/get-boxers",
			want: `"boxers":[]`,
		},
		{
			name: "get ring",
			path: "/api/get-boxers-in-ring",
			want: `"boxers":[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), tt.want)
		})
	}
}
