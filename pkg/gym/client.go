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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/caas-team/ringside/internal/httpclient"
	"github.com/caas-team/ringside/internal/logger"
	"github.com/caas-team/ringside/pkg/config"
)

// Client talks to the gym API. All methods decode the response body
// into the common [Envelope]; the HTTP status code is deliberately not
// part of the success criterion, only the envelope status is.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a new gym API client for the given target.
// If an http.Client is embedded in the context it is used as is,
// which lets tests route requests through a mocked transport;
// otherwise a client with the configured timeout is created.
func New(ctx context.Context, cfg config.TargetConfig) *Client {
	c, ok := httpclient.Lookup(ctx)
	if !ok {
		c = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  c,
	}
}

// Response is the outcome of a single request against the gym API
type Response struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int
	// Raw is the unmodified response body
	Raw []byte
	// Envelope is the decoded response envelope
	Envelope *Envelope
}

// Do sends a single request to the gym API and decodes the response
// envelope. A transport error, an unreadable body and a body that does
// not decode into an envelope are all returned as errors; an error
// envelope is not, callers inspect Envelope.Ok for that.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, payload any) (*Response, error) {
	log := logger.FromContext(ctx).With("method", method, "path", path)

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	body := io.Reader(http.NoBody)
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		log.Error("Could not create http request", "error", err.Error())
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.client.Do(req) //nolint:bodyclose // closed in defer
	if err != nil {
		log.Error("Http request failed", "error", err.Error())
		return nil, err
	}
	defer func(b io.ReadCloser) {
		if cerr := b.Close(); cerr != nil {
			log.Error("Failed to close response body", "error", cerr.Error())
		}
	}(res.Body)

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		log.Error("Could not read response body", "error", err.Error())
		return nil, err
	}
	log.Debug("Got response", "status", res.Status)

	resp := &Response{StatusCode: res.StatusCode, Raw: raw}
	env, err := ParseEnvelope(raw)
	if err != nil {
		log.Error("Could not decode response envelope", "error", err.Error())
		return resp, err
	}
	resp.Envelope = env
	return resp, nil
}

// get is a convenience wrapper for typed GET endpoints
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values) (*Envelope, error) {
	resp, err := c.Do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	if !resp.Envelope.Ok() {
		return resp.Envelope, ErrStatus{Endpoint: endpoint, Message: resp.Envelope.Message}
	}
	return resp.Envelope, nil
}

// post is a convenience wrapper for typed POST endpoints
func (c *Client) post(ctx context.Context, endpoint, path string, payload any) (*Envelope, error) {
	resp, err := c.Do(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return nil, err
	}
	if !resp.Envelope.Ok() {
		return resp.Envelope, ErrStatus{Endpoint: endpoint, Message: resp.Envelope.Message}
	}
	return resp.Envelope, nil
}

// Health checks if the gym API is reachable
func (c *Client) Health(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "health", "/health", nil)
}

// DBCheck checks if the gym API can reach its database
func (c *Client) DBCheck(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "db-check", "/db-check", nil)
}

// AddBoxer registers a new boxer in the gym
func (c *Client) AddBoxer(ctx context.Context, boxer NewBoxer) (*Envelope, error) {
	return c.post(ctx, "add-boxer", "/add-boxer", boxer)
}

// GetBoxerByName fetches a boxer by their name
func (c *Client) GetBoxerByName(ctx context.Context, name string) (*Envelope, error) {
	return c.get(ctx, "get-boxer-by-name", "/get-boxer-by-name/"+url.PathEscape(name), nil)
}

// GetBoxerByID fetches a boxer by their id
func (c *Client) GetBoxerByID(ctx context.Context, id int) (*Envelope, error) {
	return c.get(ctx, "get-boxer-by-id", fmt.Sprintf("/get-boxer-by-id/%d", id), nil)
}

// DeleteBoxer removes a boxer from the gym
func (c *Client) DeleteBoxer(ctx context.Context, id int) (*Envelope, error) {
	resp, err := c.Do(ctx, http.MethodDelete, fmt.Sprintf("/delete-boxer/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	if !resp.Envelope.Ok() {
		return resp.Envelope, ErrStatus{Endpoint: "delete-boxer", Message: resp.Envelope.Message}
	}
	return resp.Envelope, nil
}

// Leaderboard fetches the gym leaderboard in the given order.
// An empty leaderboard is a valid result, not an error.
func (c *Client) Leaderboard(ctx context.Context, sort LeaderboardSort) (*Envelope, error) {
	var query url.Values
	if sort != "" && sort != SortByWins {
		query = url.Values{"sort": []string{string(sort)}}
	}
	return c.get(ctx, "leaderboard", "/leaderboard", query)
}

// ClearBoxers removes all boxers from the gym
func (c *Client) ClearBoxers(ctx context.Context) (*Envelope, error) {
	return c.post(ctx, "clear-boxers", "/clear-boxers", nil)
}

// GetBoxers lists all boxers registered in the gym
func (c *Client) GetBoxers(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "get-boxers", "/get-boxers", nil)
}

// EnterRing puts a boxer into the ring. The ring holds two boxers at most.
func (c *Client) EnterRing(ctx context.Context, name string) (*Envelope, error) {
	return c.post(ctx, "enter-ring", "/enter-ring", map[string]string{"name": name})
}

// Fight runs a fight between the two boxers in the ring and clears it
func (c *Client) Fight(ctx context.Context) (*Envelope, error) {
	return c.post(ctx, "fight", "/fight", nil)
}

// ClearRing removes all boxers from the ring
func (c *Client) ClearRing(ctx context.Context) (*Envelope, error) {
	return c.post(ctx, "clear-ring", "/clear-ring", nil)
}

// GetRing lists the boxers currently in the ring
func (c *Client) GetRing(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "get-boxers-in-ring", "/get-boxers-in-ring", nil)
}
