// Package rwgps is the Ride With GPS API adapter. It exposes the three
// operations the synchronizer consumes: latest trip, one page of trips,
// and the full trip list. Transient failures (timeouts, 429, 5xx) are
// retried with bounded exponential backoff; page requests are throttled
// to respect the remote rate limit.
package rwgps

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/penwyp/go-eddington/internal/core/constants"
	"github.com/penwyp/go-eddington/internal/core/model"
	"github.com/penwyp/go-eddington/internal/util"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://ridewithgps.com/api/v1"

// transientError marks a response worth retrying.
type transientError struct {
	status int
}

func (e *transientError) Error() string {
	return fmt.Sprintf("transient remote failure: status %d", e.status)
}

// Client talks to the RWGPS v1 API.
type Client struct {
	baseURL    string
	apiKey     string
	authToken  string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries uint64
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithPageInterval sets the minimum delay between page requests.
func WithPageInterval(d time.Duration) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithAuthToken seeds a previously persisted bearer token so the client
// can skip the credential handshake.
func WithAuthToken(token string) Option {
	return func(c *Client) { c.authToken = token }
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(constants.PageInterval), 1),
		maxRetries: constants.MaxFetchRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticate exchanges credentials for an auth token and installs it on
// the client. The token is returned so the caller can persist it.
func (c *Client) Authenticate(ctx context.Context, email, password string) (string, error) {
	var req authRequest
	req.User.Email = email
	req.User.Password = password

	body, err := sonic.Marshal(&req)
	if err != nil {
		return "", fmt.Errorf("failed to encode auth request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/auth_tokens.json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create auth request: %w", err)
	}
	httpReq.Header.Set("x-rwgps-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	data, err := c.doWithRetry(ctx, httpReq, func() (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/auth_tokens.json", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		r.Header.Set("x-rwgps-api-key", c.apiKey)
		r.Header.Set("Content-Type", "application/json")
		return r, nil
	})
	if err != nil {
		return "", fmt.Errorf("authentication failed: %w", err)
	}

	var resp authResponse
	if err := sonic.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("failed to parse auth response: %w", err)
	}
	if resp.AuthToken.AuthToken == "" {
		return "", fmt.Errorf("invalid authentication response format")
	}

	c.authToken = resp.AuthToken.AuthToken
	return c.authToken, nil
}

// Latest fetches the most recent trip, or nil when the account has none.
func (c *Client) Latest(ctx context.Context) (*model.Trip, error) {
	resp, err := c.fetchTrips(ctx, 1, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest trip: %w", err)
	}
	if len(resp.Trips) == 0 {
		return nil, nil
	}
	trip := resp.Trips[0]
	return &trip, nil
}

// Page fetches one page of trips. An empty slice signals the end of pages.
//
// Precondition of the incremental sync path: the API returns trips newest
// first, so records newer than any cached id are reachable within the
// leading pages. The synchronizer cannot verify this; it is part of the
// adapter contract.
func (c *Client) Page(ctx context.Context, page, perPage int) ([]model.Trip, error) {
	resp, err := c.fetchTrips(ctx, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trips page %d: %w", page, err)
	}
	util.LogDebugf("Fetched page %d: %d trips", page, len(resp.Trips))
	return resp.Trips, nil
}

// All fetches the complete trip list. The progress callback, when non-nil,
// receives the running count and the total reported by the pagination
// metadata after every page.
func (c *Client) All(ctx context.Context, progress func(done, total int)) ([]model.Trip, error) {
	first, err := c.fetchTrips(ctx, 1, constants.FullFetchPerPage)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trips: %w", err)
	}

	pageCount := first.Meta.Pagination.PageCount
	total := first.Meta.Pagination.RecordCount
	util.LogInfof("Remote reports %d trips across %d pages", total, pageCount)

	all := append([]model.Trip(nil), first.Trips...)
	if progress != nil {
		progress(len(all), total)
	}

	for page := 2; page <= pageCount; page++ {
		resp, err := c.fetchTrips(ctx, page, constants.FullFetchPerPage)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch trips page %d: %w", page, err)
		}
		all = append(all, resp.Trips...)
		if progress != nil {
			progress(len(all), total)
		}
	}

	if len(all) < total {
		util.LogWarnf("Fetched %d of %d reported trips", len(all), total)
	}
	return all, nil
}

func (c *Client) fetchTrips(ctx context.Context, page, perPage int) (*tripsResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	build := func() (*http.Request, error) {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(perPage))
		q.Set("version", "2")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			c.baseURL+"/trips.json?"+q.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("x-rwgps-api-key", c.apiKey)
		req.Header.Set("x-rwgps-auth-token", c.authToken)
		return req, nil
	}

	req, err := build()
	if err != nil {
		return nil, err
	}

	data, err := c.doWithRetry(ctx, req, build)
	if err != nil {
		return nil, err
	}

	var resp tripsResponse
	if err := sonic.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse trips response: %w", err)
	}
	return &resp, nil
}

// doWithRetry executes a request, retrying transient failures with bounded
// exponential backoff. rebuild produces a fresh request per attempt since
// request bodies are single-use.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, rebuild func() (*http.Request, error)) ([]byte, error) {
	var body []byte
	attempt := 0

	operation := func() error {
		if attempt > 0 {
			var err error
			req, err = rebuild()
			if err != nil {
				return backoff.Permanent(err)
			}
			util.LogDebugf("Retrying %s %s (attempt %d)", req.Method, req.URL.Path, attempt+1)
		}
		attempt++

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return &transientError{status: resp.StatusCode}
		}
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			return backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}
