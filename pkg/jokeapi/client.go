package jokeapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jokes/pkg/metricskey"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/jokes/pkg", "jokeapi")

// DefaultBaseURL is the public Official Joke API
const DefaultBaseURL = "https://official-joke-api.appspot.com"

// maxBodySize limits the response body read from the API
const maxBodySize = 1 << 20

// endpoint names used in logs and metrics
const (
	endpointRandom = "random_joke"
	endpointByID   = "jokes_by_id"
	endpointByType = "jokes_by_type"
)

// Client for the Joke API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the given base URL,
// DefaultBaseURL is used if baseURL is empty.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

// WithHTTPClient sets the HTTP client
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	if client != nil {
		c.httpClient = client
	}
	return c
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RandomJoke returns a random joke
func (c *Client) RandomJoke(ctx context.Context) (*Joke, error) {
	var res Joke
	if err := c.get(ctx, endpointRandom, "/random_joke", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// JokeByID returns the joke with the given id.
// The id is validated before any network call.
func (c *Client) JokeByID(ctx context.Context, id int) (*Joke, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	var res Joke
	if err := c.get(ctx, endpointByID, "/jokes/"+strconv.Itoa(id), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// JokeByType returns a random joke of the given type.
// The type is validated before any network call.
func (c *Client) JokeByType(ctx context.Context, jokeType JokeType) (*Joke, error) {
	if _, err := ParseJokeType(string(jokeType)); err != nil {
		return nil, err
	}

	// the endpoint replies with a single element list
	var res []Joke
	if err := c.get(ctx, endpointByType, "/jokes/"+string(jokeType)+"/random", &res); err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, errors.Wrapf(ErrMalformedResponse, "no %s jokes in response", jokeType)
	}
	return &res[0], nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, v any) error {
	started := time.Now()
	defer metricskey.PerfJokeAPIRequest.MeasureSince(started, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "unable to create request: GET %s", path), ErrRemoteUnavailable)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metricskey.StatsJokeAPIRequests.IncrCounter(1, endpoint, "error")
		logger.ContextKV(ctx, xlog.DEBUG,
			"endpoint", endpoint,
			"path", path,
			"err", err.Error(),
		)
		return errors.Mark(errors.Wrapf(err, "joke API request failed: GET %s", path), ErrRemoteUnavailable)
	}
	defer resp.Body.Close()

	metricskey.StatsJokeAPIRequests.IncrCounter(1, endpoint, strconv.Itoa(resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "unable to read response: GET %s", path), ErrRemoteUnavailable)
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"endpoint", endpoint,
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(started).String(),
	)

	// the status code is not interpreted:
	// a body without the expected fields is reported as malformed
	if err = json.Unmarshal(body, v); err != nil {
		return errors.Mark(
			errors.Wrapf(err, "unable to decode response with status %d: GET %s", resp.StatusCode, path),
			ErrMalformedResponse)
	}
	return nil
}
