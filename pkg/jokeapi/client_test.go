package jokeapi_test

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jokes/internal/testingutils"
	"github.com/effective-security/jokes/pkg/jokeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_New(t *testing.T) {
	c := jokeapi.New("")
	assert.Equal(t, jokeapi.DefaultBaseURL, c.BaseURL())

	c = jokeapi.New("http://localhost:8080/").WithHTTPClient(nil)
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
}

func Test_RandomJoke(t *testing.T) {
	api := testingutils.NewMockJokeAPI()
	defer api.Close()
	api.Random = func(string) (int, string) {
		return http.StatusOK, testingutils.JokeJSON(7, "general", "Why?", "Because.")
	}

	c := jokeapi.New(api.URL).WithHTTPClient(api.Client())
	j, err := c.RandomJoke(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, j.ID)
	assert.Equal(t, "general", j.Type)

	txt, err := jokeapi.Extract(j)
	require.NoError(t, err)
	assert.Equal(t, "Why?\nBecause.", txt)
	assert.Equal(t, []string{"/random_joke"}, api.Requests())
}

func Test_JokeByID(t *testing.T) {
	api := testingutils.NewMockJokeAPI()
	defer api.Close()

	ctx := context.Background()
	c := jokeapi.New(api.URL).WithHTTPClient(api.Client())

	for id := jokeapi.MinJokeID; id <= jokeapi.MaxJokeID; id++ {
		api.Reset()
		j, err := c.JokeByID(ctx, id)
		require.NoError(t, err, "id=%d", id)
		assert.Equal(t, id, j.ID)

		txt, err := jokeapi.Extract(j)
		require.NoError(t, err)
		assert.Equal(t, "S\nP", txt)
		assert.Equal(t, []string{fmt.Sprintf("/jokes/%d", id)}, api.Requests())
	}
}

func Test_JokeByID_OutOfRange(t *testing.T) {
	api := testingutils.NewMockJokeAPI()
	defer api.Close()

	ctx := context.Background()
	c := jokeapi.New(api.URL).WithHTTPClient(api.Client())

	for _, id := range []int{math.MinInt, -1, 0, jokeapi.MaxJokeID + 1, 1000, math.MaxInt} {
		_, err := c.JokeByID(ctx, id)
		require.Error(t, err)
		assert.True(t, errors.Is(err, jokeapi.ErrInvalidArgument), "id=%d: %v", id, err)
	}
	assert.Equal(t, 0, api.RequestsCount())

	_, err := c.JokeByID(ctx, 0)
	assert.EqualError(t, err, "joke id 0 is out of range [1, 451]: invalid argument")
}

func Test_JokeByID_NotFound(t *testing.T) {
	api := testingutils.NewMockJokeAPI()
	defer api.Close()
	api.ByID = func(string) (int, string) {
		return http.StatusNotFound, testingutils.NotFoundBody
	}

	c := jokeapi.New(api.URL).WithHTTPClient(api.Client())
	j, err := c.JokeByID(context.Background(), 450)
	require.NoError(t, err)

	_, err = jokeapi.Extract(j)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jokeapi.ErrMalformedResponse))
	assert.False(t, errors.Is(err, jokeapi.ErrRemoteUnavailable))
}

func Test_JokeByType(t *testing.T) {
	api := testingutils.NewMockJokeAPI()
	defer api.Close()
	api.ByType = func(jokeType string) (int, string) {
		return http.StatusOK, `[{"id":5,"type":"programming","setup":"A","punchline":"B"}]`
	}

	ctx := context.Background()
	c := jokeapi.New(api.URL).WithHTTPClient(api.Client())

	j, err := c.JokeByType(ctx, jokeapi.Programming)
	require.NoError(t, err)
	txt, err := jokeapi.Extract(j)
	require.NoError(t, err)
	assert.Equal(t, "A\nB", txt)
	assert.Equal(t, []string{"/jokes/programming/random"}, api.Requests())

	api.Reset()
	for _, jt := range jokeapi.JokeTypes() {
		_, err = c.JokeByType(ctx, jt)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{
		"/jokes/general/random",
		"/jokes/knock-knock/random",
		"/jokes/programming/random",
		"/jokes/dad/random",
	}, api.Requests())
}

func Test_JokeByType_Invalid(t *testing.T) {
	api := testingutils.NewMockJokeAPI()
	defer api.Close()

	ctx := context.Background()
	c := jokeapi.New(api.URL).WithHTTPClient(api.Client())

	for _, jt := range []string{"", "Dad", "DAD", "knock_knock", "programming ", "pun", "../random_joke"} {
		_, err := c.JokeByType(ctx, jokeapi.JokeType(jt))
		require.Error(t, err)
		assert.True(t, errors.Is(err, jokeapi.ErrInvalidArgument), "type=%q: %v", jt, err)
	}
	assert.Equal(t, 0, api.RequestsCount())
}

func Test_JokeByType_Empty(t *testing.T) {
	api := testingutils.NewMockJokeAPI()
	defer api.Close()
	api.ByType = func(string) (int, string) {
		return http.StatusOK, `[]`
	}

	c := jokeapi.New(api.URL).WithHTTPClient(api.Client())
	_, err := c.JokeByType(context.Background(), jokeapi.Dad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jokeapi.ErrMalformedResponse))
	assert.EqualError(t, err, "no dad jokes in response: malformed joke API response")
}

func Test_MalformedResponse(t *testing.T) {
	api := testingutils.NewMockJokeAPI()
	defer api.Close()

	noPunchline := testingutils.WithoutFields(testingutils.JokeJSON(1, "general", "S", "P"), "punchline")
	api.Random = func(string) (int, string) { return http.StatusOK, noPunchline }
	api.ByID = func(string) (int, string) { return http.StatusOK, noPunchline }
	api.ByType = func(string) (int, string) { return http.StatusOK, "[" + noPunchline + "]" }

	ctx := context.Background()
	c := jokeapi.New(api.URL).WithHTTPClient(api.Client())

	fetch := map[string]func() (*jokeapi.Joke, error){
		"random": func() (*jokeapi.Joke, error) { return c.RandomJoke(ctx) },
		"by_id":  func() (*jokeapi.Joke, error) { return c.JokeByID(ctx, 3) },
		"by_type": func() (*jokeapi.Joke, error) {
			return c.JokeByType(ctx, jokeapi.General)
		},
	}
	for name, fn := range fetch {
		t.Run(name, func(t *testing.T) {
			j, err := fn()
			require.NoError(t, err)
			txt, err := jokeapi.Extract(j)
			assert.Empty(t, txt)
			require.Error(t, err)
			assert.True(t, errors.Is(err, jokeapi.ErrMalformedResponse))
			assert.EqualError(t, err, "missing punchline: malformed joke API response")
		})
	}
}

func Test_NotJSON(t *testing.T) {
	api := testingutils.NewMockJokeAPI()
	defer api.Close()
	api.Random = func(string) (int, string) {
		return http.StatusBadGateway, "<html>Bad Gateway</html>"
	}

	c := jokeapi.New(api.URL).WithHTTPClient(api.Client())
	_, err := c.RandomJoke(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, jokeapi.ErrMalformedResponse))
	assert.Contains(t, err.Error(), "unable to decode response with status 502")

	// object instead of list
	api.ByType = func(string) (int, string) {
		return http.StatusOK, testingutils.JokeJSON(1, "dad", "S", "P")
	}
	_, err = c.JokeByType(context.Background(), jokeapi.Dad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jokeapi.ErrMalformedResponse))
}

func Test_RemoteUnavailable(t *testing.T) {
	ctx := context.Background()
	c := jokeapi.New(testingutils.ClosedServerURL()).
		WithHTTPClient(&http.Client{Timeout: 5 * time.Second})

	_, err := c.RandomJoke(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jokeapi.ErrRemoteUnavailable))
	assert.Contains(t, err.Error(), "joke API request failed: GET /random_joke")

	_, err = c.JokeByID(ctx, 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jokeapi.ErrRemoteUnavailable))

	_, err = c.JokeByType(ctx, jokeapi.KnockKnock)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jokeapi.ErrRemoteUnavailable))
	assert.False(t, errors.Is(err, jokeapi.ErrMalformedResponse))
}

func Test_Cancelled(t *testing.T) {
	api := testingutils.NewMockJokeAPI()
	defer api.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := jokeapi.New(api.URL).WithHTTPClient(api.Client())
	_, err := c.RandomJoke(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jokeapi.ErrRemoteUnavailable))
}
