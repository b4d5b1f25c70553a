package server_test

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/effective-security/jokes/internal/testingutils"
	"github.com/effective-security/jokes/pkg/jokeapi"
	"github.com/effective-security/jokes/server"
	mcp "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport/stdio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type session struct {
	in    *io.PipeWriter
	lines chan string
}

func (s *session) call(t *testing.T, id int, method, params string) string {
	t.Helper()
	_, err := fmt.Fprintf(s.in, `{"jsonrpc":"2.0","id":%d,"method":%q,"params":%s}`+"\n", id, method, params)
	require.NoError(t, err)

	idField := fmt.Sprintf(`"id":%d`, id)
	timeout := time.After(5 * time.Second)
	for {
		select {
		case line, ok := <-s.lines:
			require.True(t, ok, "server output closed")
			// skip notifications
			if strings.Contains(line, idField) {
				return line
			}
		case <-timeout:
			t.Fatalf("no response for %s", method)
			return ""
		}
	}
}

func Test_Serve(t *testing.T) {
	api := testingutils.NewMockJokeAPI()
	defer api.Close()

	reg, err := server.NewDefault(jokeapi.New(api.URL).WithHTTPClient(api.Client()))
	require.NoError(t, err)

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	s := &session{
		in:    inW,
		lines: make(chan string, 16),
	}
	go func() {
		defer close(s.lines)
		scanner := bufio.NewScanner(outR)
		for scanner.Scan() {
			s.lines <- scanner.Text()
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx,
			stdio.NewStdioServerTransportWithIO(inR, outW),
			reg,
			mcp.WithName("jokes"),
			mcp.WithVersion("test"),
		)
	}()

	list := s.call(t, 1, "tools/list", `{}`)
	for _, name := range reg.Names() {
		assert.Contains(t, list, `"name":"`+name+`"`)
	}
	assert.Contains(t, list, `"minimum":1`)
	assert.Contains(t, list, `"maximum":451`)
	assert.Contains(t, list, `"knock-knock"`)
	assert.Contains(t, list, `"required":["id"]`)
	assert.Contains(t, list, `"required":["joke_type"]`)

	res := s.call(t, 2, "tools/call", `{"name":"get_consistent_joke","arguments":{}}`)
	assert.Contains(t, res, `What's brown and sticky?\nA stick! Ha ha ha ha`)
	assert.Equal(t, 0, api.RequestsCount())

	// arguments are optional for the tools without parameters
	res = s.call(t, 6, "tools/call", `{"name":"get_consistent_joke"}`)
	assert.Contains(t, res, `What's brown and sticky?\nA stick! Ha ha ha ha`)
	assert.NotContains(t, res, `"isError":true`)
	assert.Equal(t, 0, api.RequestsCount())

	res = s.call(t, 7, "tools/call", `{"name":"get_joke","arguments":null}`)
	assert.Contains(t, res, `S\nP`)
	assert.NotContains(t, res, `"isError":true`)

	res = s.call(t, 8, "tools/call", `{"name":"get_joke"}`)
	assert.Contains(t, res, `S\nP`)
	assert.NotContains(t, res, `"isError":true`)

	res = s.call(t, 3, "tools/call", `{"name":"get_joke_by_id","arguments":{"id":7}}`)
	assert.Contains(t, res, `S\nP`)

	res = s.call(t, 4, "tools/call", `{"name":"get_joke_by_id","arguments":{"id":452}}`)
	assert.Contains(t, res, "out of range")

	res = s.call(t, 5, "tools/call", `{"name":"get_joke_by_type","arguments":{"joke_type":"dad"}}`)
	assert.Contains(t, res, `S\nP`)

	assert.Equal(t, []string{"/random_joke", "/random_joke", "/jokes/7", "/jokes/dad/random"}, api.Requests())

	// release the transport reader before stopping
	_ = inW.Close()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
	_ = outW.Close()
}
