package testingutils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/tidwall/sjson"
)

// NotFoundBody is the reply of the Joke API for an unknown joke id
const NotFoundBody = `{"type":"error","message":"joke not found"}`

// ResponseFunc returns the status code and the body for a request
type ResponseFunc func(param string) (int, string)

// MockJokeAPI is an in-process Joke API that records every request path
type MockJokeAPI struct {
	*httptest.Server

	// Random serves /random_joke
	Random ResponseFunc
	// ByID serves /jokes/{id}, the param is the id
	ByID ResponseFunc
	// ByType serves /jokes/{type}/random, the param is the type
	ByType ResponseFunc

	lock     sync.Mutex
	requests []string
}

// NewMockJokeAPI starts a mock API, which by default replies
// with a joke whose setup is "S" and punchline is "P"
func NewMockJokeAPI() *MockJokeAPI {
	m := &MockJokeAPI{
		Random: func(string) (int, string) {
			return http.StatusOK, JokeJSON(1, "general", "S", "P")
		},
		ByID: func(param string) (int, string) {
			id, _ := strconv.Atoi(param)
			return http.StatusOK, JokeJSON(id, "general", "S", "P")
		},
		ByType: func(param string) (int, string) {
			return http.StatusOK, "[" + JokeJSON(1, param, "S", "P") + "]"
		},
	}

	r := mux.NewRouter()
	r.HandleFunc("/random_joke", func(w http.ResponseWriter, _ *http.Request) {
		m.reply(w, m.Random, "")
	}).Methods(http.MethodGet)
	r.HandleFunc("/jokes/{id:-?[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		m.reply(w, m.ByID, mux.Vars(r)["id"])
	}).Methods(http.MethodGet)
	r.HandleFunc("/jokes/{type}/random", func(w http.ResponseWriter, r *http.Request) {
		m.reply(w, m.ByType, mux.Vars(r)["type"])
	}).Methods(http.MethodGet)

	// record every request, including the ones no route matches
	m.Server = httptest.NewServer(m.record(r))
	return m
}

// JokeJSON returns the API representation of a joke
func JokeJSON(id int, jokeType, setup, punchline string) string {
	js := fmt.Sprintf(`{"id":%d}`, id)
	js, _ = sjson.Set(js, "type", jokeType)
	js, _ = sjson.Set(js, "setup", setup)
	js, _ = sjson.Set(js, "punchline", punchline)
	return js
}

// WithoutFields returns js with the fields removed
func WithoutFields(js string, fields ...string) string {
	for _, f := range fields {
		js, _ = sjson.Delete(js, f)
	}
	return js
}

// Requests returns the recorded request paths
func (m *MockJokeAPI) Requests() []string {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]string(nil), m.requests...)
}

// RequestsCount returns the number of recorded requests
func (m *MockJokeAPI) RequestsCount() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.requests)
}

// Reset clears the recorded requests
func (m *MockJokeAPI) Reset() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.requests = nil
}

func (m *MockJokeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.lock.Lock()
		m.requests = append(m.requests, r.URL.Path)
		m.lock.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (m *MockJokeAPI) reply(w http.ResponseWriter, fn ResponseFunc, param string) {
	status, body := fn(param)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// ClosedServerURL returns URL of a server that is no longer listening,
// so any request to it fails with connection refused
func ClosedServerURL() string {
	s := httptest.NewServer(http.NotFoundHandler())
	url := s.URL
	s.Close()
	return url
}
