package metricskey

import "github.com/effective-security/metrics"

// Stats
var (
	StatsToolCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_succeeded",
		Help:         "stats_tool_calls_succeeded provides total tool calls succeeded",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_failed",
		Help:         "stats_tool_calls_failed provides total tool calls failed",
		RequiredTags: []string{"tool"},
	}

	// StatsToolCallsNotFound is tagged with tool=unknown
	StatsToolCallsNotFound = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_not_found",
		Help:         "stats_tool_calls_not_found provides total tool calls not found",
		RequiredTags: []string{"tool"},
	}

	// StatsJokeAPIRequests is base for counter metric for requests sent to the Joke API,
	// status is the HTTP status code, or "error" when the request did not complete
	StatsJokeAPIRequests = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_joke_api_requests",
		Help:         "stats_joke_api_requests provides total requests sent to Joke API",
		RequiredTags: []string{"endpoint", "status"},
	}
)

// Perf
var (
	PerfToolCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_tool_call",
		Help:         "perf_tool_call provides duration of tool call",
		RequiredTags: []string{"tool"},
	}

	PerfJokeAPIRequest = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_joke_api_request",
		Help:         "perf_joke_api_request provides duration of Joke API request",
		RequiredTags: []string{"endpoint"},
	}
)

// Metrics returns slice of metrics from this repo
// keep sorted by name
var Metrics = []*metrics.Describe{
	&PerfJokeAPIRequest,
	&PerfToolCall,
	&StatsJokeAPIRequests,
	&StatsToolCallsFailed,
	&StatsToolCallsNotFound,
	&StatsToolCallsSucceeded,
}
