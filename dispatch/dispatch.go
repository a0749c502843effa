// ABOUTME: Load balancer dispatch runner over a simulated server pool
// ABOUTME: Routes requests round robin or to the least loaded server on a discrete tick clock

// Package dispatch simulates request distribution across servers as a step trace.
package dispatch

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"algoviz/dataset"
	"algoviz/trace"
)

// Policy selects the target server for each request
type Policy string

// Dispatch policies
const (
	RoundRobin       Policy = "round-robin"
	LeastConnections Policy = "least-connections"
)

// DefaultServers is the size of the simulated pool
const DefaultServers = 4

// Dispatch errors
var (
	ErrUnknownPolicy = errors.New("unknown dispatch policy")
	ErrNoServers     = errors.New("at least one server is required")
)

// Policies returns the supported policies
func Policies() []Policy {
	return []Policy{RoundRobin, LeastConnections}
}

// Name returns the display name
func (p Policy) Name() string {
	switch p {
	case RoundRobin:
		return "Round Robin"
	case LeastConnections:
		return "Least Connections"
	default:
		return string(p)
	}
}

// ParsePolicy accepts "round-robin", "roundRobin", "rr", "least-connections", "leastConnections" or "lc"
func ParsePolicy(s string) (Policy, error) {
	id := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))

	switch id {
	case "roundrobin", "rr":
		return RoundRobin, nil
	case "leastconnections", "lc":
		return LeastConnections, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Request is one simulated client request
type Request struct {
	ID      int `json:"id" yaml:"id"`
	Arrival int `json:"arrival" yaml:"arrival"`
	Work    int `json:"work" yaml:"work"`
}

// Workload returns n requests arriving one per tick with a repeating
// 3..6 tick processing pattern. Non-positive n yields no requests.
func Workload(n int) []Request {
	if n <= 0 {
		return nil
	}

	out := make([]Request, n)
	for i := range out {
		out[i] = Request{ID: i + 1, Arrival: i, Work: 3 + (i*5)%4}
	}

	return out
}

type pending struct {
	req    Request
	server int
	finish int
}

// Run distributes reqs over servers and returns the trace together with the
// server index chosen for each request
func Run(p Policy, servers int, reqs []Request) (trace.Trace, []int, error) {
	switch {
	case p != RoundRobin && p != LeastConnections:
		return trace.Trace{}, nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, p)
	case servers < 1:
		return trace.Trace{}, nil, ErrNoServers
	case len(reqs) == 0:
		return trace.Trace{}, nil, dataset.ErrEmpty
	}

	rec := trace.NewRecorder(string(p))
	depth := make([]int, servers)
	assigned := make([]int, 0, len(reqs))

	var inflight []pending

	complete := func(until int) {
		slices.SortStableFunc(inflight, func(a, b pending) int {
			return cmp.Or(cmp.Compare(a.finish, b.finish), cmp.Compare(a.server, b.server))
		})

		for len(inflight) > 0 && inflight[0].finish <= until {
			done := inflight[0]
			inflight = inflight[1:]
			depth[done.server]--
			rec.Stats.Accesses++

			rec.Array(trace.KindDequeue, depth, trace.Highlights{trace.Current: {done.server}},
				fmt.Sprintf("Server %d completed request #%d", done.server+1, done.req.ID))
		}
	}

	rec.Array(trace.KindInit, depth, nil,
		fmt.Sprintf("%s across %d servers", p.Name(), servers))

	last := -1

	for _, req := range reqs {
		complete(req.Arrival)

		var target int

		switch p {
		case RoundRobin:
			last = (last + 1) % servers
			target = last
		case LeastConnections:
			target = 0

			for i := 1; i < servers; i++ {
				rec.Stats.Comparisons++
				if depth[i] < depth[target] {
					target = i
				}
			}
		}

		depth[target]++
		rec.Stats.Accesses++
		rec.Stats.Iterations++
		assigned = append(assigned, target)
		inflight = append(inflight, pending{req: req, server: target, finish: req.Arrival + req.Work})

		rec.Array(trace.KindEnqueue, depth, trace.Highlights{trace.Selected: {target}},
			fmt.Sprintf("Request #%d routed to server %d", req.ID, target+1))
	}

	complete(math.MaxInt)

	rec.Array(trace.KindDone, depth, nil,
		fmt.Sprintf("Distributed %d requests across %d servers", len(reqs), servers))

	return rec.Trace(), assigned, nil
}
