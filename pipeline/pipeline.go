// ABOUTME: Multi-stage pipeline narration runner for auth, middleware, api and event loop flows
// ABOUTME: Holds the canonical stage duration table; each stage becomes one weighted step

// Package pipeline narrates simulated backend request flows as step traces.
package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"algoviz/trace"
)

// Flow names a narrated request flow
type Flow string

// Supported flows
const (
	Login                Flow = "login"
	Signup               Flow = "signup"
	AuthMiddleware       Flow = "middleware-auth"
	ValidationMiddleware Flow = "middleware-validation"
	LoggingMiddleware    Flow = "middleware-logging"
	API                  Flow = "api"
	EventLoop            Flow = "eventloop"
)

// ErrUnknownFlow is returned for an unrecognized flow id
var ErrUnknownFlow = errors.New("unknown pipeline flow")

// Stage is one narrated phase of a flow
type Stage struct {
	Title    string        `json:"title" yaml:"title"`
	Message  string        `json:"message" yaml:"message"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Flows returns every flow
func Flows() []Flow {
	return []Flow{Login, Signup, AuthMiddleware, ValidationMiddleware, LoggingMiddleware, API, EventLoop}
}

// ParseFlow accepts flow ids case insensitively; "auth", "validation" and
// "logging" select the middleware flows
func ParseFlow(s string) (Flow, error) {
	id := strings.ToLower(strings.TrimSpace(s))

	switch id {
	case "auth", "validation", "logging":
		id = "middleware-" + id
	case "event-loop":
		id = string(EventLoop)
	}

	for _, f := range Flows() {
		if Flow(id) == f {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFlow, s)
}

type middleware struct {
	title  string
	checks []string
}

var middlewares = map[Flow]middleware{
	AuthMiddleware:       {"Authentication Middleware", []string{"Token Validation", "User Exists", "Permissions Check"}},
	ValidationMiddleware: {"Validation Middleware", []string{"Data Type Check", "Required Fields", "Format Validation"}},
	LoggingMiddleware:    {"Logging Middleware", []string{"Timestamp", "IP Address", "Endpoint", "Status"}},
}

// Stages returns the stage table for f; user personalizes the greeting
func Stages(f Flow, user string) ([]Stage, error) {
	if user == "" {
		user = "there"
	}

	ms := time.Millisecond

	switch f {
	case Login:
		return []Stage{
			{"Request Received", fmt.Sprintf("Hello %s! Your login request has been received.", user), 2000 * ms},
			{"Validating Input", "Checking if your email format is correct and password is provided...", 2500 * ms},
			{"Database Search", "Searching for your account in our secure database...", 3000 * ms},
			{"User Found", "Found your account. Now verifying your password...", 2500 * ms},
			{"Password Verification", "Comparing your password with the securely stored hash...", 3500 * ms},
			{"Authentication Successful", "Password matched! You're now authenticated.", 3000 * ms},
			{"Sending Response", "Preparing your user data and authentication token...", 2500 * ms},
		}, nil
	case Signup:
		return []Stage{
			{"Request Received", fmt.Sprintf("Welcome %s! Your signup request has been received.", user), 2000 * ms},
			{"Validating Input", "Checking if all fields are valid and meet security requirements...", 3000 * ms},
			{"Checking Availability", "Verifying if your email and username are available...", 3500 * ms},
			{"Securing Password", "Hashing your password before it is stored...", 4000 * ms},
			{"Creating Account", "Storing your information in the database...", 3000 * ms},
			{"Account Created", "Your account has been created!", 3000 * ms},
			{"Sending Welcome", "Preparing your account data and welcome message...", 2500 * ms},
		}, nil
	case API:
		return []Stage{
			{"Client Request", fmt.Sprintf("Hello %s! Your device initiates an API call.", user), 2000 * ms},
			{"DNS Resolution", "Domain name is translated to an IP address", 2500 * ms},
			{"TCP Handshake", "Connection is established with the server", 2000 * ms},
			{"HTTP Request", "Request is sent to the API server", 3000 * ms},
			{"Server Processing", "Server processes the request and prepares a response", 2500 * ms},
			{"Response", "Response is sent back to the client", 2000 * ms},
		}, nil
	case EventLoop:
		// Timer and file read durations are the midpoints of their simulated ranges
		return []Stage{
			{"Call Stack", "main() runs and calls setTimeout", 1000 * ms},
			{"Web APIs", "The timer counts down outside the call stack", 2500 * ms},
			{"Callback Queue", "The timer callback waits for an empty stack", 1000 * ms},
			{"Event Loop", "The stack is empty, the callback moves onto it", 1000 * ms},
			{"Call Stack", "The timer callback executes and is removed", 1000 * ms},
			{"Web APIs", "A blocking file read is handed off", 1000 * ms},
			{"Thread Pool", "A worker thread performs the file read", 4500 * ms},
			{"Callback Queue", "The read callback waits for an empty stack", 1000 * ms},
			{"Event Loop", "The read callback moves onto the stack and executes", 1000 * ms},
		}, nil
	}

	mw, ok := middlewares[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFlow, f)
	}

	stages := []Stage{
		{"Incoming Request", "Incoming request received...", 2000 * ms},
		{mw.title, mw.title + " processing...", 3000 * ms},
	}

	for _, check := range mw.checks[:3] {
		stages = append(stages, Stage{"Check", "Checking: " + check, 2500 * ms})
	}

	return append(stages, Stage{"Forwarding", "All checks passed! Forwarding to route...", 3000 * ms}), nil
}

// Run narrates f as one step per stage. The snapshot marks finished stages with 1.
func Run(f Flow, user string) (trace.Trace, error) {
	stages, err := Stages(f, user)
	if err != nil {
		return trace.Trace{}, err
	}

	rec := trace.NewRecorder(string(f))
	progress := make([]int, len(stages))

	for i, st := range stages {
		rec.Stats.Iterations++
		progress[i] = 1

		rec.Record(trace.Step{
			Kind:  trace.KindStage,
			Array: progress,
			Highlights: trace.Highlights{
				trace.Current: {i},
				trace.Visited: trace.Span(0, i-1),
			},
			Message: st.Title + ": " + st.Message,
			Weight:  trace.WeightFor(st.Duration),
		})
	}

	rec.Array(trace.KindDone, progress, trace.Highlights{trace.Visited: trace.Span(0, len(stages)-1)},
		fmt.Sprintf("Flow %s complete", f))

	return rec.Trace(), nil
}
