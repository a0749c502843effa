// ABOUTME: Tests for the pipeline narration runner
// ABOUTME: Pins the stage duration table and the step weights derived from it

package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/trace"
)

func TestLoginStageDurations(t *testing.T) {
	stages, err := Stages(Login, "ada")
	require.NoError(t, err)

	var got []time.Duration
	for _, s := range stages {
		got = append(got, s.Duration)
	}

	ms := time.Millisecond
	assert.Equal(t, []time.Duration{2000 * ms, 2500 * ms, 3000 * ms, 2500 * ms, 3500 * ms, 3000 * ms, 2500 * ms}, got)
	assert.Contains(t, stages[0].Message, "ada")
}

func TestAPIStageDurations(t *testing.T) {
	stages, err := Stages(API, "ada")
	require.NoError(t, err)

	var titles []string
	var got []time.Duration
	for _, s := range stages {
		titles = append(titles, s.Title)
		got = append(got, s.Duration)
	}

	ms := time.Millisecond
	assert.Equal(t, []string{"Client Request", "DNS Resolution", "TCP Handshake", "HTTP Request", "Server Processing", "Response"}, titles)
	assert.Equal(t, []time.Duration{2000 * ms, 2500 * ms, 2000 * ms, 3000 * ms, 2500 * ms, 2000 * ms}, got)
	assert.Contains(t, stages[0].Message, "ada")
}

func TestEventLoopRoutesBlockingWorkThroughThreadPool(t *testing.T) {
	stages, err := Stages(EventLoop, "")
	require.NoError(t, err)

	var titles []string
	var total time.Duration
	for _, s := range stages {
		titles = append(titles, s.Title)
		total += s.Duration
	}

	assert.Equal(t, []string{
		"Call Stack", "Web APIs", "Callback Queue", "Event Loop", "Call Stack",
		"Web APIs", "Thread Pool", "Callback Queue", "Event Loop",
	}, titles)
	assert.Equal(t, 2500*time.Millisecond, stages[1].Duration)
	assert.Equal(t, 4500*time.Millisecond, stages[6].Duration)
	assert.Equal(t, 14*time.Second, total)

	tr, err := Run(EventLoop, "")
	require.NoError(t, err)
	assert.Equal(t, len(stages), tr.Count(trace.KindStage))
	assert.Equal(t, "Flow eventloop complete", tr.Last().Message)
}

func TestEveryFlowHasStages(t *testing.T) {
	for _, f := range Flows() {
		t.Run(string(f), func(t *testing.T) {
			stages, err := Stages(f, "")
			require.NoError(t, err)
			assert.NotEmpty(t, stages)

			for _, s := range stages {
				assert.Positive(t, s.Duration, s.Title)
			}
		})
	}
}

func TestMiddlewareUsesFirstThreeChecks(t *testing.T) {
	stages, err := Stages(LoggingMiddleware, "")
	require.NoError(t, err)

	require.Len(t, stages, 6)
	assert.Equal(t, "Checking: Endpoint", stages[4].Message)
	assert.Equal(t, "Logging Middleware", stages[1].Title)
}

func TestRunWeightsFollowDurations(t *testing.T) {
	tr, err := Run(Signup, "grace")
	require.NoError(t, err)

	require.Equal(t, 8, tr.Len())
	assert.Equal(t, 7, tr.Count(trace.KindStage))

	securing := tr.At(3)
	assert.InDelta(t, 5.0, securing.Weight, 1e-9)
	assert.Equal(t, 4*time.Second, trace.Delay(securing, trace.DefaultBaseDelay, 1))
	assert.Equal(t, []int{1, 1, 1, 1, 0, 0, 0}, securing.Array)

	last := tr.Last()
	assert.Equal(t, trace.KindDone, last.Kind)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 1}, last.Array)
}

func TestParseFlow(t *testing.T) {
	f, err := ParseFlow("auth")
	require.NoError(t, err)
	assert.Equal(t, AuthMiddleware, f)

	f, err = ParseFlow("Login")
	require.NoError(t, err)
	assert.Equal(t, Login, f)

	f, err = ParseFlow("Event-Loop")
	require.NoError(t, err)
	assert.Equal(t, EventLoop, f)

	f, err = ParseFlow(" API ")
	require.NoError(t, err)
	assert.Equal(t, API, f)

	_, err = ParseFlow("oauth")
	require.ErrorIs(t, err, ErrUnknownFlow)

	_, err = Run("oauth", "")
	require.ErrorIs(t, err, ErrUnknownFlow)
}
