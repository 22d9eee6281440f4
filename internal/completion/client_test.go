package completion

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jonathan/hookgen/internal/llm"
	"github.com/jonathan/hookgen/internal/llm/llmtest"
	"github.com/jonathan/hookgen/internal/types"
)

func TestGenerate_Success(t *testing.T) {
	mock := &llmtest.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
			assert.Equal(t, llm.TierAdvanced, tier)
			return llmtest.HooksJSON(llmtest.SugarFreeHooks(10)), nil
		},
	}
	client := NewClient(mock)

	out := client.Generate(context.Background(), GenerateRequest{Prompt: "p", Tier: llm.TierAdvanced, Timeout: time.Second})

	require.Equal(t, StatusSuccess, out.Status)
	assert.NoError(t, out.Err)
	assert.Len(t, out.Candidates, types.HookCount)
	assert.Equal(t, 1, mock.JSONCalls())
}

func TestGenerate_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind ParseErrorKind
	}{
		{"garbage", "no json here", ParseSyntax},
		{"too few hooks", llmtest.HooksJSON(llmtest.SugarFreeHooks(5)), ParseTooFew},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &llmtest.MockClient{
				GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
					return tt.raw, nil
				},
			}
			out := NewClient(mock).Generate(context.Background(), GenerateRequest{Prompt: "p", Timeout: time.Second})

			require.Equal(t, StatusMalformed, out.Status)
			assert.Empty(t, out.Candidates)
			var perr *ParseError
			require.ErrorAs(t, out.Err, &perr)
			assert.Equal(t, tt.kind, perr.Kind)
		})
	}
}

func TestGenerate_TransportError(t *testing.T) {
	mock := &llmtest.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("connection reset")
		},
	}

	out := NewClient(mock).Generate(context.Background(), GenerateRequest{Prompt: "p", Timeout: time.Second})

	require.Equal(t, StatusUnavailable, out.Status)
	var cerr *CallError
	require.ErrorAs(t, out.Err, &cerr)
	assert.False(t, cerr.Timeout)
	assert.Contains(t, cerr.Error(), "connection reset")
}

func TestGenerate_DeadlineIsHonoured(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))

	release := make(chan struct{})
	mock := &llmtest.MockClient{
		// Ignores ctx entirely, like a provider that never returns.
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			<-release
			return "", nil
		},
	}

	start := time.Now()
	out := NewClient(mock).Generate(context.Background(), GenerateRequest{Prompt: "p", Timeout: 50 * time.Millisecond})
	elapsed := time.Since(start)
	close(release)

	require.Equal(t, StatusUnavailable, out.Status)
	assert.Less(t, elapsed, 2*time.Second)
	var cerr *CallError
	require.ErrorAs(t, out.Err, &cerr)
	assert.True(t, cerr.Timeout)
	assert.ErrorIs(t, out.Err, context.DeadlineExceeded)

	// Let the abandoned provider goroutine drain before the leak check.
	time.Sleep(20 * time.Millisecond)
}

func TestGenerate_ParentCancelled(t *testing.T) {
	mock := &llmtest.MockClient{
		GenerateJSONFunc: func(ctx context.Context, _ string, _ llm.ModelTier) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := NewClient(mock).Generate(ctx, GenerateRequest{Prompt: "p", Timeout: time.Second})

	assert.Equal(t, StatusUnavailable, out.Status)
	var cerr *CallError
	require.ErrorAs(t, out.Err, &cerr)
	assert.False(t, cerr.Timeout)
}

func TestGenerate_NoRetries(t *testing.T) {
	mock := &llmtest.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("boom")
		},
	}
	client := NewClient(mock)

	client.Generate(context.Background(), GenerateRequest{Prompt: "p", Timeout: time.Second})

	assert.Equal(t, 1, mock.Calls())
}

func TestClient_MaxConcurrent(t *testing.T) {
	var inFlight, peak atomic.Int64
	mock := &llmtest.MockClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return "rewritten line", nil
		},
	}
	client := NewClient(mock, WithMaxConcurrent(2))

	done := make(chan struct{})
	for i := 0; i < 6; i++ {
		go func() {
			_, _ = client.Rewrite(context.Background(), "p", llm.TierLite, time.Second)
			done <- struct{}{}
		}()
	}
	for i := 0; i < 6; i++ {
		<-done
	}

	assert.LessOrEqual(t, peak.Load(), int64(2))
	assert.Equal(t, 6, mock.ContentCalls())
}

func TestRewrite(t *testing.T) {
	mock := &llmtest.MockClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return `{"verbalHook": "Seven sugar-free days changed how my mornings feel"}`, nil
		},
	}

	line, err := NewClient(mock).Rewrite(context.Background(), "p", llm.TierLite, 0)
	require.NoError(t, err)
	assert.Equal(t, "Seven sugar-free days changed how my mornings feel", line)
}

func TestRewrite_Errors(t *testing.T) {
	failing := &llmtest.MockClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("unavailable")
		},
	}
	_, err := NewClient(failing).Rewrite(context.Background(), "p", llm.TierLite, time.Second)
	var cerr *CallError
	assert.ErrorAs(t, err, &cerr)

	empty := &llmtest.MockClient{}
	_, err = NewClient(empty).Rewrite(context.Background(), "p", llm.TierLite, time.Second)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestCompleteJSON(t *testing.T) {
	mock := &llmtest.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "```json\n{\"curiosity\": 0.8,}\n```", nil
		},
	}

	out, err := NewClient(mock).CompleteJSON(context.Background(), "p", llm.TierLite, time.Second)
	require.NoError(t, err)
	assert.JSONEq(t, `{"curiosity": 0.8}`, out)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "malformed", StatusMalformed.String())
	assert.Equal(t, "unavailable", StatusUnavailable.String())
	assert.Equal(t, "unknown", Status(99).String())
}
