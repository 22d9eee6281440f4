//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request GenerationRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			request: GenerationRequest{
				Topic:     "7-day sugar-free experiment",
				Platform:  PlatformA,
				Objective: ObjectiveWatchTime,
				Brand:     BrandProfile{Company: "Acme", BannedTerms: []string{"cheap"}},
			},
		},
		{
			name: "valid request without brand",
			request: GenerationRequest{
				Topic:     "meal prep tips",
				Platform:  PlatformC,
				Objective: ObjectiveSaves,
			},
		},
		{
			name: "missing topic",
			request: GenerationRequest{
				Platform:  PlatformA,
				Objective: ObjectiveShares,
			},
			wantErr: true,
			errMsg:  "Topic failed required",
		},
		{
			name: "blank topic",
			request: GenerationRequest{
				Topic:     "    ",
				Platform:  PlatformA,
				Objective: ObjectiveShares,
			},
			wantErr: true,
			errMsg:  "topic is blank",
		},
		{
			name: "unknown platform",
			request: GenerationRequest{
				Topic:     "budget travel",
				Platform:  Platform("short-form-z"),
				Objective: ObjectiveShares,
			},
			wantErr: true,
			errMsg:  "Platform failed oneof",
		},
		{
			name: "missing objective",
			request: GenerationRequest{
				Topic:    "budget travel",
				Platform: PlatformB,
			},
			wantErr: true,
			errMsg:  "Objective failed required",
		},
		{
			name: "empty banned term",
			request: GenerationRequest{
				Topic:     "budget travel",
				Platform:  PlatformB,
				Objective: ObjectiveClickThrough,
				Brand:     BrandProfile{BannedTerms: []string{""}},
			},
			wantErr: true,
			errMsg:  "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var reqErr *RequestError
			assert.True(t, errors.As(err, &reqErr))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGenerationRequest_ValidateNil(t *testing.T) {
	var r *GenerationRequest
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request is nil")
}

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform("B")
	require.NoError(t, err)
	assert.Equal(t, PlatformB, p)

	p, err = ParsePlatform(" short-form-c ")
	require.NoError(t, err)
	assert.Equal(t, PlatformC, p)

	_, err = ParsePlatform("vertical")
	assert.Error(t, err)
}

func TestPlatformLabel(t *testing.T) {
	assert.Equal(t, "A", PlatformA.Label())
	assert.Equal(t, "B", PlatformB.Label())
	assert.Equal(t, "C", PlatformC.Label())
	assert.Equal(t, "other", Platform("other").Label())
}

func TestParseObjective(t *testing.T) {
	o, err := ParseObjective("Click-Through")
	require.NoError(t, err)
	assert.Equal(t, ObjectiveClickThrough, o)

	_, err = ParseObjective("likes")
	assert.Error(t, err)
}

func TestHistoryKey_NormalizesWhitespaceAndCase(t *testing.T) {
	a := GenerationRequest{Topic: "Budget  Travel", Platform: PlatformA, Brand: BrandProfile{Company: " Acme "}}
	b := GenerationRequest{Topic: "budget travel", Platform: PlatformA, Brand: BrandProfile{Company: "acme"}}
	assert.Equal(t, a.HistoryKey(), b.HistoryKey())

	c := b
	c.Platform = PlatformB
	assert.NotEqual(t, b.HistoryKey(), c.HistoryKey())
}

func TestHookCandidate_SetVerbalRecomputesWordCount(t *testing.T) {
	h := NewHookCandidate("one two three", "close-up", "TEXT", "Open Loop", "Narrative", "")
	assert.Equal(t, 3, h.WordCount)

	h.SetVerbal("  now   it has five words  ")
	assert.Equal(t, "now   it has five words", h.VerbalHook)
	assert.Equal(t, 5, h.WordCount)
}

func TestHookCandidate_CompositeUnscored(t *testing.T) {
	h := HookCandidate{}
	assert.Equal(t, 0.0, h.Composite())
	h.Score = &ScoreBreakdown{Composite: 4.2}
	assert.Equal(t, 4.2, h.Composite())
}
