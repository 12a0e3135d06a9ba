package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestOutcome_States は3つの状態それぞれでアクセサが正しい値を返すことを検証します。
func TestOutcome_States(t *testing.T) {
	t.Parallel()

	cause := errors.New("upstream down")

	tests := []struct {
		name      string
		outcome   Outcome[[]string]
		wantKind  OutcomeKind
		wantValue []string
		wantOK    bool
		wantErr   error
	}{
		{
			name:     "zero value is pending",
			outcome:  Outcome[[]string]{},
			wantKind: OutcomePending,
		},
		{
			name:     "pending",
			outcome:  Pending[[]string](),
			wantKind: OutcomePending,
		},
		{
			name:      "ready",
			outcome:   Ready([]string{"AAPL"}),
			wantKind:  OutcomeReady,
			wantValue: []string{"AAPL"},
			wantOK:    true,
		},
		{
			name:     "failed",
			outcome:  Failed[[]string](cause),
			wantKind: OutcomeFailed,
			wantErr:  cause,
		},
		{
			name:     "failed without cause",
			outcome:  Failed[[]string](nil),
			wantKind: OutcomeFailed,
			wantErr:  ErrRetrievalFailed,
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantKind, tt.outcome.Kind())
			v, ok := tt.outcome.Value()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantValue, v)
			assert.Equal(t, tt.wantOK, tt.outcome.IsReady())
			if tt.wantErr != nil {
				assert.ErrorIs(t, tt.outcome.Err(), tt.wantErr)
			} else {
				assert.NoError(t, tt.outcome.Err())
			}
		})
	}
}

// TestOutcome_Match は状態に対応するハンドラーだけが呼ばれることを検証します。
func TestOutcome_Match(t *testing.T) {
	t.Parallel()

	var calls []string
	record := func(o Outcome[int]) {
		o.Match(
			func() { calls = append(calls, "pending") },
			func(v int) { calls = append(calls, "ready") },
			func(err error) { calls = append(calls, "failed") },
		)
	}

	record(Pending[int]())
	record(Ready(1))
	record(Failed[int](errors.New("x")))

	assert.Equal(t, []string{"pending", "ready", "failed"}, calls)
}

func TestMapOutcome(t *testing.T) {
	t.Parallel()

	double := func(v int) int { return v * 2 }

	mapped := MapOutcome(Ready(21), double)
	v, ok := mapped.Value()
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	cause := errors.New("boom")
	assert.ErrorIs(t, MapOutcome(Failed[int](cause), double).Err(), cause)
	assert.Equal(t, OutcomePending, MapOutcome(Pending[int](), double).Kind())
}

func TestOutcomeKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pending", OutcomePending.String())
	assert.Equal(t, "ready", OutcomeReady.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "unknown", OutcomeKind(99).String())
}
