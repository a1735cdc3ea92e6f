package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_ReferenceValues(t *testing.T) {
	params := DefaultEvaluationParams()

	tests := []struct {
		name  string
		rank  int
		total int
		want  int64
	}{
		{"rank 1 on a full board", 1, 20, 1000},
		{"rank 2 decays by one step", 2, 20, 957},
		{"one full decay scale down", 26, 20, 333},
		{"half-size board halves the base", 1, 10, 500},
		{"board larger than full size is capped", 1, 500, 1000},
		{"three-entry board", 1, 3, 150},
		{"three-entry board rank 2", 2, 3, 143},
		{"three-entry board rank 3", 3, 3, 137},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, params.Evaluate(tt.rank, tt.total))
		})
	}
}

func TestEvaluate_MonotoneInRank(t *testing.T) {
	params := DefaultEvaluationParams()

	prev := params.Evaluate(1, 20)
	for rank := 2; rank <= 200; rank++ {
		current := params.Evaluate(rank, 20)
		assert.LessOrEqual(t, current, prev, "rank %d", rank)
		prev = current
	}

	// Far down the board the award bottoms out at zero
	assert.Equal(t, int64(0), params.Evaluate(1000, 20))
}

func TestEvaluate_SmallBoardsAwardProportionally(t *testing.T) {
	params := DefaultEvaluationParams()

	for total := 1; total <= params.FullBoardSize; total++ {
		want := int64(params.MaxAward * total / params.FullBoardSize)
		assert.Equal(t, want, params.Evaluate(1, total), "total %d", total)
	}
}

func TestEvaluate_CustomPolicy(t *testing.T) {
	params := EvaluationParams{
		MaxAward:      100,
		FullBoardSize: 10,
		DecayBase:     2,
		DecayScale:    1,
	}

	assert.Equal(t, int64(100), params.Evaluate(1, 10))
	assert.Equal(t, int64(50), params.Evaluate(2, 10))
	assert.Equal(t, int64(25), params.Evaluate(3, 10))
}
