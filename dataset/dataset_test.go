// ABOUTME: Tests for array generation, editing and input validation
// ABOUTME: Uses a seeded generator so generated arrays are reproducible

package dataset

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateClampsSize(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	tests := []struct {
		size int
		want int
	}{
		{0, MinSize},
		{3, MinSize},
		{12, 12},
		{50, MaxSize},
	}

	for _, tt := range tests {
		got := Generate(tt.size, rng)
		assert.Len(t, got, tt.want)

		for _, v := range got {
			assert.GreaterOrEqual(t, v, 1)
			assert.LessOrEqual(t, v, 100)
		}
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a := Generate(10, rand.New(rand.NewPCG(7, 7)))
	b := Generate(10, rand.New(rand.NewPCG(7, 7)))

	assert.Equal(t, a, b)
}

func TestGenerateSorted(t *testing.T) {
	got := GenerateSorted(15, rand.New(rand.NewPCG(3, 4)))

	assert.Len(t, got, 15)
	assert.True(t, IsSorted(got))
	assert.True(t, IsSorted(DefaultSorted()))
	assert.False(t, IsSorted(Default()))
}

func TestInsert(t *testing.T) {
	arr := []int{1, 2, 3}

	got, err := Insert(arr, 1, 9)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 9, 2, 3}, got)
	assert.Equal(t, []int{1, 2, 3}, arr)

	got, err = Insert(arr, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, got)

	_, err = Insert(arr, 4, 0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = Insert(arr, -1, 0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDelete(t *testing.T) {
	arr := []int{4, 5, 6}

	got, removed, err := Delete(arr, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 6}, got)
	assert.Equal(t, 5, removed)
	assert.Equal(t, []int{4, 5, 6}, arr)

	_, _, err = Delete(arr, 3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = ParseValue("")
	require.ErrorIs(t, err, ErrMissingTarget)

	_, err = ParseValue("abc")
	require.ErrorIs(t, err, ErrNotNumeric)
}

func TestParseIndex(t *testing.T) {
	idx, err := ParseIndex("2", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = ParseIndex("5", 5)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = ParseIndex("x", 5)
	require.ErrorIs(t, err, ErrNotNumeric)
}

func TestParseValues(t *testing.T) {
	got, err := ParseValues("5, 3 1\t9")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3, 1, 9}, got)

	_, err = ParseValues("1,two")
	require.ErrorIs(t, err, ErrNotNumeric)
}
