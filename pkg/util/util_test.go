package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValues_List(t *testing.T) {
	got, err := ParseValues([]string{"1,10,100", "1k", "10k,100k", "1M"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 10, 100, 1e3, 10e3, 100e3, 1e6}, got)
}

func TestParseValues_Range(t *testing.T) {
	t.Run("ascending", func(t *testing.T) {
		got, err := ParseValues([]string{"2..5"})
		require.NoError(t, err)
		assert.Equal(t, []float64{2, 3, 4, 5}, got)
	})
	t.Run("descending", func(t *testing.T) {
		got, err := ParseValues([]string{"5..2"})
		require.NoError(t, err)
		assert.Equal(t, []float64{5, 4, 3, 2}, got)
	})
	t.Run("single", func(t *testing.T) {
		got, err := ParseValues([]string{"3..3"})
		require.NoError(t, err)
		assert.Equal(t, []float64{3}, got)
	})
	t.Run("mixed_with_values", func(t *testing.T) {
		got, err := ParseValues([]string{"0.5, 1..2", "7"})
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5, 1, 2, 7}, got)
	})
}

func TestParseValues_EmptyAndErrors(t *testing.T) {
	got, err := ParseValues(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ParseValues([]string{" , ,"})
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, bad := range []string{"x", "1..y", "a..2", "1.5..3", "0..99999999"} {
		_, err := ParseValues([]string{bad})
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFmtFloat(t *testing.T) {
	assert.Equal(t, "0.02", FmtFloat(0.02))
	assert.Equal(t, "100000", FmtFloat(100e3))
	assert.Equal(t, "3.5e-08", FmtFloat(35e-9))
	assert.Equal(t, "NaN", FmtFloat(math.NaN()))
}
