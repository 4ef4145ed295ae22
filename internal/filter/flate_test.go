package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPNGPredictor(t *testing.T) {
	tests := []struct {
		name     string
		rowBytes int
		input    []byte
		expected []byte
	}{
		{
			name:     "None filter (type 0)",
			rowBytes: 3,
			input:    []byte{0, 1, 2, 3},
			expected: []byte{1, 2, 3},
		},
		{
			name:     "Sub filter (type 1)",
			rowBytes: 3,
			input:    []byte{1, 5, 3, 2},
			expected: []byte{5, 8, 10},
		},
		{
			name:     "Up filter (type 2)",
			rowBytes: 3,
			input:    []byte{0, 10, 20, 30, 2, 5, 5, 5},
			expected: []byte{10, 20, 30, 15, 25, 35},
		},
		{
			name:     "Average filter (type 3)",
			rowBytes: 3,
			input:    []byte{0, 10, 20, 30, 3, 0, 0, 0},
			expected: []byte{10, 20, 30, 5, 12, 21},
		},
		{
			name:     "Paeth filter (type 4)",
			rowBytes: 3,
			input:    []byte{0, 10, 20, 30, 4, 0, 0, 0},
			expected: []byte{10, 20, 30, 10, 20, 30},
		},
		{
			name:     "xref stream pattern with Up filter",
			rowBytes: 5,
			input: []byte{
				0, 1, 0, 15, 0, 0,
				2, 0, 0, 64, 0, 0,
				2, 0, 0, 94, 0, 0,
			},
			expected: []byte{
				1, 0, 15, 0, 0,
				1, 0, 79, 0, 0,
				1, 0, 173, 0, 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := applyPNGPredictor(tt.input, tt.rowBytes, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestApplyPNGPredictorErrors(t *testing.T) {
	t.Run("invalid filter type", func(t *testing.T) {
		_, err := applyPNGPredictor([]byte{5, 1, 2, 3}, 3, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown PNG filter type: 5")
	})

	t.Run("data length not divisible by row size", func(t *testing.T) {
		_, err := applyPNGPredictor([]byte{0, 1, 2, 3, 4}, 3, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not divisible by row size")
	})

	t.Run("row size out of range", func(t *testing.T) {
		_, err := applyPNGPredictor([]byte{0, 1, 2, 3}, 0, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of valid range")
	})
}

func TestPaethPredictor(t *testing.T) {
	tests := []struct {
		name               string
		left, up, upLeft   byte
		expected           byte
	}{
		{name: "all zeros", left: 0, up: 0, upLeft: 0, expected: 0},
		{name: "upLeft closest", left: 10, up: 100, upLeft: 50, expected: 50},
		{name: "up closest", left: 10, up: 20, upLeft: 10, expected: 20},
		{name: "equal distances prefer left", left: 10, up: 10, upLeft: 10, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, paethPredictor(tt.left, tt.up, tt.upLeft))
		})
	}
}

func TestFlateDecode(t *testing.T) {
	compressed := []byte{
		0x78, 0x9c,
		0xcb, 0x48, 0xcd, 0xc9, 0xc9, 0x07, 0x00,
		0x06, 0x2c, 0x02, 0x15,
	}
	result, err := FlateDecode(compressed)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), result)
}

func TestFlateDecodeInvalidData(t *testing.T) {
	_, err := FlateDecode([]byte{0x00, 0x00, 0x00, 0x00})
	require.Error(t, err)
}
