package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no quotes", "Wall1", "Wall1"},
		{"double quoted", `"Wall1"`, "Wall1"},
		{"single quotes only", "'Wall1'", "'Wall1'"},
		{"quotes in middle", `Wa"ll`, `Wa"ll`},
		{"only quotes", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimQuotes(tt.input))
		})
	}
}

func TestCleanArg(t *testing.T) {
	assert.Equal(t, `Stage "Left" A`, CleanArg(` "Stage ""Left"" A" `))
	assert.Equal(t, "4.5", CleanArg("4.5"))

	args := []string{`"a"`, " b "}
	assert.Equal(t, []string{"a", "b"}, CleanArgs(args))
	assert.Equal(t, "a", args[0], "cleaned in place")
}

func TestParseFloat(t *testing.T) {
	v, err := ParseFloat("distance", " 4.25 ")
	require.NoError(t, err)
	assert.Equal(t, 4.25, v)

	_, err = ParseFloat("distance", "far")
	assert.EqualError(t, err, `argument distance: "far" is not a number`)
}

func TestParseInt(t *testing.T) {
	v, err := ParseInt("rows", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = ParseInt("rows", "2.5")
	assert.Error(t, err)
}

func TestParseFloats(t *testing.T) {
	got, err := ParseFloats([]string{"1", "-2", "3.5", "extra"}, "x", "y", "z")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2, 3.5}, got)

	_, err = ParseFloats([]string{"1"}, "x", "y")
	assert.EqualError(t, err, "expected 2 numbers (x y), got 1")

	_, err = ParseFloats([]string{"1", "y"}, "x", "y")
	assert.Error(t, err)
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{":PROJECTOR:CREATE:", []string{":PROJECTOR:CREATE:"}},
		{":PROJECTOR:EDIT:  P1 distance\t6", []string{":PROJECTOR:EDIT:", "P1", "distance", "6"}},
		{`:COLLECTION:CREATE: "Main Wall" P1`, []string{":COLLECTION:CREATE:", "Main Wall", "P1"}},
		{`:PROJECTOR:CREATE: ""`, []string{":PROJECTOR:CREATE:", ""}},
		{`a "b c`, []string{"a", "b c"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLine(tt.line))
		})
	}
}
