package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitOnFirstSpace(t *testing.T) {
	cases := []struct {
		in     string
		first  string
		second string
	}{
		{"12 Rizal St", "12", "Rizal St"},
		{"Pedro Dela Cruz", "Pedro", "Dela Cruz"},
		{"Sitio-Kaunlaran", "Sitio-Kaunlaran", ""},
		{"  Blk 4   Lot 7  ", "Blk", "4   Lot 7"},
		{"", "", ""},
		{"   ", "", ""},
	}

	for _, tc := range cases {
		first, second := SplitOnFirstSpace(tc.in)
		require.Equal(t, tc.first, first, "input %q", tc.in)
		require.Equal(t, tc.second, second, "input %q", tc.in)
	}
}

func TestJoinNonEmptyIsInverseOfSplitForSimpleValues(t *testing.T) {
	joined := JoinNonEmpty("12", "Rizal St")
	require.Equal(t, "12 Rizal St", joined)

	first, second := SplitOnFirstSpace(joined)
	require.Equal(t, "12", first)
	require.Equal(t, "Rizal St", second)
}

func TestJoinNonEmptySkipsBlankParts(t *testing.T) {
	require.Equal(t, "Rizal St", JoinNonEmpty("", "Rizal St"))
	require.Equal(t, "", JoinNonEmpty("  ", ""))
	require.Equal(t, "a b c", JoinNonEmpty("a", " b ", "c"))
}

func TestSplitIsLossyForMultiWordFirstParts(t *testing.T) {
	// "Blk 4" cannot be recovered as a house number once joined.
	joined := JoinNonEmpty("Blk 4", "Maginhawa St")
	first, second := SplitOnFirstSpace(joined)
	require.Equal(t, "Blk", first)
	require.Equal(t, "4 Maginhawa St", second)
}

func TestTrimmedOrNil(t *testing.T) {
	require.Nil(t, TrimmedOrNil(""))
	require.Nil(t, TrimmedOrNil("   "))

	got := TrimmedOrNil("  remark  ")
	require.NotNil(t, got)
	require.Equal(t, "remark", *got)
}
