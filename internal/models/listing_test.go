package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAgeYears(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2 years", 2, true},
		{"10", 10, true},
		{"0 months", 0, true},
		{"puppy", 0, false},
		{"", 0, false},
		{"  3 yrs  ", 3, true},
		{"two years", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseAgeYears(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.in)
		}
	}
}

func TestWithAgeYears(t *testing.T) {
	aged := Listing{Age: "4 years"}.WithAgeYears()
	require.NotNil(t, aged.AgeYears)
	assert.Equal(t, 4, *aged.AgeYears)

	unaged := Listing{Age: "senior"}.WithAgeYears()
	assert.Nil(t, unaged.AgeYears)
}
