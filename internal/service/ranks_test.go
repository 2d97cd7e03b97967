package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankFor(t *testing.T) {
	tests := []struct {
		name     string
		stars    int
		expected string
	}{
		{name: "Zero stars is the base tier", stars: 0, expected: "Bronze"},
		{name: "One star", stars: 1, expected: "Silver"},
		{name: "Two stars", stars: 2, expected: "Gold"},
		{name: "Three stars", stars: 3, expected: "Platinum"},
		{name: "Cap reaches the top tier", stars: MaxStars, expected: "Legend"},
		{name: "Above the cap stays at the top", stars: 99, expected: "Legend"},
		{name: "Negative clamps to the base tier", stars: -1, expected: "Bronze"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RankFor(tt.stars).Name)
		})
	}
}

func TestRankFor_Monotonic(t *testing.T) {
	prev := -1
	for stars := 0; stars <= MaxStars; stars++ {
		min := RankFor(stars).MinStars
		assert.GreaterOrEqual(t, min, prev)
		assert.LessOrEqual(t, min, stars)
		prev = min
	}
}

func TestNextRank(t *testing.T) {
	next := NextRank("Bronze")
	assert.NotNil(t, next)
	assert.Equal(t, "Silver", next.Name)

	next = NextRank("Platinum")
	assert.NotNil(t, next)
	assert.Equal(t, "Legend", next.Name)

	assert.Nil(t, NextRank("Legend"))
	assert.Nil(t, NextRank("nope"))
}

func TestBaseRank(t *testing.T) {
	assert.Equal(t, "Bronze", BaseRank.Name)
	assert.Equal(t, 0, BaseRank.MinStars)
}
