package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/snakeclash/config"
)

func TestLayoutCountsOutsideRing(t *testing.T) {
	p := paramsFrom(config.MustDefaults())
	p.FoodCount = 200
	p.ChestCount = 5

	// A ring enclosing the whole square has nothing outside
	p.StartRadius = 400
	l := layout(p)
	assert.Len(t, l.pos, 205)
	assert.Equal(t, 0, l.outside)

	// Shrunk to the floor, most of the 400-wide square is outside
	p.Time = 1000
	l = layout(p)
	assert.Equal(t, float64(p.MinRadius), l.radius)
	assert.Greater(t, l.outside, 100)
}

func TestLayoutIsSeeded(t *testing.T) {
	p := paramsFrom(config.MustDefaults())
	assert.Equal(t, layout(p).pos, layout(p).pos)
}
