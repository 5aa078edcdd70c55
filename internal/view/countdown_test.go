package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdown_Fields(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewCountdown(48*time.Hour, start)

	r := c.Tick(start.Add(3*time.Hour + 25*time.Minute + 7*time.Second))
	assert.Equal(t, "01", r.Days)
	assert.Equal(t, "20", r.Hours)
	assert.Equal(t, "34", r.Minutes)
	assert.Equal(t, "53", r.Seconds)
}

func TestCountdown_ZeroPadding(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	c := NewCountdown(48*time.Hour, start)

	r := c.Tick(start.Add(47*time.Hour + 55*time.Minute + 51*time.Second))
	assert.Equal(t, "00", r.Days)
	assert.Equal(t, "00", r.Hours)
	assert.Equal(t, "04", r.Minutes)
	assert.Equal(t, "09", r.Seconds)
}

func TestCountdown_ResetsAfterDeadline(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	c := NewCountdown(48*time.Hour, start)

	r := c.Tick(start.Add(49 * time.Hour))
	assert.Equal(t, "02", r.Days)
	assert.Equal(t, "00", r.Hours)

	// the deadline rolled forward, so the next tick counts down again
	r = c.Tick(start.Add(50 * time.Hour))
	assert.Equal(t, "01", r.Days)
	assert.Equal(t, "23", r.Hours)
}

func TestStarRating(t *testing.T) {
	assert.Equal(t, 5, strings.Count(string(StarRating(5)), `"fas fa-star"`))
	assert.Equal(t, 0, strings.Count(string(StarRating(5)), `"far fa-star"`))

	half := string(StarRating(4.5))
	assert.Equal(t, 4, strings.Count(half, `"fas fa-star"`))
	assert.Equal(t, 1, strings.Count(half, "fa-star-half-alt"))

	low := string(StarRating(2))
	assert.Equal(t, 2, strings.Count(low, `"fas fa-star"`))
	assert.Equal(t, 3, strings.Count(low, `"far fa-star"`))
}
