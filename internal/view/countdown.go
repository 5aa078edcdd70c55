package view

import (
	"fmt"
	"sync"
	"time"
)

// Countdown drives the deal-of-the-day clock: a rolling deadline some fixed
// window ahead. When the deadline passes it resets to a fresh window.
type Countdown struct {
	mu       sync.Mutex
	window   time.Duration
	deadline time.Time
}

// Remaining is the clock face, fields zero-padded for display.
type Remaining struct {
	Days    string
	Hours   string
	Minutes string
	Seconds string
}

func NewCountdown(window time.Duration, now time.Time) *Countdown {
	return &Countdown{window: window, deadline: now.Add(window)}
}

// Tick computes the remaining time at now, resetting the deadline when it has
// passed.
func (c *Countdown) Tick(now time.Time) Remaining {
	c.mu.Lock()
	defer c.mu.Unlock()

	left := c.deadline.Sub(now)
	if left < 0 {
		c.deadline = now.Add(c.window)
		left = c.window
	}

	days := int(left.Hours()) / 24
	hours := int(left.Hours()) % 24
	minutes := int(left.Minutes()) % 60
	seconds := int(left.Seconds()) % 60

	return Remaining{
		Days:    pad(days),
		Hours:   pad(hours),
		Minutes: pad(minutes),
		Seconds: pad(seconds),
	}
}

func pad(n int) string {
	return fmt.Sprintf("%02d", n)
}
