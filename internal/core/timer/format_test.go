package timer_test

import (
	"testing"

	"focusflow/internal/core/timer"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{
		-4:     "0s",
		0:      "0s",
		59:     "59s",
		65:     "1m 5s",
		3600:   "1h 0m",
		3661:   "1h 1m",
		356400: "99h 0m",
	}
	for seconds, want := range cases {
		assert.Equal(t, want, timer.FormatDuration(seconds), "seconds=%d", seconds)
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[int]string{
		0:      "00:00",
		65:     "01:05",
		1500:   "25:00",
		3661:   "01:01:01",
		356399: "98:59:59",
	}
	for seconds, want := range cases {
		assert.Equal(t, want, timer.FormatClock(seconds), "seconds=%d", seconds)
	}
}
