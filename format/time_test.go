package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		then time.Time
		want string
	}{
		{"just now", now.Add(-500 * time.Millisecond), "just now"},
		{"seconds", now.Add(-30 * time.Second), "30s ago"},
		{"one minute", now.Add(-90 * time.Second), "1m ago"},
		{"minutes", now.Add(-10 * time.Minute), "10m ago"},
		{"hours", now.Add(-5 * time.Hour), "5h ago"},
		{"days", now.Add(-3 * day), "3d ago"},
		{"weeks", now.Add(-3 * week), "3w ago"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Time(test.then))
		})
	}
}

// Beyond a month the absolute date is clearer than "5w ago".
func TestRelTimeFallsBackToDate(t *testing.T) {
	then := time.Date(2021, time.March, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, then.Local().Format("Jan 2 2006"), Time(then))
}
