package czdate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRangeLabel(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   *time.Time
		want  string
	}{
		{
			name:  "same month",
			start: date(2026, time.March, 15),
			end:   ptr(date(2026, time.March, 16)),
			want:  "15. - 16. března 2026",
		},
		{
			name:  "cross month",
			start: date(2026, time.March, 15),
			end:   ptr(date(2026, time.April, 2)),
			want:  "15. března - 2. dubna 2026",
		},
		{
			name:  "cross year",
			start: date(2026, time.December, 28),
			end:   ptr(date(2027, time.January, 2)),
			want:  "28. prosince 2026 - 2. ledna 2027",
		},
		{
			name:  "single day without end",
			start: date(2026, time.May, 17),
			want:  "17. května 2026",
		},
		{
			name:  "end equal to start",
			start: date(2026, time.September, 1),
			end:   ptr(date(2026, time.September, 1)),
			want:  "1. září 2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RangeLabel(tt.start, tt.end))
		})
	}
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "12. dubna 2026", DayLabel(date(2026, time.April, 12)))
}

func ptr(t time.Time) *time.Time { return &t }
