package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:00", 480, false},
		{"23:59", 1439, false},
		{"8:00", 480, false},
		// Postgres TIME columns read back with seconds.
		{"08:00:00", 480, false},
		{"23:59:59", 1439, false},
		{"09:30:15", 570, false},
		{"24:00", 0, true},
		{"08:60", 0, true},
		{"08:00:61", 0, true},
		{"0800", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClockMinutes(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestFormatClockMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FormatClockMinutes(0))
	assert.Equal(t, "08:05", FormatClockMinutes(485))
	assert.Equal(t, "23:59", FormatClockMinutes(1439))
}

func TestExpandGatesOnSlotStartOnly(t *testing.T) {
	// The last slot starts at 08:30 < 08:50 even though its nominal end
	// 09:00 runs past the window.
	slots, err := Expand("08:00", "08:50", 30)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, Slot{StartTime: "08:00", EndTime: "08:30"}, slots[0])
	assert.Equal(t, Slot{StartTime: "08:30", EndTime: "09:00"}, slots[1])
}

func TestExpandStopsAtWindowEnd(t *testing.T) {
	// Advancing to 09:00 is not < end, so only two slots come out.
	slots, err := Expand("08:00", "09:00", 30)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "08:00", slots[0].StartTime)
	assert.Equal(t, "08:30", slots[1].StartTime)
}

func TestExpandMorningClinic(t *testing.T) {
	slots, err := Expand("08:00", "12:00", 20)
	require.NoError(t, err)
	require.Len(t, slots, 12)
	assert.Equal(t, "08:00", slots[0].StartTime)
	assert.Equal(t, "08:20", slots[1].StartTime)
	assert.Equal(t, "11:40", slots[11].StartTime)
	assert.Equal(t, "12:00", slots[11].EndTime)
}

func TestExpandAcceptsStoredTimeFormat(t *testing.T) {
	// Rules loaded from a TIME column carry HH:MM:SS; expansion must treat
	// them exactly like the HH:MM wire form and still emit HH:MM slots.
	slots, err := Expand("08:00:00", "09:00:00", 30)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, Slot{StartTime: "08:00", EndTime: "08:30"}, slots[0])
	assert.Equal(t, Slot{StartTime: "08:30", EndTime: "09:00"}, slots[1])

	fromWire, err := Expand("08:00", "09:00", 30)
	require.NoError(t, err)
	assert.Equal(t, fromWire, slots)
}

func TestExpandIsDeterministic(t *testing.T) {
	first, err := Expand("09:15", "17:45", 25)
	require.NoError(t, err)
	second, err := Expand("09:15", "17:45", 25)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExpandRejectsBadWindows(t *testing.T) {
	_, err := Expand("10:00", "09:00", 30)
	assert.ErrorIs(t, err, ErrEndNotAfterStart)

	_, err = Expand("10:00", "10:00", 30)
	assert.ErrorIs(t, err, ErrEndNotAfterStart)

	_, err = Expand("08:00", "12:00", 4)
	assert.ErrorIs(t, err, ErrInvalidSlotDuration)

	_, err = Expand("08:00", "12:00", 121)
	assert.ErrorIs(t, err, ErrInvalidSlotDuration)

	_, err = Expand("8am", "12:00", 30)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestAvailableCapacity(t *testing.T) {
	cap5 := 5
	cap20 := 20

	assert.Equal(t, 12, AvailableCapacity(12, nil))
	assert.Equal(t, 5, AvailableCapacity(12, &cap5))
	assert.Equal(t, 12, AvailableCapacity(12, &cap20))
	assert.Equal(t, 0, AvailableCapacity(0, &cap5))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"identical", 480, 720, 480, 720, true},
		{"partial", 480, 720, 600, 780, true},
		{"contained", 480, 720, 500, 520, true},
		{"touching edges", 480, 720, 720, 780, false},
		{"disjoint", 480, 720, 800, 900, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestISOWeekday(t *testing.T) {
	// 2026-02-02 is a Monday, 2026-02-08 a Sunday.
	monday := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, ISOWeekday(monday))
	assert.Equal(t, 7, ISOWeekday(sunday))
	assert.Equal(t, 3, ISOWeekday(monday.AddDate(0, 0, 2)))
}

func TestToday(t *testing.T) {
	clock := FixedClock{Instant: time.Date(2026, 3, 10, 15, 42, 7, 0, time.UTC)}
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Today(clock))
}
