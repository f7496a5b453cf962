// Package schedule contains the slot availability engine: clock-time
// parsing, rule-to-slot expansion, capacity accounting and the logic that
// decides which rule applies on a given calendar date.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

const (
	// TimeLayout is the wire format for times of day.
	TimeLayout = "15:04"
	// timeLayoutSeconds is how Postgres renders TIME columns.
	timeLayoutSeconds = "15:04:05"
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"

	// MinSlotDuration and MaxSlotDuration bound the slot size in minutes.
	MinSlotDuration = 5
	MaxSlotDuration = 120

	minutesPerDay = 24 * 60
)

var (
	ErrInvalidTimeFormat   = errors.New("invalid time format, use HH:MM")
	ErrEndNotAfterStart    = errors.New("end time must be after start time")
	ErrInvalidSlotDuration = errors.New("slot duration must be between 5 and 120 minutes")
)

// Slot is a derived bookable time block. It is never persisted; it is
// regenerated from a rule on every query. EndTime is the nominal end
// (start + duration) and may run past the rule's window end.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ParseClockMinutes parses an HH:MM string into minutes since midnight.
// TIME columns read back from Postgres carry seconds (HH:MM:SS), so that
// form is accepted too; seconds are dropped.
func ParseClockMinutes(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		t, err = time.Parse(timeLayoutSeconds, s)
		if err != nil {
			return 0, ErrInvalidTimeFormat
		}
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClockMinutes renders minutes since midnight as HH:MM.
func FormatClockMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ValidateWindow checks the time window and slot duration of a rule.
func ValidateWindow(startTime, endTime string, slotDurationMinutes int) error {
	start, err := ParseClockMinutes(startTime)
	if err != nil {
		return err
	}
	end, err := ParseClockMinutes(endTime)
	if err != nil {
		return err
	}
	if end <= start {
		return ErrEndNotAfterStart
	}
	if slotDurationMinutes < MinSlotDuration || slotDurationMinutes > MaxSlotDuration {
		return ErrInvalidSlotDuration
	}
	return nil
}

// Expand generates the ordered slot list for a time window. A slot is
// emitted for every start strictly before the window end; the loop gates
// only on the start, so the last slot's nominal end may exceed the window.
// Expand never applies a max-slots cap; see AvailableCapacity.
func Expand(startTime, endTime string, slotDurationMinutes int) ([]Slot, error) {
	if err := ValidateWindow(startTime, endTime, slotDurationMinutes); err != nil {
		return nil, err
	}

	start, _ := ParseClockMinutes(startTime)
	end, _ := ParseClockMinutes(endTime)

	slots := make([]Slot, 0, (end-start)/slotDurationMinutes+1)
	for cur := start; cur < end; cur += slotDurationMinutes {
		nominalEnd := cur + slotDurationMinutes
		if nominalEnd > minutesPerDay {
			nominalEnd = minutesPerDay
		}
		slots = append(slots, Slot{
			StartTime: FormatClockMinutes(cur),
			EndTime:   FormatClockMinutes(nominalEnd),
		})
	}
	return slots, nil
}

// AvailableCapacity reports the bookable capacity for a generated slot
// count: min(generated, maxSlots). A nil maxSlots means no cap.
func AvailableCapacity(generated int, maxSlots *int) int {
	if maxSlots != nil && *maxSlots < generated {
		return *maxSlots
	}
	return generated
}

// Overlaps reports whether two half-open minute intervals intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// ISOWeekday returns the ISO-8601 weekday for a date: Monday=1 .. Sunday=7.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
