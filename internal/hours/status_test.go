package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2024-01-15 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2024, time.January, 15, hour, minute, 0, 0, time.UTC)
}

var mondayNineToFive = []DailyOpeningHours{
	{Day: "mon", Ranges: []TimeRange{{From: "09:00", To: "17:00"}}},
}

func TestComputeStatus_OverrideWins(t *testing.T) {
	for _, override := range []Override{OverrideOpen, OverrideClosed, OverrideBusy} {
		t.Run(string(override), func(t *testing.T) {
			assert.Equal(t, Status(override), ComputeStatus(mondayNineToFive, override, monday(3, 0)))
			assert.Equal(t, Status(override), ComputeStatus(mondayNineToFive, override, monday(12, 0)))
			assert.Equal(t, Status(override), ComputeStatus(nil, override, monday(12, 0)))
		})
	}
}

func TestComputeStatus_MissingScheduleIsClosed(t *testing.T) {
	assert.Equal(t, StatusClosed, ComputeStatus(nil, OverrideAuto, monday(12, 0)))
	assert.Equal(t, StatusClosed, ComputeStatus([]DailyOpeningHours{}, OverrideAuto, monday(12, 0)))
	assert.Equal(t, StatusClosed, ComputeStatus(nil, "", monday(12, 0)))
}

func TestComputeStatus_WithinRange(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"midday", monday(12, 0), StatusOpen},
		{"opening boundary", monday(9, 0), StatusOpen},
		{"closing boundary", monday(17, 0), StatusOpen},
		{"just before", monday(8, 59), StatusClosed},
		{"just after", monday(17, 1), StatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStatus(mondayNineToFive, OverrideAuto, tt.now))
		})
	}
}

func TestComputeStatus_NoEntryForToday(t *testing.T) {
	schedule := []DailyOpeningHours{
		{Day: "tue", Ranges: []TimeRange{{From: "00:00", To: "23:59"}}},
		{Day: "wed", Ranges: []TimeRange{{From: "00:00", To: "23:59"}}},
		{Day: "thu", Ranges: []TimeRange{{From: "00:00", To: "23:59"}}},
		{Day: "fri", Ranges: []TimeRange{{From: "00:00", To: "23:59"}}},
		{Day: "sat", Ranges: []TimeRange{{From: "00:00", To: "23:59"}}},
		{Day: "sun", Ranges: []TimeRange{{From: "00:00", To: "23:59"}}},
	}

	assert.Equal(t, StatusClosed, ComputeStatus(schedule, OverrideAuto, monday(12, 0)))
}

func TestComputeStatus_TodayWithoutRanges(t *testing.T) {
	schedule := []DailyOpeningHours{{Day: "mon", Ranges: nil}}

	assert.Equal(t, StatusClosed, ComputeStatus(schedule, OverrideAuto, monday(12, 0)))
}

func TestComputeStatus_MultipleRanges(t *testing.T) {
	schedule := []DailyOpeningHours{
		{Day: "mon", Ranges: []TimeRange{
			{From: "12:00", To: "15:00"},
			{From: "19:00", To: "23:00"},
		}},
	}

	assert.Equal(t, StatusOpen, ComputeStatus(schedule, OverrideAuto, monday(13, 30)))
	assert.Equal(t, StatusClosed, ComputeStatus(schedule, OverrideAuto, monday(17, 0)))
	assert.Equal(t, StatusOpen, ComputeStatus(schedule, OverrideAuto, monday(20, 15)))
}

func TestComputeStatus_AutoNeverYieldsBusy(t *testing.T) {
	for h := 0; h < 24; h++ {
		assert.NotEqual(t, StatusBusy, ComputeStatus(mondayNineToFive, OverrideAuto, monday(h, 30)))
	}
}

func TestComputeStatus_UnknownOverrideFallsThrough(t *testing.T) {
	assert.Equal(t, StatusOpen, ComputeStatus(mondayNineToFive, "holiday", monday(10, 0)))
}

func TestComputeStatus_OvernightRangeNeverMatches(t *testing.T) {
	schedule := []DailyOpeningHours{{Day: "mon", Ranges: []TimeRange{{From: "22:00", To: "02:00"}}}}

	assert.Equal(t, StatusClosed, ComputeStatus(schedule, OverrideAuto, monday(23, 0)))
	assert.Equal(t, StatusClosed, ComputeStatus(schedule, OverrideAuto, monday(1, 0)))
}

func TestComputeStatus_MalformedRangeIsSkipped(t *testing.T) {
	schedule := []DailyOpeningHours{
		{Day: "mon", Ranges: []TimeRange{
			{From: "nine", To: "17:00"},
			{From: "10:00", To: "11:00"},
		}},
	}

	assert.Equal(t, StatusClosed, ComputeStatus(schedule, OverrideAuto, monday(12, 0)))
	assert.Equal(t, StatusOpen, ComputeStatus(schedule, OverrideAuto, monday(10, 30)))
}

func TestComputeStatus_UsesWeekdayOfNowLocation(t *testing.T) {
	// 23:30 UTC Monday is already Tuesday 01:30 at UTC+2.
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := monday(23, 30).In(loc)
	schedule := []DailyOpeningHours{{Day: "tue", Ranges: []TimeRange{{From: "01:00", To: "02:00"}}}}

	assert.Equal(t, StatusOpen, ComputeStatus(schedule, OverrideAuto, now))
}

func TestClockMinutes(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"00:00", 0, true},
		{"09:05", 545, true},
		{"23:59", 1439, true},
		{"9:5", 545, true},
		{"10:00:30", 600, true},
		{"1000", 0, false},
		{"ab:cd", 0, false},
		{"", 0, false},
		{"9:", 0, false},
		{":30", 0, false},
	}

	for _, tt := range tests {
		got, ok := ClockMinutes(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestComputeStatus_EmptyClockPartNeverMatches(t *testing.T) {
	// Monday 09:00
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	schedule := []DailyOpeningHours{{Day: "mon", Ranges: []TimeRange{{From: "9:", To: "17:00"}}}}

	assert.Equal(t, StatusClosed, ComputeStatus(schedule, OverrideAuto, now))
}

func TestFormatOpeningHours(t *testing.T) {
	assert.Equal(t, NotSpecified, FormatOpeningHours(nil))
	assert.Equal(t, NotSpecified, FormatOpeningHours([]DailyOpeningHours{}))
	assert.Equal(t, NotSpecified, FormatOpeningHours([]DailyOpeningHours{
		{Day: "sat"},
		{Day: "sun", Ranges: []TimeRange{{From: "10:00", To: "12:00"}}},
	}))

	got := FormatOpeningHours([]DailyOpeningHours{
		{Day: "sat", Ranges: []TimeRange{{From: "09:00", To: "14:00"}, {From: "18:00", To: "23:00"}}},
		{Day: "sun", Ranges: []TimeRange{{From: "10:00", To: "12:00"}}},
	})
	assert.Equal(t, "09:00 – 14:00", got)
}
