package hours

import (
	"strconv"
	"strings"
	"time"
)

// TimeRange is a same-day opening window in zero-padded 24h "HH:MM".
type TimeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DailyOpeningHours is one weekday of a restaurant's schedule. Day is one
// of the keys in DayKeys; a day with no ranges is closed all day.
type DailyOpeningHours struct {
	Day    string      `json:"day"`
	Ranges []TimeRange `json:"ranges"`
}

// Override is the administrator's manual status flag.
type Override string

const (
	OverrideAuto   Override = "auto"
	OverrideOpen   Override = "open"
	OverrideClosed Override = "closed"
	OverrideBusy   Override = "busy"
)

// Status is what customers are shown.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusBusy   Status = "busy"
)

// DayKeys lists the stored day keys in display order (week starts Saturday).
var DayKeys = []string{"sat", "sun", "mon", "tue", "wed", "thu", "fri"}

// weekdayKeys is indexed by time.Weekday (Sunday = 0).
var weekdayKeys = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// NotSpecified is returned by FormatOpeningHours when there is nothing to show.
const NotSpecified = "not specified"

// ComputeStatus resolves the customer-facing status at now.
//
// An explicit open/closed/busy override always wins. Otherwise the schedule
// entry for now's weekday decides: open when now falls inside any range,
// both ends inclusive. Missing data means closed, and busy can only come
// from the override. Ranges that cross midnight never match.
func ComputeStatus(openingHours []DailyOpeningHours, override Override, now time.Time) Status {
	switch override {
	case OverrideOpen, OverrideClosed, OverrideBusy:
		return Status(override)
	}

	if len(openingHours) == 0 {
		return StatusClosed
	}

	todayKey := weekdayKeys[now.Weekday()]

	var today *DailyOpeningHours
	for i := range openingHours {
		if openingHours[i].Day == todayKey {
			today = &openingHours[i]
			break
		}
	}
	if today == nil || len(today.Ranges) == 0 {
		return StatusClosed
	}

	current := now.Hour()*60 + now.Minute()
	for _, r := range today.Ranges {
		from, okFrom := ClockMinutes(r.From)
		to, okTo := ClockMinutes(r.To)
		if !okFrom || !okTo {
			continue
		}
		if current >= from && current <= to {
			return StatusOpen
		}
	}

	return StatusClosed
}

// ClockMinutes converts "H:M" into minutes since midnight. Anything after a
// second colon is ignored. ok is false when either part is not an integer,
// so an empty part such as "9:" or ":30" is rejected rather than read as zero
// and the range it belongs to never matches.
func ClockMinutes(clock string) (minutes int, ok bool) {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return 0, false
	}

	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}

	return h*60 + m, true
}

// FormatOpeningHours summarizes a schedule as the first range of the first
// day, e.g. "09:00 – 17:00". Later ranges and days are ignored.
func FormatOpeningHours(openingHours []DailyOpeningHours) string {
	if len(openingHours) == 0 || len(openingHours[0].Ranges) == 0 {
		return NotSpecified
	}

	first := openingHours[0].Ranges[0]
	return first.From + " – " + first.To
}
