package restaurant

import (
	"fmt"
	"math"
	"strings"

	"github.com/MK7-m/qrcodesy/internal/core"
	"github.com/MK7-m/qrcodesy/internal/hours"
	"github.com/MK7-m/qrcodesy/internal/pricing"
)

const MaxExtraFees = 5

// ValidateExtraFees trims labels and checks every fee. The returned slice
// is never nil.
func ValidateExtraFees(fees []pricing.ExtraFee) ([]pricing.ExtraFee, error) {
	if len(fees) > MaxExtraFees {
		return nil, fmt.Errorf("%w: at most %d extra fees allowed", ErrInvalidInput, MaxExtraFees)
	}

	out := make([]pricing.ExtraFee, 0, len(fees))
	for i, fee := range fees {
		label := strings.TrimSpace(fee.Label)
		if label == "" {
			return nil, fmt.Errorf("%w: fee %d: label is required", ErrInvalidInput, i+1)
		}
		if math.IsNaN(fee.Percentage) || fee.Percentage < 0 || fee.Percentage > 100 {
			return nil, fmt.Errorf("%w: fee %q: percentage must be between 0 and 100", ErrInvalidInput, label)
		}
		out = append(out, pricing.ExtraFee{Label: label, Percentage: fee.Percentage})
	}
	return out, nil
}

// ValidateOpeningHours checks day keys and time ranges. Ranges must not
// cross midnight.
func ValidateOpeningHours(days []hours.DailyOpeningHours) ([]hours.DailyOpeningHours, error) {
	valid := make(map[string]bool, len(hours.DayKeys))
	for _, key := range hours.DayKeys {
		valid[key] = true
	}

	seen := make(map[string]bool, len(days))
	out := make([]hours.DailyOpeningHours, 0, len(days))
	for _, day := range days {
		if !valid[day.Day] {
			return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidInput, day.Day)
		}
		if seen[day.Day] {
			return nil, fmt.Errorf("%w: day %q listed twice", ErrInvalidInput, day.Day)
		}
		seen[day.Day] = true

		ranges := make([]hours.TimeRange, 0, len(day.Ranges))
		for _, r := range day.Ranges {
			from, okFrom := clock(r.From)
			to, okTo := clock(r.To)
			if !okFrom || !okTo {
				return nil, fmt.Errorf("%w: %s: times must be HH:MM", ErrInvalidInput, day.Day)
			}
			if from > to {
				return nil, fmt.Errorf("%w: %s: %s is after %s", ErrInvalidInput, day.Day, r.From, r.To)
			}
			ranges = append(ranges, r)
		}
		out = append(out, hours.DailyOpeningHours{Day: day.Day, Ranges: ranges})
	}
	return out, nil
}

// clock accepts only zero-padded 24h "HH:MM" and returns minutes since midnight.
func clock(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	h, m := twoDigits(s[:2]), twoDigits(s[3:])
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func twoDigits(s string) int {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return -1
	}
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

func validatePlan(plan string) error {
	switch plan {
	case core.PlanMenuOnly, core.PlanDineIn, core.PlanFull:
		return nil
	}
	return fmt.Errorf("%w: plan must be a, b or c", ErrInvalidInput)
}

func validateDeliveryFee(fee float64) error {
	if math.IsNaN(fee) || math.IsInf(fee, 0) || fee < 0 {
		return fmt.Errorf("%w: delivery fee must be zero or more", ErrInvalidInput)
	}
	return nil
}

func validateOverride(override hours.Override) error {
	switch override {
	case hours.OverrideAuto, hours.OverrideOpen, hours.OverrideClosed, hours.OverrideBusy:
		return nil
	}
	return fmt.Errorf("%w: status override must be auto, open, closed or busy", ErrInvalidInput)
}
