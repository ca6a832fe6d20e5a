package capacity

import (
	"context"
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used throughout: ISO YYYY-MM-DD.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date into a UTC-midnight time.Time.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid date", ErrInvalidDateRange, value)
	}
	return t, nil
}

// Day truncates t to its UTC calendar date. All calendar arithmetic in this
// package works on UTC-midnight values so dates compare with ==.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidDateRange)
	}
	if start.After(end) {
		return fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidDateRange, start.Format(DateLayout), end.Format(DateLayout))
	}
	return nil
}

// CompanyHolidays returns the set of company-wide holiday dates in the range,
// keyed by UTC-midnight date. Holidays are the who's-out entries of type
// "holiday"; their start date is the closure date.
func (s *Service) CompanyHolidays(ctx context.Context, start, end time.Time) (map[time.Time]struct{}, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	records, err := s.provider.WhosOut(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching who's out feed: %w", err)
	}

	holidays := make(map[time.Time]struct{})
	for _, rec := range records {
		if rec.Type == TypeHoliday {
			holidays[Day(rec.Start)] = struct{}{}
		}
	}
	return holidays, nil
}

// WorkingDays returns every date in [start, end] that is a weekday and not a
// company holiday, in ascending order.
func (s *Service) WorkingDays(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	holidays, err := s.CompanyHolidays(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var days []time.Time
	for d := Day(start); !d.After(Day(end)); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if _, holiday := holidays[d]; holiday {
			continue
		}
		days = append(days, d)
	}
	return days, nil
}

// CountWorkingDays returns the number of working days in [start, end].
func (s *Service) CountWorkingDays(ctx context.Context, start, end time.Time) (int, error) {
	days, err := s.WorkingDays(ctx, start, end)
	if err != nil {
		return 0, err
	}
	return len(days), nil
}
