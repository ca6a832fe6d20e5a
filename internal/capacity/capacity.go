package capacity

import (
	"context"
	"fmt"
	"time"
)

// HoursPerWorkday is the nominal length of one working day.
const HoursPerWorkday = 8

// DefaultFocusFactor is the fraction of nominal hours expected to be
// productive when the caller does not supply one.
const DefaultFocusFactor = 0.75

// Capacity is the result of a capacity calculation. Hours is the aggregate
// person-hour figure; the counters exist so the number can be audited.
type Capacity struct {
	// Hours is the focus-factor adjusted person-hours for the sprint.
	Hours float64

	// WorkingDays is the number of working days in the sprint range.
	WorkingDays int

	// Employees is the number of employees that contributed to the total.
	Employees int

	// DroppedRecords counts out-of-office records without an employee id and
	// directory employees that could not be resolved through the cache.
	DroppedRecords int
}

// CalculateCapacity computes the person-hours capacity for a sprint.
//
// The pipeline: resolve the working-day calendar, intersect every
// out-of-office interval with it per employee, fetch the directory (optionally
// narrowed to sectors through the cache), then sum available days times eight
// hours and scale by the focus factor. Any remote failure aborts the whole
// calculation; partial results are never returned.
func (s *Service) CalculateCapacity(ctx context.Context, start, end time.Time, focusFactor float64, sectors []string) (*Capacity, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	if focusFactor <= 0 || focusFactor > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrFocusFactor, focusFactor)
	}

	workingDays, err := s.WorkingDays(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if len(workingDays) == 0 {
		// Nothing to divide over; skip the remaining fetches entirely.
		return &Capacity{}, nil
	}

	outRecords, err := s.WhosOut(ctx, start, end)
	if err != nil {
		return nil, err
	}
	unavailable, droppedOut := buildUnavailabilityMap(workingDays, outRecords)

	directory, err := s.provider.Directory(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching directory: %w", err)
	}

	droppedCache := 0
	if len(sectors) > 0 {
		directory, droppedCache, err = s.resolveSectors(ctx, directory, sectors)
		if err != nil {
			return nil, err
		}
	}

	var rawHours float64
	for _, emp := range directory {
		availableDays := len(workingDays) - len(unavailable[emp.ID])
		rawHours += float64(availableDays * HoursPerWorkday)
	}

	result := &Capacity{
		Hours:          rawHours * focusFactor,
		WorkingDays:    len(workingDays),
		Employees:      len(directory),
		DroppedRecords: droppedOut + droppedCache,
	}
	if result.DroppedRecords > 0 {
		s.logger.Debug("records dropped from capacity accounting",
			"without_employee_id", droppedOut, "missing_from_cache", droppedCache)
	}
	s.logger.Info("capacity calculated",
		"start", start.Format(DateLayout), "end", end.Format(DateLayout),
		"working_days", result.WorkingDays, "employees", result.Employees,
		"hours", result.Hours)
	return result, nil
}

// resolveSectors keeps the directory employees whose cached sector is in
// sectors. Each employee is looked up in the cache (populated on first use);
// employees missing from it are dropped and counted.
func (s *Service) resolveSectors(ctx context.Context, directory []Employee, sectors []string) ([]Employee, int, error) {
	if err := s.ensureDirectoryCached(ctx); err != nil {
		return nil, 0, err
	}

	wanted := make(map[string]struct{}, len(sectors))
	for _, sector := range sectors {
		wanted[sector] = struct{}{}
	}

	kept := make([]Employee, 0, len(directory))
	dropped := 0
	for _, emp := range directory {
		cached, err := s.store.ByID(emp.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("resolving employee %d through cache: %w", emp.ID, err)
		}
		if cached == nil {
			dropped++
			continue
		}
		if _, ok := wanted[cached.Sector]; ok {
			kept = append(kept, emp)
		}
	}
	return kept, dropped, nil
}

// buildUnavailabilityMap intersects each out-of-office interval with the
// working-day calendar and collects the overlap per employee. Records without
// an employee id (holidays, anonymized rows) are skipped and counted.
func buildUnavailabilityMap(workingDays []time.Time, records []OutOfOffice) (map[int64]map[time.Time]struct{}, int) {
	unavailable := make(map[int64]map[time.Time]struct{})
	dropped := 0

	for _, rec := range records {
		if rec.Type == TypeHoliday {
			// Company-wide closure; already reflected in the calendar.
			continue
		}
		if rec.EmployeeID == 0 {
			dropped++
			continue
		}
		start, end := Day(rec.Start), Day(rec.End)
		for _, day := range workingDays {
			if day.Before(start) || day.After(end) {
				continue
			}
			days := unavailable[rec.EmployeeID]
			if days == nil {
				days = make(map[time.Time]struct{})
				unavailable[rec.EmployeeID] = days
			}
			days[day] = struct{}{}
		}
	}
	return unavailable, dropped
}
