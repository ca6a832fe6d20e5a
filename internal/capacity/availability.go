package capacity

import (
	"context"
	"fmt"
	"time"
)

// AvailabilityQuery describes one availability question.
type AvailabilityQuery struct {
	Start time.Time
	End   time.Time

	// Sectors restricts the result to employees whose cached sector is in the
	// list. Empty means no sector filter. Sector filtering resolves employees
	// through the cache; employees missing from the cache are dropped.
	Sectors []string

	// OnlyIDs reduces the result to the employee ids.
	OnlyIDs bool
}

// Availability is the answer to an AvailabilityQuery. Employees is populated
// unless OnlyIDs was set, in which case IDs is.
type Availability struct {
	Employees []Employee
	IDs       []int64
}

// WhosOut returns the raw out-of-office records for the range, holidays and
// anonymized entries included. Needs no elevated access.
func (s *Service) WhosOut(ctx context.Context, start, end time.Time) ([]OutOfOffice, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	records, err := s.provider.WhosOut(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching who's out feed: %w", err)
	}
	return records, nil
}

// WhosOutIDs projects the out-of-office feed to employee ids. Entries without
// an employee id (holidays, anonymized rows) are dropped; the dropped count is
// logged so aggregate numbers stay auditable.
func (s *Service) WhosOutIDs(ctx context.Context, start, end time.Time) ([]int64, error) {
	records, err := s.WhosOut(ctx, start, end)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(records))
	dropped := 0
	for _, rec := range records {
		if rec.EmployeeID == 0 {
			dropped++
			continue
		}
		ids = append(ids, rec.EmployeeID)
	}
	if dropped > 0 {
		s.logger.Debug("who's out entries without employee id dropped", "count", dropped)
	}
	return ids, nil
}

// UnavailableEmployeeIDs returns the set of employees with an approved
// time-off request overlapping the range. Requests in any other status are
// ignored: only confirmed absence reduces availability.
func (s *Service) UnavailableEmployeeIDs(ctx context.Context, start, end time.Time) (map[int64]struct{}, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	if !s.elevated {
		return nil, ErrElevatedAccess
	}

	requests, err := s.provider.TimeOffRequests(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching time-off requests: %w", err)
	}

	unavailable := make(map[int64]struct{})
	for _, req := range requests {
		if req.Status == StatusApproved && req.EmployeeID != 0 {
			unavailable[req.EmployeeID] = struct{}{}
		}
	}
	return unavailable, nil
}

// AvailableEmployees answers who is available in the query range. The data
// path depends on the service's access level:
//
// Elevated: full directory plus approved time-off requests from the provider;
// available = directory minus the unavailable set. The cache is not involved,
// except to resolve sector filters.
//
// Non-elevated: who's-out ids from the provider, then the local directory
// cache (populated on first use) minus those ids.
func (s *Service) AvailableEmployees(ctx context.Context, q AvailabilityQuery) (*Availability, error) {
	if err := validateRange(q.Start, q.End); err != nil {
		return nil, err
	}

	var (
		employees []Employee
		err       error
	)
	if s.elevated {
		employees, err = s.availableFromProvider(ctx, q)
	} else {
		employees, err = s.availableFromCache(ctx, q)
	}
	if err != nil {
		return nil, err
	}

	if len(q.Sectors) > 0 {
		// Sector filtering reads the cache, so make sure it has been filled.
		if err := s.ensureDirectoryCached(ctx); err != nil {
			return nil, err
		}
		employees, err = s.filterBySector(employees, q.Sectors)
		if err != nil {
			return nil, err
		}
	}

	if q.OnlyIDs {
		ids := make([]int64, 0, len(employees))
		for _, emp := range employees {
			ids = append(ids, emp.ID)
		}
		return &Availability{IDs: ids}, nil
	}
	return &Availability{Employees: employees}, nil
}

func (s *Service) availableFromProvider(ctx context.Context, q AvailabilityQuery) ([]Employee, error) {
	directory, err := s.provider.Directory(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching directory: %w", err)
	}

	unavailable, err := s.UnavailableEmployeeIDs(ctx, q.Start, q.End)
	if err != nil {
		return nil, err
	}

	available := make([]Employee, 0, len(directory))
	for _, emp := range directory {
		if _, out := unavailable[emp.ID]; !out {
			available = append(available, emp)
		}
	}
	return available, nil
}

func (s *Service) availableFromCache(ctx context.Context, q AvailabilityQuery) ([]Employee, error) {
	outIDs, err := s.WhosOutIDs(ctx, q.Start, q.End)
	if err != nil {
		return nil, err
	}

	if err := s.ensureDirectoryCached(ctx); err != nil {
		return nil, err
	}

	employees, err := s.store.ExcludingIDs(outIDs)
	if err != nil {
		return nil, fmt.Errorf("reading directory cache: %w", err)
	}
	return employees, nil
}

// filterBySector keeps the employees whose cached sector is in sectors.
// Each employee is resolved through the cache; employees not found there are
// dropped from the result and the dropped count logged.
func (s *Service) filterBySector(employees []Employee, sectors []string) ([]Employee, error) {
	wanted := make(map[string]struct{}, len(sectors))
	for _, sector := range sectors {
		wanted[sector] = struct{}{}
	}

	kept := make([]Employee, 0, len(employees))
	dropped := 0
	for _, emp := range employees {
		sector := emp.Sector
		if sector == "" {
			cached, err := s.store.ByID(emp.ID)
			if err != nil {
				return nil, fmt.Errorf("resolving employee %d through cache: %w", emp.ID, err)
			}
			if cached == nil {
				dropped++
				continue
			}
			sector = cached.Sector
		}
		if _, ok := wanted[sector]; ok {
			kept = append(kept, emp)
		}
	}
	if dropped > 0 {
		s.logger.Warn("employees missing from cache dropped from sector filter", "count", dropped)
	}
	return kept, nil
}

// ensureDirectoryCached populates the employee cache from the provider when,
// and only when, the cache is empty. A non-empty cache is never refreshed here;
// staleness is accepted and handled by the cache refresh command.
func (s *Service) ensureDirectoryCached(ctx context.Context) error {
	s.populateMu.Lock()
	defer s.populateMu.Unlock()

	count, err := s.store.Count()
	if err != nil {
		return fmt.Errorf("counting cached employees: %w", err)
	}
	if count > 0 {
		return nil
	}

	return s.populateDirectory(ctx)
}

// populateDirectory fetches the full directory, classifies sectors and bulk
// inserts. Callers must hold populateMu or otherwise guarantee a single writer.
func (s *Service) populateDirectory(ctx context.Context) error {
	directory, err := s.provider.Directory(ctx)
	if err != nil {
		return fmt.Errorf("fetching directory: %w", err)
	}

	for i := range directory {
		directory[i].Sector = SectorForTitle(directory[i].JobTitle)
	}

	inserted, skipped, err := s.store.BulkInsert(directory)
	if err != nil {
		return fmt.Errorf("populating directory cache: %w", err)
	}
	if skipped > 0 {
		s.logger.Warn("directory records skipped during cache population", "count", skipped)
	}
	s.logger.Info("directory cache populated", "inserted", inserted, "skipped", skipped)
	return nil
}

// RefreshDirectory empties the cache and repopulates it from the provider.
func (s *Service) RefreshDirectory(ctx context.Context) error {
	s.populateMu.Lock()
	defer s.populateMu.Unlock()

	if err := s.store.DeleteAll(); err != nil {
		return fmt.Errorf("clearing directory cache: %w", err)
	}
	return s.populateDirectory(ctx)
}
