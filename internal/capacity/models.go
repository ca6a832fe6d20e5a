package capacity

import (
	"strings"
	"time"
)

// Employee is a cached directory record. ID is the remote provider's stable
// integer identifier and the primary key of the local cache.
type Employee struct {
	ID          int64
	FirstName   string
	LastName    string
	DisplayName string
	JobTitle    string
	MobilePhone string
	PhotoURL    string
	Sector      string
}

// OutOfOffice is one entry of the provider's "who's out" feed. EmployeeID is 0
// for entries that are not tied to an employee (anonymized entries and
// company-wide holidays).
type OutOfOffice struct {
	EmployeeID int64
	Type       string
	Start      time.Time
	End        time.Time
}

// TimeOffRequest is one entry of the provider's time-off request list.
// Fetching these requires an API key with time-off access.
type TimeOffRequest struct {
	EmployeeID int64
	Status     string
	Type       string
	Start      time.Time
	End        time.Time
}

// StatusApproved is the only request status that counts as confirmed absence.
// Requests in any other status leave the employee available.
const StatusApproved = "approved"

// TypeHoliday marks an out-of-office entry as a company-wide closure rather
// than a per-employee absence.
const TypeHoliday = "holiday"

// SectorUnknown is assigned when no classification rule matches the job title.
const SectorUnknown = "-"

type sectorRule struct {
	substrings []string
	sector     string
}

// Classification rules are checked in order and are not exclusive: a title
// matching several rules keeps the last match. This mirrors the behavior the
// rest of the company tooling already depends on.
var sectorRules = []sectorRule{
	{[]string{"Frontend"}, "FE"},
	{[]string{"Backend"}, "BE"},
	{[]string{"QA"}, "QA"},
	{[]string{"SMG", "Java"}, "SMG"},
	{[]string{"DevOps", "Ops"}, "DVPS"},
}

// SectorForTitle derives the coarse sector classification from a job title.
// The match is case-sensitive substring matching; last matching rule wins.
func SectorForTitle(jobTitle string) string {
	sector := SectorUnknown
	if jobTitle == "" {
		return sector
	}
	for _, rule := range sectorRules {
		for _, sub := range rule.substrings {
			if strings.Contains(jobTitle, sub) {
				sector = rule.sector
				break
			}
		}
	}
	return sector
}
