package capacity

import (
	"context"
	"time"
)

// Provider is the remote HR directory and time-off source.
// All calls are synchronous and bounded by the provider client's timeout.
type Provider interface {
	// Directory returns the full employee directory. Sector is not set on the
	// returned records; it is derived at cache-ingestion time.
	Directory(ctx context.Context) ([]Employee, error)

	// TimeOffRequests returns all time-off requests overlapping the range.
	// Requires an API key with time-off access.
	TimeOffRequests(ctx context.Context, start, end time.Time) ([]TimeOffRequest, error)

	// WhosOut returns the out-of-office feed for the range, including
	// company-wide holiday entries. Needs no elevated access.
	WhosOut(ctx context.Context, start, end time.Time) ([]OutOfOffice, error)
}
