package capacity

import "sync"

// Service is the capacity resolution engine. It reconciles the remote
// directory, the working-day calendar and per-employee unavailability into
// availability listings and an aggregate person-hours number.
//
// The elevated flag states whether the configured API key may read time-off
// requests. It selects the data path for availability queries: elevated
// queries go straight to the provider, non-elevated queries fall back to the
// who's-out feed plus the local directory cache.
type Service struct {
	provider Provider
	store    DirectoryStore
	logger   Logger
	clock    Clock
	elevated bool

	// Guards cache population so concurrent callers cannot race a refill
	// into duplicate inserts.
	populateMu sync.Mutex
}

// NewService creates a Service with the provided dependencies.
func NewService(provider Provider, store DirectoryStore, logger Logger, clock Clock, elevated bool) *Service {
	return &Service{
		provider: provider,
		store:    store,
		logger:   logger,
		clock:    clock,
		elevated: elevated,
	}
}

// Elevated reports whether the service may read time-off requests.
func (s *Service) Elevated() bool { return s.elevated }
