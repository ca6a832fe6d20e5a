package capacity

// DirectoryStore is the local employee cache. Implementations own the
// persisted employee state; the engine owns deciding when to populate it.
//
// All id-list filters must drop zero/invalid ids before filtering, so a
// malformed exclusion entry never changes the result set or fails the query.
type DirectoryStore interface {
	// Count returns the number of cached employee records.
	Count() (int, error)

	// BulkInsert inserts the given records one by one. A record that fails to
	// insert (duplicate primary key, constraint violation) is skipped, never
	// aborting the batch. Returns the number inserted and the number skipped.
	BulkInsert(employees []Employee) (inserted, skipped int, err error)

	// ExcludingIDs returns all cached employees whose id is not in ids.
	ExcludingIDs(ids []int64) ([]Employee, error)

	// ByID returns the cached employee with the given id, or nil if absent.
	ByID(id int64) (*Employee, error)

	// ByIDs returns the cached employees whose id is in ids.
	ByIDs(ids []int64) ([]Employee, error)

	// BySector returns all cached employees in the given sector.
	BySector(sector string) ([]Employee, error)

	// BySectorAndIDs returns cached employees in the sector whose id is in ids,
	// ordered by id.
	BySectorAndIDs(sector string, ids []int64) ([]Employee, error)

	// CountBySectorAndIDs is the count variant of BySectorAndIDs.
	CountBySectorAndIDs(sector string, ids []int64) (int, error)

	// Update replaces the cached record with the same id.
	Update(employee Employee) error

	// Delete removes the cached record with the given id.
	Delete(id int64) error

	// DeleteAll empties the cache.
	DeleteAll() error

	// Close closes the store.
	Close() error
}
