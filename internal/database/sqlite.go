package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"teamcap/internal/capacity"
	"teamcap/internal/database/migrations"

	"github.com/mattn/go-sqlite3"
)

// SQLiteStore implements the capacity.DirectoryStore interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger capacity.Logger
}

// NewSQLiteStore creates a new SQLite-backed employee cache.
// path can be a file path or ":memory:" for an in-memory cache.
func NewSQLiteStore(path string, logger capacity.Logger) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = capacity.NewNopLogger()
	}
	return &SQLiteStore{db: db, path: path, logger: logger}, nil
}

// OpenConnection opens and configures a SQLite connection with appropriate
// PRAGMAs. Exported for tools and tests that need a properly configured
// connection. path can be a file path or ":memory:".
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

const employeeColumns = "bamboo_id, f_name, l_name, display_name, job_title, mobile_phone, photo_url, sector"

func scanEmployee(row interface{ Scan(...any) error }) (capacity.Employee, error) {
	var emp capacity.Employee
	var jobTitle, mobilePhone sql.NullString
	err := row.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.DisplayName,
		&jobTitle, &mobilePhone, &emp.PhotoURL, &emp.Sector)
	if err != nil {
		return capacity.Employee{}, err
	}
	emp.JobTitle = jobTitle.String
	emp.MobilePhone = mobilePhone.String
	return emp, nil
}

func (s *SQLiteStore) queryEmployees(query string, args ...any) ([]capacity.Employee, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying employees: %w", err)
	}
	defer rows.Close()

	var employees []capacity.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return employees, nil
}

// cleanIDs drops zero/invalid ids so a malformed entry in an id filter never
// changes the result set or fails the query.
func cleanIDs(ids []int64) []int64 {
	cleaned := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			cleaned = append(cleaned, id)
		}
	}
	return cleaned
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func idArgs(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// Count returns the number of cached employee records.
func (s *SQLiteStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(bamboo_id) FROM employees").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting employees: %w", err)
	}
	return count, nil
}

// BulkInsert inserts the given records one by one. Rows that violate a
// constraint (typically a duplicate primary key) are logged and skipped so one
// bad record never aborts a directory load.
func (s *SQLiteStore) BulkInsert(employees []capacity.Employee) (inserted, skipped int, err error) {
	stmt, err := s.db.Prepare(fmt.Sprintf(
		"INSERT INTO employees (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", employeeColumns))
	if err != nil {
		return 0, 0, fmt.Errorf("preparing employee insert: %w", err)
	}
	defer stmt.Close()

	for _, emp := range employees {
		_, execErr := stmt.Exec(emp.ID, emp.FirstName, emp.LastName, emp.DisplayName,
			nullable(emp.JobTitle), nullable(emp.MobilePhone), emp.PhotoURL, emp.Sector)
		if execErr != nil {
			var sqliteErr sqlite3.Error
			if errors.As(execErr, &sqliteErr) {
				s.logger.Error("skipping employee record", "id", emp.ID, "error", sqliteErr.Error())
				skipped++
				continue
			}
			return inserted, skipped, fmt.Errorf("inserting employee %d: %w", emp.ID, execErr)
		}
		inserted++
	}
	return inserted, skipped, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ExcludingIDs returns all cached employees whose id is not in ids.
func (s *SQLiteStore) ExcludingIDs(ids []int64) ([]capacity.Employee, error) {
	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return s.queryEmployees(fmt.Sprintf("SELECT %s FROM employees", employeeColumns))
	}
	query := fmt.Sprintf("SELECT %s FROM employees WHERE bamboo_id NOT IN (%s)",
		employeeColumns, placeholders(len(ids)))
	return s.queryEmployees(query, idArgs(ids)...)
}

// ByID returns the cached employee with the given id, or nil if absent.
func (s *SQLiteStore) ByID(id int64) (*capacity.Employee, error) {
	row := s.db.QueryRow(fmt.Sprintf(
		"SELECT %s FROM employees WHERE bamboo_id = ?", employeeColumns), id)
	emp, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding employee by id: %w", err)
	}
	return &emp, nil
}

// ByIDs returns the cached employees whose id is in ids.
func (s *SQLiteStore) ByIDs(ids []int64) ([]capacity.Employee, error) {
	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM employees WHERE bamboo_id IN (%s)",
		employeeColumns, placeholders(len(ids)))
	return s.queryEmployees(query, idArgs(ids)...)
}

// BySector returns all cached employees in the given sector.
func (s *SQLiteStore) BySector(sector string) ([]capacity.Employee, error) {
	return s.queryEmployees(fmt.Sprintf(
		"SELECT %s FROM employees WHERE sector = ?", employeeColumns), sector)
}

// BySectorAndIDs returns cached employees in the sector whose id is in ids,
// ordered by id.
func (s *SQLiteStore) BySectorAndIDs(sector string, ids []int64) ([]capacity.Employee, error) {
	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(
		"SELECT %s FROM employees WHERE sector = ? AND bamboo_id IN (%s) ORDER BY bamboo_id",
		employeeColumns, placeholders(len(ids)))
	args := append([]any{sector}, idArgs(ids)...)
	return s.queryEmployees(query, args...)
}

// CountBySectorAndIDs is the count variant of BySectorAndIDs.
func (s *SQLiteStore) CountBySectorAndIDs(sector string, ids []int64) (int, error) {
	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	query := fmt.Sprintf(
		"SELECT COUNT(bamboo_id) FROM employees WHERE sector = ? AND bamboo_id IN (%s)",
		placeholders(len(ids)))
	args := append([]any{sector}, idArgs(ids)...)

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting employees by sector: %w", err)
	}
	return count, nil
}

// Update replaces the cached record with the same id.
func (s *SQLiteStore) Update(emp capacity.Employee) error {
	result, err := s.db.Exec(`
		UPDATE employees
		SET f_name = ?, l_name = ?, display_name = ?, job_title = ?,
		    mobile_phone = ?, photo_url = ?, sector = ?
		WHERE bamboo_id = ?`,
		emp.FirstName, emp.LastName, emp.DisplayName, nullable(emp.JobTitle),
		nullable(emp.MobilePhone), emp.PhotoURL, emp.Sector, emp.ID)
	if err != nil {
		return fmt.Errorf("updating employee %d: %w", emp.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating employee %d: %w", emp.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("employee %d not found", emp.ID)
	}
	return nil
}

// Delete removes the cached record with the given id.
func (s *SQLiteStore) Delete(id int64) error {
	if _, err := s.db.Exec("DELETE FROM employees WHERE bamboo_id = ?", id); err != nil {
		return fmt.Errorf("deleting employee %d: %w", id, err)
	}
	return nil
}

// DeleteAll empties the cache.
func (s *SQLiteStore) DeleteAll() error {
	if _, err := s.db.Exec("DELETE FROM employees"); err != nil {
		return fmt.Errorf("clearing employee cache: %w", err)
	}
	return nil
}

// Path returns the database file path (or ":memory:" for in-memory caches).
func (s *SQLiteStore) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteStore) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// MigrateUp brings the schema to the latest version.
func (s *SQLiteStore) MigrateUp() error {
	return migrations.MigrateUp(s.db)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteStore implements capacity.DirectoryStore
var _ capacity.DirectoryStore = (*SQLiteStore)(nil)
