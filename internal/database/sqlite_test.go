package database_test

import (
	"testing"

	"teamcap/internal/capacity"
	"teamcap/internal/testutil"
)

func sampleEmployees() []capacity.Employee {
	return []capacity.Employee{
		{ID: 1, FirstName: "Alice", LastName: "Adams", DisplayName: "Alice Adams",
			JobTitle: "Backend Developer", PhotoURL: "https://example.com/1.png", Sector: "BE"},
		{ID: 2, FirstName: "Bob", LastName: "Brown", DisplayName: "Bob Brown",
			JobTitle: "QA Automation Engineer", PhotoURL: "https://example.com/2.png", Sector: "QA"},
		{ID: 3, FirstName: "Carol", LastName: "Clark", DisplayName: "Carol Clark",
			JobTitle: "Frontend Developer", PhotoURL: "https://example.com/3.png", Sector: "FE"},
	}
}

func TestSQLiteStore_BulkInsert(t *testing.T) {
	t.Run("inserts all records", func(t *testing.T) {
		store := testutil.NewTestStore(t)

		inserted, skipped, err := store.BulkInsert(sampleEmployees())
		if err != nil {
			t.Fatalf("BulkInsert() error = %v", err)
		}
		if inserted != 3 || skipped != 0 {
			t.Errorf("BulkInsert() = (%d, %d), want (3, 0)", inserted, skipped)
		}

		count, err := store.Count()
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if count != 3 {
			t.Errorf("Count() = %d, want 3", count)
		}
	})

	t.Run("duplicate primary key is skipped, not fatal", func(t *testing.T) {
		store := testutil.NewTestStore(t)

		if _, _, err := store.BulkInsert(sampleEmployees()[:1]); err != nil {
			t.Fatalf("BulkInsert() error = %v", err)
		}

		inserted, skipped, err := store.BulkInsert(sampleEmployees())
		if err != nil {
			t.Fatalf("BulkInsert() error = %v", err)
		}
		if inserted != 2 || skipped != 1 {
			t.Errorf("BulkInsert() = (%d, %d), want (2, 1)", inserted, skipped)
		}
	})

	t.Run("round-trips optional fields", func(t *testing.T) {
		store := testutil.NewTestStore(t)

		emp := capacity.Employee{ID: 9, FirstName: "Dana", LastName: "Doe",
			DisplayName: "Dana Doe", Sector: "-"}
		if _, _, err := store.BulkInsert([]capacity.Employee{emp}); err != nil {
			t.Fatalf("BulkInsert() error = %v", err)
		}

		got, err := store.ByID(9)
		if err != nil {
			t.Fatalf("ByID() error = %v", err)
		}
		if got == nil {
			t.Fatal("ByID() = nil, want employee")
		}
		if got.JobTitle != "" || got.MobilePhone != "" {
			t.Errorf("optional fields = (%q, %q), want empty", got.JobTitle, got.MobilePhone)
		}
		if got.Sector != "-" {
			t.Errorf("Sector = %q, want %q", got.Sector, "-")
		}
	})
}

func TestSQLiteStore_ExcludingIDs(t *testing.T) {
	store := testutil.NewTestStore(t)
	if _, _, err := store.BulkInsert(sampleEmployees()); err != nil {
		t.Fatalf("BulkInsert() error = %v", err)
	}

	t.Run("excludes listed ids", func(t *testing.T) {
		employees, err := store.ExcludingIDs([]int64{1, 3})
		if err != nil {
			t.Fatalf("ExcludingIDs() error = %v", err)
		}
		if len(employees) != 1 || employees[0].ID != 2 {
			t.Errorf("ExcludingIDs() = %v, want only employee 2", employees)
		}
	})

	t.Run("empty exclusion returns everyone", func(t *testing.T) {
		employees, err := store.ExcludingIDs(nil)
		if err != nil {
			t.Fatalf("ExcludingIDs() error = %v", err)
		}
		if len(employees) != 3 {
			t.Errorf("len = %d, want 3", len(employees))
		}
	})

	t.Run("invalid ids are cleaned before filtering", func(t *testing.T) {
		// Zero ids come from malformed feed entries; they must not change
		// the result.
		employees, err := store.ExcludingIDs([]int64{0, 0, 2})
		if err != nil {
			t.Fatalf("ExcludingIDs() error = %v", err)
		}
		if len(employees) != 2 {
			t.Errorf("len = %d, want 2", len(employees))
		}
	})
}

func TestSQLiteStore_SectorQueries(t *testing.T) {
	store := testutil.NewTestStore(t)
	if _, _, err := store.BulkInsert(sampleEmployees()); err != nil {
		t.Fatalf("BulkInsert() error = %v", err)
	}

	t.Run("by sector", func(t *testing.T) {
		employees, err := store.BySector("QA")
		if err != nil {
			t.Fatalf("BySector() error = %v", err)
		}
		if len(employees) != 1 || employees[0].ID != 2 {
			t.Errorf("BySector(QA) = %v, want only employee 2", employees)
		}
	})

	t.Run("by sector and ids", func(t *testing.T) {
		employees, err := store.BySectorAndIDs("BE", []int64{1, 2, 3})
		if err != nil {
			t.Fatalf("BySectorAndIDs() error = %v", err)
		}
		if len(employees) != 1 || employees[0].ID != 1 {
			t.Errorf("BySectorAndIDs(BE) = %v, want only employee 1", employees)
		}
	})

	t.Run("count by sector and ids", func(t *testing.T) {
		count, err := store.CountBySectorAndIDs("FE", []int64{1, 2, 3})
		if err != nil {
			t.Fatalf("CountBySectorAndIDs() error = %v", err)
		}
		if count != 1 {
			t.Errorf("CountBySectorAndIDs(FE) = %d, want 1", count)
		}
	})

	t.Run("empty id list yields nothing", func(t *testing.T) {
		employees, err := store.BySectorAndIDs("BE", nil)
		if err != nil {
			t.Fatalf("BySectorAndIDs() error = %v", err)
		}
		if len(employees) != 0 {
			t.Errorf("BySectorAndIDs(BE, nil) = %v, want empty", employees)
		}
	})
}

func TestSQLiteStore_ByIDs(t *testing.T) {
	store := testutil.NewTestStore(t)
	if _, _, err := store.BulkInsert(sampleEmployees()); err != nil {
		t.Fatalf("BulkInsert() error = %v", err)
	}

	employees, err := store.ByIDs([]int64{1, 3, 99})
	if err != nil {
		t.Fatalf("ByIDs() error = %v", err)
	}
	if len(employees) != 2 {
		t.Errorf("len = %d, want 2", len(employees))
	}
}

func TestSQLiteStore_ByID_NotFound(t *testing.T) {
	store := testutil.NewTestStore(t)

	emp, err := store.ByID(42)
	if err != nil {
		t.Fatalf("ByID() error = %v", err)
	}
	if emp != nil {
		t.Errorf("ByID(42) = %v, want nil", emp)
	}
}

func TestSQLiteStore_UpdateDelete(t *testing.T) {
	store := testutil.NewTestStore(t)
	if _, _, err := store.BulkInsert(sampleEmployees()); err != nil {
		t.Fatalf("BulkInsert() error = %v", err)
	}

	t.Run("update", func(t *testing.T) {
		emp := sampleEmployees()[0]
		emp.JobTitle = "DevOps Engineer"
		emp.Sector = "DVPS"
		if err := store.Update(emp); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		got, err := store.ByID(emp.ID)
		if err != nil {
			t.Fatalf("ByID() error = %v", err)
		}
		if got.Sector != "DVPS" {
			t.Errorf("Sector = %q, want DVPS", got.Sector)
		}
	})

	t.Run("update of missing record fails", func(t *testing.T) {
		err := store.Update(capacity.Employee{ID: 999, DisplayName: "Ghost"})
		if err == nil {
			t.Error("Update() expected error for missing employee")
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := store.Delete(2); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		emp, err := store.ByID(2)
		if err != nil {
			t.Fatalf("ByID() error = %v", err)
		}
		if emp != nil {
			t.Errorf("employee 2 still present after delete")
		}
	})

	t.Run("delete all", func(t *testing.T) {
		if err := store.DeleteAll(); err != nil {
			t.Fatalf("DeleteAll() error = %v", err)
		}
		count, err := store.Count()
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if count != 0 {
			t.Errorf("Count() = %d, want 0", count)
		}
	})
}
