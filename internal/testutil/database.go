package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Position table
		CREATE TABLE IF NOT EXISTS position (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			company_name VARCHAR(100) NOT NULL,
			total_quantity REAL NOT NULL DEFAULT 0,
			average_price REAL NOT NULL DEFAULT 0,
			total_investment REAL NOT NULL DEFAULT 0,
			total_fees REAL NOT NULL DEFAULT 0,
			investment_with_fees REAL NOT NULL DEFAULT 0,
			current_price REAL NOT NULL DEFAULT 0,
			current_value REAL NOT NULL DEFAULT 0,
			unrealized_pnl REAL NOT NULL DEFAULT 0,
			unrealized_pct REAL NOT NULL DEFAULT 0,
			status VARCHAR(10) NOT NULL DEFAULT 'holding',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		-- Transaction table (quoted because transaction is a reserved keyword)
		CREATE TABLE IF NOT EXISTS "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			position_id VARCHAR(36) NOT NULL,
			type VARCHAR(4) NOT NULL,
			quantity REAL NOT NULL,
			price REAL NOT NULL,
			fees REAL NOT NULL DEFAULT 0,
			total REAL NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(position_id) REFERENCES position(id) ON DELETE CASCADE
		);

		-- Daily snapshot table
		CREATE TABLE IF NOT EXISTS daily_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date DATE NOT NULL UNIQUE,
			total_investment REAL NOT NULL DEFAULT 0,
			total_current_value REAL NOT NULL DEFAULT 0,
			total_unrealized_pnl REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);

		-- Snapshot position table
		CREATE TABLE IF NOT EXISTS snapshot_position (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			snapshot_id VARCHAR(36) NOT NULL,
			position_id VARCHAR(36) NOT NULL,
			company_name VARCHAR(100) NOT NULL,
			quantity REAL NOT NULL DEFAULT 0,
			current_price REAL NOT NULL DEFAULT 0,
			current_value REAL NOT NULL DEFAULT 0,
			unrealized_pnl REAL NOT NULL DEFAULT 0,
			FOREIGN KEY(snapshot_id) REFERENCES daily_snapshot(id) ON DELETE CASCADE
		);

		-- Indexes for performance
		CREATE INDEX IF NOT EXISTS idx_transaction_position ON "transaction"(position_id);
		CREATE INDEX IF NOT EXISTS idx_transaction_created ON "transaction"(created_at);
		CREATE INDEX IF NOT EXISTS idx_snapshot_position_snapshot ON snapshot_position(snapshot_id);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"snapshot_position",
		"daily_snapshot",
		"transaction",
		"position",
	}

	for _, table := range tables {
		//nolint:gosec // G202: Table names are from hardcoded slice, no SQL injection risk
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
//
// Example usage:
//
//	testutil.AssertRowCount(t, db, "position", 2)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
