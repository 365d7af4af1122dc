package db

import "testing"

func TestSQLiteDSN(t *testing.T) {
	cases := []struct {
		dsn     string
		enforce bool
		want    string
	}{
		{"contracts.db", false, "contracts.db?_journal_mode=WAL&_busy_timeout=5000"},
		{"contracts.db", true, "contracts.db?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"},
		{"file:contracts.db?cache=shared", false, "file:contracts.db?cache=shared&_journal_mode=WAL&_busy_timeout=5000"},
	}
	for _, tc := range cases {
		if got := sqliteDSN(tc.dsn, tc.enforce); got != tc.want {
			t.Fatalf("sqliteDSN(%q, %v): got=%q want=%q", tc.dsn, tc.enforce, got, tc.want)
		}
	}
}

func TestMigrationStatements(t *testing.T) {
	if _, err := migrationStatements("mysql", false); err == nil {
		t.Fatal("expected error for unknown dialect")
	}

	loose, err := migrationStatements("postgres", false)
	if err != nil {
		t.Fatalf("postgres statements: %v", err)
	}
	strict, _ := migrationStatements("postgres", true)
	if loose[1] == strict[1] {
		t.Fatal("enforced schema should declare the contracts reference")
	}
}
