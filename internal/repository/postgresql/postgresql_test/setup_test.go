package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL, applies migrations and empties
// every table. Tests are skipped when the variable is not set.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, database.Migrate(ctx, db))

	_, err = db.Exec(ctx, `
		TRUNCATE TABLE
			notifications, performance_feedback, performance_goals, performance_reviews,
			salary_components, payslips, payroll_runs, attendance, holidays,
			leave_balances, leave_requests, leave_types, employee_employment_history,
			employee_emergency_contacts, employees, refresh_tokens, users
		CASCADE`)
	require.NoError(t, err)
	return db
}
