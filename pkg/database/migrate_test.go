package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	initMigration      = "migrations/001_init.sql"
	districtsMigration = "migrations/002_districts.sql"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func expectSchemaTable(mock pgxmock.PgxPoolIface) {
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
}

func expectApplied(mock pgxmock.PgxPoolIface, version string, applied bool) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(version).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(applied))
}

func expectApply(mock pgxmock.PgxPoolIface, version, bodyPattern string) {
	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectExec(bodyPattern).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations")).
		WithArgs(version).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
}

func TestMigrate_AppliesPendingInOrder(t *testing.T) {
	mock := newMock(t)
	expectSchemaTable(mock)

	expectApplied(mock, initMigration, false)
	expectApply(mock, initMigration, `(?s)CREATE TABLE IF NOT EXISTS users.*payment_attempts`)
	expectApplied(mock, districtsMigration, false)
	expectApply(mock, districtsMigration, `(?s)CREATE TABLE IF NOT EXISTS districts.*REFERENCES districts \(name\)`)

	require.NoError(t, Migrate(context.Background(), mock, zap.NewNop()))
}

func TestMigrate_SkipsApplied(t *testing.T) {
	mock := newMock(t)
	expectSchemaTable(mock)
	expectApplied(mock, initMigration, true)
	expectApplied(mock, districtsMigration, true)

	require.NoError(t, Migrate(context.Background(), mock, zap.NewNop()))
}

func TestMigrate_AppliesOnlyNewFiles(t *testing.T) {
	mock := newMock(t)
	expectSchemaTable(mock)
	expectApplied(mock, initMigration, true)
	expectApplied(mock, districtsMigration, false)
	expectApply(mock, districtsMigration, `(?s)CREATE TABLE IF NOT EXISTS districts`)

	require.NoError(t, Migrate(context.Background(), mock, zap.NewNop()))
}

func TestMigrate_RollsBackOnFailure(t *testing.T) {
	mock := newMock(t)
	expectSchemaTable(mock)
	expectApplied(mock, initMigration, false)

	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS users`).
		WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	err := Migrate(context.Background(), mock, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), initMigration)
}
