package sql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/nexo/dialect"
)

func scanAll(t *testing.T, rows *sqlmock.Rows) []map[string]any {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	drv := OpenDB(dialect.Postgres, db)
	r := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT", []any{}, r))
	records, err := ScanRecords(r)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	return records
}

func TestScanRecords(t *testing.T) {
	t.Parallel()

	records := scanAll(t, sqlmock.NewRows([]string{"id", "name", "bio"}).
		AddRow(int64(1), "alice", nil).
		AddRow(int64(2), "bob", "hi"))

	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0]["id"])
	assert.Equal(t, "alice", records[0]["name"])
	assert.Nil(t, records[0]["bio"])
	assert.Equal(t, int64(2), records[1]["id"])
	assert.Equal(t, "hi", records[1]["bio"])
}

func TestScanRecordsBytesToString(t *testing.T) {
	t.Parallel()

	records := scanAll(t, sqlmock.NewRows([]string{"id", "payload"}).
		AddRow(int64(1), []byte("raw")))

	require.Len(t, records, 1)
	assert.Equal(t, "raw", records[0]["payload"])
}

func TestScanRecordsEmpty(t *testing.T) {
	t.Parallel()

	records := scanAll(t, sqlmock.NewRows([]string{"id"}))
	assert.Empty(t, records)
}
