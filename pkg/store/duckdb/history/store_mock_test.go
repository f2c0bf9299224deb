package history

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/echolon-ai/echolon/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqlmock covers the error paths that a healthy DuckDB never exercises.
func TestHistoryStore_AddSnapshot_InsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO analysis_snapshots")).
		WillReturnError(fmt.Errorf("disk full"))

	hs, err := NewStore(db)
	require.NoError(t, err)

	err = hs.AddSnapshot(context.Background(), store.AnalysisSnapshot{
		ID:          "snap-1",
		Industry:    "general",
		GeneratedAt: time.Now(),
		Report:      "{}",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snap-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryStore_ListSnapshots_ScanFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "industry", "generated_at", "report"}).
		AddRow("snap-1", "general", "not-a-timestamp", "{}")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, industry, generated_at, report")).
		WillReturnRows(rows)

	hs, err := NewStore(db)
	require.NoError(t, err)

	_, err = hs.ListSnapshots(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryStore_ListNotes_QueryFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, note, created_at")).
		WillReturnError(fmt.Errorf("connection closed"))

	hs, err := NewStore(db)
	require.NoError(t, err)

	_, err = hs.ListNotes(context.Background())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
