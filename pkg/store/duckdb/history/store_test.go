package history

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/echolon-ai/echolon/pkg/models/store"
	"github.com/echolon-ai/echolon/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	hs, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: hs}
}

func TestHistoryStore_Snapshots(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	older := store.AnalysisSnapshot{
		ID:          "snap-1",
		Industry:    "general",
		GeneratedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		Report:      `{"industry":"general"}`,
	}
	newer := store.AnalysisSnapshot{
		ID:          "snap-2",
		Industry:    "saas",
		GeneratedAt: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		Report:      `{"industry":"saas"}`,
	}

	require.NoError(t, f.store.AddSnapshot(ctx, older))
	require.NoError(t, f.store.AddSnapshot(ctx, newer))

	snapshots, err := f.store.ListSnapshots(ctx, 10)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "snap-2", snapshots[0].ID, "most recent first")

	got, err := f.store.GetSnapshot(ctx, "snap-1")
	require.NoError(t, err)
	assert.Equal(t, "general", got.Industry)
	assert.JSONEq(t, older.Report, got.Report)

	_, err = f.store.GetSnapshot(ctx, "missing")
	assert.Error(t, err)
}

func TestHistoryStore_SnapshotLimit(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, f.store.AddSnapshot(ctx, store.AnalysisSnapshot{
			ID:          string(rune('a' + i)),
			Industry:    "general",
			GeneratedAt: base.Add(time.Duration(i) * time.Hour),
			Report:      `{}`,
		}))
	}

	snapshots, err := f.store.ListSnapshots(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, snapshots, 3)
}

func TestHistoryStore_Notes(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	first := store.Note{ID: "n1", Text: "check churn", CreatedAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	second := store.Note{ID: "n2", Text: "share report", CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}

	require.NoError(t, f.store.AddNote(ctx, first))
	require.NoError(t, f.store.AddNote(ctx, second))

	notes, err := f.store.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "check churn", notes[0].Text, "oldest first")
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}
