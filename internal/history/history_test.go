package history_test

import (
	"context"
	"database/sql"
	"math"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/errwrap/internal/errors"
	"codeberg.org/mutker/errwrap/internal/history"
	"codeberg.org/mutker/errwrap/internal/hresult"
	"codeberg.org/mutker/errwrap/internal/logger"
	"codeberg.org/mutker/errwrap/internal/vterror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) history.Config {
	t.Helper()

	cfg := history.DefaultConfig()
	cfg.Enabled = true
	cfg.DBPath = filepath.Join(t.TempDir(), "nested", "history.db")
	cfg.BatchTimeout = 0

	return cfg
}

func TestDisabledReturnsNoop(t *testing.T) {
	rec, err := history.NewService(history.DefaultConfig(), logger.Default())
	require.NoError(t, err)

	require.NoError(t, rec.Record(context.Background(), &history.Entry{Source: history.SourceInt}))
	entries, err := rec.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.NoError(t, rec.Close())
}

func TestConfigValidate(t *testing.T) {
	cfg := history.Config{Enabled: true}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, history.ErrInvalidDBPath))

	cfg = history.DefaultConfig()
	cfg.BatchSize = -1
	require.Error(t, cfg.Validate())
}

func TestRecordAndRecent(t *testing.T) {
	rec, err := history.NewService(testConfig(t), logger.Default())
	require.NoError(t, err)
	defer rec.Close()

	ctx := context.Background()
	require.NoError(t, rec.Record(ctx, history.NewEntry(history.SourceInt, "5", vterror.New(5))))
	require.NoError(t, rec.Record(ctx, history.NewEntry(history.SourceError, "boom", vterror.New(hresult.E_FAIL))))

	entries, err := rec.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, history.SourceError, entries[0].Source)
	assert.Equal(t, "boom", entries[0].Input)
	assert.Equal(t, hresult.E_FAIL, entries[0].Code)
	assert.False(t, entries[0].Timestamp.IsZero())

	assert.Equal(t, history.SourceInt, entries[1].Source)
	assert.Equal(t, int32(5), entries[1].Code)
}

func TestRecentLimit(t *testing.T) {
	rec, err := history.NewService(testConfig(t), logger.Default())
	require.NoError(t, err)
	defer rec.Close()

	ctx := context.Background()
	for i := int32(0); i < 5; i++ {
		require.NoError(t, rec.Record(ctx, history.NewEntry(history.SourceValue, "v", vterror.New(i))))
	}

	entries, err := rec.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int32(4), entries[0].Code)
	assert.Equal(t, int32(3), entries[1].Code)

	entries, err = rec.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecentHugeLimit(t *testing.T) {
	rec, err := history.NewService(testConfig(t), logger.Default())
	require.NoError(t, err)
	defer rec.Close()

	ctx := context.Background()
	require.NoError(t, rec.Record(ctx, history.NewEntry(history.SourceInt, "1", vterror.New(1))))

	var entries []history.Entry
	assert.NotPanics(t, func() {
		entries, err = rec.Recent(ctx, math.MaxInt)
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int32(1), entries[0].Code)
}

func TestRecordRejectsInvalidEntry(t *testing.T) {
	rec, err := history.NewService(testConfig(t), logger.Default())
	require.NoError(t, err)
	defer rec.Close()

	err = rec.Record(context.Background(), nil)
	assert.True(t, errors.HasCode(err, history.ErrInvalidEntry))

	err = rec.Record(context.Background(), &history.Entry{Source: "bogus"})
	assert.True(t, errors.HasCode(err, history.ErrInvalidEntry))
}

func TestRecordCancelledContext(t *testing.T) {
	rec, err := history.NewService(testConfig(t), logger.Default())
	require.NoError(t, err)
	defer rec.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = rec.Record(ctx, history.NewEntry(history.SourceInt, "1", vterror.New(1)))
	assert.True(t, errors.HasCode(err, history.ErrOperationTimeout))
}

func TestCloseFlushesBufferAndPersists(t *testing.T) {
	cfg := testConfig(t)

	rec, err := history.NewService(cfg, logger.Default())
	require.NoError(t, err)

	ts := time.Unix(1700000000, 0).UTC()
	entry := history.NewEntry(history.SourceValue, "0x80070057", vterror.New(hresult.E_INVALIDARG))
	entry.Timestamp = ts
	require.NoError(t, rec.Record(context.Background(), entry))
	require.NoError(t, rec.Close())
	require.NoError(t, rec.Close())

	reopened, err := history.NewService(cfg, logger.Default())
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, hresult.E_INVALIDARG, entries[0].Code)
	assert.True(t, ts.Equal(entries[0].Timestamp))
}

func TestRecordAfterClose(t *testing.T) {
	rec, err := history.NewService(testConfig(t), logger.Default())
	require.NoError(t, err)
	require.NoError(t, rec.Close())

	err = rec.Record(context.Background(), history.NewEntry(history.SourceInt, "1", vterror.New(1)))
	assert.True(t, errors.HasCode(err, history.ErrClosed))
}

func TestSchemaVersionMismatchRecreates(t *testing.T) {
	cfg := testConfig(t)

	rec, err := history.NewService(cfg, logger.Default())
	require.NoError(t, err)
	require.NoError(t, rec.Record(context.Background(), history.NewEntry(history.SourceInt, "1", vterror.New(1))))
	require.NoError(t, rec.Close())

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE schema_versions SET version = 99`)
	require.NoError(t, err)
	version, err := history.GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, 99, version)
	require.NoError(t, db.Close())

	reopened, err := history.NewService(cfg, logger.Default())
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBackgroundFlusher(t *testing.T) {
	cfg := testConfig(t)
	cfg.BatchTimeout = 1

	rec, err := history.NewService(cfg, logger.Default())
	require.NoError(t, err)
	require.NoError(t, rec.Record(context.Background(), history.NewEntry(history.SourceInt, "7", vterror.New(7))))

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()

	assert.Eventually(t, func() bool {
		var n int
		if err := db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
			return false
		}
		return n == 1
	}, 5*time.Second, 100*time.Millisecond)

	require.NoError(t, rec.Close())
}
