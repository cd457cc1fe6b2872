package bootstrap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum/internal/bootstrap"
	"momentum/internal/platform/config"
	apperrors "momentum/internal/platform/errors"
)

const goalsCSV = "id,Start date,End date,Label,Identifier level,Identifier,Condition type,Quantity\n" +
	"1,2025-01-06,2025-01-12,Read twice,2,Reading,Count,2\n"

func testConfig(t *testing.T, store string) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		DataDir:      dir,
		Store:        store,
		SessionsPath: filepath.Join(dir, "Session_log.csv"),
		GoalsPath:    filepath.Join(dir, "Period_goals.csv"),
		DBPath:       filepath.Join(dir, "momentum.db"),
		CatalogPath:  filepath.Join(dir, "catalog.yaml"),
		Log:          config.LogConfig{Level: "error", Format: "console"},
	}
}

func TestNewFailsWithoutGoalFile(t *testing.T) {
	t.Parallel()
	_, err := bootstrap.New(testConfig(t, config.StoreCSV))
	require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "Period_goals.csv")
}

func TestNewStartsWithEmptySessionLog(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, config.StoreCSV)
	require.NoError(t, os.WriteFile(cfg.GoalsPath, []byte(goalsCSV), 0o644))

	app, err := bootstrap.New(cfg)
	require.NoError(t, err)
	assert.NoError(t, app.Close())
}

func TestNewRejectsCorruptSessionLog(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, config.StoreCSV)
	require.NoError(t, os.WriteFile(cfg.GoalsPath, []byte(goalsCSV), 0o644))
	require.NoError(t, os.WriteFile(cfg.SessionsPath, []byte("Date,Notes\n2025-01-01,x\n"), 0o644))

	_, err := bootstrap.New(cfg)
	require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "load sessions")
}

func TestNewWithSQLiteStore(t *testing.T) {
	t.Parallel()
	app, err := bootstrap.New(testConfig(t, config.StoreSQLite))
	require.NoError(t, err)
	assert.NoError(t, app.Close())
}
