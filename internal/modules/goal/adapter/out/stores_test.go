package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goalout "momentum/internal/modules/goal/adapter/out"
	"momentum/internal/modules/goal/domain"
	"momentum/internal/modules/session/dto"
	"momentum/internal/platform/category"
	"momentum/internal/platform/clock"
	apperrors "momentum/internal/platform/errors"
	"momentum/internal/platform/sqlitedb"
)

const goalCSV = `id,Start date,End date,Label,Identifier level,Identifier,Condition type,Quantity
1,2025-01-06,2025-01-12,Read twice,2,Reading,Count,2
2,2025-01-01,2025-12-31,Sessions this year,0,,Count,200.0
3,2025-02-01,2025-02-28,Boulder often,3,Bouldering,Duration,10
`

func writeGoals(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Period_goals.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVGoalStoreList(t *testing.T) {
	t.Parallel()
	goals, err := goalout.NewCSVGoalStore(writeGoals(t, goalCSV)).List(context.Background())
	require.NoError(t, err)
	require.Len(t, goals, 3)

	assert.Equal(t, "Reading", goals[0].Identifier)
	assert.Equal(t, category.LevelName, goals[0].Level)
	assert.Equal(t, "2025-01-12", clock.FormatDate(goals[0].End))
	assert.Equal(t, 200, goals[1].Quantity)
	assert.Equal(t, category.LevelTotal, goals[1].Level)
	assert.Equal(t, domain.ConditionType("Duration"), goals[2].Condition, "unsupported conditions are loaded and rejected at evaluation")
}

func TestCSVGoalStoreWithoutIDColumnNumbersRows(t *testing.T) {
	t.Parallel()
	content := "Start date,End date,Label,Identifier level,Identifier,Condition type,Quantity\n" +
		"2025-01-06,2025-01-12,a,2,Reading,Count,2\n" +
		"2025-01-06,2025-01-12,b,1,Culture,Count,3\n"
	goals, err := goalout.NewCSVGoalStore(writeGoals(t, content)).List(context.Background())
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, 1, goals[0].ID)
	assert.Equal(t, 2, goals[1].ID)
}

func TestCSVGoalStoreReadsZeroBasedIndexColumn(t *testing.T) {
	t.Parallel()
	content := ",Start date,End date,Label,Identifier level,Identifier,Condition type,Quantity\n" +
		"0,2025-01-06,2025-01-12,a,2,Reading,Count,2\n" +
		"1,2025-01-06,2025-01-12,b,1,Culture,Count,3\n"
	goals, err := goalout.NewCSVGoalStore(writeGoals(t, content)).List(context.Background())
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, 1, goals[0].ID)
	assert.Equal(t, 2, goals[1].ID)
	assert.Equal(t, "Reading", goals[0].Identifier)
	assert.Equal(t, 3, goals[1].Quantity)
}

func TestCSVGoalStoreErrors(t *testing.T) {
	t.Parallel()
	_, err := goalout.NewCSVGoalStore(filepath.Join(t.TempDir(), "none.csv")).List(context.Background())
	require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "none.csv")

	bad := strings.Replace(goalCSV, "2025-01-12", "12/01/2025", 1)
	_, err = goalout.NewCSVGoalStore(writeGoals(t, bad)).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = goalout.NewCSVGoalStore(writeGoals(t, "Label\nfoo\n")).List(context.Background())
	require.Error(t, err)
}

func TestSQLiteGoalStoreReplace(t *testing.T) {
	t.Parallel()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "momentum.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	source, err := goalout.CSVGoalFiles{}.Open(writeGoals(t, goalCSV)).List(ctx)
	require.NoError(t, err)

	store := goalout.NewSQLiteGoalStore(db)
	require.NoError(t, store.Replace(ctx, source))
	require.NoError(t, store.Replace(ctx, source), "replace must be repeatable")

	got, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, source, got)
}

type fakeSessions struct {
	out []dto.SessionOutput
}

func (f fakeSessions) LogSession(context.Context, dto.LogSessionInput) (dto.LogSessionOutput, error) {
	return dto.LogSessionOutput{}, nil
}

func (f fakeSessions) ListSessions(context.Context) ([]dto.SessionOutput, error) {
	return f.out, nil
}

func TestSessionRecordSource(t *testing.T) {
	t.Parallel()
	day, _ := clock.ParseDate("2025-01-07")
	src := goalout.NewSessionRecordSource(fakeSessions{out: []dto.SessionOutput{
		{ID: 1, Date: day, Group: "Culture", Name: "Reading", Keywords: []string{"Fiction"}},
	}})
	records, err := src.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Reading", records[0].Subject.Name)
	assert.Equal(t, []string{"Fiction"}, records[0].Subject.Keywords)
	assert.True(t, records[0].Date.Equal(day))
}
