package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	sessionout "momentum/internal/modules/session/adapter/out"
	"momentum/internal/modules/session/domain"
	outport "momentum/internal/modules/session/port/out"
	apperrors "momentum/internal/platform/errors"
	"momentum/internal/platform/sqlitedb"
)

func sample() []domain.Session {
	dur := 1.5
	return []domain.Session{
		{ID: 1, Date: time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), Group: "Culture", Name: "Reading", Keywords: []string{"Fiction"}, Notes: "Dune, part one"},
		{ID: 3, Date: time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC), Group: "Exercise", Name: "Climbing", Keywords: []string{"Bouldering", "Lead climbing"}, Duration: &dur},
	}
}

func roundTrip(t *testing.T, store outport.SessionStore) {
	t.Helper()
	ctx := context.Background()
	empty, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list empty store: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty store, got %d", len(empty))
	}
	for _, s := range sample() {
		if err := store.Append(ctx, s); err != nil {
			t.Fatalf("append %d: %v", s.ID, err)
		}
	}
	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(got, sample()) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", sample(), got)
	}
}

func TestCSVSessionStoreRoundTrip(t *testing.T) {
	t.Parallel()
	roundTrip(t, sessionout.NewCSVSessionStore(filepath.Join(t.TempDir(), "Session_log.csv")))
}

func TestVaultSessionStoreRoundTrip(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	roundTrip(t, sessionout.NewVaultSessionStore(vault))
	if _, err := os.Stat(filepath.Join(vault, "sessions", "2025", "01", "09", "3-climbing.md")); err != nil {
		t.Fatalf("expected dated note path: %v", err)
	}
}

func TestVaultSessionStoreRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := sessionout.NewVaultSessionStore(t.TempDir())
	first := sample()[0]
	again := sample()[1]
	again.ID = first.ID
	for _, s := range []domain.Session{first, again} {
		if err := store.Append(ctx, s); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	_, err := store.List(ctx)
	if !errors.Is(err, apperrors.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable for a repeated id, got %v", err)
	}
	if !strings.Contains(err.Error(), "session id 1") {
		t.Fatalf("error should name the id: %v", err)
	}
}

func TestSQLiteSessionStoreRoundTrip(t *testing.T) {
	t.Parallel()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "momentum.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	roundTrip(t, sessionout.NewSQLiteSessionStore(db))
}

func TestCSVSessionStoreReadsLegacyRows(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "Session_log.csv")
	content := strings.Join([]string{
		"id,Date,Activity group,Activity name,Keywords,Notes,Duration",
		`2,2025-01-03,Exercise,Running,"['Base', 'Intervals']",,`,
		`1,2025-01-02,Technical,Technical skills,"[""Courses""]",Go course,45`,
		`4,2025-01-04,Culture,Languages,[],,`,
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	sessions, err := sessionout.NewCSVSessionStore(path).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	if !reflect.DeepEqual(sessions[0].Keywords, []string{"Base", "Intervals"}) {
		t.Fatalf("legacy keywords not parsed: %v", sessions[0].Keywords)
	}
	if sessions[1].Duration == nil || *sessions[1].Duration != 45 || sessions[1].Notes != "Go course" {
		t.Fatalf("unexpected second session %+v", sessions[1])
	}
	if sessions[2].Keywords != nil {
		t.Fatalf("expected no keywords, got %v", sessions[2].Keywords)
	}
}

func TestCSVSessionStoreReadsUnnamedIndexColumn(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "Session_log.csv")
	content := ",Date,Activity group,Activity name,Keywords,Notes,Duration\n" +
		"1,2025-01-07,Culture,Reading,['Fiction'],,\n" +
		"2,2025-01-08,Exercise,Running,[],,30\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	store := sessionout.NewCSVSessionStore(path)
	sessions, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 || sessions[0].ID != 1 || sessions[1].ID != 2 {
		t.Fatalf("expected ids 1 and 2 from the index column, got %+v", sessions)
	}
	if !reflect.DeepEqual(sessions[0].Keywords, []string{"Fiction"}) {
		t.Fatalf("unexpected keywords %v", sessions[0].Keywords)
	}
	next := sample()[1]
	next.ID = 3
	if err := store.Append(context.Background(), next); err != nil {
		t.Fatalf("append: %v", err)
	}
	again, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list after append: %v", err)
	}
	if len(again) != 3 || again[1].ID != 2 {
		t.Fatalf("rewrite lost the index column ids: %+v", again)
	}
}

func TestCSVSessionStoreRejectsBadDate(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "Session_log.csv")
	content := "id,Date,Activity group,Activity name,Keywords,Notes,Duration\n1,yesterday,Exercise,Running,[],,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	if _, err := sessionout.NewCSVSessionStore(path).List(context.Background()); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line-numbered date error, got %v", err)
	}
}

func TestParseKeywords(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		want []string
	}{
		{raw: "", want: nil},
		{raw: "[]", want: nil},
		{raw: `["Tempo"]`, want: []string{"Tempo"}},
		{raw: `['Toprope climbing', 'Bouldering']`, want: []string{"Toprope climbing", "Bouldering"}},
		{raw: `["It's", 'Skate']`, want: []string{"It's", "Skate"}},
		{raw: "Classic, Skate", want: []string{"Classic", "Skate"}},
	}
	for _, tt := range tests {
		got, err := sessionout.ParseKeywords(tt.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("parse %q: expected %v, got %v", tt.raw, tt.want, got)
		}
	}
	if _, err := sessionout.ParseKeywords("['unterminated"); err == nil {
		t.Fatalf("expected malformed literal to fail")
	}
}
