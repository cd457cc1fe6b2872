package out

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"momentum/internal/modules/session/domain"
	sessionout "momentum/internal/modules/session/port/out"
	"momentum/internal/platform/clock"
	apperrors "momentum/internal/platform/errors"
)

const (
	colID       = "id"
	colDate     = "Date"
	colGroup    = "Activity group"
	colName     = "Activity name"
	colKeywords = "Keywords"
	colNotes    = "Notes"
	colDuration = "Duration"
)

var sessionHeader = []string{colID, colDate, colGroup, colName, colKeywords, colNotes, colDuration}

// CSVSessionStore keeps sessions in a single CSV file. A missing file is an empty log.
type CSVSessionStore struct {
	path string
	mu   sync.Mutex
}

func NewCSVSessionStore(path string) sessionout.SessionStore {
	return &CSVSessionStore{path: path}
}

func (s *CSVSessionStore) List(_ context.Context) ([]domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *CSVSessionStore) Append(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.read()
	if err != nil {
		return err
	}
	return s.write(append(sessions, session))
}

func (s *CSVSessionStore) read() ([]domain.Session, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open session log: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session log header: %w", err)
	}
	cols := indexColumns(header)
	for _, required := range []string{colID, colDate, colGroup, colName} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: session log %s has no %q column", apperrors.ErrStoreUnavailable, s.path, required)
		}
	}

	var sessions []domain.Session
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read session log: %w", err)
		}
		session, err := decodeSessionRow(cols, rec)
		if err != nil {
			return nil, fmt.Errorf("session log %s line %d: %w", s.path, line, err)
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (s *CSVSessionStore) write(sessions []domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session log dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".sessions-*.csv")
	if err != nil {
		return fmt.Errorf("create temp session log: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(sessionHeader); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session log header: %w", err)
	}
	for _, session := range sessions {
		row, err := encodeSessionRow(session)
		if err != nil {
			_ = tmp.Close()
			return err
		}
		if err := w.Write(row); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("write session %d: %w", session.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("flush session log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp session log: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace session log: %w", err)
	}
	return nil
}

// indexColumns maps header names to positions. A blank first header is the unnamed
// index column a dataframe export writes, and holds the session id.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	if i, ok := cols[""]; ok && i == 0 {
		if _, named := cols[colID]; !named {
			cols[colID] = 0
		}
		delete(cols, "")
	}
	return cols
}

func field(cols map[string]int, rec []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func decodeSessionRow(cols map[string]int, rec []string) (domain.Session, error) {
	rawID := field(cols, rec, colID)
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("id %q is not an integer", rawID)
	}
	date, err := clock.ParseDate(field(cols, rec, colDate))
	if err != nil {
		return domain.Session{}, fmt.Errorf("session %d: bad date: %w", id, err)
	}
	keywords, err := ParseKeywords(field(cols, rec, colKeywords))
	if err != nil {
		return domain.Session{}, fmt.Errorf("session %d: %w", id, err)
	}
	var duration *float64
	if raw := field(cols, rec, colDuration); raw != "" && !strings.EqualFold(raw, "nan") {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Session{}, fmt.Errorf("session %d: duration %q: %w", id, raw, err)
		}
		duration = &v
	}
	return domain.Session{
		ID:       id,
		Date:     date,
		Group:    field(cols, rec, colGroup),
		Name:     field(cols, rec, colName),
		Keywords: keywords,
		Notes:    field(cols, rec, colNotes),
		Duration: duration,
	}, nil
}

func encodeSessionRow(session domain.Session) ([]string, error) {
	keywords := session.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	kw, err := json.Marshal(keywords)
	if err != nil {
		return nil, fmt.Errorf("encode keywords of session %d: %w", session.ID, err)
	}
	duration := ""
	if session.Duration != nil {
		duration = strconv.FormatFloat(*session.Duration, 'f', -1, 64)
	}
	return []string{
		strconv.Itoa(session.ID),
		clock.FormatDate(session.Date),
		session.Group,
		session.Name,
		string(kw),
		session.Notes,
		duration,
	}, nil
}

// ParseKeywords reads a keyword list literal. JSON arrays and the older quoted list
// form (['a', 'b']) are both flow sequences, so one YAML decode covers them.
// Anything without brackets is read as a comma separated list.
func ParseKeywords(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" || strings.EqualFold(raw, "nan") {
		return nil, nil
	}
	if !strings.HasPrefix(raw, "[") {
		return domain.NormalizeKeywords(strings.Split(raw, ",")), nil
	}
	var keywords []string
	if err := yaml.Unmarshal([]byte(raw), &keywords); err != nil {
		return nil, fmt.Errorf("keywords %q: %w", raw, err)
	}
	return domain.NormalizeKeywords(keywords), nil
}
