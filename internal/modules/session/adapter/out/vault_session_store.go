package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"momentum/internal/modules/session/domain"
	sessionout "momentum/internal/modules/session/port/out"
	"momentum/internal/platform/clock"
	apperrors "momentum/internal/platform/errors"
	"momentum/internal/platform/markdown"
	"momentum/internal/platform/slug"
)

type sessionMeta struct {
	SchemaVersion int      `yaml:"schema_version"`
	ID            int      `yaml:"id"`
	Date          string   `yaml:"date"`
	Group         string   `yaml:"activity_group"`
	Name          string   `yaml:"activity_name"`
	Keywords      []string `yaml:"keywords,omitempty"`
	Duration      *float64 `yaml:"duration,omitempty"`
}

// VaultSessionStore writes one markdown note per session under
// sessions/YYYY/MM/DD/<id>-<activity>.md. Notes are the note body.
type VaultSessionStore struct {
	vaultPath string
}

func NewVaultSessionStore(vaultPath string) sessionout.SessionStore {
	return &VaultSessionStore{vaultPath: vaultPath}
}

func (s *VaultSessionStore) root() string {
	return filepath.Join(s.vaultPath, "sessions")
}

// List reads every note. Two notes claiming the same session id make the vault
// unreadable until one is fixed.
func (s *VaultSessionStore) List(_ context.Context) ([]domain.Session, error) {
	var sessions []domain.Session
	seen := map[int]string{}
	err := filepath.WalkDir(s.root(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.root() {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read session note: %w", err)
		}
		var meta sessionMeta
		body, err := markdown.Decode(string(raw), &meta)
		if err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		date, err := clock.ParseDate(meta.Date)
		if err != nil {
			return fmt.Errorf("%s: bad date %q: %w", path, meta.Date, err)
		}
		if prev, ok := seen[meta.ID]; ok {
			return fmt.Errorf("%w: session id %d appears in %s and %s", apperrors.ErrStoreUnavailable, meta.ID, prev, path)
		}
		seen[meta.ID] = path
		sessions = append(sessions, domain.Session{
			ID:       meta.ID,
			Date:     date,
			Group:    meta.Group,
			Name:     meta.Name,
			Keywords: meta.Keywords,
			Notes:    strings.TrimSpace(body),
			Duration: meta.Duration,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk session notes: %w", err)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })
	return sessions, nil
}

func (s *VaultSessionStore) Append(_ context.Context, session domain.Session) error {
	date := session.Date
	dir := filepath.Join(s.root(), date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%d-%s.md", session.ID, slug.Make(session.Name, "session")))

	meta := sessionMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            session.ID,
		Date:          clock.FormatDate(date),
		Group:         session.Group,
		Name:          session.Name,
		Keywords:      session.Keywords,
		Duration:      session.Duration,
	}
	body := ""
	if session.Notes != "" {
		body = session.Notes + "\n"
	}
	rendered, err := markdown.Encode(meta, body)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create session note: %w", err)
	}
	if _, err := f.WriteString(rendered); err != nil {
		_ = f.Close()
		return fmt.Errorf("write session note: %w", err)
	}
	return f.Close()
}
