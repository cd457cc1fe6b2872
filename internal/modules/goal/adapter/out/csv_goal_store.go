package out

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"momentum/internal/modules/goal/domain"
	goalout "momentum/internal/modules/goal/port/out"
	"momentum/internal/platform/category"
	"momentum/internal/platform/clock"
	apperrors "momentum/internal/platform/errors"
)

const (
	colID         = "id"
	colStart      = "Start date"
	colEnd        = "End date"
	colLabel      = "Label"
	colLevel      = "Identifier level"
	colIdentifier = "Identifier"
	colCondition  = "Condition type"
	colQuantity   = "Quantity"
)

// CSVGoalStore reads goal definitions from a CSV file. Without an id column goals are
// numbered by row, starting at 1. A blank first header is a dataframe index column and
// supplies the ids; an index counted from 0 is shifted to start at 1. The file must
// exist.
type CSVGoalStore struct {
	path string
}

func NewCSVGoalStore(path string) goalout.GoalStore {
	return &CSVGoalStore{path: path}
}

// CSVGoalFiles opens CSV goal files for import.
type CSVGoalFiles struct{}

func (CSVGoalFiles) Open(path string) goalout.GoalStore {
	return NewCSVGoalStore(path)
}

func (s *CSVGoalStore) List(_ context.Context) ([]domain.Goal, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: goal file %s not found", apperrors.ErrStoreUnavailable, s.path)
		}
		return nil, fmt.Errorf("%w: open goals: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read goals header: %w", err)
	}
	cols := goalColumns(header)
	for _, required := range []string{colStart, colEnd, colLevel, colIdentifier, colCondition, colQuantity} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: goals %s has no %q column", apperrors.ErrStoreUnavailable, s.path, required)
		}
	}

	var goals []domain.Goal
	for row := 1; ; row++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read goals: %w", err)
		}
		g, err := decodeGoalRow(cols, rec, row)
		if err != nil {
			return nil, fmt.Errorf("goals %s line %d: %w", s.path, row+1, err)
		}
		goals = append(goals, g)
	}
	return fromOne(goals), nil
}

func goalColumns(header []string) map[string]int {
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

func fromOne(goals []domain.Goal) []domain.Goal {
	for _, g := range goals {
		if g.ID == 0 {
			for i := range goals {
				goals[i].ID++
			}
			break
		}
	}
	return goals
}

func decodeGoalRow(cols map[string]int, rec []string, row int) (domain.Goal, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	g := domain.Goal{
		ID:         row,
		Label:      get(colLabel),
		Identifier: get(colIdentifier),
		Condition:  domain.ConditionType(get(colCondition)),
	}
	if raw := get(colID); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Goal{}, fmt.Errorf("id %q is not an integer", raw)
		}
		g.ID = id
	}
	var err error
	if g.Start, err = clock.ParseDate(get(colStart)); err != nil {
		return domain.Goal{}, fmt.Errorf("bad start date: %w", err)
	}
	if g.End, err = clock.ParseDate(get(colEnd)); err != nil {
		return domain.Goal{}, fmt.Errorf("bad end date: %w", err)
	}
	level, err := parseWhole(get(colLevel))
	if err != nil {
		return domain.Goal{}, fmt.Errorf("identifier level: %w", err)
	}
	g.Level = category.Level(level)
	if g.Quantity, err = parseWhole(get(colQuantity)); err != nil {
		return domain.Goal{}, fmt.Errorf("quantity: %w", err)
	}
	return g, nil
}

// parseWhole accepts integers, including ones written as floats ("2.0").
func parseWhole(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", raw)
	}
	return int(f), nil
}
