package files

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jszwec/csvutil"
	"golang.org/x/sync/errgroup"

	"github.com/nishant32400/CrewStandby/internal/config"
	"github.com/nishant32400/CrewStandby/internal/dataprocessing"
	apperrors "github.com/nishant32400/CrewStandby/internal/errors"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// Table layout after header aliasing: canonical column names and rows padded
// to the header width. Columns the schema does not know are dropped.
type canonicalTable struct {
	header  []string
	rows    [][]string
	ignored []string
}

func (t canonicalTable) has(column string) bool {
	for _, h := range t.header {
		if h == column {
			return true
		}
	}
	return false
}

// canonicalize maps raw headers onto schema columns. The first column that
// maps to a canonical name wins; later duplicates are ignored.
func canonicalize(raw rawTable, schema Schema) canonicalTable {
	var (
		t    canonicalTable
		keep []int
		seen = make(map[string]bool)
	)

	for i, h := range raw.header {
		if isPlaceholder(h) {
			continue
		}
		col, ok := schema.Canonical(h)
		if !ok || seen[col] {
			t.ignored = append(t.ignored, strings.TrimSpace(h))
			continue
		}
		seen[col] = true
		keep = append(keep, i)
		t.header = append(t.header, col)
	}

	t.rows = make([][]string, 0, len(raw.rows))
	for _, rec := range raw.rows {
		row := make([]string, len(keep))
		for j, i := range keep {
			if i < len(rec) {
				row[j] = rec[i]
			}
		}
		t.rows = append(t.rows, row)
	}
	return t
}

// missing lists the schema's required columns absent from t
func (t canonicalTable) missing(schema Schema) []string {
	var out []string
	for _, col := range schema.Required {
		if !t.has(col) {
			out = append(out, col)
		}
	}
	return out
}

// withColumn appends a column holding value on every row
func (t canonicalTable) withColumn(column, value string) canonicalTable {
	t.header = append(append([]string(nil), t.header...), column)
	rows := make([][]string, len(t.rows))
	for i, r := range t.rows {
		rows[i] = append(append(make([]string, 0, len(r)+1), r...), value)
	}
	t.rows = rows
	return t
}

// rowReader feeds already split rows to csvutil
type rowReader struct {
	rows [][]string
	next int
}

func (r *rowReader) Read() ([]string, error) {
	if r.next >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.next]
	r.next++
	return row, nil
}

// decode binds the canonical table to records through their csv tags
func decode[T any](t canonicalTable) ([]T, error) {
	out := make([]T, 0, len(t.rows))
	if len(t.rows) == 0 {
		return out, nil
	}

	dec, err := csvutil.NewDecoder(&rowReader{rows: t.rows}, t.header...)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return out, nil
}

// Header describes the columns found in one input file
type Header struct {
	Table   Table
	Path    string
	Columns []string
	Ignored []string
	Missing []string
	Rows    int
}

// Loader reads the three source extracts into domain records
type Loader struct {
	logger       *slog.Logger
	discovery    *Discovery
	sheet        string
	activeStatus string
}

// NewLoader creates a loader. sheet selects the worksheet of Excel inputs
// (the first when empty); activeStatus fills a missing roster status column.
func NewLoader(logger *slog.Logger, discovery *Discovery, sheet, activeStatus string) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if discovery == nil {
		discovery = NewDiscovery("")
	}
	if activeStatus == "" {
		activeStatus = config.DefaultActiveStatus
	}
	return &Loader{
		logger:       logger.With(slog.String("component", "loader")),
		discovery:    discovery,
		sheet:        sheet,
		activeStatus: activeStatus,
	}
}

// read resolves path and returns its canonical table
func (l *Loader) read(path string, schema Schema) (canonicalTable, string, error) {
	file, err := l.discovery.Resolve(path)
	if err != nil {
		return canonicalTable{}, "", err
	}

	raw, err := readRaw(file.Path, l.sheet)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return canonicalTable{}, "", apperrors.NewNotFoundError("input file").WithContext("path", file.Path)
		}
		return canonicalTable{}, "", apperrors.NewParsingError("failed to read input file", err).
			WithContext("table", string(schema.Table)).
			WithContext("path", file.Path)
	}
	if raw.header == nil {
		return canonicalTable{}, "", apperrors.NewParsingError("input file has no header row", nil).
			WithContext("table", string(schema.Table)).
			WithContext("path", file.Path)
	}
	return canonicalize(raw, schema), file.Path, nil
}

// Inspect reads a file's header and reports missing required columns without
// decoding rows. A missing ActivationStatus is not reported for the roster.
func (l *Loader) Inspect(path string, table Table) (Header, error) {
	schema, ok := SchemaFor(table)
	if !ok {
		return Header{}, apperrors.NewAppValidationError("unknown table " + string(table))
	}

	t, resolved, err := l.read(path, schema)
	if err != nil {
		return Header{}, err
	}

	h := Header{
		Table:   table,
		Path:    resolved,
		Columns: t.header,
		Ignored: t.ignored,
		Rows:    len(t.rows),
	}
	for _, col := range t.missing(schema) {
		if table == TableRoster && col == ColActivationStatus {
			continue
		}
		h.Missing = append(h.Missing, col)
	}
	return h, nil
}

// load reads path, enforces the schema and logs the outcome
func (l *Loader) load(ctx context.Context, path string, schema Schema) (canonicalTable, bool, error) {
	t, resolved, err := l.read(path, schema)
	if err != nil {
		return canonicalTable{}, false, err
	}

	defaulted := false
	for _, col := range t.missing(schema) {
		if schema.Table == TableRoster && col == ColActivationStatus {
			t = t.withColumn(ColActivationStatus, l.activeStatus)
			defaulted = true
			l.logger.WarnContext(ctx, "roster has no activation status column, defaulting every row",
				slog.String("path", resolved),
				slog.String("status", l.activeStatus))
			continue
		}
		return canonicalTable{}, false, apperrors.NewMissingColumnError(string(schema.Table), col).
			WithContext("path", resolved)
	}

	l.logger.InfoContext(ctx, "input loaded",
		slog.String("table", string(schema.Table)),
		slog.String("path", resolved),
		slog.Int("rows", len(t.rows)),
		slog.Any("ignored_columns", t.ignored))

	return t, defaulted, nil
}

// LoadRoster loads the pairing roster. The flag reports whether the
// activation status column was synthesized.
func (l *Loader) LoadRoster(ctx context.Context, path string) ([]domain.RosterRecord, bool, error) {
	t, defaulted, err := l.load(ctx, path, RosterSchema)
	if err != nil {
		return nil, false, err
	}
	records, err := decode[domain.RosterRecord](t)
	if err != nil {
		return nil, false, apperrors.NewParsingError("failed to decode roster", err)
	}
	return records, defaulted, nil
}

// LoadHeadcount loads the crew headcount table
func (l *Loader) LoadHeadcount(ctx context.Context, path string) ([]domain.HeadcountRecord, error) {
	t, _, err := l.load(ctx, path, HeadcountSchema)
	if err != nil {
		return nil, err
	}
	records, err := decode[domain.HeadcountRecord](t)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to decode headcount", err)
	}
	return records, nil
}

// LoadStandby loads the standby activation table
func (l *Loader) LoadStandby(ctx context.Context, path string) ([]domain.StandbyRecord, error) {
	t, _, err := l.load(ctx, path, StandbySchema)
	if err != nil {
		return nil, err
	}
	records, err := decode[domain.StandbyRecord](t)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to decode standby", err)
	}
	return records, nil
}

// LoadInputs loads the three tables concurrently. Any structural problem
// with one table fails the whole load.
func (l *Loader) LoadInputs(ctx context.Context, inputs config.InputsConfig) (dataprocessing.Inputs, error) {
	var in dataprocessing.Inputs

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in.Roster, in.ActivationStatusDefaulted, err = l.LoadRoster(gctx, inputs.Roster)
		return err
	})
	g.Go(func() error {
		var err error
		in.Headcount, err = l.LoadHeadcount(gctx, inputs.Headcount)
		return err
	})
	g.Go(func() error {
		var err error
		in.Standby, err = l.LoadStandby(gctx, inputs.Standby)
		return err
	})

	if err := g.Wait(); err != nil {
		return dataprocessing.Inputs{}, err
	}
	return in, nil
}
