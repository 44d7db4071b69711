package exporter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"

	// SQL drivers selectable through config.SinkConfig.Driver
	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/nishant32400/CrewStandby/internal/config"
	apperrors "github.com/nishant32400/CrewStandby/internal/errors"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// SQLSink keeps a database table in step with the latest report. Every
// write replaces the whole table inside one transaction.
type SQLSink struct {
	db     *sql.DB
	table  string
	logger *slog.Logger
}

// OpenSQLSink opens the configured database and verifies the connection
func OpenSQLSink(ctx context.Context, cfg config.SinkConfig, logger *slog.Logger) (*SQLSink, error) {
	if !cfg.Enabled() {
		return nil, apperrors.NewConfigError("sink driver is not configured", nil)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to open sink database", err).WithContext("driver", cfg.Driver)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperrors.NewStorageError("failed to connect to sink database", err).WithContext("driver", cfg.Driver)
	}

	sink, err := NewSQLSink(db, cfg.Table, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return sink, nil
}

// NewSQLSink wraps an open database. An empty table name uses the default.
func NewSQLSink(db *sql.DB, table string, logger *slog.Logger) (*SQLSink, error) {
	if table == "" {
		table = config.DefaultSinkTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, apperrors.NewConfigError(fmt.Sprintf("invalid sink table name %q", table), nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLSink{
		db:     db,
		table:  table,
		logger: logger.With(slog.String("component", "sql_sink")),
	}, nil
}

// Table returns the target table name
func (s *SQLSink) Table() string {
	return s.table
}

func (s *SQLSink) createTableSQL() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	report_date VARCHAR(10) NOT NULL,
	station VARCHAR(8) NOT NULL,
	duty_window VARCHAR(5) NOT NULL,
	crew_rank VARCHAR(2) NOT NULL,
	pairing_start_count INTEGER NOT NULL,
	standby_activation_count INTEGER NOT NULL,
	run_id VARCHAR(64) NOT NULL
)`, s.table)
}

// Write replaces the table contents with the report rows
func (s *SQLSink) Write(ctx context.Context, report *domain.Report) (err error) {
	if _, err := s.db.ExecContext(ctx, s.createTableSQL()); err != nil {
		return apperrors.NewStorageError("failed to create sink table", err).WithContext("table", s.table)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("failed to begin sink transaction", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM "+s.table); err != nil {
		return apperrors.NewStorageError("failed to clear sink table", err).WithContext("table", s.table)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (report_date, station, duty_window, crew_rank, pairing_start_count, standby_activation_count, run_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
		s.table))
	if err != nil {
		return apperrors.NewStorageError("failed to prepare sink insert", err)
	}
	defer stmt.Close()

	for _, r := range report.Rows {
		if _, err = stmt.ExecContext(ctx,
			r.Date.String(), r.Station, r.DutyWindow, string(r.Rank),
			r.PairingStartCount, r.StandbyActivationCount, report.RunID); err != nil {
			return apperrors.NewStorageError("failed to insert sink row", err).WithContext("table", s.table)
		}
	}

	if err = tx.Commit(); err != nil {
		return apperrors.NewStorageError("failed to commit sink transaction", err)
	}

	s.logger.InfoContext(ctx, "sink table replaced",
		slog.String("table", s.table),
		slog.Int("rows", len(report.Rows)))
	return nil
}

// Close closes the underlying database
func (s *SQLSink) Close() error {
	return s.db.Close()
}
