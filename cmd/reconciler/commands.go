package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/nishant32400/CrewStandby/internal/config"
	"github.com/nishant32400/CrewStandby/internal/exporter"
	"github.com/nishant32400/CrewStandby/internal/files"
	"github.com/nishant32400/CrewStandby/internal/infrastructure"
	"github.com/nishant32400/CrewStandby/internal/services"
	"github.com/nishant32400/CrewStandby/internal/validation"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

var inputFlags = []cli.Flag{
	&cli.StringFlag{Name: "roster", Usage: "roster extract (path or glob)"},
	&cli.StringFlag{Name: "headcount", Usage: "headcount extract (path or glob)"},
	&cli.StringFlag{Name: "standby", Usage: "standby activation extract (path or glob)"},
	&cli.StringFlag{Name: "sheet", Usage: "worksheet to read from Excel inputs"},
}

func runCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (.csv or .xlsx)"},
		&cli.StringFlag{Name: "start", Usage: "first report date, YYYY-MM-DD"},
		&cli.StringFlag{Name: "end", Usage: "last report date, YYYY-MM-DD"},
		&cli.StringFlag{Name: "station", Usage: "restrict both sides to one home station"},
	}, inputFlags...)

	return &cli.Command{
		Name:   "run",
		Usage:  "reconcile the inputs and write the report",
		Flags:  flags,
		Action: runAction,
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:   "validate",
		Usage:  "check the three inputs for readable headers and required columns",
		Flags:  inputFlags,
		Action: validateAction,
	}
}

func windowsCommand() *cli.Command {
	return &cli.Command{
		Name:  "windows",
		Usage: "print the six duty windows",
		Action: func(c *cli.Context) error {
			printWindows(c.App.Writer)
			return nil
		},
	}
}

// environment is the configuration, logger and paths shared by the commands
type environment struct {
	cfg    *config.Config
	paths  *config.Paths
	logger *slog.Logger
}

func setup(c *cli.Context) (*environment, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	paths, err := cfg.GetPaths()
	if err != nil {
		return nil, err
	}

	for name, target := range map[string]*string{
		"roster":    &cfg.Inputs.Roster,
		"headcount": &cfg.Inputs.Headcount,
		"standby":   &cfg.Inputs.Standby,
		"output":    &cfg.Output.Path,
	} {
		if c.IsSet(name) {
			*target = paths.Resolve(c.String(name))
		}
	}
	if c.IsSet("sheet") {
		cfg.Inputs.Sheet = c.String("sheet")
	}

	return &environment{cfg: cfg, paths: paths, logger: logger}, nil
}

func (e *environment) loader() (*files.Discovery, *files.Loader) {
	discovery := files.NewDiscovery(e.paths.BaseDir)
	return discovery, files.NewLoader(e.logger, discovery, e.cfg.Inputs.Sheet, e.cfg.Report.ActiveStatus)
}

// reportRequest converts the date and station flags into overrides
func reportRequest(c *cli.Context) (services.ReportRequest, error) {
	req := services.ReportRequest{Station: c.String("station")}
	for name, target := range map[string]*domain.Date{
		"start": &req.Start,
		"end":   &req.End,
	} {
		if !c.IsSet(name) {
			continue
		}
		d, err := domain.ParseDate(c.String(name))
		if err != nil {
			return req, fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", name, c.String(name))
		}
		*target = d
	}
	return req, nil
}

func runAction(c *cli.Context) error {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := reportRequest(c)
	if err != nil {
		return err
	}

	env, err := setup(c)
	if err != nil {
		return err
	}
	if err := env.paths.EnsureDirectories(); err != nil {
		return err
	}

	providers, err := infrastructure.InitializeOTel(env.cfg.Telemetry, env.logger)
	if err != nil {
		return err
	}
	defer providers.Shutdown(context.WithoutCancel(ctx))

	metrics, err := infrastructure.NewPipelineMetrics(providers.Meter)
	if err != nil {
		return err
	}

	_, loader := env.loader()
	report, err := services.NewReportService(env.cfg, loader, metrics, env.logger).Generate(ctx, req)
	if err != nil {
		return err
	}

	opts := []exporter.ExporterOption{exporter.WithBOM(env.cfg.Output.BOM)}
	if env.cfg.Sink.Enabled() {
		sink, err := exporter.OpenSQLSink(ctx, env.cfg.Sink, env.logger)
		if err != nil {
			return err
		}
		defer sink.Close()
		opts = append(opts, exporter.WithSink(sink))
	}

	written, err := exporter.NewReportExporter(env.paths, env.logger, opts...).Export(ctx, env.cfg.Output.Path, report)
	if err != nil {
		return err
	}

	printSummary(c.App.Writer, report, written)
	return nil
}

func validateAction(c *cli.Context) error {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := setup(c)
	if err != nil {
		return err
	}

	discovery, loader := env.loader()
	validator := validation.NewInputValidator(validation.NewFileValidator(env.logger), discovery, loader)

	checks, err := validator.ValidateInputs(ctx, env.cfg.Inputs)
	printChecks(c.App.Writer, checks)
	return err
}

func printSummary(w io.Writer, report *domain.Report, written string) {
	d := report.Diagnostics

	fmt.Fprintf(w, "Run %s: %s rows for %s to %s written to %s\n",
		report.RunID,
		humanize.Comma(int64(len(report.Rows))),
		report.StartDate, report.EndDate,
		written)
	if sides := d.EmptySides(); len(sides) > 0 {
		fmt.Fprintf(w, "Warning: empty aggregate: %v\n", sides)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nDIAGNOSTIC\tCOUNT")
	for _, line := range []struct {
		label string
		n     int
	}{
		{"roster rows", d.RosterRows},
		{"headcount rows", d.HeadcountRows},
		{"standby rows", d.StandbyRows},
		{"roster rows filtered out", d.RosterFilteredOut},
		{"roster unparsable timestamps", d.RosterUnparsableTimestamps},
		{"roster unparsable start dates", d.RosterUnparsableStartDates},
		{"roster duplicates collapsed", d.RosterDuplicatesCollapsed},
		{"roster null rank", d.RosterNullRank},
		{"roster station excluded", d.RosterStationExcluded},
		{"headcount duplicates dropped", d.HeadcountDuplicatesDropped},
		{"standby unparsable timestamps", d.StandbyUnparsableTimestamps},
		{"standby unresolved lookups", d.StandbyUnresolvedLookups},
		{"standby null rank", d.StandbyNullRank},
		{"standby station excluded", d.StandbyStationExcluded},
		{"roster aggregate rows", d.RosterAggregateRows},
		{"standby aggregate rows", d.StandbyAggregateRows},
		{"outside date range", d.OutsideDateRange},
		{"output rows", d.OutputRows},
	} {
		fmt.Fprintf(tw, "%s\t%s\n", line.label, humanize.Comma(int64(line.n)))
	}
	if d.ActivationStatusDefaulted {
		fmt.Fprintln(tw, "activation status defaulted\tyes")
	}
	tw.Flush()
}

func printChecks(w io.Writer, checks []validation.TableCheck) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tSTATUS\tROWS\tFILE\tDETAIL")
	for _, check := range checks {
		status, detail := "ok", ""
		if !check.OK() {
			status = "FAIL"
			if check.Err != nil {
				detail = check.Err.Error()
			}
		} else if len(check.Header.Ignored) > 0 {
			detail = fmt.Sprintf("ignored columns: %v", check.Header.Ignored)
		}
		file := check.Header.Path
		if file == "" {
			file = check.Input
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			check.Table, status, humanize.Comma(int64(check.Header.Rows)), file, detail)
	}
	tw.Flush()
}

func printWindows(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDINAL\tWINDOW\tHOURS")
	for _, window := range domain.DutyWindows {
		start := (window.Ordinal - 1) * domain.DutyWindowHours
		fmt.Fprintf(tw, "%d\t%s\t%02d:00-%02d:59\n", window.Ordinal, window.Label, start, start+domain.DutyWindowHours-1)
	}
	tw.Flush()
}
