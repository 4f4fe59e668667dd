package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	jsoniter "github.com/json-iterator/go"

	"github.com/vilaca/docs-pages/internal/config"
	"github.com/vilaca/docs-pages/internal/logging"
	"github.com/vilaca/docs-pages/internal/service"
	"github.com/vilaca/docs-pages/internal/site"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version kong.VersionFlag `help:"Show version information"`
	EnvFile string           `help:"Dotenv file read before the environment" default:".env" type:"path"`

	Serve  ServeCmd  `cmd:"" help:"Serve the site pages (default)" default:"1"`
	Report ReportCmd `cmd:"" help:"Print the status report"`
}

// ServeCmd runs the HTTP server until interrupted.
type ServeCmd struct{}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := config.LoadFile(cli.EnvFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, cfg, logger)
}

// ReportCmd prints the status report for the configured repository.
type ReportCmd struct {
	Start  string   `help:"Start date (YYYY-MM-DD or RFC 3339), exclusive"`
	End    string   `help:"End date (YYYY-MM-DD or RFC 3339), inclusive"`
	Labels []string `name:"label" help:"Only include pull requests with this label (repeatable)"`
	All    bool     `help:"Select every label"`
	JSON   bool     `name:"json" help:"Print JSON instead of text"`
}

func (c *ReportCmd) Run(cli *CLI) error {
	cfg, err := config.LoadFile(cli.EnvFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	query, err := site.ParseReportQuery(c.values(), time.Local)
	if err != nil {
		return err
	}

	deps, err := buildDependencies(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ClientTimeout)
	defer cancel()

	report, err := deps.reports.Build(ctx, query)
	if err != nil {
		return err
	}

	if c.JSON {
		return writeReportJSON(os.Stdout, report)
	}
	return writeReportText(os.Stdout, report)
}

func (c *ReportCmd) values() url.Values {
	values := url.Values{}
	if c.Start != "" {
		values.Set("start", c.Start)
	}
	if c.End != "" {
		values.Set("end", c.End)
	}
	for _, label := range c.Labels {
		values.Add("label", label)
	}
	if c.All {
		values.Set("all", "on")
	}
	return values
}

func writeReportJSON(w io.Writer, report *service.Report) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(site.NewReportResponse(report))
}

func writeReportText(w io.Writer, report *service.Report) error {
	if _, err := fmt.Fprintf(w, "%s/%s merged %s - %s (%d fetched)\n",
		report.Owner, report.Repo,
		report.Range.Start.Format(time.DateOnly), report.Range.End.Format(time.DateOnly),
		report.Fetched); err != nil {
		return err
	}
	if report.RangeInverted {
		if _, err := fmt.Fprintln(w, "warning: start date is after end date"); err != nil {
			return err
		}
	}
	for _, entry := range report.Entries {
		if _, err := fmt.Fprintf(w, "\n%s %s\n%s\n", entry.LinkText(), entry.URL, entry.HTML); err != nil {
			return err
		}
	}
	for _, skipped := range report.Skipped {
		if _, err := fmt.Fprintf(w, "skipped: %s\n", skipped); err != nil {
			return err
		}
	}
	return nil
}
