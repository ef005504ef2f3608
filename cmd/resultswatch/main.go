// Command resultswatch follows a survey's results from the terminal and
// exports them to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adedunmol/pulso/client"
	"github.com/Adedunmol/pulso/results"
)

type options struct {
	baseURL  string
	token    string
	surveyID string
	interval time.Duration
	export   string
	outDir   string
}

func parseOptions(fs *flag.FlagSet, args []string) (options, error) {
	var opts options
	fs.StringVar(&opts.baseURL, "url", envOr("PULSO_URL", "http://localhost:8080"), "api base url")
	fs.StringVar(&opts.token, "token", os.Getenv("PULSO_TOKEN"), "access token of the survey owner")
	fs.StringVar(&opts.surveyID, "survey", "", "survey id")
	fs.DurationVar(&opts.interval, "interval", results.DefaultPollInterval, "refresh interval")
	fs.StringVar(&opts.export, "export", "", "export once and exit: csv or pdf")
	fs.StringVar(&opts.outDir, "out", ".", "directory exports are written to")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.surveyID == "" {
		return options{}, fmt.Errorf("-survey is required")
	}
	if opts.export != "" && opts.export != "csv" && opts.export != "pdf" {
		return options{}, fmt.Errorf("unknown export format %q", opts.export)
	}
	return opts, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	opts, err := parseOptions(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatalf("resultswatch: %v", err)
	}
}

func run(ctx context.Context, opts options) error {
	session := results.NewSession(
		client.New(opts.baseURL, opts.token, nil),
		results.WithNotifier(results.LogNotifier{}),
	)
	defer session.Close()

	if opts.export != "" {
		if err := session.Load(ctx, opts.surveyID); err != nil {
			return err
		}
		return export(session, opts)
	}

	updates, unsubscribe := session.Subscribe()
	defer unsubscribe()

	if err := session.Load(ctx, opts.surveyID); err != nil {
		return err
	}
	session.Poll(ctx, opts.surveyID, opts.interval)

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			fmt.Print("\033[H\033[2J")
			render(os.Stdout, snap)
		}
	}
}

func export(session *results.Session, opts options) error {
	sink := results.FileDownloader{Dir: opts.outDir}

	var (
		ok  bool
		err error
	)
	switch opts.export {
	case "csv":
		ok, err = session.Export(sink)
	case "pdf":
		ok, err = session.ExportReport(sink)
	}
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("nothing to export")
	}
	return nil
}
