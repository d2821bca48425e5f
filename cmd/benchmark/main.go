package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/bindable/cmd/benchmark/templates"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

const (
	configKey     = "config"
	itersKey      = "iters"
	verboseKey    = "verbose"
	cpuProfileKey = "cpuprofile"
	markdownKey   = "markdown"
	outKey        = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure bindable propagation and dispose bag churn",
		Commands: []*cli.Command{
			{
				Name:  "propagate",
				Usage: "Time updates fanned out to observers and bound labels",
				Flags: append(commonFlags(), &cli.BoolFlag{
					Name:  markdownKey,
					Usage: "Render the table as markdown",
				}),
				Action: propagate,
			},
			{
				Name:   "churn",
				Usage:  "Register and dispose entries in a bag",
				Flags:  commonFlags(),
				Action: churn,
			},
			{
				Name:  "report",
				Usage: "Run every benchmark and write an HTML report",
				Flags: append(commonFlags(), &cli.StringFlag{
					Name:  outKey,
					Usage: "Report file",
					Value: "bindable-report.html",
				}),
				Action: report,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  configKey,
			Usage: "YAML scenario file",
		},
		&cli.UintFlag{
			Name:  itersKey,
			Usage: "Updates timed per propagation cell, overrides the config",
		},
		&cli.BoolFlag{
			Name:  verboseKey,
			Usage: "Log bag activity at debug level",
		},
		&cli.StringFlag{
			Name:  cpuProfileKey,
			Usage: "Write a CPU profile to this file",
		},
	}
}

type session struct {
	cfg    Config
	iters  int
	logger *slog.Logger
	stop   func()
}

func open(cmd *cli.Command) (*session, error) {
	cfg, err := LoadConfig(cmd.String(configKey))
	if err != nil {
		return nil, err
	}
	iters := cfg.Propagate.Iters
	if n := int(cmd.Uint(itersKey)); n > 0 {
		iters = n
	}

	level := slog.LevelInfo
	if cmd.Bool(verboseKey) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	s := &session{cfg: cfg, iters: iters, logger: logger, stop: func() {}}
	if path := cmd.String(cpuProfileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("start profile: %w", err)
		}
		s.stop = func() {
			pprof.StopCPUProfile()
			f.Close()
		}
	}
	return s, nil
}

func propagate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Propagation benchmark started")
	defer func() {
		log.Printf("Propagation benchmark finished in %v", time.Since(start))
	}()

	s, err := open(cmd)
	if err != nil {
		return err
	}
	defer s.stop()

	results := runPropagate(s.cfg.Propagate, s.iters, s.logger)
	renderPropagate(results, cmd.Bool(markdownKey))
	return nil
}

func churn(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Churn benchmark started")
	defer func() {
		log.Printf("Churn benchmark finished in %v", time.Since(start))
	}()

	s, err := open(cmd)
	if err != nil {
		return err
	}
	defer s.stop()

	renderChurn(runChurn(s.cfg.Churn))
	return nil
}

func report(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Report started")
	defer func() {
		log.Printf("Report finished in %v", time.Since(start))
	}()

	s, err := open(cmd)
	if err != nil {
		return err
	}
	defer s.stop()

	data := templates.ReportData{
		Title:     "bindable benchmarks",
		Generated: time.Now(),
		Iters:     s.iters,
	}
	for _, r := range runPropagate(s.cfg.Propagate, s.iters, s.logger) {
		t := r.metrics.Time
		data.Propagate = append(data.Propagate, templates.PropagateRow{
			Name: r.name(),
			Avg:  t.Avg,
			Min:  t.Min,
			P75:  t.P75,
			P99:  t.P99,
			Max:  t.Max,
		})
	}
	for _, r := range runChurn(s.cfg.Churn) {
		data.Churn = append(data.Churn, templates.ChurnRow{
			Name:     r.scenario.Name,
			Ops:      humanize.Comma(r.ops),
			Rate:     humanize.Comma(int64(r.rate())),
			Alloc:    humanize.Bytes(r.alloc),
			Duration: r.duration.Round(time.Microsecond),
		})
	}

	out := cmd.String(outKey)
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	templates.WriteReport(f, data)
	log.Printf("Wrote %s", out)
	return nil
}
