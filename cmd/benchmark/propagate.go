package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/delaneyj/bindable/bindable"
	"github.com/delaneyj/bindable/dispose"
	"github.com/delaneyj/bindable/toolkit"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

type propagateResult struct {
	observers, bindings int
	metrics             *tachymeter.Metrics
}

func (r propagateResult) name() string {
	return fmt.Sprintf("propagate: %d * %d", r.observers, r.bindings)
}

func runPropagate(cfg PropagateConfig, iters int, logger *slog.Logger) []propagateResult {
	var results []propagateResult
	for _, w := range cfg.Observers {
		for _, h := range cfg.Bindings {
			log.Printf("propagate %d observers, %d bindings", w, h)
			results = append(results, propagateCell(w, h, iters, logger))
		}
	}
	return results
}

func propagateCell(observers, bindings, iters int, logger *slog.Logger) propagateResult {
	tach := tachymeter.New(&tachymeter.Config{Size: iters})

	bag := dispose.NewBag(dispose.WithLogger(logger))
	src := bindable.Of(0, bindable.WithBag(bag))

	sink := 0
	for i := 0; i < observers; i++ {
		src.Observe(bindable.Always(), func(v int) {
			sink += v
		})
	}
	labels := make([]*toolkit.Label, bindings)
	for i := range labels {
		labels[i] = toolkit.NewLabel("")
		bindable.BindFieldOn(src, bindable.Self[int](), labels[i], bindable.LabelText).
			Map(strconv.Itoa).
			Done()
	}

	for i := 0; i < iters; i++ {
		start := time.Now()
		src.Modify(addOne)
		tach.AddTime(time.Since(start))
	}

	bag.DisposeAll()
	logger.Debug("propagate cell done", "observers", observers, "bindings", bindings, "sink", sink)

	return propagateResult{
		observers: observers,
		bindings:  bindings,
		metrics:   tach.Calc(),
	}
}

func addOne(v int) int {
	return v + 1
}

func renderPropagate(results []propagateResult, markdown bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Bindable propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, r := range results {
		calc := r.metrics
		tbl.AppendRows([]table.Row{
			{
				r.name(),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			},
		})
	}

	if markdown {
		tbl.RenderMarkdown()
		return
	}
	tbl.Render()
}
