package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/delaneyj/bindable/dispose"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

type churnResult struct {
	scenario ChurnScenario
	ops      int64
	cleanups int64
	duration time.Duration
	alloc    uint64
}

func (r churnResult) rate() float64 {
	if r.duration <= 0 {
		return 0
	}
	return float64(r.ops) / r.duration.Seconds()
}

func runChurn(cfg ChurnConfig) []churnResult {
	results := make([]churnResult, 0, len(cfg.Scenarios))
	for _, sc := range cfg.Scenarios {
		log.Printf("Running '%s' churn", sc.Name)
		results = append(results, churnScenario(sc))
	}
	return results
}

func churnScenario(sc ChurnScenario) churnResult {
	bag := dispose.NewBag()
	owners := make([]dispose.OwnerID, sc.Owners)
	for i := range owners {
		owners[i] = dispose.NewOwner()
	}

	var cleanups int64
	cleanup := func() { cleanups++ }

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	start := time.Now()

	var ops int64
	for round := 0; round < sc.Rounds; round++ {
		for _, owner := range owners {
			slot := dispose.NewSlot()
			for i := 0; i < sc.Slots; i++ {
				if !sc.Supersede {
					slot = dispose.NewSlot()
				}
				bag.Register(owner, slot, cleanup)
				ops++
			}
		}
		for _, owner := range owners {
			bag.DisposeOwner(owner)
			ops++
		}
	}

	duration := time.Since(start)
	runtime.ReadMemStats(&after)

	return churnResult{
		scenario: sc,
		ops:      ops,
		cleanups: cleanups,
		duration: duration,
		alloc:    after.TotalAlloc - before.TotalAlloc,
	}
}

func renderChurn(results []churnResult) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"scenario", "owners", "slots", "rounds", "ops", "cleanups", "time", "ops/sec", "alloc",
	})

	for _, r := range results {
		table.Append([]string{
			r.scenario.Name,
			humanize.Comma(int64(r.scenario.Owners)),
			humanize.Comma(int64(r.scenario.Slots)),
			fmt.Sprint(r.scenario.Rounds),
			humanize.Comma(r.ops),
			humanize.Comma(r.cleanups),
			fmt.Sprint(r.duration.Round(time.Microsecond)),
			humanize.Comma(int64(r.rate())),
			humanize.Bytes(r.alloc),
		})
	}
	table.Render()
}
