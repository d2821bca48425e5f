package templates

import "time"

//go:generate qtc -dir=.

// ReportData feeds the HTML report.
type ReportData struct {
	Title     string
	Generated time.Time
	Iters     int
	Propagate []PropagateRow
	Churn     []ChurnRow
}

type PropagateRow struct {
	Name                    string
	Avg, Min, P75, P99, Max time.Duration
}

type ChurnRow struct {
	Name     string
	Ops      string
	Rate     string
	Alloc    string
	Duration time.Duration
}
