package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/delaneyj/bindable/cmd/benchmark/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
propagate:
  observers: [2]
  iters: 5
churn:
  scenarios:
    - name: tiny
      owners: 2
      slots: 3
      rounds: 1
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, cfg.Propagate.Observers)
	assert.Equal(t, DefaultConfig().Propagate.Bindings, cfg.Propagate.Bindings)
	assert.Equal(t, 5, cfg.Propagate.Iters)
	require.Len(t, cfg.Churn.Scenarios, 1)
	assert.Equal(t, "tiny", cfg.Churn.Scenarios[0].Name)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("propagate:\n  iters: 0\n"), 0644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "iters must be positive")
}

func TestPropagateCell(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	r := propagateCell(3, 2, 10, logger)
	assert.Equal(t, "propagate: 3 * 2", r.name())
	require.NotNil(t, r.metrics)
	assert.Equal(t, 10, r.metrics.Count)
}

func TestChurnScenario(t *testing.T) {
	r := churnScenario(ChurnScenario{Name: "small", Owners: 3, Slots: 4, Rounds: 2})
	// 3*4 registrations plus 3 owner disposals, twice
	assert.EqualValues(t, 30, r.ops)
	assert.EqualValues(t, 24, r.cleanups)

	r = churnScenario(ChurnScenario{Name: "rebind", Owners: 2, Slots: 5, Rounds: 1, Supersede: true})
	// every registration after the first supersedes, then the last is disposed with its owner
	assert.EqualValues(t, 10, r.cleanups)
}

func TestReportTemplate(t *testing.T) {
	html := templates.Report(templates.ReportData{
		Title:     "a <b> c",
		Generated: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Iters:     7,
		Propagate: []templates.PropagateRow{{Name: "propagate: 1 * 1", Avg: time.Millisecond}},
		Churn:     []templates.ChurnRow{{Name: "rows", Ops: "1,000", Rate: "10", Alloc: "1 kB"}},
	})

	assert.Contains(t, html, "a &lt;b&gt; c")
	assert.Contains(t, html, "2024-01-02 03:04:05, 7 updates per cell")
	assert.Contains(t, html, "<td>propagate: 1 * 1</td>")
	assert.Contains(t, html, "<td>1ms</td>")
	assert.Contains(t, html, "<td>1,000</td>")
	assert.Equal(t, 1, strings.Count(html, "<h2>Propagation</h2>"))

	empty := templates.Report(templates.ReportData{Title: "none"})
	assert.NotContains(t, empty, "<table>")
}
