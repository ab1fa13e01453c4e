package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"sync/atomic"
	"time"

	"github.com/delaneyj/reactref/cmd/benchmark/templates"
	"github.com/delaneyj/reactref/pkg/schedule"
	"github.com/delaneyj/reactref/reactor"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

const (
	itersKey    = "iters"
	burstKey    = "burst"
	profileKey  = "profile"
	markdownKey = "markdown"
	verboseKey  = "verbose"
)

var widths = []int{1, 10, 100, 1_000}

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure flush latency and coalescing of reactive effects, lenses and snapshots",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Bursts per case",
				Value: 100,
			},
			&cli.UintFlag{
				Name:  burstKey,
				Usage: "Synchronous writes per burst before the flush",
				Value: 10,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
			},
			&cli.StringFlag{
				Name:  markdownKey,
				Usage: "Also write a markdown report to this file",
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log every scheduling decision",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger := zerolog.New(os.Stderr)
		logger.Fatal().Err(err).Msg("benchmark failed")
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	level := zerolog.InfoLevel
	if cmd.Bool(verboseKey) {
		level = zerolog.DebugLevel
	}
	log = log.Level(level)

	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	b := &bench{
		log:   log,
		iters: int(cmd.Uint(itersKey)),
		burst: int(cmd.Uint(burstKey)),
	}
	if b.iters == 0 || b.burst == 0 {
		return fmt.Errorf("%s and %s must be positive", itersKey, burstKey)
	}

	start := time.Now()
	log.Info().Int("iters", b.iters).Int("burst", b.burst).Msg("warming up")
	b.runAll(false)
	suite := b.runAll(true)
	log.Info().Dur("took", time.Since(start)).Msg("finished")

	if path := cmd.String(markdownKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		templates.WriteMarkdownReport(f, suite)
		log.Info().Str("path", path).Msg("wrote report")
	}
	return nil
}

// counter is a reactor.Stats that only keeps totals.
type counter struct {
	scheduled, coalesced, flushed, cancelled atomic.Uint64
}

func (c *counter) Scheduled(reactor.Kind) { c.scheduled.Add(1) }
func (c *counter) Coalesced(reactor.Kind) { c.coalesced.Add(1) }
func (c *counter) Flushed(reactor.Kind)   { c.flushed.Add(1) }
func (c *counter) Cancelled(reactor.Kind) { c.cancelled.Add(1) }

// benchCase builds a graph of the given width and returns the write that
// starts a burst.
type benchCase struct {
	name  string
	setup func(rs *reactor.ReactiveSystem, width int) (write func(i int))
}

var cases = []benchCase{
	{
		name: "effects",
		setup: func(rs *reactor.ReactiveSystem, width int) func(int) {
			src := reactor.NewCell(rs, 0)
			for i := 0; i < width; i++ {
				reactor.Effect(rs, func() error {
					src.Get()
					return nil
				})
			}
			return src.Set
		},
	},
	{
		name: "lenses",
		setup: func(rs *reactor.ReactiveSystem, width int) func(int) {
			state := reactor.NewCell(rs, reactor.NewRecord(rs, map[string]any{"n": 0}))
			for i := 0; i < width; i++ {
				lens := reactor.DeriveLens(state, func(c *reactor.Cell[*reactor.Record]) int {
					return reactor.Field[int](c.Get(), "n")
				})
				reactor.Effect(rs, func() error {
					lens.Get()
					return nil
				})
			}
			return func(i int) {
				state.Peek().Set("n", i)
			}
		},
	},
	{
		name: "snapshots",
		setup: func(rs *reactor.ReactiveSystem, width int) func(int) {
			rows := make([]any, width)
			for i := range rows {
				rows[i] = map[string]any{"id": i, "n": 0}
			}
			state := reactor.NewCell(rs, reactor.NewRecord(rs, map[string]any{"rows": rows}))
			reactor.Project(state)
			list := reactor.Field[*reactor.List[any]](state.Peek(), "rows")
			return func(i int) {
				row := list.At(i % width).(*reactor.Record)
				row.Set("n", i)
			}
		},
	},
	{
		name: "deep watch",
		setup: func(rs *reactor.ReactiveSystem, width int) func(int) {
			set := reactor.NewSet[int](rs)
			src := reactor.NewCell(rs, set)
			for i := 0; i < width; i++ {
				reactor.Watch(rs, src.Get, func(_, _ *reactor.Set[int]) {}, reactor.WatchDeep())
			}
			return func(i int) {
				set.Add(i)
			}
		},
	},
}

type bench struct {
	log   zerolog.Logger
	iters int
	burst int
	// unique write value across the whole run
	seq int
}

func (b *bench) runAll(shouldRender bool) *templates.Suite {
	suite := &templates.Suite{
		Title:      "reactref flush latency",
		Iterations: b.iters,
		Burst:      b.burst,
	}

	tbl := table.NewWriter()
	tbl.SetTitle(suite.Title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "bursts/s", "coalesced"})

	for _, c := range cases {
		for _, w := range widths {
			row := b.runCase(c, w)
			suite.Rows = append(suite.Rows, row)

			rate := float64(0)
			if row.Avg > 0 {
				rate = float64(time.Second) / float64(row.Avg)
			}
			tbl.AppendRow(table.Row{
				row.Name,
				row.Avg,
				row.Min,
				row.P75,
				row.P99,
				row.Max,
				humanize.Comma(int64(rate)),
				fmt.Sprintf("%s / %s", humanize.Comma(int64(row.Coalesced)), humanize.Comma(int64(row.Triggers))),
			})
		}
		tbl.AppendSeparator()
	}

	if shouldRender {
		tbl.Render()
	}
	return suite
}

func (b *bench) runCase(c benchCase, width int) templates.Row {
	name := fmt.Sprintf("%s: %d", c.name, width)
	q := schedule.NewManualQueue()
	stats := &counter{}
	rs := reactor.CreateReactiveSystem(
		func(from reactor.SignalAware, err error) {
			b.log.Error().Err(err).Str("case", name).Msg("reactive error")
		},
		reactor.WithScheduler(q),
		reactor.WithStats(stats),
		reactor.WithLogger(b.log.With().Str("case", name).Logger()),
	)
	write := c.setup(rs, width)

	tach := tachymeter.New(&tachymeter.Config{Size: b.iters})
	for i := 0; i < b.iters; i++ {
		start := time.Now()
		for j := 0; j < b.burst; j++ {
			b.seq++
			write(b.seq)
		}
		if _, err := q.Flush(); err != nil {
			b.log.Error().Err(err).Str("case", name).Msg("flush")
		}
		tach.AddTime(time.Since(start))
	}

	calc := tach.Calc()
	triggers := stats.scheduled.Load() + stats.coalesced.Load()
	b.log.Debug().
		Str("case", name).
		Uint64("flushed", stats.flushed.Load()).
		Uint64("triggers", triggers).
		Msg("case done")

	return templates.Row{
		Name:      name,
		Avg:       calc.Time.Avg,
		Min:       calc.Time.Min,
		P75:       calc.Time.P75,
		P99:       calc.Time.P99,
		Max:       calc.Time.Max,
		Triggers:  triggers,
		Coalesced: stats.coalesced.Load(),
	}
}
