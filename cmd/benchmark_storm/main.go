package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/delaneyj/reactref/pkg/promstats"
	"github.com/delaneyj/reactref/pkg/schedule"
	"github.com/delaneyj/reactref/reactor"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

const (
	writersKey     = "writers"
	rowsKey        = "rows"
	durationKey    = "duration"
	delayKey       = "delay"
	metricsAddrKey = "metrics-addr"
	holdKey        = "hold"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark_storm",
		Usage: "Hammer lenses, watchers and snapshots with concurrent writers on the timer scheduler",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  writersKey,
				Usage: "Goroutines posting writes to the event loop",
				Value: 4,
			},
			&cli.UintFlag{
				Name:  rowsKey,
				Usage: "Rows in the shared state, each with its own lens",
				Value: 100,
			},
			&cli.DurationFlag{
				Name:  durationKey,
				Usage: "How long the storm lasts",
				Value: 2 * time.Second,
			},
			&cli.DurationFlag{
				Name:  delayKey,
				Usage: "Timer delay before a deferred flush",
				Value: time.Millisecond,
			},
			&cli.StringFlag{
				Name:  metricsAddrKey,
				Usage: "Serve Prometheus metrics on this address, e.g. :9090",
			},
			&cli.DurationFlag{
				Name:  holdKey,
				Usage: "Keep serving metrics this long after the storm",
			},
		},
		Action: storm,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmd.Run(ctx, os.Args); err != nil {
		logger := zerolog.New(os.Stderr)
		logger.Fatal().Err(err).Msg("storm failed")
	}
}

type kindTotals struct {
	scheduled, coalesced, flushed, cancelled uint64
}

// tally forwards to the Prometheus collector and keeps per kind totals for
// the final table. It is only called on the loop goroutine.
type tally struct {
	next   reactor.Stats
	totals map[reactor.Kind]*kindTotals
}

func (t *tally) get(kind reactor.Kind) *kindTotals {
	kt, ok := t.totals[kind]
	if !ok {
		kt = &kindTotals{}
		t.totals[kind] = kt
	}
	return kt
}

func (t *tally) Scheduled(kind reactor.Kind) {
	t.get(kind).scheduled++
	t.next.Scheduled(kind)
}

func (t *tally) Coalesced(kind reactor.Kind) {
	t.get(kind).coalesced++
	t.next.Coalesced(kind)
}

func (t *tally) Flushed(kind reactor.Kind) {
	t.get(kind).flushed++
	t.next.Flushed(kind)
}

func (t *tally) Cancelled(kind reactor.Kind) {
	t.get(kind).cancelled++
	t.next.Cancelled(kind)
}

func storm(ctx context.Context, cmd *cli.Command) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	writers := int(cmd.Uint(writersKey))
	rowCount := int(cmd.Uint(rowsKey))
	if writers == 0 || rowCount == 0 {
		return fmt.Errorf("%s and %s must be positive", writersKey, rowsKey)
	}

	reg := prometheus.NewRegistry()
	stats := &tally{
		next:   promstats.New(promstats.WithRegistry(reg)),
		totals: map[reactor.Kind]*kindTotals{},
	}

	var srv *http.Server
	if addr := cmd.String(metricsAddrKey); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		srv = &http.Server{Addr: addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server")
			}
		}()
		log.Info().Str("addr", addr).Msg("serving metrics")
	}

	delay := cmd.Duration(delayKey)
	q := schedule.NewTimerQueue(schedule.WithDelay(delay), schedule.WithLogger(log))
	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	go q.Run(loopCtx)

	var (
		rs         *reactor.ReactiveSystem
		scope      *reactor.Scope
		rows       []*reactor.Record
		snap       *reactor.Snapshot[*reactor.Record]
		effectRuns int
		watchCalls int
	)
	err := q.Do(ctx, func() {
		rs = reactor.CreateReactiveSystem(
			func(from reactor.SignalAware, err error) {
				log.Error().Err(err).Msg("reactive error")
			},
			reactor.WithScheduler(q),
			reactor.WithStats(stats),
			reactor.WithLogger(log.Level(zerolog.InfoLevel)),
		)
		scope = reactor.NewScope(rs)
		_ = scope.Activate()

		plain := make([]any, rowCount)
		for i := range plain {
			plain[i] = map[string]any{"id": i, "n": 0}
		}
		state := reactor.NewCell(rs, reactor.NewRecord(rs, map[string]any{"rows": plain}))
		list := reactor.Field[*reactor.List[any]](state.Peek(), "rows")
		for _, v := range list.Values() {
			rows = append(rows, v.(*reactor.Record))
		}

		_ = scope.Run(func() {
			for i := range rows {
				lens := reactor.DeriveLens(state, func(c *reactor.Cell[*reactor.Record]) int {
					row := reactor.Field[*reactor.List[any]](c.Get(), "rows").At(i).(*reactor.Record)
					return reactor.Field[int](row, "n")
				})
				reactor.Effect(rs, func() error {
					lens.Get()
					effectRuns++
					return nil
				})
			}
			reactor.Watch(rs, state.Get, func(_, _ *reactor.Record) {
				watchCalls++
			}, reactor.WatchDeep())
			snap = reactor.Project(state)
		})
	})
	if err != nil {
		return err
	}

	log.Info().
		Int("writers", writers).
		Int("rows", rowCount).
		Dur("duration", cmd.Duration(durationKey)).
		Dur("delay", delay).
		Msg("storm started")

	stormCtx, cancel := context.WithTimeout(ctx, cmd.Duration(durationKey))
	defer cancel()

	var writes atomic.Int64
	var wg sync.WaitGroup
	start := time.Now()
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for n := 0; ; n++ {
				row := rows[(w+n*writers)%len(rows)]
				err := q.Do(stormCtx, func() {
					row.Set("n", n)
				})
				if err != nil {
					return
				}
				writes.Add(1)
			}
		}(w)
	}
	wg.Wait()
	took := time.Since(start)

	// let flushes armed by the last writes fire, then tear down whatever is
	// still pending
	time.Sleep(2*delay + time.Millisecond)
	var emits, runs, calls int
	totals := map[reactor.Kind]kindTotals{}
	if err := q.Do(ctx, func() {
		emits, runs, calls = snap.Emits(), effectRuns, watchCalls
		_ = scope.Deactivate()
		for k, v := range stats.totals {
			totals[k] = *v
		}
	}); err != nil {
		return err
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"kind", "scheduled", "coalesced", "flushed", "cancelled", "coalesce%"})
	for _, kind := range []reactor.Kind{reactor.KindEffect, reactor.KindWatch, reactor.KindLens, reactor.KindSnapshot} {
		kt := totals[kind]
		pct := "-"
		if triggers := kt.scheduled + kt.coalesced; triggers > 0 {
			pct = fmt.Sprintf("%0.1f", 100*float64(kt.coalesced)/float64(triggers))
		}
		tbl.Append([]string{
			string(kind),
			humanize.Comma(int64(kt.scheduled)),
			humanize.Comma(int64(kt.coalesced)),
			humanize.Comma(int64(kt.flushed)),
			humanize.Comma(int64(kt.cancelled)),
			pct,
		})
	}
	rate := float64(writes.Load()) / took.Seconds()
	tbl.SetFooter([]string{
		"writes", humanize.Comma(writes.Load()),
		"writes/s", humanize.Comma(int64(rate)),
		"emits", humanize.Comma(int64(emits)),
	})
	tbl.Render()

	log.Info().
		Int("effectRuns", runs).
		Int("watchCalls", calls).
		Msg("storm finished")

	if srv != nil {
		if hold := cmd.Duration(holdKey); hold > 0 {
			log.Info().Dur("hold", hold).Msg("holding metrics endpoint")
			select {
			case <-time.After(hold):
			case <-ctx.Done():
			}
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
	return nil
}
