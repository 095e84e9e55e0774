// Package fleet collects observations across the whole NDBC station fleet.
//
// A [Collector] lists the station directory and fans out over every station
// with a bounded worker pool. Individual stations fail routinely (buoys go
// adrift, pages lag behind the directory), so per-station errors are logged
// and skipped rather than aborting the run; only a directory listing failure
// is fatal.
package fleet

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/swellwatch/buoy/pkg/ndbc"
	"github.com/swellwatch/buoy/pkg/observability"
)

const defaultWorkers = 20

// Client is the subset of the NDBC client the collector needs.
// *ndbc.Client satisfies it; tests substitute a fake.
type Client interface {
	StationIDs(ctx context.Context, refresh bool) ([]int, error)
	Station(ctx context.Context, id int, refresh bool) (*ndbc.Station, error)
	Report(ctx context.Context, id int, refresh bool) (*ndbc.Report, error)
}

// Options control a collection run.
type Options struct {
	// Workers bounds concurrent station fetches. Zero means the default (20).
	Workers int

	// Refresh bypasses the HTTP response cache.
	Refresh bool

	// Logger receives warnings for stations that fail. Nil discards them.
	Logger func(msg string, args ...any)

	// Progress, if set, is called after every finished station with the
	// running totals. Used by the CLI for live progress display.
	Progress func(done, failed, total int)
}

// WithDefaults returns a copy of o with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	if o.Logger == nil {
		o.Logger = func(string, ...any) {}
	}
	return o
}

// Collector fans station fetches out over a bounded worker pool.
type Collector struct {
	client Client
	opts   Options
}

// NewCollector creates a Collector using the given client.
func NewCollector(client Client, opts Options) *Collector {
	return &Collector{client: client, opts: opts.WithDefaults()}
}

// Stations fetches metadata for every station in the directory.
// The result maps station id to metadata; stations that fail are absent.
func (c *Collector) Stations(ctx context.Context) (map[int]*ndbc.Station, error) {
	out := make(map[int]*ndbc.Station)
	err := c.run(ctx, func(ctx context.Context, id int) (any, error) {
		return c.client.Station(ctx, id, c.opts.Refresh)
	}, func(id int, v any) {
		out[id] = v.(*ndbc.Station)
	})
	return out, err
}

// Reports fetches the latest observation for every station in the directory.
// The result maps station id to report; stations that fail are absent.
func (c *Collector) Reports(ctx context.Context) (map[int]*ndbc.Report, error) {
	out := make(map[int]*ndbc.Report)
	err := c.run(ctx, func(ctx context.Context, id int) (any, error) {
		return c.client.Report(ctx, id, c.opts.Refresh)
	}, func(id int, v any) {
		out[id] = v.(*ndbc.Report)
	})
	return out, err
}

// run lists the directory, then applies fetch to every station id with
// bounded concurrency, passing each success to keep under a lock.
func (c *Collector) run(
	ctx context.Context,
	fetch func(context.Context, int) (any, error),
	keep func(id int, v any),
) error {
	start := time.Now()

	ids, err := c.client.StationIDs(ctx, c.opts.Refresh)
	observability.Collect().OnListComplete(ctx, len(ids), time.Since(start), err)
	if err != nil {
		return err
	}

	var (
		mu     sync.Mutex
		done   int
		failed int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)

	for _, id := range ids {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			observability.Collect().OnStationStart(ctx, id)
			stationStart := time.Now()
			v, err := fetch(ctx, id)
			observability.Collect().OnStationComplete(ctx, id, time.Since(stationStart), err)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				c.opts.Logger("fetch failed: station %d: %v", id, err)
			} else {
				done++
				keep(id, v)
			}
			if c.opts.Progress != nil {
				c.opts.Progress(done, failed, len(ids))
			}
			return nil
		})
	}

	err = g.Wait()
	observability.Collect().OnSyncComplete(ctx, done, failed, time.Since(start))
	return err
}
