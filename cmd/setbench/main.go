// Command setbench runs a synthetic workload against one of the concurrent
// sets and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/concset"
	"github.com/IvanBrykalov/concset/elem"
	pmet "github.com/IvanBrykalov/concset/metrics/prom"
	"github.com/IvanBrykalov/concset/optimistic"
	"github.com/IvanBrykalov/concset/striped"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "setbench:", err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "setbench: logger:", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("benchmark failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if cfg.LogDev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	return zc.Build()
}

// checker is the optional structural verification both sets provide.
type checker interface{ Check() error }

func run(cfg config, log *zap.Logger) error {
	// ---- pprof server (on DefaultServeMux) ----
	if cfg.PprofAddr != "" {
		go func() {
			log.Info("pprof: serving", zap.String("addr", cfg.PprofAddr))
			log.Warn("pprof server stopped", zap.Error(http.ListenAndServe(cfg.PprofAddr, nil)))
		}()
	}

	// ---- Prometheus metrics ----
	metrics := pmet.New(nil, "concset", "bench", prometheus.Labels{"set": cfg.Set})
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Info("metrics: serving", zap.String("addr", cfg.MetricsAddr))
			log.Warn("metrics server stopped", zap.Error(http.ListenAndServe(cfg.MetricsAddr, mux)))
		}()
	}

	// ---- Build set ----
	var set concset.Set[int]
	switch cfg.Set {
	case "striped":
		hasher := elem.FNV[int]()
		if cfg.Hash == "xx" {
			hasher = elem.XXHash[int]()
		}
		set = striped.New[int](striped.Options[int]{
			ConcurrencyLevel: cfg.Stripes,
			GrowthFactor:     cfg.Growth,
			LoadFactor:       cfg.LoadFactor,
			Locking:          cfg.Locking,
			Hasher:           hasher,
			Metrics:          metrics,
			Logger:           log,
		})
	case "optimistic":
		s := optimistic.New[int](optimistic.Options[int]{
			NodeLock:   cfg.NodeLock,
			MaxRetries: cfg.MaxRetries,
			Metrics:    metrics,
			Logger:     log,
		})
		defer s.Release()
		set = s
	}

	// ---- Preload ----
	for i := 0; i < cfg.Preload; i++ {
		set.Insert(i)
	}
	log.Info("preloaded", zap.Int("size", set.Size()))

	// ---- Load generation ----
	var reads, inserts, removes, hits, total atomic.Uint64
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			// Each worker gets its own RNG (rand.Rand is NOT goroutine-safe).
			r := rand.New(rand.NewSource(cfg.Seed + int64(w)*9973))
			for {
				select {
				case <-ctx.Done():
					return nil
				default:
				}

				total.Add(1)
				k := r.Intn(cfg.Keys)
				switch p := r.Intn(100); {
				case p < cfg.Reads:
					reads.Add(1)
					if set.Contains(k) {
						hits.Add(1)
					}
				case p%2 == 0:
					if set.Insert(k) {
						inserts.Add(1)
					}
				default:
					if set.Remove(k) {
						removes.Add(1)
					}
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	// ---- Report ----
	ops := total.Load()
	hitRate := 0.0
	if n := reads.Load(); n > 0 {
		hitRate = float64(hits.Load()) / float64(n) * 100
	}
	log.Info("done",
		zap.String("set", cfg.Set),
		zap.Int("workers", cfg.Workers),
		zap.Int("keys", cfg.Keys),
		zap.Duration("elapsed", elapsed),
		zap.Int64("seed", cfg.Seed),
		zap.Uint64("ops", ops),
		zap.Float64("ops_per_sec", float64(ops)/elapsed.Seconds()),
		zap.Uint64("reads", reads.Load()),
		zap.Uint64("inserts", inserts.Load()),
		zap.Uint64("removes", removes.Load()),
		zap.Float64("hit_rate_pct", hitRate),
		zap.Int("size", set.Size()),
	)
	switch s := set.(type) {
	case *striped.Set[int]:
		st := s.Stats()
		log.Info("striped stats",
			zap.Int("capacity", st.Capacity),
			zap.Int("stripes", st.Stripes),
			zap.Uint64("resizes", st.Resizes),
			zap.Float64("load_factor", st.LoadFactor()),
		)
	case *optimistic.Set[int]:
		st := s.Stats()
		log.Info("optimistic stats",
			zap.Uint64("retries", st.Retries),
			zap.Int("nodes_allocated", st.Nodes),
		)
	}

	if c, ok := set.(checker); ok && cfg.Check {
		if err := c.Check(); err != nil {
			return err
		}
		log.Info("structure check passed")
	}
	return nil
}
