package main

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/IvanBrykalov/concset/lock"
	"github.com/IvanBrykalov/concset/optimistic"
)

// config is the resolved benchmark configuration.
// Precedence: flags > SETBENCH_* env > config file > defaults.
type config struct {
	Set      string // striped | optimistic
	Workers  int
	Duration time.Duration
	Reads    int // read percentage [0..100]
	Keys     int
	Seed     int64
	Preload  int
	Check    bool

	// striped
	Stripes    int
	Growth     int
	LoadFactor float64
	Locking    lock.Strategy
	Hash       string // fnv | xx

	// optimistic
	NodeLock   optimistic.NodeLock
	MaxRetries int

	PprofAddr   string
	MetricsAddr string
	LogLevel    string
	LogDev      bool
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("setbench", pflag.ContinueOnError)
	fs.String("config", "", "optional config file (yaml/json/toml)")
	fs.String("set", "striped", "set implementation: striped | optimistic")
	fs.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
	fs.Duration("duration", 10*time.Second, "benchmark duration")
	fs.Int("reads", 80, "read percentage [0..100]")
	fs.Int("keys", 100_000, "keyspace size")
	fs.Int64("seed", time.Now().UnixNano(), "random seed")
	fs.Int("preload", -1, "preload elements (-1 = keys/2)")
	fs.Bool("check", true, "verify structural invariants after the run")

	fs.Int("stripes", 0, "striped: stripe count (0 = auto)")
	fs.Int("growth", 2, "striped: growth factor")
	fs.Float64("load-factor", 1.25, "striped: maximum load factor")
	fs.String("locking", "rwmutex", "striped: stripe lock (rwmutex | mutex)")
	fs.String("hash", "fnv", "striped: hash function (fnv | xx)")

	fs.String("node-lock", "spin", "optimistic: node lock (spin | mutex)")
	fs.Int("max-retries", 0, "optimistic: validation retry budget (0 = default)")

	fs.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
	fs.String("http", ":8080", "serve Prometheus metrics at addr; empty = disabled")
	fs.String("log-level", "info", "log level (debug | info | warn | error)")
	fs.Bool("log-dev", false, "human-friendly development logging")
	return fs
}

// loadConfig parses args and layers env and an optional config file under
// the flags.
func loadConfig(args []string) (config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return config{}, err
	}
	v.SetEnvPrefix("SETBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	c := config{
		Set:         v.GetString("set"),
		Workers:     v.GetInt("workers"),
		Duration:    v.GetDuration("duration"),
		Reads:       v.GetInt("reads"),
		Keys:        v.GetInt("keys"),
		Seed:        v.GetInt64("seed"),
		Preload:     v.GetInt("preload"),
		Check:       v.GetBool("check"),
		Stripes:     v.GetInt("stripes"),
		Growth:      v.GetInt("growth"),
		LoadFactor:  v.GetFloat64("load-factor"),
		Hash:        v.GetString("hash"),
		MaxRetries:  v.GetInt("max-retries"),
		PprofAddr:   v.GetString("pprof"),
		MetricsAddr: v.GetString("http"),
		LogLevel:    v.GetString("log-level"),
		LogDev:      v.GetBool("log-dev"),
	}

	var ok bool
	if c.Locking, ok = lock.ParseStrategy(v.GetString("locking")); !ok {
		return c, fmt.Errorf("unknown locking %q (use rwmutex or mutex)", v.GetString("locking"))
	}
	if c.NodeLock, ok = optimistic.ParseNodeLock(v.GetString("node-lock")); !ok {
		return c, fmt.Errorf("unknown node lock %q (use spin or mutex)", v.GetString("node-lock"))
	}
	return c, c.validate()
}

func (c *config) validate() error {
	switch c.Set {
	case "striped", "optimistic":
	default:
		return fmt.Errorf("unknown set %q (use striped or optimistic)", c.Set)
	}
	switch c.Hash {
	case "fnv", "xx":
	default:
		return fmt.Errorf("unknown hash %q (use fnv or xx)", c.Hash)
	}
	if c.Reads < 0 || c.Reads > 100 {
		return fmt.Errorf("reads must be in [0..100], got %d", c.Reads)
	}
	if c.Keys <= 0 {
		return fmt.Errorf("keys must be > 0, got %d", c.Keys)
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Preload < 0 {
		c.Preload = c.Keys / 2
	}
	return nil
}
