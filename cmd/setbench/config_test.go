package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/concset/lock"
	"github.com/IvanBrykalov/concset/optimistic"
)

func TestLoadConfig_Flags(t *testing.T) {
	c, err := loadConfig([]string{
		"--set=optimistic", "--workers=3", "--duration=2s", "--keys=10",
		"--node-lock=mutex", "--locking=mutex",
	})
	require.NoError(t, err)
	require.Equal(t, "optimistic", c.Set)
	require.Equal(t, 3, c.Workers)
	require.Equal(t, 2*time.Second, c.Duration)
	require.Equal(t, 5, c.Preload, "preload defaults to keys/2")
	require.Equal(t, optimistic.MutexLocks, c.NodeLock)
	require.Equal(t, lock.Mutex, c.Locking)
}

func TestLoadConfig_EnvAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keys: 42\nreads: 10\n"), 0o600))

	t.Setenv("SETBENCH_LOAD_FACTOR", "2.5")

	c, err := loadConfig([]string{"--config=" + path, "--reads=30"})
	require.NoError(t, err)
	require.Equal(t, 42, c.Keys, "from file")
	require.Equal(t, 30, c.Reads, "flag beats file")
	require.InDelta(t, 2.5, c.LoadFactor, 1e-9, "from env")
}

func TestLoadConfig_Invalid(t *testing.T) {
	for _, args := range [][]string{
		{"--set=btree"},
		{"--reads=101"},
		{"--keys=0"},
		{"--hash=md5"},
		{"--locking=spin"},
		{"--node-lock=rw"},
	} {
		_, err := loadConfig(args)
		require.Error(t, err, "args %v", args)
	}
}
