package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloadsWave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wave.toml")
	require.NoError(t, os.WriteFile(path, []byte("[wave]\namplitude = 1.0\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var latest *Config
	require.NoError(t, Watch(ctx, path, func(c *Config) {
		mu.Lock()
		defer mu.Unlock()
		latest = c
	}))

	require.NoError(t, os.WriteFile(path, []byte("[wave]\namplitude = 3.5\nfrequency = 0.25\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return latest != nil && latest.Wave.Amplitude == 3.5
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, float32(0.25), latest.Wave.Frequency)
}

func TestWatchSkipsInvalidAndOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wave.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wave:\n  amplitude: 1\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var amplitudes []float32
	require.NoError(t, Watch(ctx, path, func(c *Config) {
		mu.Lock()
		defer mu.Unlock()
		amplitudes = append(amplitudes, c.Wave.Amplitude)
	}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("wave:\n  amplitude: 9\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("wave: [not, a, map]\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("wave:\n  amplitude: 4\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(amplitudes) > 0 && amplitudes[len(amplitudes)-1] == 4
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.NotContains(t, amplitudes, float32(9))
}

func TestWatchUnsupportedFormat(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "wave.ini"), func(*Config) {})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
