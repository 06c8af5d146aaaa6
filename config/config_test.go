package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range Keys {
		key := key
		if value, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileThenEnvironment(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	contents := "SRBREAK_VARIANT=norm-buggy\nSRBREAK_VALIDATE_READS=64\nSRBREAK_SEED=0x2a\nUNRELATED=1\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	t.Setenv("SRBREAK_VALIDATE_READS", "5")
	t.Setenv("SRBREAK_FRAMES_DIR", "frames")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "norm-buggy", cfg.Variant)
	assert.Equal(t, 5, cfg.ValidateReads)
	assert.Equal(t, "0x2a", cfg.Seed)
	assert.Equal(t, "frames", cfg.FramesDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8, cfg.FrameEvery)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("SRBREAK_FRAME_EVERY", "often")

	_, err := Load("")
	assert.Error(t, err)
}
