package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("parses level", func(t *testing.T) {
		log, err := New(Config{Level: "debug", Console: true})
		require.NoError(t, err)
		defer log.Close()

		assert.Equal(t, zerolog.DebugLevel, log.GetZerolog().GetLevel())
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		log, err := New(Config{Level: "chatty", Console: true})
		require.NoError(t, err)
		defer log.Close()

		assert.Equal(t, zerolog.InfoLevel, log.GetZerolog().GetLevel())
	})

	t.Run("creates log file and directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "dzapprove.log")

		log, err := New(Config{Level: "info", File: path})
		require.NoError(t, err)

		log.Info().Msg("started")
		require.NoError(t, log.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "started")
	})

	t.Run("component logger carries field", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dzapprove.log")

		log, err := New(Config{Level: "info", File: path})
		require.NoError(t, err)

		sweepLog := log.WithComponent("sweep")
		sweepLog.Info().Msg("hello")
		require.NoError(t, log.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"component":"sweep"`)
	})
}
