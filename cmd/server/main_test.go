package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setServerEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "0")
	t.Setenv("DATABASE_URL", "sqlite:///"+filepath.Join(t.TempDir(), "db.sqlite3"))
	t.Setenv("MEDIA_ROOT", t.TempDir())
	t.Setenv("STATIC_ROOT", t.TempDir())
	t.Setenv("AWS_STORAGE_BUCKET_NAME", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non numeric port", key: "PORT", value: "not-a-port"},
		{name: "unknown log level", key: "LOG_LEVEL", value: "bogus"},
		{name: "unsupported database scheme", key: "DATABASE_URL", value: "ftp://db.example.com/notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setServerEnv(t)
			t.Setenv(tt.key, tt.value)

			err := run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to load configuration")
		})
	}
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	setServerEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
