package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tests := []struct {
		name string
		url  string
	}{
		{name: "invalid connection string", url: "invalid://connection"},
		{name: "unreachable host", url: "postgres://localhost:59999/household?connect_timeout=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := Connect(ctx, tt.url)
			require.Error(t, err)
			require.Nil(t, pool)
		})
	}

	t.Run("installs query tracer", func(t *testing.T) {
		pool := TestDB(t)
		require.NotNil(t, pool.Config().ConnConfig.Tracer)
	})
}
