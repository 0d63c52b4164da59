package serve

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tasktracker/internal/api"
	"github.com/thenoetrevino/tasktracker/internal/app"
	"github.com/thenoetrevino/tasktracker/internal/config"
	"github.com/thenoetrevino/tasktracker/internal/logging"
	"github.com/thenoetrevino/tasktracker/internal/testutil"
)

func TestServer_ServesUntilCancelled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	a, err := app.New(testutil.SetupTestRepo(t), app.WithLogger(logging.Discard()))
	require.NoError(t, err)
	router, err := api.NewRouter(a, api.NewMetrics())
	require.NoError(t, err)

	cfg := config.Default().Server
	cfg.Addr = "127.0.0.1:0"
	server, err := NewServer(cfg, router, logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Start(ctx) }()

	resp, err := http.Get("http://" + server.Addr().String() + "/healthz")
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestNewServer_AddressInUse(t *testing.T) {
	cfg := config.Default().Server
	cfg.Addr = "127.0.0.1:0"
	first, err := NewServer(cfg, http.NotFoundHandler(), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.listener.Close() })

	cfg.Addr = first.Addr().String()
	_, err = NewServer(cfg, http.NotFoundHandler(), logging.Discard())
	assert.Error(t, err)
}
