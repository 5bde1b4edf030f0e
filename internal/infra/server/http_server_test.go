package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/Miraines/MoonyAndStarry/todo-service/internal/infra/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServe_GracefulShutdown(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, lis, &config.Config{}, handler, zap.NewNop()) }()

	resp, err := http.Get("http://" + lis.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServe_TLSFilesMissing(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := &config.Config{HTTPSCertFile: "/nonexistent/cert.pem", HTTPSKeyFile: "/nonexistent/key.pem"}
	err = Serve(context.Background(), lis, cfg, http.NotFoundHandler(), zap.NewNop())
	require.Error(t, err)
}

func TestStartHTTPServer_BadAddress(t *testing.T) {
	cfg := &config.Config{HTTPAddress: "not-an-address"}
	require.Error(t, StartHTTPServer(context.Background(), cfg, http.NotFoundHandler(), zap.NewNop()))
}
