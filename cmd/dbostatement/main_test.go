package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/dbostatement/config"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestParseFlags(t *testing.T) {
	cfg := config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Ingest: config.IngestConfig{Dir: "/srv/exports", Parallel: 2},
	}

	cases := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{
			name: "defaults from config",
			want: options{mode: "ingest", dir: "/srv/exports", parallel: 2, port: "8080"},
		},
		{
			name: "flags override",
			args: []string{"--mode", "api", "--port", "9090", "--dir", "in", "--parallel", "4", "--force"},
			want: options{mode: "api", dir: "in", parallel: 4, force: true, port: "9090"},
		},
		{name: "unknown mode", args: []string{"--mode", "export"}, wantErr: true},
		{name: "negative parallel", args: []string{"--parallel", "-1"}, wantErr: true},
		{name: "unknown flag", args: []string{"--days", "7"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseFlags(tc.args, cfg, io.Discard)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Fatalf("got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestRunIngest_DBUnavailable(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{Postgres: config.PostgresConfig{URL: "postgres://x:y@127.0.0.1:54329/z?sslmode=disable"}}

	if err := runIngest(context.Background(), options{dir: t.TempDir()}); err == nil {
		t.Fatalf("expected connection error")
	}
}

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	time.Sleep(50 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{}, 1)
	go func() {
		gracefulShutdown(context.Background(), srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}
