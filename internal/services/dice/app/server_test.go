package app

import (
	"context"
	"testing"
	"time"

	"github.com/louisbranch/dicebag/internal/core/roller"
	"google.golang.org/grpc/test/bufconn"
)

func TestServeStopsWhenContextEnds(t *testing.T) {
	server := NewWithListener(bufconn.Listen(1024), roller.New())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestNewRejectsBadAddress(t *testing.T) {
	if _, err := New("not-an-address", nil); err == nil {
		t.Fatal("expected listen error")
	}
}

func TestAddr(t *testing.T) {
	var nilServer *Server
	if nilServer.Addr() != "" {
		t.Fatal("expected empty addr for nil server")
	}

	server, err := New("127.0.0.1:0", nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer server.listener.Close()
	if server.Addr() == "" {
		t.Fatal("expected listener address")
	}
}
