package server

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	xhttp "DivYield/pkg/http"

	"github.com/prometheus/client_golang/prometheus"
)

type pruneCounter struct{ n int32 }

func (p *pruneCounter) Prune() { atomic.AddInt32(&p.n, 1) }

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestAppServesUntilCancelled(t *testing.T) {
	port := freePort(t)
	srv := xhttp.NewServer(nil,
		xhttp.WithHost("127.0.0.1"),
		xhttp.WithPort(port),
		xhttp.WithRegistry(prometheus.NewRegistry()),
	)
	pruner := &pruneCounter{}
	app := New(nil, srv)
	app.SetPruner(pruner, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	var healthy bool
	for i := 0; i < 100 && !healthy; i++ {
		resp, err := http.Get("http://" + srv.Addr() + "/health")
		if err == nil {
			healthy = resp.StatusCode == http.StatusOK
			resp.Body.Close()
		}
		if !healthy {
			time.Sleep(10 * time.Millisecond)
		}
	}
	if !healthy {
		t.Fatalf("server never became healthy")
	}

	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("app did not stop")
	}
	if atomic.LoadInt32(&pruner.n) == 0 {
		t.Fatalf("pruner never ran")
	}
}
