package worker_test

import (
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/realDragonium/picocraft/config"
	"github.com/realDragonium/picocraft/worker"
)

var testAddr = &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 40000}

func TestAbsoluteConnLimiter_DeniesWhenLimitIsReached(t *testing.T) {
	tt := []struct {
		limit    int
		cooldown time.Duration
	}{
		{limit: 1, cooldown: time.Minute},
		{limit: 3, cooldown: time.Minute},
	}

	for _, tc := range tt {
		name := fmt.Sprintf("limit: %v, cooldown: %v", tc.limit, tc.cooldown)
		t.Run(name, func(t *testing.T) {
			limiter := worker.NewAbsConnLimiter(tc.limit, tc.cooldown)

			for i := 0; i < tc.limit; i++ {
				if !limiter.Allow(testAddr) {
					t.Error("expected ok to be true but its false")
				}
			}
			if limiter.Allow(testAddr) {
				t.Error("expected ok to be false but its true")
			}
		})
	}
}

func TestAbsoluteConnLimiter_AllowsNewConnectionsAfterCooldown(t *testing.T) {
	limit := 5
	cooldown := time.Millisecond
	limiter := worker.NewAbsConnLimiter(limit, cooldown)

	for i := 0; i < limit+1; i++ {
		limiter.Allow(testAddr)
	}

	time.Sleep(2 * cooldown)
	if !limiter.Allow(testAddr) {
		t.Error("expected ok to be true but its false")
	}
}

func TestNewConnLimiter(t *testing.T) {
	cfg := config.DefaultServerConfig()
	if _, ok := worker.NewConnLimiter(cfg).(worker.AlwaysAllowConnection); !ok {
		t.Error("a rate limit of zero should not limit anything")
	}

	cfg.RateLimit = 1
	cfg.RateCooldown = "1m"
	limiter := worker.NewConnLimiter(cfg)
	if !limiter.Allow(testAddr) || limiter.Allow(testAddr) {
		t.Error("expected exactly one connection to be allowed")
	}
}

func TestServer_RateLimited(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	server := worker.NewServer(
		worker.NewBufferPool(2, 1024),
		worker.DefaultTable(255),
		worker.NewStatusHolder(defaultStatus()),
		config.DefaultWorkerConfig(),
	)
	server.UseLimiter(worker.NewAbsConnLimiter(1, time.Minute))

	ctx, cancel := contextWithCleanup(t)
	go server.Serve(ctx, ln)
	defer func() {
		cancel()
		server.Wait()
	}()

	if _, err := ping(t, ln.Addr().String(), time.Second); err != nil {
		t.Fatalf("first connection should be served: %v", err)
	}
	if _, err := ping(t, ln.Addr().String(), time.Second); err == nil {
		t.Error("second connection should have been dropped")
	}
}
