package worker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/cloudflare/tableflip"
	"github.com/pires/go-proxyproto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/realDragonium/picocraft/config"
)

// RunServer reads the config at configPath and serves until the process gets
// interrupted. With hot swapping enabled a SIGHUP starts a new process that
// takes over the listener, this one finishes its open sessions and exits.
func RunServer(configPath string) error {
	cfg, err := config.ReadServerConfig(configPath)
	if err != nil {
		return err
	}
	if err := config.VerifyConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	config.SetupLogger(cfg.Log)
	logger := config.ComponentLogger("server")

	payload, err := cfg.Status.Payload(configDir(cfg))
	if err != nil {
		return err
	}
	status := NewStatusHolder(payload)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var upg *tableflip.Upgrader
	if cfg.EnableHotSwap && runtime.GOOS != "windows" {
		upg, err = newUpgrader(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer upg.Stop()
	}

	wCfg := config.NewWorkerConfig(cfg)
	ln, err := createListener(cfg, wCfg.IdleTimeout, upg)
	if err != nil {
		return err
	}

	pool := NewBufferPool(cfg.MaxConnections, cfg.BufferSize)
	server := NewServer(pool, DefaultTable(wCfg.MaxAddressLength), status, wCfg)
	server.UseLimiter(NewConnLimiter(cfg))

	statusReader := config.NewStatusFileReader(cfg.FilePath)
	reload := func() error {
		if err := status.Reload(statusReader); err != nil {
			return err
		}
		logger.Info().Msg("status reloaded")
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.Serve(gctx, ln)
		logger.Info().Msg("waiting for open sessions to end")
		server.Wait()
		cancel()
		return err
	})

	if cfg.UsePrometheus {
		logger.Info().Str("bind", cfg.PrometheusBind).Msg("starting prometheus")
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		g.Go(func() error {
			return serveHTTP(gctx, cfg.PrometheusBind, mux)
		})
	}

	if cfg.APIBind != "" {
		logger.Info().Str("bind", cfg.APIBind).Msg("starting api endpoint")
		api := NewAPI(reload, status)
		g.Go(func() error {
			return api.Run(gctx, cfg.APIBind)
		})
	}

	if cfg.WatchConfig && cfg.FilePath != "" {
		watcher := config.NewWatcher(cfg.FilePath, config.DefaultDebounce, func() {
			if err := reload(); err != nil {
				logger.Warn().Err(err).Msg("config changed but reloading the status failed")
			}
		})
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	if upg != nil {
		if err := upg.Ready(); err != nil {
			cancel()
			g.Wait()
			return err
		}
		g.Go(func() error {
			select {
			case <-upg.Exit():
				logger.Info().Msg("new process took over, closing listener")
				ln.Close()
			case <-gctx.Done():
			}
			return nil
		})
	}

	logger.Info().
		Str("listen", ln.Addr().String()).
		Int("slots", pool.Size()).
		Dur("idleTimeout", wCfg.IdleTimeout).
		Msg("finished starting up")

	return g.Wait()
}

func configDir(cfg config.ServerConfig) string {
	if cfg.FilePath == "" {
		return ""
	}
	return filepath.Dir(cfg.FilePath)
}

func newUpgrader(ctx context.Context, cfg config.ServerConfig, logger zerolog.Logger) (*tableflip.Upgrader, error) {
	upg, err := tableflip.New(tableflip.Options{
		PIDFile: cfg.PidFile,
	})
	if err != nil {
		return nil, err
	}
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGHUP)
		defer signal.Stop(sig)
		for {
			select {
			case <-sig:
				if err := upg.Upgrade(); err != nil {
					logger.Error().Err(err).Msg("upgrade failed")
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return upg, nil
}

const defaultProxyHeaderTimeout = 10 * time.Second

func createListener(cfg config.ServerConfig, headerTimeout time.Duration, upg *tableflip.Upgrader) (net.Listener, error) {
	var ln net.Listener
	var err error
	if upg != nil {
		ln, err = upg.Listen("tcp", cfg.ListenTo)
	} else {
		ln, err = net.Listen("tcp", cfg.ListenTo)
	}
	if err != nil {
		return nil, fmt.Errorf("can't listen on %s: %w", cfg.ListenTo, err)
	}

	if cfg.AcceptProxyProtocol {
		return NewProxyListener(ln, headerTimeout), nil
	}
	return ln, nil
}

// NewProxyListener requires a PROXY protocol header on every connection. A
// client gets headerTimeout to send it, zero falls back to
// defaultProxyHeaderTimeout.
func NewProxyListener(ln net.Listener, headerTimeout time.Duration) net.Listener {
	if headerTimeout <= 0 {
		headerTimeout = defaultProxyHeaderTimeout
	}
	policyFunc := func(upstream net.Addr) (proxyproto.Policy, error) {
		return proxyproto.REQUIRE, nil
	}
	return &proxyproto.Listener{
		Listener:          ln,
		Policy:            policyFunc,
		ReadHeaderTimeout: headerTimeout,
	}
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	stop := context.AfterFunc(ctx, func() {
		srv.Close()
	})
	defer stop()

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
