package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/d4rken/cwa-app-android/internal/admission"
	"github.com/d4rken/cwa-app-android/internal/ccl/ruleset"
	"github.com/d4rken/cwa-app-android/internal/certificates"
	"github.com/d4rken/cwa-app-android/internal/checkin"
	checkinMetrics "github.com/d4rken/cwa-app-android/internal/checkin/metrics"
	checkinStore "github.com/d4rken/cwa-app-android/internal/checkin/store"
	"github.com/d4rken/cwa-app-android/internal/notification"
	"github.com/d4rken/cwa-app-android/internal/platform/apitoken"
	"github.com/d4rken/cwa-app-android/internal/platform/config"
	"github.com/d4rken/cwa-app-android/internal/platform/httpserver"
	"github.com/d4rken/cwa-app-android/internal/platform/logger"
	"github.com/d4rken/cwa-app-android/internal/platform/metrics"
	"github.com/d4rken/cwa-app-android/internal/platform/redis"
	"github.com/d4rken/cwa-app-android/internal/settings"
	settingsStore "github.com/d4rken/cwa-app-android/internal/settings/store"
	"github.com/d4rken/cwa-app-android/internal/testresult"
	"github.com/d4rken/cwa-app-android/internal/testresult/client"
	testresultMetrics "github.com/d4rken/cwa-app-android/internal/testresult/metrics"
	testresultModels "github.com/d4rken/cwa-app-android/internal/testresult/models"
	"github.com/d4rken/cwa-app-android/internal/testresult/scheduler"
	httptransport "github.com/d4rken/cwa-app-android/internal/transport/http"
	"github.com/d4rken/cwa-app-android/internal/wallet"
	walletMetrics "github.com/d4rken/cwa-app-android/internal/wallet/metrics"
	"github.com/d4rken/cwa-app-android/pkg/platform/circuit"
)

const shutdownTimeout = 10 * time.Second

// main wires the components, starts the background loops and serves the
// trigger API until SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogJSON)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	backend, closeBackend, err := openSettings(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeBackend.Close(); err != nil {
			log.Warn("closing settings backend", "error", err)
		}
	}()
	log.Info("settings backend ready", "backend", cfg.Settings.Backend)

	// Rule configuration and admission scenarios.
	rules, err := ruleset.New(backend, ruleset.WithLogger(log))
	if err != nil {
		return err
	}
	if err := rules.Load(ctx); err != nil {
		return err
	}
	scenarios, err := admission.New(backend, admission.WithLogger(log))
	if err != nil {
		return err
	}
	certs := certificates.NewInMemoryRepository()

	// Wallet.
	engine := wallet.NewEngine(
		wallet.WithLogger(log),
		wallet.WithMetrics(walletMetrics.New()),
		wallet.WithLanguage(cfg.Wallet.Language),
	)
	walletService, err := wallet.NewService(engine, certs, rules, scenarios,
		wallet.WithParallelism(cfg.Wallet.Parallelism))
	if err != nil {
		return err
	}

	// Check-ins.
	checkIns, err := checkinStore.New(ctx, backend, checkinStore.WithLogger(log))
	if err != nil {
		return err
	}
	checkInManager, err := checkin.New(checkIns,
		checkin.WithLogger(log),
		checkin.WithMetrics(checkinMetrics.New()),
		checkin.WithTick(cfg.CheckIn.Tick),
	)
	if err != nil {
		return err
	}

	// Test result polling. The scheduler and the worker reference each other:
	// the worker arms and stops the schedule, the schedule runs the worker.
	polling, err := testresult.NewPollingSettings(backend)
	if err != nil {
		return err
	}
	verification, err := client.NewVerificationServer(cfg.Polling.VerificationServerURL,
		client.WithTimeout(cfg.Polling.RequestTimeout),
		client.WithBreaker(circuit.New("verification-server")),
		client.WithLogger(log),
	)
	if err != nil {
		return err
	}
	var worker *testresult.Worker
	periodic := scheduler.New(
		func(ctx context.Context, attempt int) (testresultModels.Outcome, error) {
			return worker.RunOnce(ctx, attempt)
		},
		scheduler.WithLogger(log),
		scheduler.WithInterval(cfg.Polling.Interval),
		scheduler.WithBackoff(cfg.Polling.BackoffInitial, cfg.Polling.BackoffMax),
	)
	defer periodic.Close()
	worker, err = testresult.New(polling, verification, notification.NewCenter(notification.WithLogger(log)), periodic,
		testresult.WithLogger(log),
		testresult.WithMetrics(testresultMetrics.New()),
		testresult.WithRetryThreshold(cfg.Polling.RetryThreshold),
		testresult.WithMaxPollingDays(cfg.Polling.MaxDays),
	)
	if err != nil {
		return err
	}
	state, err := worker.State(ctx)
	if err != nil {
		return fmt.Errorf("read polling state: %w", err)
	}
	if state.HasRegistrationToken && !state.InitialPollingTimestamp.IsZero() {
		periodic.SchedulePeriodic()
		log.Info("resumed test result polling", "since", state.InitialPollingTimestamp)
	}

	var routerOpts []httptransport.RouterOption
	if cfg.APITokenSecret != "" {
		tokens, err := apitoken.New(cfg.APITokenSecret)
		if err != nil {
			return err
		}
		routerOpts = append(routerOpts, httptransport.WithTokenValidator(tokens))
	} else {
		log.Warn("trigger API accepts unauthenticated mutations; set CWA_API_TOKEN_SECRET to require tokens")
	}
	router := httptransport.NewRouter(log, metrics.New(), []httptransport.Registrar{
		httptransport.NewWalletHandler(walletService, certs, log),
		httptransport.NewCCLHandler(rules, scenarios, log),
		httptransport.NewCheckInHandler(checkInManager, log),
		httptransport.NewSubmissionHandler(worker, polling, log),
	}, routerOpts...)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ignoreCanceled(walletService.Watch(gctx))
	})
	g.Go(func() error {
		return ignoreCanceled(checkInManager.Run(gctx))
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case err := <-checkInManager.Errors():
				log.Warn("check-in error", "error", err)
			}
		}
	})
	g.Go(func() error {
		log.Info("starting trigger API", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openSettings opens the configured backend. The returned closer releases it.
func openSettings(ctx context.Context, cfg config.Config) (settings.Store, io.Closer, error) {
	switch cfg.Settings.Backend {
	case config.SettingsMemory:
		return settingsStore.NewInMemoryStore(), closerFunc(func() error { return nil }), nil
	case config.SettingsSQLite:
		s, err := settingsStore.OpenSQLite(cfg.Settings.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.SettingsRedis:
		rc, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return settingsStore.NewRedis(rc.Client), rc, nil
	case config.SettingsPostgres:
		s, err := settingsStore.OpenPostgres(ctx, cfg.Settings.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown settings backend %q", cfg.Settings.Backend)
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
