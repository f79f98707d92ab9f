// Command quoterd runs the quoting loop for one market: it streams mid
// price snapshots from the venue feed, decides quotes, and submits
// cancel-all-and-replace batches.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"deriv-maker-go/config"
	"deriv-maker-go/gateway"
	"deriv-maker-go/infrastructure/alert"
	"deriv-maker-go/infrastructure/logger"
	"deriv-maker-go/internal/app"
	"deriv-maker-go/inventory"
	"deriv-maker-go/metrics"
	"deriv-maker-go/store"
	"deriv-maker-go/strategy"
)

const (
	reloadCooldown  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	flag.Parse()

	// Deploy secrets (store DSN, subaccount) ride in through .env.
	_ = godotenv.Load()

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Feed.URL == "" {
		log.Fatalf("feed.url is required to run quoterd")
	}

	zlog, err := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputFile: cfg.Logging.OutputFile,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var paramsStore *store.ParamsStore
	if cfg.Store.Enabled {
		paramsStore, err = store.Connect(ctx, cfg.Store.DSN)
		if err != nil {
			zlog.Fatal("connect params store", zap.Error(err))
		}
		defer paramsStore.Close()

		// A persisted row outranks the file: it holds the last params an
		// operator applied at runtime.
		rec, err := paramsStore.Load(ctx, cfg.Market.ID)
		switch {
		case err == nil:
			cfg.Risk = rec.Risk
			zlog.Info("risk params restored from store",
				zap.String("market_id", cfg.Market.ID),
				zap.Time("updated_at", rec.UpdatedAt))
		case errors.Is(err, store.ErrNotFound):
		default:
			zlog.Fatal("load persisted params", zap.Error(err))
		}
	}

	params, err := cfg.RiskParams()
	if err != nil {
		zlog.Fatal("parse risk params", zap.Error(err))
	}
	constraints, err := cfg.Constraints()
	if err != nil {
		zlog.Fatal("parse market constraints", zap.Error(err))
	}
	engine, err := strategy.New(cfg.Market.ID, params)
	if err != nil {
		zlog.Fatal("build engine", zap.Error(err))
	}

	collector := metrics.New(metrics.DefaultConfig())
	var metricsSrv *http.Server
	if cfg.Metrics.ListenAddr != "" {
		metricsSrv = metrics.StartServer(cfg.Metrics.ListenAddr, collector)
		zlog.Info("metrics listening", zap.String("addr", cfg.Metrics.ListenAddr))
	}

	identity := gateway.Account{
		SubaccountID: cfg.Market.SubaccountID,
		FeeRecipient: cfg.Market.FeeRecipient,
	}
	venue, account, err := buildVenue(cfg, identity)
	if err != nil {
		zlog.Fatal("build venue", zap.Error(err))
	}
	zlog.Info("venue ready",
		zap.String("mode", cfg.Venue.Mode),
		zap.String("market_id", cfg.Market.ID))

	feed := gateway.NewFeed(gateway.FeedConfig{
		URL:              cfg.Feed.URL,
		MarketID:         cfg.Market.ID,
		PingInterval:     time.Duration(cfg.Feed.PingIntervalMs) * time.Millisecond,
		ReadTimeout:      time.Duration(cfg.Feed.ReadTimeoutMs) * time.Millisecond,
		VolatilityWindow: cfg.Feed.VolatilityWindow,
	}, zlog.Logger)
	feed.OnReconnect = collector.RecordFeedReconnect

	channels := []alert.Channel{alert.NewLogChannel(zlog.Logger)}
	if cfg.Alert.WebhookURL != "" {
		channels = append(channels, alert.NewWebhookChannel(cfg.Alert.WebhookURL))
	}
	notifier := alert.NewNotifier(channels,
		time.Duration(cfg.Alert.ThrottleSeconds)*time.Second, zlog.Logger)

	loop, err := app.New(app.Config{MarketID: cfg.Market.ID}, app.Components{
		Engine:      engine,
		Venue:       venue,
		Account:     account,
		Limiter:     gateway.NewSubmitLimiter(cfg.Venue.SubmitRate, cfg.Venue.SubmitBurst),
		Collector:   collector,
		Logger:      zlog,
		Store:       paramsStore,
		Alerts:      notifier,
		Identity:    identity,
		Constraints: constraints,
	})
	if err != nil {
		zlog.Fatal("assemble quoting loop", zap.Error(err))
	}

	watcher, err := config.NewWatcher(*cfgPath, reloadCooldown)
	if err != nil {
		zlog.Fatal("init config watcher", zap.Error(err))
	}
	err = watcher.Start(ctx,
		func(updated config.AppConfig) {
			if err := loop.ApplyRiskConfig(ctx, updated.Risk); err != nil {
				zlog.Warn("config reload rejected", zap.Error(err))
				notifier.Warn(ctx, "config reload rejected", cfg.Market.ID,
					map[string]string{"error": err.Error()})
			}
		},
		func(err error) {
			zlog.Warn("config watch error", zap.Error(err))
		})
	if err != nil {
		zlog.Fatal("watch config file", zap.Error(err))
	}

	var lifecycle conc.WaitGroup
	lifecycle.Go(func() {
		if err := feed.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zlog.Error("feed stopped", zap.Error(err))
			cancel()
		}
	})
	lifecycle.Go(func() {
		if err := loop.Run(ctx, feed.Snapshots()); err != nil && !errors.Is(err, context.Canceled) {
			zlog.Error("quoting loop stopped", zap.Error(err))
			cancel()
		}
	})

	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		zlog.Warn("sd_notify ready failed", zap.Error(err))
	}
	zlog.Info("quoterd started", zap.String("market_id", cfg.Market.ID))

	<-ctx.Done()
	zlog.Info("shutdown signal received")
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	if err := watcher.Stop(); err != nil {
		zlog.Warn("stop config watcher", zap.Error(err))
	}
	lifecycle.Wait()

	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			zlog.Warn("metrics server shutdown", zap.Error(err))
		}
		shutdownCancel()
	}

	stats := loop.Stats()
	zlog.Info("quoterd stopped",
		zap.Int64("decisions", stats.Decisions),
		zap.Int64("replaces", stats.Replaces),
		zap.Int64("holds", stats.Holds),
		zap.Int64("errors", stats.Errors))
}

// buildVenue wires the execution side for the configured mode. In live
// mode the REST venue also serves account state; paper mode runs
// against an in-memory book funded from venue.paperDeposit.
func buildVenue(cfg config.AppConfig, identity gateway.Account) (gateway.Venue, gateway.AccountSource, error) {
	switch cfg.Venue.Mode {
	case "live":
		rest := &gateway.RESTVenue{
			BaseURL:    cfg.Venue.Endpoint,
			Account:    identity,
			HTTPClient: gateway.NewDefaultHTTPClient(),
		}
		return rest, rest, nil
	case "paper":
		deposit := decimal.NewFromInt(10_000)
		if cfg.Venue.PaperDeposit != "" {
			var err error
			deposit, err = decimal.NewFromString(cfg.Venue.PaperDeposit)
			if err != nil {
				return nil, nil, err
			}
		}
		account := gateway.NewStaticAccount(inventory.Deposit{
			AvailableBalance: deposit,
			TotalBalance:     deposit,
		})
		return gateway.NewPaperVenue(), account, nil
	default:
		return nil, nil, errors.New("venue.mode must be paper or live")
	}
}
