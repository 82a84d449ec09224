package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/dashboard"
	"github.com/ayankousky/btc-dashboard/internal/domain"
	"github.com/ayankousky/btc-dashboard/internal/infrastructure/bootstrap"
	"github.com/ayankousky/btc-dashboard/internal/infrastructure/feeds"
	"github.com/ayankousky/btc-dashboard/internal/infrastructure/markets"
	binanceMarket "github.com/ayankousky/btc-dashboard/internal/infrastructure/markets/binance"
	bybitMarket "github.com/ayankousky/btc-dashboard/internal/infrastructure/markets/bybit"
	okxMarket "github.com/ayankousky/btc-dashboard/internal/infrastructure/markets/okx"
	"github.com/ayankousky/btc-dashboard/internal/infrastructure/notify"
	"github.com/ayankousky/btc-dashboard/internal/infrastructure/repository/memory"
	"github.com/ayankousky/btc-dashboard/internal/infrastructure/repository/mongo"
	"github.com/ayankousky/btc-dashboard/internal/infrastructure/repository/sqlite"
	"github.com/ayankousky/btc-dashboard/internal/infrastructure/telemetry"
	"github.com/ayankousky/btc-dashboard/internal/server"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

// options holds all the configuration options
type options struct {
	Env         string `long:"env" env:"ENV" default:"development" description:"Environment"`
	ServiceName string `long:"service-name" env:"SERVICE_NAME" default:"btc-dashboard" description:"Service name"`

	Server struct {
		Addr string `long:"addr" env:"ADDR" default:":8000" description:"HTTP listen address"`
	} `group:"server" namespace:"server" env-namespace:"SERVER"`

	Market struct {
		Symbol        string        `long:"symbol" env:"SYMBOL" default:"BTCUSDT" description:"Tracked pair"`
		Interval      string        `long:"interval" env:"INTERVAL" default:"15m" description:"Candle interval"`
		CandleLimit   int           `long:"candle-limit" env:"CANDLE_LIMIT" default:"200" description:"Candles per refresh"`
		RefreshPeriod time.Duration `long:"refresh-period" env:"REFRESH_PERIOD" default:"1m" description:"Snapshot refresh period"`
		Live          bool          `long:"live" env:"LIVE" description:"Fold live kline stream into the latest snapshot"`

		Binance struct {
			APIUrl string `long:"api-url" env:"API_URL" description:"Binance API URL"`
			WSUrl  string `long:"ws-url" env:"WS_URL" description:"Binance WebSocket URL"`
			Name   string `long:"name" env:"NAME" description:"Binance name"`
		} `group:"binance" namespace:"binance" env-namespace:"BINANCE"`

		Bybit struct {
			APIUrl string `long:"api-url" env:"API_URL" description:"Bybit API URL"`
			WSUrl  string `long:"ws-url" env:"WS_URL" description:"Bybit WebSocket URL"`
			Name   string `long:"name" env:"NAME" description:"Bybit name"`
		} `group:"bybit" namespace:"bybit" env-namespace:"BYBIT"`

		OKX struct {
			APIUrl string `long:"api-url" env:"API_URL" description:"OKX API URL"`
			WSUrl  string `long:"ws-url" env:"WS_URL" description:"OKX WebSocket URL"`
			Name   string `long:"name" env:"NAME" description:"OKX name"`
		} `group:"okx" namespace:"okx" env-namespace:"OKX"`
	} `group:"market" namespace:"market" env-namespace:"MARKET"`

	Repository struct {
		Mongo struct {
			URL string `long:"url" env:"URL" description:"MongoDB URL"`
		} `group:"mongo" namespace:"mongo" env-namespace:"MONGO"`

		SQLite struct {
			DSN string `long:"dsn" env:"DSN" description:"SQLite DSN (file path or :memory:)"`
		} `group:"sqlite" namespace:"sqlite" env-namespace:"SQLITE"`
	} `group:"repository" namespace:"repository" env-namespace:"REPOSITORY"`

	Notify struct {
		Redis struct {
			URL     string `long:"url" env:"URL" description:"Redis URL"`
			Channel string `long:"channel" env:"CHANNEL" description:"Redis channel (defaults to dashboard:notifications)"`
		} `group:"redis" namespace:"redis" env-namespace:"REDIS"`

		Telegram struct {
			BotToken string `long:"bot-token" env:"BOT_TOKEN" description:"Telegram bot token"`
			ChatID   string `long:"chat-id" env:"CHAT_ID" description:"Telegram chat ID"`
			Interval int    `long:"interval" env:"INTERVAL" description:"Minimum seconds between alerts"`
		} `group:"telegram" namespace:"telegram" env-namespace:"TELEGRAM"`
	} `group:"notify" namespace:"notify" env-namespace:"NOTIFY"`

	Telemetry struct {
		Datadog struct {
			AgentHost string `long:"agent-host" env:"AGENT_HOST" description:"Datadog agent host"`
			AgentPort string `long:"agent-port" env:"AGENT_PORT" default:"8126" description:"Datadog agent port"`
			Metrics   bool   `long:"metrics" env:"METRICS" description:"Enable Datadog metrics"`
			Tracing   bool   `long:"tracing" env:"TRACING" description:"Enable Datadog tracing"`
			Profiling bool   `long:"profiling" env:"PROFILING" description:"Enable Datadog profiling"`
		} `group:"datadog" namespace:"datadog" env-namespace:"DATADOG"`
	} `group:"telemetry" namespace:"telemetry" env-namespace:"TELEMETRY"`

	Sentiment struct {
		Enabled bool   `long:"enabled" env:"ENABLED" description:"Serve the Fear & Greed feed"`
		APIUrl  string `long:"api-url" env:"API_URL" description:"Fear & Greed API URL"`
	} `group:"sentiment" namespace:"sentiment" env-namespace:"SENTIMENT"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		fmt.Printf("Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	logger, _ := bootstrap.NewLogger(opts.Env, opts.ServiceName)
	defer logger.Sync()

	logger.Info("Starting dashboard...")

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("Dashboard exited with error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Exiting...")
}

func run(ctx context.Context, opts options, logger *zap.Logger) error {
	repoFactory, err := getRepositoryFactory(ctx, opts)
	if err != nil {
		return fmt.Errorf("creating repository factory: %w", err)
	}

	source := getSource(opts)

	service, err := dashboard.NewDashboard(source, repoFactory, logger, dashboard.Config{
		Symbol:      opts.Market.Symbol,
		Interval:    domain.Interval(opts.Market.Interval),
		CandleLimit: opts.Market.CandleLimit,
	})
	if err != nil {
		return fmt.Errorf("creating dashboard service: %w", err)
	}

	telemetryProvider := getTelemetry(opts)
	if err := telemetryProvider.Initialize(ctx); err != nil {
		logger.Warn("Telemetry initialization failed", zap.Error(err))
	} else {
		service.WithTelemetry(telemetryProvider)
		defer telemetryProvider.Shutdown()
	}

	addNotifiers(ctx, opts, service, logger)

	if err := service.StartRefreshLoop(ctx, opts.Market.RefreshPeriod); err != nil {
		return fmt.Errorf("starting refresh loop: %w", err)
	}
	if opts.Market.Live {
		if err := service.StartLiveStream(ctx); err != nil {
			logger.Warn("Could not start live stream", zap.Error(err))
		}
	}

	var sentiment server.SentimentFeed
	if opts.Sentiment.Enabled {
		sentiment = feeds.NewFearGreedClient(feeds.FearGreedConfig{APIUrl: opts.Sentiment.APIUrl})
	}

	api, err := server.New(service, sentiment, logger)
	if err != nil {
		return fmt.Errorf("creating HTTP server: %w", err)
	}

	return api.Run(ctx, opts.Server.Addr)
}

// getRepositoryFactory picks the persistence backend; memory is the fallback
func getRepositoryFactory(ctx context.Context, opts options) (dashboard.RepositoryFactory, error) {
	if opts.Repository.Mongo.URL != "" {
		mongoClient, err := bootstrap.NewMongoClient(ctx, opts.Repository.Mongo.URL)
		if err != nil {
			return nil, err
		}
		return mongo.NewMongoRepoFactory(mongoClient)
	}

	if opts.Repository.SQLite.DSN != "" {
		return sqlite.NewSQLiteRepoFactory(opts.Repository.SQLite.DSN)
	}

	return memory.NewInMemoryRepoFactory(), nil
}

// getSource creates the market source selected by the user; Binance is the default
func getSource(opts options) markets.Source {
	if opts.Market.Bybit.Name != "" {
		return bybitMarket.NewBybit(bybitMarket.Config{
			Name:   opts.Market.Bybit.Name,
			APIUrl: opts.Market.Bybit.APIUrl,
			WSUrl:  opts.Market.Bybit.WSUrl,
		})
	}

	if opts.Market.OKX.Name != "" {
		return okxMarket.NewOKX(okxMarket.Config{
			Name:   opts.Market.OKX.Name,
			APIUrl: opts.Market.OKX.APIUrl,
			WSUrl:  opts.Market.OKX.WSUrl,
		})
	}

	return binanceMarket.NewBinance(binanceMarket.Config{
		Name:   opts.Market.Binance.Name,
		APIUrl: opts.Market.Binance.APIUrl,
		WSUrl:  opts.Market.Binance.WSUrl,
	})
}

// getTelemetry returns the Datadog provider when an agent host is configured
func getTelemetry(opts options) telemetry.Provider {
	if opts.Telemetry.Datadog.AgentHost == "" {
		return &telemetry.NoopProvider{}
	}

	return telemetry.NewDatadogProvider(&telemetry.DatadogConfig{
		AgentHost:       opts.Telemetry.Datadog.AgentHost,
		AgentPort:       opts.Telemetry.Datadog.AgentPort,
		ServiceName:     opts.ServiceName,
		ServiceEnv:      opts.Env,
		EnableMetrics:   opts.Telemetry.Datadog.Metrics,
		EnableTracing:   opts.Telemetry.Datadog.Tracing,
		EnableProfiling: opts.Telemetry.Datadog.Profiling,
	})
}

// addNotifiers wires the configured notification channels into the service
func addNotifiers(ctx context.Context, opts options, service *dashboard.Dashboard, logger *zap.Logger) {
	if opts.Notify.Redis.URL != "" {
		redisClient, err := bootstrap.NewRedisClient(ctx, opts.Notify.Redis.URL, 1)
		if err != nil {
			logger.Warn("Failed to initialize Redis notifier", zap.Error(err))
		} else {
			service.WithMarketNotify(notify.NewRedisNotifier(redisClient, opts.Notify.Redis.Channel))
		}
	}

	if opts.Notify.Telegram.BotToken != "" && opts.Notify.Telegram.ChatID != "" {
		tgNotifier, err := notify.NewTelegramNotifier(opts.Notify.Telegram.BotToken, opts.Notify.Telegram.ChatID, opts.Notify.Telegram.Interval)
		if err != nil {
			logger.Warn("Failed to initialize Telegram notifier", zap.Error(err))
		} else {
			service.WithAlertNotify(tgNotifier)
		}
	}
}
