package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_watchlist/internal/app/di"
	"stock_watchlist/internal/app/router"
	watchlisthandler "stock_watchlist/internal/feature/watchlist/transport/handler"
	"stock_watchlist/internal/feature/watchlist/transport/realtime"
	"stock_watchlist/internal/feature/watchlist/usecase"
	infradb "stock_watchlist/internal/platform/db"
	"stock_watchlist/internal/platform/logging"
	infraredis "stock_watchlist/internal/platform/redis"
	"stock_watchlist/internal/platform/ws"
)

const (
	defaultAddr     = ":8080"
	initialLoadWait = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	// .envを読み込む
	envErr := godotenv.Load(".env")
	slog.SetDefault(logging.NewLoggerFromEnv())
	if envErr != nil {
		slog.Info(".env not found; using system environment variables")
	}

	if err := run(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		return err
	}

	// Redis
	var rdb *redisv9.Client
	if cfg := infraredis.LoadConfig(); cfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Usecase
	market := di.NewMarket(rdb)
	uc, err := di.NewWatchlist(market, di.NewSelectionRepository(rdb, db))
	if err != nil {
		return err
	}

	// 状態変更をWebSocketへ配信
	hub := ws.NewHub()
	broadcaster := realtime.NewBroadcaster(hub, uc)
	if err := uc.Store().RegisterListener(broadcaster); err != nil {
		return err
	}
	hub.OnConnect(broadcaster.Welcome)
	go hub.Run(ctx)

	go initialLoad(ctx, uc)

	// ルータ生成
	routerCfg := router.LoadConfig()
	// JWT_SECRETチェック（開発中の注意喚起）
	if routerCfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Mutating routes are unauthenticated.")
	}
	r := router.NewRouter(routerCfg, watchlisthandler.NewWatchlistHandler(uc), hub)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = defaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// initialLoad は起動時に追跡銘柄と銘柄一覧を読み込みます。失敗してもサーバーは起動を続けます。
func initialLoad(ctx context.Context, uc *usecase.WatchlistUsecase) {
	ctx, cancel := context.WithTimeout(ctx, initialLoadWait)
	defer cancel()

	if err := uc.ReloadTrackedStocks(ctx); err != nil {
		slog.Error("initial load of tracked stocks failed", "error", err)
	}
	if err := uc.ReloadAvailableSymbols(ctx, false); err != nil {
		slog.Error("initial load of available symbols failed", "error", err)
	}
}
