// Command alertcheck loads the saved watch-list once, evaluates its alerts and prints the
// result as JSON. It exits with status 2 when at least one alert threshold was reached.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_watchlist/internal/app/di"
	"stock_watchlist/internal/feature/watchlist/transport/http/dto"
	"stock_watchlist/internal/feature/watchlist/usecase"
	infradb "stock_watchlist/internal/platform/db"
	"stock_watchlist/internal/platform/logging"
	infraredis "stock_watchlist/internal/platform/redis"
)

const (
	exitError    = 1
	exitBreached = 2
)

func main() {
	_ = godotenv.Load(".env")
	slog.SetDefault(logging.NewLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stderr))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	code := check(ctx)
	cancel()
	os.Exit(code)
}

func check(ctx context.Context) int {
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		return exitError
	}

	var rdb *redisv9.Client
	if cfg := infraredis.LoadConfig(); cfg.Enabled() {
		if rdb, err = infraredis.NewRedisClient(ctx, cfg); err != nil {
			slog.Warn("Redis unavailable. Reading selections from the database.", "error", err)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	market := di.NewMarket(rdb)
	// 一度きりの評価なので設定の保存リスナーは登録しない
	uc := usecase.NewWatchlistUsecase(usecase.NewStore(usecase.NewSingleStockLoader(market)), market, di.NewSelectionRepository(rdb, db))
	if err := uc.ReloadTrackedStocks(ctx); err != nil {
		slog.Error("failed to load tracked stocks", "error", err)
		return exitError
	}

	result, ok := uc.Alerts().Value()
	if !ok {
		slog.Error("alerts are not available")
		return exitError
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.NewAlertsResult(result)); err != nil {
		slog.Error("failed to write result", "error", err)
		return exitError
	}
	if result.HasBreaches() {
		return exitBreached
	}
	return 0
}
