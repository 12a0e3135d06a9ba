// Package router wires HTTP routes to their handlers.
package router

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	watchlisthandler "stock_watchlist/internal/feature/watchlist/transport/handler"
	"stock_watchlist/internal/platform/http/handler"
	jwtmw "stock_watchlist/internal/platform/jwt"
)

// Config holds the router options.
type Config struct {
	// JWTSecret enables bearer authentication on mutating routes when set.
	JWTSecret string
	// AllowedOrigins enables CORS for browser dashboards. Empty disables CORS.
	AllowedOrigins []string
}

// LoadConfig reads JWT_SECRET and CORS_ALLOWED_ORIGINS (comma separated).
func LoadConfig() Config {
	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return Config{JWTSecret: jwtmw.SecretFromEnv(), AllowedOrigins: origins}
}

func NewRouter(cfg Config, watchlist *watchlisthandler.WatchlistHandler, realtime http.Handler) *gin.Engine {
	r := gin.Default()

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	// 追跡銘柄の読み込み完了まで 503
	r.GET("/readyz", handler.Ready(watchlist.IsReady))
	// 状態変更の配信
	r.GET("/ws", gin.WrapH(realtime))

	r.GET("/watchlist", watchlist.GetState)
	r.GET("/symbols", watchlist.ListSymbols)
	r.GET("/alerts", watchlist.Alerts)

	// 変更系のルート
	// JWT_SECRET が設定されている場合のみ JWT が必要になる
	ops := r.Group("/")
	ops.Use(jwtmw.Optional(cfg.JWTSecret))
	{
		ops.POST("/watchlist/reload", watchlist.Reload)
		ops.POST("/watchlist/stocks", watchlist.AddStock)
		ops.DELETE("/watchlist/stocks/:symbol", watchlist.RemoveStock)
		ops.PUT("/watchlist/stocks/:symbol/alert", watchlist.SetAlert)
		ops.DELETE("/watchlist/stocks/:symbol/alert", watchlist.RemoveAlert)
		ops.POST("/watchlist/sort", watchlist.Sort)
		ops.POST("/watchlist/alert-edit", watchlist.BeginAlertEdit)
		ops.PUT("/watchlist/alert-edit", watchlist.CommitAlertEdit)
		ops.DELETE("/watchlist/alert-edit", watchlist.CancelAlertEdit)
		ops.POST("/symbols/reload", watchlist.ReloadSymbols)
	}

	return r
}
