// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"

	"stock_watchlist/internal/feature/watchlist/domain/alerting"
	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/domain/ordering"
	"stock_watchlist/internal/feature/watchlist/transport/http/dto"
	"stock_watchlist/internal/feature/watchlist/usecase"
)

// WatchlistUsecase はウォッチリスト操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WatchlistUsecase interface {
	State() entity.State
	CurrentOrder() (*ordering.Order, ordering.Direction)
	ReloadTrackedStocks(ctx context.Context) error
	ReloadAvailableSymbols(ctx context.Context, force bool) error
	AddSymbol(ctx context.Context, symbol string) (bool, error)
	RemoveSymbol(symbol string) bool
	Sort(orderName string, direction *ordering.Direction) (bool, error)
	BeginAlertEdit(symbol string) bool
	CommitAlertEdit(percent float64) (bool, error)
	CancelAlertEdit() bool
	SetAlertThreshold(symbol string, percent float64) bool
	RemoveAlert(symbol string) bool
	Alerts() entity.Outcome[alerting.Result]
}

// WatchlistHandler はウォッチリストのHTTPリクエストを処理します。
// 変更系のエンドポイントは成功時に最新の状態を返し、
// 変更が適用されなかった場合は409を返します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は指定されたusecaseでWatchlistHandlerを生成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

func (h *WatchlistHandler) stateResponse() dto.StateResponse {
	order, direction := h.uc.CurrentOrder()
	return dto.NewStateResponse(h.uc.State(), order, direction)
}

func (h *WatchlistHandler) respondState(c *gin.Context, status int) {
	c.JSON(status, h.stateResponse())
}

func notApplied(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, dto.ErrorResponse{Error: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}

// GetState は現在の状態を返します。
//
// GET /watchlist
func (h *WatchlistHandler) GetState(c *gin.Context) {
	h.respondState(c, http.StatusOK)
}

// Reload は保存済みの設定から追跡銘柄を読み込み直します。
//
// POST /watchlist/reload
func (h *WatchlistHandler) Reload(c *gin.Context) {
	if err := h.uc.ReloadTrackedStocks(c.Request.Context()); err != nil {
		slog.Error("failed to reload tracked stocks", "error", err)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	h.respondState(c, http.StatusOK)
}

// AddStock は銘柄を追跡対象に追加します。
//
// POST /watchlist/stocks {"symbol":"AAPL"}
func (h *WatchlistHandler) AddStock(c *gin.Context) {
	var req dto.AddSymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	applied, err := h.uc.AddSymbol(c.Request.Context(), req.Symbol)
	switch {
	case errors.Is(err, usecase.ErrBlankSymbol):
		badRequest(c, err.Error())
		return
	case err != nil:
		slog.Warn("failed to add symbol", "symbol", req.Symbol, "error", err)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	case !applied:
		notApplied(c, "stocks are not loaded")
		return
	}
	slog.Info("symbol added", "symbol", req.Symbol)
	h.respondState(c, http.StatusCreated)
}

// RemoveStock は銘柄を追跡対象から外します。
//
// DELETE /watchlist/stocks/:symbol
func (h *WatchlistHandler) RemoveStock(c *gin.Context) {
	symbol := c.Param("symbol")
	if !h.uc.RemoveSymbol(symbol) {
		notApplied(c, "symbol is not tracked")
		return
	}
	slog.Info("symbol removed", "symbol", symbol)
	h.respondState(c, http.StatusOK)
}

// Sort は追跡銘柄を並べ替えます。direction 省略時は同じ順序の再指定で昇順/降順が切り替わります。
//
// POST /watchlist/sort {"order":"bid","direction":"desc"}
func (h *WatchlistHandler) Sort(c *gin.Context) {
	var req dto.SortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	var direction *ordering.Direction
	if req.Direction != nil {
		d, ok := ordering.ParseDirection(*req.Direction)
		if !ok {
			badRequest(c, "direction must be asc or desc")
			return
		}
		direction = &d
	}
	applied, err := h.uc.Sort(req.Order, direction)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if !applied {
		notApplied(c, "stocks are not loaded")
		return
	}
	h.respondState(c, http.StatusOK)
}

// SetAlert は銘柄のアラート閾値を設定します。
//
// PUT /watchlist/stocks/:symbol/alert {"thresholdPercent":5}
func (h *WatchlistHandler) SetAlert(c *gin.Context) {
	var req dto.ThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	symbol := c.Param("symbol")
	if !h.uc.SetAlertThreshold(symbol, *req.ThresholdPercent) {
		notApplied(c, "symbol is not tracked")
		return
	}
	h.respondState(c, http.StatusOK)
}

// RemoveAlert は銘柄のアラートを無効にします。
//
// DELETE /watchlist/stocks/:symbol/alert
func (h *WatchlistHandler) RemoveAlert(c *gin.Context) {
	if !h.uc.RemoveAlert(c.Param("symbol")) {
		notApplied(c, "symbol is not tracked")
		return
	}
	h.respondState(c, http.StatusOK)
}

// BeginAlertEdit はアラート編集を開始します。
//
// POST /watchlist/alert-edit {"symbol":"AAPL"}
func (h *WatchlistHandler) BeginAlertEdit(c *gin.Context) {
	var req dto.AddSymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if !h.uc.BeginAlertEdit(req.Symbol) {
		notApplied(c, "symbol is not tracked")
		return
	}
	h.respondState(c, http.StatusOK)
}

// CommitAlertEdit は編集中の銘柄に閾値を適用して編集を終了します。
//
// PUT /watchlist/alert-edit {"thresholdPercent":5}
func (h *WatchlistHandler) CommitAlertEdit(c *gin.Context) {
	var req dto.ThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	applied, err := h.uc.CommitAlertEdit(*req.ThresholdPercent)
	if err != nil {
		notApplied(c, err.Error())
		return
	}
	if !applied {
		notApplied(c, "symbol is no longer tracked")
		return
	}
	h.respondState(c, http.StatusOK)
}

// CancelAlertEdit は編集を破棄します。
//
// DELETE /watchlist/alert-edit
func (h *WatchlistHandler) CancelAlertEdit(c *gin.Context) {
	if !h.uc.CancelAlertEdit() {
		notApplied(c, usecase.ErrNoPendingAlertEdit.Error())
		return
	}
	h.respondState(c, http.StatusOK)
}

// ListSymbols は追加可能な銘柄を昇順で返します。
//
// GET /symbols
func (h *WatchlistHandler) ListSymbols(c *gin.Context) {
	resp := dto.NewOutcomeResponse(h.uc.State().AvailableSymbols, func(symbols []string) []string {
		sorted := append(make([]string, 0, len(symbols)), symbols...)
		slices.Sort(sorted)
		return sorted
	})
	c.JSON(http.StatusOK, resp)
}

// ReloadSymbols は追加可能な銘柄一覧を読み込み直します。force=true でキャッシュを破棄します。
//
// POST /symbols/reload?force=true
func (h *WatchlistHandler) ReloadSymbols(c *gin.Context) {
	force, err := strconv.ParseBool(c.DefaultQuery("force", "false"))
	if err != nil {
		badRequest(c, "force must be a boolean")
		return
	}
	if err := h.uc.ReloadAvailableSymbols(c.Request.Context(), force); err != nil {
		slog.Error("failed to reload available symbols", "error", err)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	h.ListSymbols(c)
}

// Alerts はアラートの評価結果を返します。
//
// GET /alerts
func (h *WatchlistHandler) Alerts(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewAlertsResponse(h.uc.Alerts()))
}

// IsReady reports whether the tracked stocks have been loaded.
func (h *WatchlistHandler) IsReady() bool {
	return h.uc.State().TrackedStocks.IsReady()
}
