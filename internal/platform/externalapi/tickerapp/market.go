package tickerapp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/usecase"
	"stock_watchlist/internal/platform/externalapi/tickerapp/dto"
	"stock_watchlist/internal/shared/ratelimiter"
)

// TickerAppMarket はticker app外部APIから銘柄一覧と価格を取得するMarketSource実装です。
type TickerAppMarket struct {
	baseURL string
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
	now     func() time.Time
}

// TickerAppMarketがMarketSourceを実装していることをコンパイル時に検証します。
var _ usecase.MarketSource = (*TickerAppMarket)(nil)

// NewTickerAppMarket は指定された設定とHTTPクライアントでTickerAppMarketの新しいインスタンスを生成します。
func NewTickerAppMarket(cfg Config, client *http.Client) *TickerAppMarket {
	return &TickerAppMarket{
		baseURL: SanitizeBaseURL(cfg.BaseURL),
		client:  client,
		limiter: ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute),
		now:     time.Now,
	}
}

// SanitizeBaseURL はバックスラッシュをスラッシュに置き換え、末尾にスラッシュを付けます。
func SanitizeBaseURL(base string) string {
	base = strings.ReplaceAll(base, `\`, "/")
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// LoadAllSymbols は追加可能な銘柄シンボルの一覧を取得します。
func (m *TickerAppMarket) LoadAllSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := m.getJSON(ctx, "static/tickers", &symbols); err != nil {
		return nil, err
	}
	if symbols == nil {
		symbols = []string{}
	}
	return symbols, nil
}

// LoadStocks は指定された銘柄の価格を取得し、要求に含まれていたアラート閾値を引き継ぎます。
// selections が空の場合はリクエストを送信しません。
func (m *TickerAppMarket) LoadStocks(ctx context.Context, selections []entity.SelectedSymbol) ([]entity.Stock, error) {
	if len(selections) == 0 {
		return []entity.Stock{}, nil
	}

	thresholds := make(map[string]float64, len(selections))
	escaped := make([]string, 0, len(selections))
	for _, s := range selections {
		thresholds[s.Symbol] = s.AlertThresholdPercent
		escaped = append(escaped, url.PathEscape(s.Symbol))
	}

	// TODO: split very long symbol lists into several requests once URL length limits are hit
	var body []dto.PriceResponse
	if err := m.getJSON(ctx, "prices/"+strings.Join(escaped, ","), &body); err != nil {
		return nil, err
	}
	retrievedAt := m.now()

	stocks := make([]entity.Stock, 0, len(body))
	for _, p := range body {
		stocks = append(stocks, entity.Stock{
			Symbol:                p.Symbol,
			Bid:                   p.Bid.InexactFloat64(),
			Ask:                   p.Ask.InexactFloat64(),
			LastVolume:            p.LastVol.InexactFloat64(),
			Open:                  p.Open.InexactFloat64(),
			AlertThresholdPercent: thresholds[p.Symbol],
			RetrievedAt:           retrievedAt,
		})
	}
	return stocks, nil
}

func (m *TickerAppMarket) getJSON(ctx context.Context, path string, out any) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return err
	}

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	// リクエストを実行
	res, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("tickerapp http %d", res.StatusCode)
	}

	// JSONレスポンスをデコード
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("tickerapp decode %s: %w", path, err)
	}
	return nil
}
