package http

import (
	"net"
	"net/http"
	"time"
)

// ClientConfig は外部API呼び出し用HTTPクライアントの設定です。
// ゼロ値のフィールドはデフォルト値に置き換えられます。
type ClientConfig struct {
	Timeout             time.Duration // リクエスト全体のタイムアウト
	DialTimeout         time.Duration // TCP接続タイムアウト
	MaxIdleConns        int
	IdleConnTimeout     time.Duration
	TLSHandshakeTimeout time.Duration
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 100
	}
	if c.IdleConnTimeout <= 0 {
		c.IdleConnTimeout = 90 * time.Second
	}
	if c.TLSHandshakeTimeout <= 0 {
		c.TLSHandshakeTimeout = 5 * time.Second
	}
	return c
}

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 注意:
//   - http.DefaultClientにはタイムアウトがないため、常にカスタムクライアントを使用すること
//   - Proxy は環境変数（HTTP_PROXYなど）に従う
func NewHTTPClient(cfg ClientConfig) *http.Client {
	cfg = cfg.withDefaults()
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
	}
	return &http.Client{Timeout: cfg.Timeout, Transport: t}
}
