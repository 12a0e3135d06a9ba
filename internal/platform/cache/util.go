package cache

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultRefreshHour は銘柄一覧キャッシュを更新する時刻（時）のデフォルト値です。
	DefaultRefreshHour = 8
	// DefaultRefreshTimeZone はキャッシュ更新時刻のタイムゾーンのデフォルト値です。
	DefaultRefreshTimeZone = "Asia/Tokyo"
)

// RefreshConfig は日次キャッシュ更新の時刻設定です。
type RefreshConfig struct {
	Hour     int
	Location *time.Location
}

// LoadRefreshConfig は SYMBOL_CACHE_REFRESH_HOUR と SYMBOL_CACHE_TZ から設定を読み込みます。
// 不正な値はデフォルトに置き換えます。
func LoadRefreshConfig() RefreshConfig {
	cfg := RefreshConfig{Hour: DefaultRefreshHour, Location: time.UTC}
	if h, err := strconv.Atoi(os.Getenv("SYMBOL_CACHE_REFRESH_HOUR")); err == nil && h >= 0 && h < 24 {
		cfg.Hour = h
	}
	tz := os.Getenv("SYMBOL_CACHE_TZ")
	if tz == "" {
		tz = DefaultRefreshTimeZone
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		cfg.Location = loc
	}
	return cfg
}

// TimeUntilNextRefresh は now から次の更新時刻（loc における hour 時ちょうど）までの期間を返します。
// 戻り値は常に正で、24時間（夏時間の切り替え日は前後1時間）以内です。
func TimeUntilNextRefresh(now time.Time, hour int, loc *time.Location) time.Duration {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)
	// 今日の更新時刻を過ぎている（ちょうどを含む）場合は翌日の更新時刻を使用
	if !now.Before(next) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, 0, 0, 0, loc)
	}
	return next.Sub(now)
}
